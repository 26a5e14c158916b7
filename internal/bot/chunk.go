package bot

// maxMessageLen is Telegram's hard per-message length limit.
const maxMessageLen = 4096

// SplitText splits text into consecutive chunks of at most limit characters,
// preserving order. The concatenation of the chunks reconstructs the input
// exactly; splits may fall mid-word.
func SplitText(text string, limit int) []string {
	runes := []rune(text)
	if limit < 1 || len(runes) <= limit {
		return []string{text}
	}

	chunks := make([]string, 0, (len(runes)+limit-1)/limit)
	for len(runes) > limit {
		chunks = append(chunks, string(runes[:limit]))
		runes = runes[limit:]
	}
	return append(chunks, string(runes))
}
