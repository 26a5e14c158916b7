package summarizer

import (
	"fmt"
	"strings"

	"tg_summary_bot/internal/model"
)

// Partition splits rows into consecutive batches of at most size rows,
// preserving the original order.
func Partition(rows []model.DigestRow, size int) [][]model.DigestRow {
	if len(rows) == 0 {
		return nil
	}
	if size < 1 {
		size = 1
	}

	batches := make([][]model.DigestRow, 0, (len(rows)+size-1)/size)
	for start := 0; start < len(rows); start += size {
		end := min(start+size, len(rows))
		batches = append(batches, rows[start:end])
	}
	return batches
}

// RenderTranscript formats a batch of rows as the user turn of an LLM
// request, one stanza per message.
func RenderTranscript(rows []model.DigestRow) string {
	var b strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&b, "Chat: %s\n", row.ChatTitle)
		fmt.Fprintf(&b, "Author: %s\n", row.AuthorName)
		if row.ReplyToText != nil {
			fmt.Fprintf(&b, "In reply to: %s\n", *row.ReplyToText)
		}
		fmt.Fprintf(&b, "Message: %s\n---\n", row.Text)
	}
	return b.String()
}
