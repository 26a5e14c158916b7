package bot

import (
	"context"
	"fmt"
	"time"

	"tg_summary_bot/internal/summarizer"
)

// summaryWindow bounds how far back unsummarized messages are picked up.
const summaryWindow = 24 * time.Hour

// runSummarization drives the pipeline for every chat in scope: read the
// chat's unsummarized rows, summarize them batch by batch, reply with each
// digest, then flip the rows to consumed. A failed LLM call degrades to an
// error-text reply for that batch; its rows are still consumed.
func (b *Bot) runSummarization(ctx context.Context, replyTo int64, scope []int64) {
	since := time.Now().Add(-summaryWindow)

	for _, chatID := range scope {
		rows, err := b.store.ListUnsummarized(ctx, chatID, since)
		if err != nil {
			b.log.Error("list unsummarized", "chat_id", chatID, "error", err)
			continue
		}
		if len(rows) == 0 {
			continue
		}

		b.log.Info("summarizing chat", "chat_id", chatID, "messages", len(rows))

		batches := summarizer.Partition(rows, b.cfg.SummaryBatchSize)
		for i, batch := range batches {
			transcript := summarizer.RenderTranscript(batch)
			summary, err := b.completer.Complete(ctx, summarizer.SystemPrompt, transcript)
			if err != nil {
				b.log.Error("summarize batch", "chat_id", chatID, "batch", i+1, "error", err)
				summary = fmt.Sprintf("Error during summarization: %v", err)
			}
			b.reply(replyTo, formatSummary(rows[0].ChatTitle, summary, i+1, len(batches)))
		}

		ids := make([]int64, len(rows))
		for i, row := range rows {
			ids[i] = row.MessageID
		}
		if err := b.store.MarkSummarized(ctx, ids); err != nil {
			b.log.Error("mark summarized", "chat_id", chatID, "error", err)
			continue
		}
		b.log.Info("marked messages summarized", "chat_id", chatID, "count", len(ids))
	}

	b.reply(replyTo, "Summarization complete.")
}

// formatSummary labels a digest with its chat title and, when the chat
// needed more than one batch, a part counter.
func formatSummary(chatTitle, summary string, part, total int) string {
	if total > 1 {
		return fmt.Sprintf("Summary for %q (part %d/%d):\n%s", chatTitle, part, total, summary)
	}
	return fmt.Sprintf("Summary for %q:\n%s", chatTitle, summary)
}
