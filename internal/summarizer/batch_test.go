package summarizer

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tg_summary_bot/internal/model"
)

func makeRows(n int) []model.DigestRow {
	rows := make([]model.DigestRow, n)
	for i := range rows {
		rows[i] = model.DigestRow{
			MessageID:  int64(i + 1),
			ChatTitle:  "Dev Chat",
			AuthorName: "Alice",
			Text:       fmt.Sprintf("message %d", i+1),
		}
	}
	return rows
}

func TestPartition(t *testing.T) {
	tests := []struct {
		name      string
		rows      int
		size      int
		wantSizes []int
	}{
		{"fits one batch", 5, 10, []int{5}},
		{"exact multiple", 6, 3, []int{3, 3}},
		{"remainder in last batch", 7, 3, []int{3, 3, 1}},
		{"batch size one", 3, 1, []int{1, 1, 1}},
		{"empty", 0, 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batches := Partition(makeRows(tt.rows), tt.size)

			var sizes []int
			for _, b := range batches {
				sizes = append(sizes, len(b))
			}
			if diff := cmp.Diff(tt.wantSizes, sizes); diff != "" {
				t.Fatalf("batch sizes (-want +got):\n%s", diff)
			}

			// every row appears exactly once, in order
			var nextID int64 = 1
			for _, b := range batches {
				for _, row := range b {
					if row.MessageID != nextID {
						t.Fatalf("row out of order: got id %d, want %d", row.MessageID, nextID)
					}
					nextID++
				}
			}
			if nextID != int64(tt.rows)+1 {
				t.Errorf("covered %d rows, want %d", nextID-1, tt.rows)
			}
		})
	}
}

func TestRenderTranscript(t *testing.T) {
	replyTo := "the original"
	rows := []model.DigestRow{
		{MessageID: 1, ChatTitle: "Dev Chat", AuthorName: "Alice", Text: "hello"},
		{MessageID: 2, ChatTitle: "Dev Chat", AuthorName: "Bob", Text: "hi back", ReplyToText: &replyTo},
	}

	got := RenderTranscript(rows)
	want := "Chat: Dev Chat\nAuthor: Alice\nMessage: hello\n---\n" +
		"Chat: Dev Chat\nAuthor: Bob\nIn reply to: the original\nMessage: hi back\n---\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("transcript (-want +got):\n%s", diff)
	}
}
