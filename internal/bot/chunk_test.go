package bot

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{"short text single chunk", "hello", 10, []string{"hello"}},
		{"exact fit", "hello", 5, []string{"hello"}},
		{"splits mid word", "hello world", 4, []string{"hell", "o wo", "rld"}},
		{"exact multiple", "abcdef", 3, []string{"abc", "def"}},
		{"empty text", "", 5, []string{""}},
		{"unicode is split by characters", "привет мир", 6, []string{"привет", " мир"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitText(tt.text, tt.limit)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SplitText mismatch (-want +got):\n%s", diff)
			}
			if joined := strings.Join(got, ""); joined != tt.text {
				t.Errorf("concatenation = %q, want %q", joined, tt.text)
			}
		})
	}
}

func TestSplitTextChunkCount(t *testing.T) {
	text := strings.Repeat("x", 10000)
	got := SplitText(text, maxMessageLen)

	if len(got) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(got))
	}
	for i, chunk := range got[:len(got)-1] {
		if len(chunk) != maxMessageLen {
			t.Errorf("chunk %d length = %d, want %d", i, len(chunk), maxMessageLen)
		}
	}
	if strings.Join(got, "") != text {
		t.Error("concatenation does not reconstruct input")
	}
}
