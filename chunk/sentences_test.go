package chunk

import (
	"strings"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "simple sentences",
			text: "The parser normalizes events. Each field maps to the schema. Done.",
			want: []string{
				"The parser normalizes events.",
				"Each field maps to the schema.",
				"Done.",
			},
		},
		{
			name: "abbreviation not split",
			text: "Configure the source, e.g. a syslog feed. Then save.",
			want: []string{
				"Configure the source, e.g. a syslog feed.",
				"Then save.",
			},
		},
		{
			name: "decimal number not split",
			text: "Set the threshold to 0.75 for noisy sources. Review weekly.",
			want: []string{
				"Set the threshold to 0.75 for noisy sources.",
				"Review weekly.",
			},
		},
		{
			name: "trailing fragment kept",
			text: "First sentence ends here. And this one never does",
			want: []string{
				"First sentence ends here.",
				"And this one never does",
			},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d sentences %q, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("sentence %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplitSentenceSpansOffsets(t *testing.T) {
	text := "  The first sentence.  The second one. "
	spans := splitSentenceSpans(text)
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	for i, span := range spans {
		if !strings.HasPrefix(text[span.Start:], span.Text) {
			t.Errorf("span %d: offset %d does not point at %q", i, span.Start, span.Text)
		}
		if span.End <= span.Start || span.End > len(text) {
			t.Errorf("span %d: bad range [%d,%d)", i, span.Start, span.End)
		}
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"one", 1},
		{"  spaced   out  words ", 3},
		{"line\nbreaks\ncount", 3},
	}
	for _, tt := range tests {
		if got := countWords(tt.text); got != tt.want {
			t.Errorf("countWords(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}
