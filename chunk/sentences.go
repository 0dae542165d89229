package chunk

import (
	"strings"
	"unicode"
)

// sentenceSpan is a sentence with its byte offsets in the original text.
type sentenceSpan struct {
	Text  string
	Start int
	End   int // exclusive, includes the terminal punctuation
}

// SplitSentences splits text into sentences, handling common
// abbreviations and decimal numbers. Trailing text without terminal
// punctuation is returned as a final sentence.
func SplitSentences(text string) []string {
	spans := splitSentenceSpans(text)
	sentences := make([]string, 0, len(spans))
	for _, span := range spans {
		sentences = append(sentences, span.Text)
	}
	return sentences
}

// splitSentenceSpans splits text into sentences while tracking byte
// offsets, so boundary positions can be mapped back into the source.
func splitSentenceSpans(text string) []sentenceSpan {
	var spans []sentenceSpan
	start := 0

	for i := 0; i < len(text); i++ {
		if !isSentenceEnd(text, i) {
			continue
		}
		raw := text[start : i+1]
		trimmed := strings.TrimSpace(raw)
		if trimmed != "" {
			offset := start + strings.Index(raw, trimmed)
			spans = append(spans, sentenceSpan{
				Text:  trimmed,
				Start: offset,
				End:   i + 1,
			})
		}
		start = i + 1
	}

	if start < len(text) {
		raw := text[start:]
		trimmed := strings.TrimSpace(raw)
		if trimmed != "" {
			offset := start + strings.Index(raw, trimmed)
			spans = append(spans, sentenceSpan{
				Text:  trimmed,
				Start: offset,
				End:   len(text),
			})
		}
	}

	return spans
}

// isSentenceEnd checks if position i in text is a sentence ending
func isSentenceEnd(text string, i int) bool {
	if i >= len(text) {
		return false
	}

	r := rune(text[i])
	if r != '.' && r != '!' && r != '?' {
		return false
	}

	if r == '.' && i >= 1 {
		prev := rune(text[i-1])

		// Single capital letter before the period (e.g. "Mr.")
		if unicode.IsUpper(prev) {
			if i < 2 || !unicode.IsLetter(rune(text[i-2])) {
				return false
			}
		}

		if isAbbreviation(text, i) {
			return false
		}

		// Decimal numbers (e.g. "3.14") and dotted versions ("v2.1")
		if unicode.IsDigit(prev) && i+1 < len(text) && unicode.IsDigit(rune(text[i+1])) {
			return false
		}
	}

	if i+1 >= len(text) {
		return true
	}

	// Followed by whitespace and a capital letter, quote, or structure
	if unicode.IsSpace(rune(text[i+1])) {
		if i+2 >= len(text) {
			return true
		}
		next := rune(text[i+2])
		if unicode.IsUpper(next) || next == '"' || next == '\'' || next == '#' ||
			next == '-' || next == '|' || next == '`' || next == '\n' {
			return true
		}
		// Paragraph break after the punctuation
		if text[i+1] == '\n' {
			return true
		}
	}

	return false
}

// isAbbreviation checks if the period at position i ends a common
// abbreviation rather than a sentence.
func isAbbreviation(text string, i int) bool {
	abbreviations := []string{
		"mr.", "mrs.", "ms.", "dr.", "prof.",
		"sr.", "jr.", "vs.", "etc.", "e.g.", "i.e.",
		"inc.", "ltd.", "co.", "corp.",
		"no.", "vol.", "ver.", "approx.",
	}

	start := i
	for start > 0 && unicode.IsLetter(rune(text[start-1])) {
		start--
	}
	if start >= i {
		return false
	}

	word := strings.ToLower(text[start : i+1])
	for _, abbr := range abbreviations {
		if word == abbr {
			return true
		}
	}

	return false
}

// countWords counts whitespace-separated words in text.
func countWords(text string) int {
	words := 0
	inWord := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			inWord = false
		} else if !inWord {
			inWord = true
			words++
		}
	}
	return words
}
