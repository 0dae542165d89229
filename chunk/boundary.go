package chunk

import (
	"regexp"
	"sort"
	"strings"
)

var (
	markdownHeadingRegex  = regexp.MustCompile(`^\s*#{1,6}\s+\S`)
	underlineEqualsRegex  = regexp.MustCompile(`^\s*=+\s*$`)
	underlineHyphensRegex = regexp.MustCompile(`^\s*-{2,}\s*$`)
)

// Detector locates candidate semantic split points in a document. Heading
// line starts are mandatory boundaries; sentence-end boundaries are added
// only in information-dense regions or after overlong sentences, which
// concentrates split points where they matter and avoids over-splitting
// plain prose.
type Detector struct {
	extractor *Extractor

	// densityThreshold is the local window density above which a
	// sentence end becomes a boundary (default 0.7)
	densityThreshold float64

	// longSentence is the sentence length in bytes above which a
	// sentence end becomes a boundary regardless of density (default 200)
	longSentence int
}

// NewDetector creates a boundary detector with the default thresholds.
func NewDetector(extractor *Extractor) *Detector {
	return NewDetectorWithThresholds(extractor, 0.7, 200)
}

// NewDetectorWithThresholds creates a boundary detector with custom
// density and sentence-length thresholds.
func NewDetectorWithThresholds(extractor *Extractor, densityThreshold float64, longSentence int) *Detector {
	return &Detector{
		extractor:        extractor,
		densityThreshold: densityThreshold,
		longSentence:     longSentence,
	}
}

// line is a document line with its byte offset.
type line struct {
	Text  string
	Start int
}

func splitLines(text string) []line {
	var lines []line
	start := 0
	for {
		i := strings.IndexByte(text[start:], '\n')
		if i < 0 {
			lines = append(lines, line{Text: text[start:], Start: start})
			return lines
		}
		lines = append(lines, line{Text: text[start : start+i], Start: start})
		start += i + 1
		if start >= len(text) {
			return lines
		}
	}
}

// isHeadingLine reports whether lines[i] is a heading: markdown #-style,
// or underline-style (a non-empty line followed by ===/--- underlining).
func isHeadingLine(lines []line, i int) bool {
	if markdownHeadingRegex.MatchString(lines[i].Text) {
		return true
	}
	if i+1 < len(lines) && strings.TrimSpace(lines[i].Text) != "" &&
		!strings.HasPrefix(strings.TrimSpace(lines[i].Text), "|") {
		next := lines[i+1].Text
		if underlineEqualsRegex.MatchString(next) || underlineHyphensRegex.MatchString(next) {
			return true
		}
	}
	return false
}

// fencedRanges returns the byte ranges of fenced code blocks, tracking
// fence state line by line. An unterminated fence extends to the end of
// the text.
func fencedRanges(lines []line, textLen int) [][2]int {
	var ranges [][2]int
	open := -1
	for _, ln := range lines {
		if strings.HasPrefix(strings.TrimSpace(ln.Text), "```") {
			if open < 0 {
				open = ln.Start
			} else {
				ranges = append(ranges, [2]int{open, ln.Start + len(ln.Text)})
				open = -1
			}
		}
	}
	if open >= 0 {
		ranges = append(ranges, [2]int{open, textLen})
	}
	return ranges
}

func inRanges(pos int, ranges [][2]int) bool {
	for _, r := range ranges {
		if pos > r[0] && pos < r[1] {
			return true
		}
	}
	return false
}

// isTableRow reports whether a line looks like a markdown table row.
func isTableRow(text string) bool {
	trimmed := strings.TrimSpace(text)
	return strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|") && len(trimmed) > 1
}

// FindBoundaries returns the sorted, deduplicated byte offsets of
// candidate split points in text. The start of every heading line is a
// mandatory boundary. Sentence ends become boundaries only when the local
// window density exceeds the detector's threshold or the sentence exceeds
// the length threshold. Boundaries never fall inside a fenced code block
// or on a table row. An empty result signals the caller to fall back to
// fixed-size splitting.
func (d *Detector) FindBoundaries(text string) []int {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	lines := splitLines(text)
	fences := fencedRanges(lines, len(text))

	boundarySet := make(map[int]bool)

	// Heading starts are authoritative structure; never merged across.
	for i := range lines {
		if isHeadingLine(lines, i) && !inRanges(lines[i].Start, fences) {
			boundarySet[lines[i].Start] = true
		}
	}

	// Sentence-end boundaries in dense regions.
	spans := splitSentenceSpans(text)
	for i, span := range spans {
		if markdownHeadingRegex.MatchString(span.Text) {
			continue
		}
		if inRanges(span.End, fences) || d.onTableRow(lines, span.End) {
			continue
		}

		windowStart := i - 2
		if windowStart < 0 {
			windowStart = 0
		}
		windowEnd := i + 3
		if windowEnd > len(spans) {
			windowEnd = len(spans)
		}
		var window strings.Builder
		for j := windowStart; j < windowEnd; j++ {
			if window.Len() > 0 {
				window.WriteByte(' ')
			}
			window.WriteString(spans[j].Text)
		}

		density := d.extractor.Density(window.String())
		if density > d.densityThreshold || len(span.Text) > d.longSentence {
			boundarySet[span.End] = true
		}
	}

	if len(boundarySet) == 0 {
		return nil
	}

	boundaries := make([]int, 0, len(boundarySet))
	for pos := range boundarySet {
		if pos > 0 && pos < len(text) {
			boundaries = append(boundaries, pos)
		}
	}
	sort.Ints(boundaries)
	return boundaries
}

// onTableRow reports whether the byte position falls within a table-row
// line, where a split would cut mid-row.
func (d *Detector) onTableRow(lines []line, pos int) bool {
	for _, ln := range lines {
		if pos >= ln.Start && pos < ln.Start+len(ln.Text) {
			return isTableRow(ln.Text)
		}
	}
	return false
}
