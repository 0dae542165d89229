package chunk

import (
	"strings"
)

// Assembler slices text at boundary offsets and merges adjacent slices
// into size-bounded chunks. It also provides the fixed-size sliding
// window used whenever boundary-based splitting produced nothing usable.
type Assembler struct {
	// MinSize is the minimum chunk size in bytes
	MinSize int

	// MaxSize is the maximum chunk size in bytes; merging flushes a
	// chunk when the next slice would exceed it
	MaxSize int

	// OverlapFraction is the fraction of chunk size carried over between
	// adjacent fixed-size chunks to preserve cross-boundary context
	// (default 0.15)
	OverlapFraction float64
}

// NewAssembler creates an assembler with the given size bounds and the
// default overlap fraction.
func NewAssembler(minSize, maxSize int) *Assembler {
	return &Assembler{
		MinSize:         minSize,
		MaxSize:         maxSize,
		OverlapFraction: 0.15,
	}
}

// Assemble slices text at consecutive boundary pairs and greedily merges
// adjacent slices while the running total stays under MaxSize. Merged
// slices are taken as contiguous spans of the original text, so every
// chunk is a verbatim substring of the source. Whitespace-only spans are
// never emitted.
func (a *Assembler) Assemble(text string, boundaries []int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	// Build slice spans from the boundaries.
	offsets := make([]int, 0, len(boundaries)+2)
	offsets = append(offsets, 0)
	for _, b := range boundaries {
		if b > 0 && b < len(text) {
			offsets = append(offsets, b)
		}
	}
	offsets = append(offsets, len(text))

	var chunks []string
	spanStart := offsets[0]
	prevEnd := offsets[0]

	flush := func(end int) {
		if end <= spanStart {
			return
		}
		piece := strings.TrimSpace(text[spanStart:end])
		if piece != "" {
			chunks = append(chunks, piece)
		}
	}

	for i := 1; i < len(offsets); i++ {
		end := offsets[i]
		if end <= prevEnd {
			continue
		}
		// Flush when extending the current span past MaxSize, unless the
		// span is still empty (a single oversized slice stays whole).
		if end-spanStart > a.MaxSize && prevEnd > spanStart {
			flush(prevEnd)
			spanStart = prevEnd
		}
		prevEnd = end
	}
	flush(prevEnd)

	return chunks
}

// FixedSize splits text into fixed-size chunks using a sliding window
// with overlap. Window edges snap to the nearest line break when one is
// close, and a window that would leave a code fence open is extended to
// the closing fence. Used as the last-resort fallback when no semantic
// boundaries exist.
func (a *Assembler) FixedSize(text string, size, overlap int) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	if size <= 0 {
		size = a.MaxSize
	}
	if overlap < 0 || overlap >= size {
		overlap = int(float64(size) * a.OverlapFraction)
	}
	if len(trimmed) <= size {
		return []string{trimmed}
	}

	runes := []rune(trimmed)
	var chunks []string
	start := 0

	for start < len(runes) {
		end := start + size
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = snapToBreak(runes, end)
			end = closeOpenFence(runes, start, end)
		}

		piece := strings.TrimSpace(string(runes[start:end]))
		if piece != "" {
			chunks = append(chunks, piece)
		}

		if end >= len(runes) {
			break
		}
		next := end - overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}

	return chunks
}

// snapToBreak moves a window edge backward to the nearest newline or
// space within a short distance, so windows do not cut words.
func snapToBreak(runes []rune, end int) int {
	const lookback = 80
	limit := end - lookback
	if limit < 1 {
		limit = 1
	}
	for i := end; i > limit; i-- {
		if runes[i-1] == '\n' {
			return i
		}
	}
	for i := end; i > limit; i-- {
		if runes[i-1] == ' ' {
			return i
		}
	}
	return end
}

// closeOpenFence extends a window that contains an odd number of code
// fence markers until the fence closes, keeping fenced blocks intact.
func closeOpenFence(runes []rune, start, end int) int {
	window := string(runes[start:end])
	if strings.Count(window, "```")%2 == 0 {
		return end
	}
	rest := string(runes[end:])
	if i := strings.Index(rest, "```"); i >= 0 {
		// Include the closing fence and the remainder of its line.
		after := end + len([]rune(rest[:i])) + 3
		for after < len(runes) && runes[after] != '\n' {
			after++
		}
		return after
	}
	return len(runes)
}
