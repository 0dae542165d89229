package chunk

import (
	"strings"

	"github.com/docshard/docshard/model"
)

// ParserStrategy chunks event-parser definition documents. Parsers are
// small, atomic definitions whose meaning degrades when split, so the
// whole document is kept as one chunk whenever it fits. Oversized parser
// documents split along top-level headings only, tracking code fence
// state line by line so a boundary never falls inside an open fence.
type ParserStrategy struct {
	cfg     Config
	generic *GenericStrategy
}

// Name implements Strategy.
func (s *ParserStrategy) Name() string { return "parser_aware" }

// Chunk implements Strategy.
func (s *ParserStrategy) Chunk(doc *model.Document) ([]*model.Chunk, error) {
	text := strings.TrimSpace(doc.Text)

	if len(text) <= s.cfg.MaxSize {
		return []*model.Chunk{{
			Text: text,
			Metadata: model.ChunkMetadata{
				ContentTypes: []string{"parser"},
				Atomic:       true,
			},
		}}, nil
	}

	sections := splitFenceAware(text)

	var chunks []*model.Chunk
	for _, section := range sections {
		if strings.TrimSpace(section) == "" {
			continue
		}
		if len(section) <= s.cfg.MaxSize {
			chunks = append(chunks, &model.Chunk{
				Text:     strings.TrimSpace(section),
				Metadata: model.ChunkMetadata{ContentTypes: []string{"parser"}},
			})
			continue
		}
		// Oversized section: semantic sub-split. A section that still
		// cannot split (one huge fenced definition) stays whole, flagged
		// atomic by the chunker.
		for _, piece := range s.generic.split(section) {
			chunks = append(chunks, &model.Chunk{
				Text:     piece,
				Metadata: model.ChunkMetadata{ContentTypes: []string{"parser"}},
			})
		}
	}

	return chunks, nil
}

// splitFenceAware splits text into sections at heading lines while never
// cutting inside an open code fence.
func splitFenceAware(text string) []string {
	lines := strings.Split(text, "\n")

	var sections []string
	var current []string
	inFence := false

	for _, ln := range lines {
		if strings.HasPrefix(strings.TrimSpace(ln), "```") {
			inFence = !inFence
			current = append(current, ln)
			continue
		}
		if inFence {
			current = append(current, ln)
			continue
		}
		if markdownHeadingRegex.MatchString(ln) && len(current) > 0 {
			sections = append(sections, strings.Join(current, "\n"))
			current = nil
		}
		current = append(current, ln)
	}

	if len(current) > 0 {
		sections = append(sections, strings.Join(current, "\n"))
	}

	return sections
}
