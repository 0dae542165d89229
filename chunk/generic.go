package chunk

import (
	"fmt"

	"github.com/docshard/docshard/model"
)

// GenericStrategy is the default, category-agnostic strategy: detect
// semantic boundaries, assemble size-bounded chunks from them, and fall
// back to adaptive fixed-size windows when the text yields no boundaries.
type GenericStrategy struct {
	cfg       Config
	extractor *Extractor
	detector  *Detector
	assembler *Assembler
}

// Name implements Strategy.
func (s *GenericStrategy) Name() string { return "semantic" }

// Chunk implements Strategy.
func (s *GenericStrategy) Chunk(doc *model.Document) ([]*model.Chunk, error) {
	pieces := s.split(doc.Text)
	if len(pieces) == 0 {
		return nil, fmt.Errorf("document %s: no chunks from semantic boundaries", doc.Metadata.ID)
	}

	chunks := make([]*model.Chunk, 0, len(pieces))
	for _, piece := range pieces {
		chunks = append(chunks, &model.Chunk{Text: piece})
	}
	return chunks, nil
}

// split returns the chunk texts for a span, using boundary assembly when
// boundaries exist and adaptive fixed-size windows otherwise. Sub-strategies
// reuse it to split oversized sections.
func (s *GenericStrategy) split(text string) []string {
	boundaries := s.detector.FindBoundaries(text)
	if len(boundaries) == 0 {
		size, overlap := adaptiveSize(s.cfg, s.extractor.Density(text))
		return s.assembler.FixedSize(text, size, overlap)
	}

	pieces := s.assembler.Assemble(text, boundaries)

	// A single piece larger than the bound means the boundaries were all
	// in one region; window-split the remainder instead.
	if len(pieces) <= 1 && len(text) > s.cfg.MaxSize {
		size, overlap := adaptiveSize(s.cfg, s.extractor.Density(text))
		return s.assembler.FixedSize(text, size, overlap)
	}

	return pieces
}
