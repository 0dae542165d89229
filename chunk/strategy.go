package chunk

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/docshard/docshard/model"
)

// Config holds the tunable knobs of the chunking pipeline. The defaults
// mirror the documented heuristics; none of the exact values is a
// correctness constraint.
type Config struct {
	// MinSize is the minimum chunk size in bytes (default 200)
	MinSize int

	// MaxSize is the maximum chunk size in bytes (default 1500)
	MaxSize int

	// Overlap is the base overlap for fixed-size fallback chunking
	// (default 150)
	Overlap int

	// DensityThreshold is the local density above which sentence ends
	// become boundaries (default 0.7)
	DensityThreshold float64

	// LongSentence is the sentence length that forces a boundary
	// (default 200)
	LongSentence int

	// TableDominance is the fraction of table-row lines above which a
	// data-source document is chunked table-aware (default 0.3)
	TableDominance float64

	// OverlapFraction is the fixed-size window overlap fraction
	// (default 0.15)
	OverlapFraction float64

	// Weights are the density factor weights
	Weights DensityWeights
}

// DefaultConfig returns the default chunking configuration.
func DefaultConfig() Config {
	return Config{
		MinSize:          200,
		MaxSize:          1500,
		Overlap:          150,
		DensityThreshold: 0.7,
		LongSentence:     200,
		TableDominance:   0.3,
		OverlapFraction:  0.15,
		Weights:          DefaultDensityWeights(),
	}
}

// Strategy chunks one document one way. Strategies return an error (or no
// chunks) when their structural assumption does not hold, which moves the
// chunker on to the next simpler strategy.
type Strategy interface {
	// Name identifies the strategy in chunk metadata and logs
	Name() string

	// Chunk splits the document into chunks
	Chunk(doc *model.Document) ([]*model.Chunk, error)
}

// Chunker selects a strategy by document category and runs it with an
// explicit ordered fallback chain: category strategy, then generic
// boundary-driven chunking, then fixed-size splitting. It owns chunk ID
// uniqueness for the run.
type Chunker struct {
	cfg       Config
	extractor *Extractor
	assembler *Assembler
	registry  map[model.DocumentCategory]Strategy
	fallbacks []Strategy
	logger    *slog.Logger

	mu      sync.Mutex
	usedIDs map[string]bool
}

// New creates a chunker with the default configuration.
func New() *Chunker {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a chunker with a custom configuration.
func NewWithConfig(cfg Config) *Chunker {
	return NewWithLogger(cfg, slog.Default())
}

// NewWithLogger creates a chunker that logs strategy fallbacks to the
// given logger.
func NewWithLogger(cfg Config, logger *slog.Logger) *Chunker {
	if cfg.MaxSize <= 0 {
		cfg = DefaultConfig()
	}
	extractor := NewExtractorWithWeights(cfg.Weights)
	assembler := NewAssembler(cfg.MinSize, cfg.MaxSize)
	assembler.OverlapFraction = cfg.OverlapFraction
	detector := NewDetectorWithThresholds(extractor, cfg.DensityThreshold, cfg.LongSentence)

	c := &Chunker{
		cfg:       cfg,
		extractor: extractor,
		assembler: assembler,
		logger:    logger,
		usedIDs:   make(map[string]bool),
	}

	generic := &GenericStrategy{
		cfg:       cfg,
		extractor: extractor,
		detector:  detector,
		assembler: assembler,
	}
	fixed := &FixedStrategy{cfg: cfg, extractor: extractor, assembler: assembler}

	c.registry = map[model.DocumentCategory]Strategy{
		model.CategoryParser:     &ParserStrategy{cfg: cfg, generic: generic},
		model.CategoryUseCase:    &UseCaseStrategy{cfg: cfg, generic: generic},
		model.CategoryDataSource: &DataSourceStrategy{cfg: cfg, generic: generic, assembler: assembler, logger: logger},
	}
	c.fallbacks = []Strategy{generic, fixed}

	return c
}

// ChunkDocument splits a document into chunks using the strategy for its
// category, degrading through the fallback chain on structural failure.
// Empty documents produce zero chunks and a warning, never an error.
// Running twice on the same document and configuration yields identical
// chunk boundaries and ordering.
func (c *Chunker) ChunkDocument(doc *model.Document) []*model.Chunk {
	if doc == nil {
		return nil
	}
	if doc.IsEmpty() {
		c.logger.Warn("skipping empty document", "document", doc.Metadata.ID)
		return nil
	}

	var chain []Strategy
	if s, ok := c.registry[doc.Metadata.Category]; ok {
		chain = append(chain, s)
	}
	chain = append(chain, c.fallbacks...)

	for _, strategy := range chain {
		chunks, err := strategy.Chunk(doc)
		if err != nil {
			c.logger.Warn("chunking strategy failed, degrading",
				"document", doc.Metadata.ID,
				"strategy", strategy.Name(),
				"error", err)
			continue
		}
		if len(chunks) == 0 {
			continue
		}
		c.finalize(doc, chunks, strategy.Name())
		return chunks
	}

	c.logger.Warn("no strategy produced chunks", "document", doc.Metadata.ID)
	return nil
}

// finalize stamps document metadata, indices, IDs, and content features
// onto freshly produced chunks.
func (c *Chunker) finalize(doc *model.Document, chunks []*model.Chunk, method string) {
	docID := doc.Metadata.ID
	if docID == "" {
		docID = "doc"
	}

	for i, chunk := range chunks {
		meta := &chunk.Metadata
		meta.DocumentID = docID
		meta.Category = doc.Metadata.Category
		meta.Source = doc.Metadata.Source
		meta.Title = doc.Metadata.Title
		if meta.Vendor == "" {
			meta.Vendor = doc.Metadata.Vendor
		}
		if meta.Product == "" {
			meta.Product = doc.Metadata.Product
		}
		meta.ChunkIndex = i
		meta.TotalChunks = len(chunks)
		if meta.ChunkingMethod == "" {
			meta.ChunkingMethod = method
		}

		features := c.extractor.Extract(chunk.Text)
		meta.Density = features.Density
		meta.ContentTypes = mergeContentTypes(meta.ContentTypes, features.ContentTypes)

		if len(chunk.Text) > c.cfg.MaxSize {
			meta.Atomic = true
		}

		chunk.ID = c.uniqueID(fmt.Sprintf("%s_chunk_%d", docID, i))
	}
}

// uniqueID reserves an ID for this run, deterministically deriving a
// suffixed variant on collision instead of overwriting.
func (c *Chunker) uniqueID(id string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	candidate := id
	for n := 2; c.usedIDs[candidate]; n++ {
		candidate = fmt.Sprintf("%s-%d", id, n)
	}
	c.usedIDs[candidate] = true
	return candidate
}

func mergeContentTypes(existing, extracted []string) []string {
	seen := make(map[string]bool, len(existing)+len(extracted))
	merged := make([]string, 0, len(existing)+len(extracted))
	for _, list := range [][]string{existing, extracted} {
		for _, ct := range list {
			if ct == "" || seen[ct] {
				continue
			}
			seen[ct] = true
			merged = append(merged, ct)
		}
	}
	return merged
}

// FixedStrategy is the last-resort fallback: a fixed-size sliding window
// with context-preserving overlap, sized adaptively to measured density.
// Denser content gets smaller windows and more overlap.
type FixedStrategy struct {
	cfg       Config
	extractor *Extractor
	assembler *Assembler
}

// NewFixedStrategy creates the fixed-size strategy standalone, for
// benchmarking against the full strategy chain.
func NewFixedStrategy(cfg Config) *FixedStrategy {
	if cfg.MaxSize <= 0 {
		cfg = DefaultConfig()
	}
	assembler := NewAssembler(cfg.MinSize, cfg.MaxSize)
	assembler.OverlapFraction = cfg.OverlapFraction
	return &FixedStrategy{
		cfg:       cfg,
		extractor: NewExtractorWithWeights(cfg.Weights),
		assembler: assembler,
	}
}

// Name implements Strategy.
func (s *FixedStrategy) Name() string { return "fixed_size" }

// Chunk implements Strategy.
func (s *FixedStrategy) Chunk(doc *model.Document) ([]*model.Chunk, error) {
	size, overlap := adaptiveSize(s.cfg, s.extractor.Density(doc.Text))
	pieces := s.assembler.FixedSize(doc.Text, size, overlap)
	if len(pieces) == 0 {
		return nil, fmt.Errorf("document %s: no content to window", doc.Metadata.ID)
	}

	chunks := make([]*model.Chunk, 0, len(pieces))
	for _, piece := range pieces {
		chunks = append(chunks, &model.Chunk{Text: piece})
	}
	return chunks, nil
}

// adaptiveSize shrinks the window and grows the overlap as density rises:
// dense content needs tighter chunks to stay coherent, sparse content
// needs more context per chunk.
func adaptiveSize(cfg Config, density float64) (int, int) {
	size := cfg.MaxSize - int(density*float64(cfg.MaxSize-cfg.MinSize))
	overlap := cfg.Overlap + int(density*float64(cfg.Overlap))
	if overlap >= size {
		overlap = size / 3
	}
	return size, overlap
}

// trimJoin joins lines back into a block and trims outer whitespace.
func trimJoin(lines []string) string {
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
