package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/docshard/docshard/chunk"
	"github.com/docshard/docshard/entity"
	"github.com/docshard/docshard/model"
)

// ErrEmptyDocument marks a document with no usable content. The pipeline
// treats it as a skip with a warning, never a run failure.
var ErrEmptyDocument = errors.New("empty document")

// Store receives the finished chunks of an ingestion run.
type Store interface {
	// Add persists a batch of chunks
	Add(ctx context.Context, chunks []*model.Chunk) error
}

// Config holds the pipeline's tunable settings.
type Config struct {
	// Chunk configures the chunking stage
	Chunk chunk.Config

	// Workers bounds concurrent document processing (default 4)
	Workers int
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		Chunk:   chunk.DefaultConfig(),
		Workers: 4,
	}
}

// Stats summarizes one ingestion run.
type Stats struct {
	// Documents is the number of documents processed
	Documents int

	// Chunks is the number of chunks produced and stored
	Chunks int

	// Skipped is the number of documents that produced no chunks
	Skipped int
}

// Pipeline chunks and enriches documents concurrently, cross-references
// the full batch, and writes the result to a store.
type Pipeline struct {
	cfg      Config
	chunker  *chunk.Chunker
	analyzer *entity.Analyzer
	store    Store
	logger   *slog.Logger
}

// NewPipeline creates a pipeline writing to the given store.
func NewPipeline(store Store, cfg Config) *Pipeline {
	return NewPipelineWithLogger(store, cfg, slog.Default())
}

// NewPipelineWithLogger creates a pipeline with a custom logger.
func NewPipelineWithLogger(store Store, cfg Config, logger *slog.Logger) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultConfig().Workers
	}
	if cfg.Chunk.MaxSize <= 0 {
		cfg.Chunk = chunk.DefaultConfig()
	}
	return &Pipeline{
		cfg:      cfg,
		chunker:  chunk.NewWithLogger(cfg.Chunk, logger),
		analyzer: entity.NewAnalyzerWithLogger(logger),
		store:    store,
		logger:   logger,
	}
}

// Run processes the documents and stores the resulting chunks. Per-chunk
// enrichment runs inside the worker pool; cross-referencing needs every
// chunk of the batch, so it runs once after all workers join.
func (p *Pipeline) Run(ctx context.Context, docs []*model.Document) (Stats, error) {
	var (
		mu    sync.Mutex
		all   []*model.Chunk
		stats Stats
	)
	stats.Documents = len(docs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)

	for _, doc := range docs {
		doc := doc
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if doc.IsEmpty() {
				p.logger.Warn("skipping document", "document", doc.Metadata.ID, "error", ErrEmptyDocument)
				mu.Lock()
				stats.Skipped++
				mu.Unlock()
				return nil
			}

			chunks := p.chunker.ChunkDocument(doc)
			if len(chunks) == 0 {
				mu.Lock()
				stats.Skipped++
				mu.Unlock()
				return nil
			}
			for _, c := range chunks {
				p.analyzer.EnrichChunk(c)
			}

			mu.Lock()
			all = append(all, chunks...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return stats, fmt.Errorf("process documents: %w", err)
	}

	entity.CrossReference(all)
	stats.Chunks = len(all)

	if len(all) > 0 && p.store != nil {
		if err := p.store.Add(ctx, all); err != nil {
			return stats, fmt.Errorf("store chunks: %w", err)
		}
	}

	p.logger.Info("ingestion complete",
		"documents", stats.Documents,
		"chunks", stats.Chunks,
		"skipped", stats.Skipped)

	return stats, nil
}

// IngestDir loads a content directory and runs the pipeline over it.
func (p *Pipeline) IngestDir(ctx context.Context, root string) (Stats, error) {
	docs, err := NewLoaderWithLogger(p.logger).LoadDir(root)
	if err != nil {
		return Stats{}, err
	}
	return p.Run(ctx, docs)
}
