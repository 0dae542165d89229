package rerank

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/docshard/docshard/model"
)

// CrossEncoder scores (query, passage) pairs with a learned model. The
// call must honor context cancellation; the reranker bounds it with a
// timeout and falls back to heuristic scoring on any error.
type CrossEncoder interface {
	// Score returns one relevance score in [0,1] per passage, in order
	Score(ctx context.Context, query string, passages []string) ([]float64, error)
}

// Config holds the reranker's tunable thresholds.
type Config struct {
	// Threshold is the minimum score kept after ranking (default 0.5)
	Threshold float64

	// MinResults is the floor applied when threshold filtering leaves too
	// few results: the top MinResults candidates are returned instead
	// (default 3)
	MinResults int

	// DiversityThreshold is the minimum score for a category's best
	// candidate to be promoted in the diversification pass (default 0.6)
	DiversityThreshold float64

	// ModelTimeout bounds one cross-encoder call (default 2s)
	ModelTimeout time.Duration

	// MaxConcurrency bounds parallel heuristic scoring (default 8)
	MaxConcurrency int
}

// DefaultConfig returns the default reranker configuration.
func DefaultConfig() Config {
	return Config{
		Threshold:          0.5,
		MinResults:         3,
		DiversityThreshold: 0.6,
		ModelTimeout:       2 * time.Second,
		MaxConcurrency:     8,
	}
}

// Reranker scores, diversifies, and filters candidate chunks for a
// query. A nil cross-encoder means heuristic-only operation.
type Reranker struct {
	encoder CrossEncoder
	cfg     Config
	logger  *slog.Logger
}

// New creates a heuristic-only reranker with the default configuration.
func New() *Reranker {
	return NewWithConfig(DefaultConfig(), nil)
}

// NewWithConfig creates a reranker with a custom configuration and an
// optional cross-encoder.
func NewWithConfig(cfg Config, encoder CrossEncoder) *Reranker {
	return NewWithLogger(cfg, encoder, slog.Default())
}

// NewWithLogger creates a reranker that logs model fallbacks to the
// given logger.
func NewWithLogger(cfg Config, encoder CrossEncoder, logger *slog.Logger) *Reranker {
	if cfg.MinResults <= 0 {
		cfg = DefaultConfig()
	}
	return &Reranker{encoder: encoder, cfg: cfg, logger: logger}
}

// Rerank scores the candidates against the query and returns them
// ranked, diversified, and filtered at the configured threshold.
func (r *Reranker) Rerank(ctx context.Context, query string, candidates []*model.Chunk) []model.ScoredChunk {
	return r.RerankWithThreshold(ctx, query, candidates, r.cfg.Threshold)
}

// RerankWithThreshold is Rerank with a per-call score threshold. When
// filtering leaves fewer than the minimum floor, the top-scored
// candidates are returned instead of an empty result.
func (r *Reranker) RerankWithThreshold(ctx context.Context, query string, candidates []*model.Chunk, threshold float64) []model.ScoredChunk {
	if len(candidates) == 0 {
		return nil
	}

	scored := r.score(ctx, query, candidates)

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	diversified := r.Diversify(scored)

	kept := make([]model.ScoredChunk, 0, len(diversified))
	for _, sc := range diversified {
		if sc.Score >= threshold {
			kept = append(kept, sc)
		}
	}

	floor := r.cfg.MinResults
	if floor > len(scored) {
		floor = len(scored)
	}
	if len(kept) < floor {
		// Too strict a threshold must not starve the caller: fall back to
		// the top-scored candidates.
		return append([]model.ScoredChunk(nil), scored[:floor]...)
	}

	return kept
}

// score produces one ScoredChunk per candidate, via the cross-encoder
// when available and the heuristic otherwise.
func (r *Reranker) score(ctx context.Context, query string, candidates []*model.Chunk) []model.ScoredChunk {
	scored := make([]model.ScoredChunk, len(candidates))

	if r.encoder != nil {
		if ok := r.scoreWithModel(ctx, query, candidates, scored); ok {
			return scored
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.MaxConcurrency)
	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			scored[i] = model.ScoredChunk{Chunk: c, Score: heuristicScore(query, c)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// Cancelled mid-scoring: fill the gaps synchronously so the
		// caller still gets a complete ranking.
		for i, c := range candidates {
			if scored[i].Chunk == nil {
				scored[i] = model.ScoredChunk{Chunk: c, Score: heuristicScore(query, c)}
			}
		}
	}

	return scored
}

// scoreWithModel runs one bounded cross-encoder call. It reports false
// when the model call failed and heuristic scoring should take over.
func (r *Reranker) scoreWithModel(ctx context.Context, query string, candidates []*model.Chunk, scored []model.ScoredChunk) bool {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ModelTimeout)
	defer cancel()

	passages := make([]string, len(candidates))
	for i, c := range candidates {
		passages[i] = c.Text
	}

	scores, err := r.encoder.Score(ctx, query, passages)
	if err != nil || len(scores) != len(candidates) {
		r.logger.Warn("cross-encoder unavailable, using heuristic scoring", "error", err)
		return false
	}

	for i, c := range candidates {
		s := scores[i]
		if s < 0 {
			s = 0
		}
		if s > 1 {
			s = 1
		}
		scored[i] = model.ScoredChunk{Chunk: c, Score: s}
	}
	return true
}

// Diversify reorders a score-descending ranking so the best candidate of
// each document category surfaces before second candidates of any
// category, provided it scores at least the diversity threshold. The
// remaining candidates follow in score order; nothing is dropped.
func (r *Reranker) Diversify(scored []model.ScoredChunk) []model.ScoredChunk {
	if len(scored) <= 2 {
		return scored
	}

	promoted := make([]model.ScoredChunk, 0, len(scored))
	taken := make([]bool, len(scored))
	seen := make(map[model.DocumentCategory]bool)

	for i, sc := range scored {
		if sc.Score < r.cfg.DiversityThreshold {
			break
		}
		category := sc.Chunk.Metadata.Category
		if seen[category] {
			continue
		}
		seen[category] = true
		taken[i] = true
		promoted = append(promoted, sc)
	}

	for i, sc := range scored {
		if !taken[i] {
			promoted = append(promoted, sc)
		}
	}

	return promoted
}
