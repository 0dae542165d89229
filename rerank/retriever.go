package rerank

import (
	"context"
	"fmt"

	"github.com/docshard/docshard/model"
)

// overRetrievalFactor is how many times the requested result count is
// fetched from the underlying search so reranking has room to reorder.
const overRetrievalFactor = 3

// SearchFunc fetches candidate chunks for a query from an external
// vector store or index. The reranker treats it as a black box.
type SearchFunc func(ctx context.Context, query string, limit int) ([]*model.Chunk, error)

// Retriever wraps an external search with reranking: it over-retrieves
// candidates, reranks them, and returns the top results.
type Retriever struct {
	search   SearchFunc
	reranker *Reranker
}

// NewRetriever creates a retriever over the given search function.
func NewRetriever(search SearchFunc, reranker *Reranker) *Retriever {
	if reranker == nil {
		reranker = New()
	}
	return &Retriever{search: search, reranker: reranker}
}

// Retrieve returns the top k chunks for the query, reranked from a 3x
// over-retrieved candidate pool.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]model.ScoredChunk, error) {
	if k <= 0 {
		return nil, nil
	}

	candidates, err := r.search(ctx, query, k*overRetrievalFactor)
	if err != nil {
		return nil, fmt.Errorf("search candidates: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	ranked := r.reranker.Rerank(ctx, query, candidates)
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked, nil
}
