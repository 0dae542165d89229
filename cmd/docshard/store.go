package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/docshard/docshard/ingest"
	"github.com/docshard/docshard/model"
)

// jsonlStore writes chunks as one JSON object per line, with metadata
// flattened to the shape vector-store payloads accept.
type jsonlStore struct {
	mu  sync.Mutex
	f   *os.File
	enc *json.Encoder
}

type jsonlRecord struct {
	ID       string         `json:"id"`
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata"`
}

func newJSONLStore(path string) (*jsonlStore, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output %s: %w", path, err)
	}
	return &jsonlStore{f: f, enc: json.NewEncoder(f)}, nil
}

func (s *jsonlStore) Add(ctx context.Context, chunks []*model.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range chunks {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		record := jsonlRecord{
			ID:       c.ID,
			Text:     c.Text,
			Metadata: ingest.FlattenMetadata(c),
		}
		if err := s.enc.Encode(record); err != nil {
			return fmt.Errorf("write chunk %s: %w", c.ID, err)
		}
	}
	return nil
}

func (s *jsonlStore) Close() error {
	return s.f.Close()
}

// memStore collects chunks in memory for the evaluate and compare
// commands, which score chunks instead of persisting them.
type memStore struct {
	mu     sync.Mutex
	chunks []*model.Chunk
}

func (s *memStore) Add(ctx context.Context, chunks []*model.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = append(s.chunks, chunks...)
	return nil
}
