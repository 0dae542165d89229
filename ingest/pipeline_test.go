package ingest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docshard/docshard/model"
)

type memStore struct {
	mu     sync.Mutex
	chunks []*model.Chunk
	calls  int
	err    error
}

func (s *memStore) Add(ctx context.Context, chunks []*model.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.calls++
	s.chunks = append(s.chunks, chunks...)
	return nil
}

func testDocs() []*model.Document {
	return []*model.Document{
		{
			Text: "Cisco ASA parser definition.\n\n```\nfield src = source.address\n```\n",
			Metadata: model.DocumentMetadata{
				ID:       "parser-a",
				Category: model.CategoryParser,
			},
		},
		{
			Text: "# Lateral Movement Detection\n\n## Detection Logic\n\n" +
				strings.Repeat("The rule watches for T1021 activity across hosts. ", 10),
			Metadata: model.DocumentMetadata{
				ID:       "uc-a",
				Category: model.CategoryUseCase,
			},
		},
		{
			Text:     "   \n",
			Metadata: model.DocumentMetadata{ID: "empty-doc"},
		},
	}
}

func TestPipelineRun(t *testing.T) {
	store := &memStore{}
	p := NewPipeline(store, DefaultConfig())

	stats, err := p.Run(context.Background(), testDocs())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Documents)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, len(store.chunks), stats.Chunks)
	assert.Equal(t, 1, store.calls, "all chunks land in one batch")
	require.NotEmpty(t, store.chunks)

	seen := make(map[string]bool)
	for _, c := range store.chunks {
		assert.False(t, seen[c.ID], "duplicate chunk ID %s", c.ID)
		seen[c.ID] = true
		assert.NotEmpty(t, c.Metadata.Classifications, "chunks are enriched before storage")
	}
}

func TestPipelineStoreError(t *testing.T) {
	store := &memStore{err: errors.New("store full")}
	p := NewPipeline(store, DefaultConfig())

	_, err := p.Run(context.Background(), testDocs())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store full")
}

func TestPipelineEmptyBatch(t *testing.T) {
	store := &memStore{}
	p := NewPipeline(store, DefaultConfig())

	stats, err := p.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, stats.Chunks)
	assert.Zero(t, store.calls)
}

func TestPipelineCrossReferences(t *testing.T) {
	// Two documents naming the same MITRE technique: their chunks must
	// reference each other after the batch-wide pass.
	docs := []*model.Document{
		{
			Text: "# Alpha Detection\n\nThe rule flags T1059 command execution on servers.",
			Metadata: model.DocumentMetadata{
				ID:       "uc-alpha",
				Category: model.CategoryUseCase,
			},
		},
		{
			Text: "# Beta Detection\n\nThe rule flags T1059 interpreter abuse on endpoints.",
			Metadata: model.DocumentMetadata{
				ID:       "uc-beta",
				Category: model.CategoryUseCase,
			},
		},
	}

	store := &memStore{}
	p := NewPipeline(store, DefaultConfig())
	_, err := p.Run(context.Background(), docs)
	require.NoError(t, err)

	related := 0
	for _, c := range store.chunks {
		related += len(c.Metadata.RelatedChunks)
	}
	assert.Positive(t, related, "shared T1059 should cross-reference the chunks")
}

func TestPipelineIngestDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "parsers/asa.md", "Cisco ASA parser definition mapping firewall events to the schema.")

	store := &memStore{}
	p := NewPipeline(store, DefaultConfig())

	stats, err := p.IngestDir(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Documents)
	assert.NotEmpty(t, store.chunks)
	assert.Equal(t, model.CategoryParser, store.chunks[0].Metadata.Category)
}

func TestPipelineIngestDirInvalidRoot(t *testing.T) {
	p := NewPipeline(&memStore{}, DefaultConfig())
	_, err := p.IngestDir(context.Background(), "/nonexistent/content/root")
	require.Error(t, err)
}
