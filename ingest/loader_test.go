package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docshard/docshard/model"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "parsers/cisco_asa.md", "# Cisco ASA Parser\n\nMaps firewall events.\n")
	writeFile(t, root, "use-cases/login.md", "# Suspicious Login\n\nDetection writeup.\n")
	writeFile(t, root, "guide.html", "<html><head><style>p{}</style></head><body><h1>Setup Guide</h1><p>Install the collector.</p></body></html>")
	writeFile(t, root, "notes.txt", "ignored")

	docs, err := NewLoader().LoadDir(root)
	require.NoError(t, err)
	require.Len(t, docs, 3)

	byID := make(map[string]*model.Document)
	for _, doc := range docs {
		byID[doc.Metadata.ID] = doc
	}

	parser := byID["parsers-cisco-asa"]
	require.NotNil(t, parser, "IDs: %v", keysOf(byID))
	assert.Equal(t, model.CategoryParser, parser.Metadata.Category)
	assert.Equal(t, "Cisco ASA Parser", parser.Metadata.Title)

	useCase := byID["use-cases-login"]
	require.NotNil(t, useCase)
	assert.Equal(t, model.CategoryUseCase, useCase.Metadata.Category)

	guide := byID["guide"]
	require.NotNil(t, guide)
	assert.Equal(t, model.CategoryUnknown, guide.Metadata.Category)
	assert.Contains(t, guide.Text, "# Setup Guide")
	assert.Contains(t, guide.Text, "Install the collector.")
	assert.NotContains(t, guide.Text, "p{}")
}

func TestLoadDirInvalidRoot(t *testing.T) {
	_, err := NewLoader().LoadDir(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content root")
}

func TestLoadDirRootIsFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "file.md", "content")
	_, err := NewLoader().LoadDir(filepath.Join(root, "file.md"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestDocumentID(t *testing.T) {
	tests := []struct {
		rel  string
		want string
	}{
		{"parsers/Cisco ASA.md", "parsers-cisco-asa"},
		{"a_b/c_d.markdown", "a-b-c-d"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, documentID(tt.rel))
	}
	assert.NotEmpty(t, documentID(".md"), "degenerate path falls back to a generated ID")
}

func keysOf(m map[string]*model.Document) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
