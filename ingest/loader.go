package ingest

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/docshard/docshard/model"
)

// Loader reads documents from a content directory. Markdown files are
// taken as-is; HTML files are reduced to markdown-ish text. Unreadable
// files are skipped with a warning; an invalid content root is the one
// hard failure.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader logging skips to the default logger.
func NewLoader() *Loader {
	return NewLoaderWithLogger(slog.Default())
}

// NewLoaderWithLogger creates a loader with a custom logger.
func NewLoaderWithLogger(logger *slog.Logger) *Loader {
	return &Loader{logger: logger}
}

// LoadDir walks root and loads every markdown and HTML file into a
// document. Text is NFC-normalized; document IDs derive from the
// relative path, category from path components.
func (l *Loader) LoadDir(root string) ([]*model.Document, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("content root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content root %s: not a directory", root)
	}

	var docs []*model.Document
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		switch ext {
		case ".md", ".markdown", ".html", ".htm":
		default:
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			l.logger.Warn("skipping unreadable file", "path", path, "error", err)
			return nil
		}

		text := string(raw)
		if ext == ".html" || ext == ".htm" {
			text, err = htmlToText(text)
			if err != nil {
				l.logger.Warn("skipping unparseable HTML", "path", path, "error", err)
				return nil
			}
		}
		text = norm.NFC.String(text)

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		docs = append(docs, &model.Document{
			Text: text,
			Metadata: model.DocumentMetadata{
				ID:       documentID(rel),
				Category: inferCategory(rel),
				Source:   path,
				Title:    documentTitle(text, rel),
			},
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk content root %s: %w", root, err)
	}

	return docs, nil
}

// documentID derives a stable ID from a relative source path, with a
// uuid fallback when the path yields nothing usable.
func documentID(rel string) string {
	id := strings.TrimSuffix(rel, filepath.Ext(rel))
	id = strings.ToLower(id)
	id = strings.NewReplacer("/", "-", "\\", "-", " ", "-", "_", "-").Replace(id)
	id = strings.Trim(id, "-.")
	if id == "" {
		return uuid.NewString()
	}
	return id
}

// inferCategory reads the document category from path components, so a
// content tree laid out by type needs no sidecar metadata.
func inferCategory(rel string) model.DocumentCategory {
	lower := strings.ToLower(rel)
	switch {
	case strings.Contains(lower, "parser"):
		return model.CategoryParser
	case strings.Contains(lower, "use-case"), strings.Contains(lower, "use_case"), strings.Contains(lower, "usecase"):
		return model.CategoryUseCase
	case strings.Contains(lower, "data-source"), strings.Contains(lower, "data_source"), strings.Contains(lower, "datasource"):
		return model.CategoryDataSource
	default:
		return model.CategoryUnknown
	}
}

// documentTitle takes the first markdown heading, else the file name.
func documentTitle(text, rel string) string {
	for _, ln := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(ln)
		if strings.HasPrefix(trimmed, "#") {
			return strings.TrimSpace(strings.TrimLeft(trimmed, "# "))
		}
		if trimmed != "" {
			break
		}
	}
	base := filepath.Base(rel)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
