package model

import "strings"

// DocumentCategory is the coarse type tag of a source document. It drives
// chunking strategy selection; anything unrecognized maps to
// CategoryUnknown and gets the generic strategy.
type DocumentCategory int

const (
	// CategoryUnknown is the default for unmatched or missing category tags
	CategoryUnknown DocumentCategory = iota
	// CategoryParser marks event-parser definition documents
	CategoryParser
	// CategoryUseCase marks detection-use-case writeups
	CategoryUseCase
	// CategoryDataSource marks data-source / vendor configuration guides
	CategoryDataSource
)

// String returns a human-readable representation of the document category
func (dc DocumentCategory) String() string {
	switch dc {
	case CategoryParser:
		return "parser"
	case CategoryUseCase:
		return "use_case"
	case CategoryDataSource:
		return "data_source"
	default:
		return "unknown"
	}
}

// ParseCategory maps a category tag to a DocumentCategory. Unrecognized
// tags map to CategoryUnknown rather than an error.
func ParseCategory(tag string) DocumentCategory {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "parser":
		return CategoryParser
	case "use_case", "use-case", "usecase":
		return CategoryUseCase
	case "data_source", "data-source", "datasource":
		return CategoryDataSource
	default:
		return CategoryUnknown
	}
}

// DocumentMetadata describes a source document. It is supplied by the
// loader and copied into every chunk derived from the document.
type DocumentMetadata struct {
	// ID is a stable identifier for the document within a run
	ID string `json:"id"`

	// Category is the coarse document type driving strategy selection
	Category DocumentCategory `json:"category"`

	// Source identifies where the document came from (path, URL, etc.)
	Source string `json:"source,omitempty"`

	// Title is the document title if known
	Title string `json:"title,omitempty"`

	// Vendor is the vendor name if known (e.g. "Cisco")
	Vendor string `json:"vendor,omitempty"`

	// Product is the product name if known
	Product string `json:"product,omitempty"`

	// Extra holds source-specific fields that have no named slot
	Extra map[string]string `json:"extra,omitempty"`
}

// Document is an immutable input to the chunking pipeline: full text plus
// metadata. Documents are loaded and owned by an external collaborator and
// are read-only to this module.
type Document struct {
	// Text is the full document text
	Text string `json:"text"`

	// Metadata describes the document
	Metadata DocumentMetadata `json:"metadata"`
}

// IsEmpty reports whether the document has no non-whitespace content.
// Empty documents are skipped with a warning and produce zero chunks.
func (d *Document) IsEmpty() bool {
	return strings.TrimSpace(d.Text) == ""
}
