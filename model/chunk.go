package model

import "strings"

// RelatedChunk is a cross-reference to another chunk that shares at least
// one extracted entity with this one.
type RelatedChunk struct {
	// ID is the related chunk's ID
	ID string `json:"id"`

	// ContentType is the related chunk's primary content type, if known
	ContentType string `json:"content_type,omitempty"`
}

// QualityScores holds the per-chunk quality sub-scores, each in [0,1].
// Populated optionally by the quality evaluator; nil when not evaluated.
type QualityScores struct {
	// Coherence measures lexical continuity between adjacent sentences
	Coherence float64 `json:"coherence"`

	// InformationDensity measures how information-rich the text is
	InformationDensity float64 `json:"information_density"`

	// EntityPreservation measures how well entities survived chunking
	EntityPreservation float64 `json:"entity_preservation"`

	// ContextCompleteness measures structural integrity and header context
	ContextCompleteness float64 `json:"context_completeness"`

	// Overall is the weighted combination of the four sub-scores
	Overall float64 `json:"overall"`
}

// ChunkMetadata is the metadata carried by every chunk: the originating
// document's fields plus chunk position, section lineage, content markers,
// and enrichment results. Category-specific or experimental fields go in
// Extra rather than growing this struct.
type ChunkMetadata struct {
	// DocumentID is the originating document's ID
	DocumentID string `json:"document_id"`

	// Category is the originating document's category
	Category DocumentCategory `json:"category"`

	// Source identifies where the document came from
	Source string `json:"source,omitempty"`

	// Title is the document title if known
	Title string `json:"title,omitempty"`

	// Vendor is the vendor name, from document metadata or recovered
	// during chunking (heading path, preamble lines)
	Vendor string `json:"vendor,omitempty"`

	// Product is the product name, likewise
	Product string `json:"product,omitempty"`

	// ChunkIndex is the position of this chunk in the document (0-indexed)
	ChunkIndex int `json:"chunk_index"`

	// TotalChunks is the total number of chunks from this document
	TotalChunks int `json:"total_chunks,omitempty"`

	// SectionHeader is the immediate section heading, if any
	SectionHeader string `json:"section_header,omitempty"`

	// SectionPath is the heading lineage from the document root
	SectionPath []string `json:"section_path,omitempty"`

	// SectionLevel is the heading level of SectionHeader (0 if none)
	SectionLevel int `json:"section_level,omitempty"`

	// ContentTypes marks structural content present in the chunk
	// (code_block, table, list, numbered_list, url, ...)
	ContentTypes []string `json:"content_types,omitempty"`

	// ChunkingMethod names the strategy that produced this chunk
	ChunkingMethod string `json:"chunking_method,omitempty"`

	// Atomic marks a chunk intentionally kept whole even if it exceeds
	// the configured maximum size (intact parser, unsplittable table)
	Atomic bool `json:"atomic,omitempty"`

	// Density is the information density of the chunk text in [0,1]
	Density float64 `json:"density,omitempty"`

	// Entities holds extracted entities keyed by category
	Entities EntitySet `json:"entities,omitempty"`

	// Relationships holds relationships inferred between entities
	Relationships []Relationship `json:"relationships,omitempty"`

	// Classifications maps content class names to confidence in [0,1]
	Classifications map[string]float64 `json:"classifications,omitempty"`

	// PrimaryContentType is the winning classification when significant
	PrimaryContentType string `json:"primary_content_type,omitempty"`

	// RelatedChunks lists chunks sharing at least one entity
	RelatedChunks []RelatedChunk `json:"related_chunks,omitempty"`

	// Quality holds optional quality scores
	Quality *QualityScores `json:"quality,omitempty"`

	// Extra holds open extension fields
	Extra map[string]string `json:"extra,omitempty"`
}

// Chunk is a size-bounded, retrievable excerpt of a source document.
type Chunk struct {
	// ID is unique within a run; collisions are resolved by
	// deterministically appending a disambiguating suffix
	ID string `json:"id"`

	// Text is the chunk content
	Text string `json:"text"`

	// Metadata carries document context and enrichment results
	Metadata ChunkMetadata `json:"metadata"`
}

// SectionPathString returns the section lineage as a single string.
func (c *Chunk) SectionPathString() string {
	if len(c.Metadata.SectionPath) == 0 {
		return ""
	}
	return strings.Join(c.Metadata.SectionPath, " > ")
}

// HasContentType reports whether the chunk was marked with the given
// structural content type.
func (c *Chunk) HasContentType(name string) bool {
	for _, ct := range c.Metadata.ContentTypes {
		if ct == name {
			return true
		}
	}
	return false
}

// ScoredChunk pairs a chunk with a query-time relevance score in [0,1].
// ScoredChunks exist only for the duration of one retrieval request and
// are never persisted.
type ScoredChunk struct {
	// Chunk is the candidate chunk
	Chunk *Chunk `json:"chunk"`

	// Score is the relevance score in [0,1]
	Score float64 `json:"score"`
}
