package chunk

import (
	"regexp"
	"sync"

	"github.com/docshard/docshard/entity"
	"github.com/docshard/docshard/model"
)

// Structural content-type names recorded in chunk metadata.
const (
	ContentCodeBlock    = "code_block"
	ContentTable        = "table"
	ContentList         = "list"
	ContentNumberedList = "numbered_list"
	ContentURL          = "url"
)

// Features describes a text span: structural content markers, entity
// pattern hits per category, and an information-density score in [0,1].
type Features struct {
	// CodeBlocks is the number of fenced code blocks
	CodeBlocks int

	// Tables is the number of markdown table rows
	Tables int

	// BulletLists is the number of bullet list items
	BulletLists int

	// NumberedLists is the number of numbered list items
	NumberedLists int

	// URLs is the number of URLs
	URLs int

	// DomainTermHits is the number of domain vocabulary matches
	DomainTermHits int

	// EntityHits counts entity pattern matches per category
	EntityHits map[model.EntityCategory]int

	// ContentTypes lists the structural content types present
	ContentTypes []string

	// Density is the information-density score in [0,1]
	Density float64
}

// DensityWeights are the weights combined into the density score. Each
// factor is clamped to [0,1] before weighting.
type DensityWeights struct {
	// SentenceLength weights average sentence length relative to the
	// reference length
	SentenceLength float64

	// EntityDensity weights entity pattern hits per sentence
	EntityDensity float64

	// DomainTerms weights domain vocabulary density
	DomainTerms float64

	// StructuredContent weights structured-content presence
	StructuredContent float64
}

// DefaultDensityWeights returns the default density weighting:
// 0.3 sentence length, 0.3 entity density, 0.2 domain terms,
// 0.2 structured content.
func DefaultDensityWeights() DensityWeights {
	return DensityWeights{
		SentenceLength:    0.3,
		EntityDensity:     0.3,
		DomainTerms:       0.2,
		StructuredContent: 0.2,
	}
}

// referenceSentenceWords is the sentence length (in words) that maps to a
// full sentence-complexity factor of 1.0.
const referenceSentenceWords = 20

var (
	structOnce       sync.Once
	codeBlockRegex   *regexp.Regexp
	tableRowRegex    *regexp.Regexp
	bulletItemRegex  *regexp.Regexp
	numberedRegex    *regexp.Regexp
	urlRegex         *regexp.Regexp
	fenceMarkerRegex *regexp.Regexp
)

func structuralPatterns() {
	structOnce.Do(func() {
		codeBlockRegex = regexp.MustCompile("```[\\s\\S]*?```")
		tableRowRegex = regexp.MustCompile(`(?m)^\s*\|.*\|\s*$`)
		bulletItemRegex = regexp.MustCompile(`(?m)^\s*[-*+]\s+\S`)
		numberedRegex = regexp.MustCompile(`(?m)^\s*\d+\.\s+\S`)
		urlRegex = regexp.MustCompile(`https?://[^\s)]+`)
		fenceMarkerRegex = regexp.MustCompile("(?m)^\\s*```")
	})
}

// Extractor computes Features for text spans. It is a pure function of
// its input: no side effects, deterministic for identical input. One
// extractor may be shared across goroutines.
type Extractor struct {
	weights DensityWeights
	table   *entity.PatternTable
}

// NewExtractor creates an extractor with the default density weights.
func NewExtractor() *Extractor {
	return NewExtractorWithWeights(DefaultDensityWeights())
}

// NewExtractorWithWeights creates an extractor with custom density
// weights.
func NewExtractorWithWeights(weights DensityWeights) *Extractor {
	structuralPatterns()
	return &Extractor{
		weights: weights,
		table:   entity.Patterns(),
	}
}

// Extract analyzes a text span and returns its features.
func (e *Extractor) Extract(text string) Features {
	features := Features{
		EntityHits: make(map[model.EntityCategory]int),
	}
	if text == "" {
		features.Density = 0.5
		return features
	}

	features.CodeBlocks = len(codeBlockRegex.FindAllStringIndex(text, -1))
	features.Tables = len(tableRowRegex.FindAllStringIndex(text, -1))
	features.BulletLists = len(bulletItemRegex.FindAllStringIndex(text, -1))
	features.NumberedLists = len(numberedRegex.FindAllStringIndex(text, -1))
	features.URLs = len(urlRegex.FindAllStringIndex(text, -1))
	features.DomainTermHits = len(e.table.DomainTerms.FindAllStringIndex(text, -1))

	features.EntityHits[model.EntityProduct] = len(e.table.Products.FindAllStringIndex(text, -1))
	features.EntityHits[model.EntityDataSource] = len(e.table.DataSourceVendors.FindAllStringIndex(text, -1)) +
		len(e.table.DataSourceTech.FindAllStringIndex(text, -1))
	features.EntityHits[model.EntityMitreTechnique] = len(e.table.MitreTechnique.FindAllStringIndex(text, -1))
	features.EntityHits[model.EntityMitreTactic] = len(e.table.MitreTactic.FindAllStringIndex(text, -1))
	features.EntityHits[model.EntityEventType] = len(e.table.EventTypes.FindAllStringIndex(text, -1))

	if features.CodeBlocks > 0 || fenceMarkerRegex.MatchString(text) {
		features.ContentTypes = append(features.ContentTypes, ContentCodeBlock)
	}
	if features.Tables > 0 {
		features.ContentTypes = append(features.ContentTypes, ContentTable)
	}
	if features.BulletLists > 0 {
		features.ContentTypes = append(features.ContentTypes, ContentList)
	}
	if features.NumberedLists > 0 {
		features.ContentTypes = append(features.ContentTypes, ContentNumberedList)
	}
	if features.URLs > 0 {
		features.ContentTypes = append(features.ContentTypes, ContentURL)
	}

	features.Density = e.density(text, features)

	return features
}

// Density returns only the information-density score for text.
func (e *Extractor) Density(text string) float64 {
	return e.Extract(text).Density
}

// density combines sentence complexity, entity density, domain-term
// density, and structured-content presence into one [0,1] score. Each
// factor is clamped to [0,1] before weighting; the result is floored at
// 0.1 so that prose never scores as entirely information-free.
func (e *Extractor) density(text string, features Features) float64 {
	sentences := SplitSentences(text)
	sentenceCount := len(sentences)
	if sentenceCount == 0 {
		return 0.5
	}
	wordCount := countWords(text)
	if wordCount == 0 {
		return 0.5
	}

	avgSentenceWords := float64(wordCount) / float64(sentenceCount)

	entityHits := 0
	for _, n := range features.EntityHits {
		entityHits += n
	}

	structured := features.CodeBlocks + features.BulletLists + features.NumberedLists
	if features.Tables > 0 {
		structured++
	}

	score := e.weights.SentenceLength*clamp01(avgSentenceWords/referenceSentenceWords) +
		e.weights.EntityDensity*clamp01(float64(entityHits)/float64(sentenceCount)) +
		e.weights.DomainTerms*clamp01(float64(features.DomainTermHits)/(float64(wordCount)/10)) +
		e.weights.StructuredContent*clamp01(float64(structured)/float64(sentenceCount))

	if score < 0.1 {
		return 0.1
	}
	if score > 1.0 {
		return 1.0
	}
	return score
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
