package entity

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/docshard/docshard/model"
)

// contextWindow is how many characters around a trigger phrase are
// searched when recovering an entity name.
const contextWindow = 50

// relationWindow bounds how far apart two entities may sit (in characters)
// for a relationship to be inferred between them.
const relationWindow = 200

// Analyzer extracts entities and relationships from text and enriches
// chunk metadata with the results. Analyzers are stateless apart from the
// shared read-only pattern table and may be used concurrently.
type Analyzer struct {
	table  *PatternTable
	folder cases.Caser
	logger *slog.Logger
}

// NewAnalyzer creates an analyzer using the process-wide pattern table.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithLogger(slog.Default())
}

// NewAnalyzerWithLogger creates an analyzer that logs degradations to the
// given logger.
func NewAnalyzerWithLogger(logger *slog.Logger) *Analyzer {
	return &Analyzer{
		table:  Patterns(),
		folder: cases.Fold(),
		logger: logger,
	}
}

// foldKey returns the case-folded dedup key for an entity name.
func (a *Analyzer) foldKey(name string) string {
	return a.folder.String(strings.TrimSpace(name))
}

// ExtractEntities extracts typed entities from text, grouped by category
// and deduplicated case-insensitively by name.
func (a *Analyzer) ExtractEntities(text string) model.EntitySet {
	entities := make(model.EntitySet)
	if strings.TrimSpace(text) == "" {
		return entities
	}

	add := func(category model.EntityCategory, names []string) {
		seen := make(map[string]bool, len(names))
		for _, existing := range entities[category] {
			seen[a.foldKey(existing.Name)] = true
		}
		for _, name := range names {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			key := a.foldKey(name)
			if seen[key] {
				continue
			}
			seen[key] = true
			entities[category] = append(entities[category], model.Entity{
				Name:     name,
				Category: category,
			})
		}
	}

	add(model.EntityProduct, a.table.Products.FindAllString(text, -1))
	add(model.EntityDataSource, a.table.DataSourceVendors.FindAllString(text, -1))
	add(model.EntityDataSource, a.table.DataSourceTech.FindAllString(text, -1))
	add(model.EntityParser, a.namesNearTriggers(text, a.table.ParserTriggers, a.table.ParserName, contextWindow))
	add(model.EntityUseCase, a.namesNearTriggers(text, a.table.UseCaseTriggers, a.table.UseCaseName, contextWindow))
	add(model.EntityMitreTechnique, a.table.MitreTechnique.FindAllString(text, -1))
	add(model.EntityMitreTactic, a.table.MitreTactic.FindAllString(text, -1))
	add(model.EntityEventType, a.table.EventTypes.FindAllString(text, -1))
	add(model.EntityField, a.namesNearTriggers(text, a.table.FieldTriggers, a.table.FieldName, 30))

	for category, list := range entities {
		if len(list) == 0 {
			delete(entities, category)
		}
	}

	return entities
}

// namesNearTriggers finds trigger-phrase matches and recovers entity names
// from a bounded context window around each one. The name comes from the
// window, not the trigger phrase itself.
func (a *Analyzer) namesNearTriggers(text string, triggers []*regexp.Regexp, name *regexp.Regexp, window int) []string {
	var names []string
	for _, trigger := range triggers {
		for _, loc := range trigger.FindAllStringIndex(text, -1) {
			start := loc[0] - window
			if start < 0 {
				start = 0
			}
			end := loc[1] + window
			if end > len(text) {
				end = len(text)
			}
			if m := name.FindStringSubmatch(text[start:end]); m != nil {
				candidate := strings.TrimSpace(m[1])
				if candidate != "" && !isStopNoun(candidate) {
					names = append(names, candidate)
				}
			}
		}
	}
	return names
}

// isStopNoun filters generic words that precede trigger phrases but are
// not entity names ("the parser", "a field", "this use case").
func isStopNoun(word string) bool {
	switch strings.ToLower(word) {
	case "a", "an", "the", "this", "that", "each", "every", "any", "one",
		"new", "custom", "its", "our", "your":
		return true
	}
	return false
}

// relationRule pairs a source and target entity category with the relation
// kind inferred when they co-occur, plus the trigger wording that must
// join them.
type relationRule struct {
	source  model.EntityCategory
	target  model.EntityCategory
	kind    model.RelationKind
	trigger string
}

var relationRules = []relationRule{
	{model.EntityDataSource, model.EntityParser, model.RelationHasParser, `parser`},
	{model.EntityDataSource, model.EntityUseCase, model.RelationSupportsUseCase, `use case`},
	{model.EntityUseCase, model.EntityMitreTechnique, model.RelationDetectsTechnique, `T\d{4}`},
	{model.EntityParser, model.EntityEventType, model.RelationGeneratesEventType, `event`},
}

// ExtractRelationships infers directed relationships between entities that
// co-occur within a bounded span of text joined by connective wording. One
// relationship is recorded per matched connection.
func (a *Analyzer) ExtractRelationships(text string, entities model.EntitySet) []model.Relationship {
	var relationships []model.Relationship
	seen := make(map[string]bool)

	for _, rule := range relationRules {
		sources := entities[rule.source]
		targets := entities[rule.target]
		if len(sources) == 0 || len(targets) == 0 {
			continue
		}

		for _, source := range sources {
			// Source entity followed, within the same clause, by the
			// target-category trigger wording.
			pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(source.Name) +
				`\b[^.]{0,` + strconv.Itoa(relationWindow) + `}?` + rule.trigger)
			if err != nil {
				a.logger.Warn("skipping relationship pattern", "entity", source.Name, "error", err)
				continue
			}

			for _, span := range pattern.FindAllString(text, -1) {
				folded := a.foldKey(span)
				for _, target := range targets {
					if !strings.Contains(folded, a.foldKey(target.Name)) {
						continue
					}
					key := source.Name + "|" + target.Name + "|" + rule.kind.String()
					if seen[key] {
						break
					}
					seen[key] = true
					relationships = append(relationships, model.Relationship{
						Source: source,
						Target: target,
						Kind:   rule.kind,
					})
					break
				}
			}
		}
	}

	return relationships
}

// EnrichChunk extracts entities, relationships, and content
// classifications from the chunk text and records them in the chunk
// metadata. Empty chunks are left untouched.
func (a *Analyzer) EnrichChunk(chunk *model.Chunk) {
	if chunk == nil || strings.TrimSpace(chunk.Text) == "" {
		return
	}

	entities := a.ExtractEntities(chunk.Text)
	if len(entities) > 0 {
		chunk.Metadata.Entities = entities
	}

	if relationships := a.ExtractRelationships(chunk.Text, entities); len(relationships) > 0 {
		chunk.Metadata.Relationships = relationships
	}

	classifications := ClassifyContent(chunk.Text)
	chunk.Metadata.Classifications = classifications
	if chunk.Metadata.PrimaryContentType == "" {
		if name, score := primaryClass(classifications); score >= 0.3 {
			chunk.Metadata.PrimaryContentType = name
		}
	}
}

// EnrichChunks enriches every chunk independently, then cross-references
// chunks that share entities. The cross-reference pass requires all
// per-chunk enrichment to be complete first.
func (a *Analyzer) EnrichChunks(chunks []*model.Chunk) {
	for _, chunk := range chunks {
		a.EnrichChunk(chunk)
	}
	CrossReference(chunks)
}
