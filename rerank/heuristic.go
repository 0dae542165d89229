package rerank

import (
	"strings"
	"unicode"

	"github.com/docshard/docshard/model"
)

// heuristicBase is the starting score before lexical evidence.
const heuristicBase = 0.5

// intentKeywords are terms whose presence in a chunk signals directly
// useful content for a documentation query.
var intentKeywords = []string{
	"definition", "example", "configuration", "configure",
	"steps", "detection", "overview",
}

// contentTypeWeight biases scores by a chunk's classified content type:
// explanatory content ranks up, raw reference material down.
var contentTypeWeight = map[string]float64{
	"use_case":  1.1,
	"overview":  1.05,
	"reference": 0.9,
}

// heuristicScore computes a lexical relevance score in [0,1] for a
// (query, chunk) pair: query-term coverage, an exact-phrase bonus, and
// small bonuses for intent keywords, biased by the chunk's content type.
func heuristicScore(query string, chunk *model.Chunk) float64 {
	text := strings.ToLower(chunk.Text)
	terms := queryTerms(query)

	score := heuristicBase

	if len(terms) > 0 {
		matched := 0
		for _, term := range terms {
			if strings.Contains(text, term) {
				matched++
			}
		}
		score += 0.3 * float64(matched) / float64(len(terms))
	}

	if len(terms) > 1 && strings.Contains(text, strings.ToLower(strings.TrimSpace(query))) {
		score += 0.2
	}

	bonus := 0.0
	for _, kw := range intentKeywords {
		if strings.Contains(text, kw) {
			bonus += 0.05
		}
	}
	if bonus > 0.1 {
		bonus = 0.1
	}
	score += bonus

	if w, ok := contentTypeWeight[chunk.Metadata.PrimaryContentType]; ok {
		score *= w
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// queryTerms lowercases and tokenizes a query, dropping one-character
// tokens.
func queryTerms(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	terms := fields[:0]
	for _, f := range fields {
		if len(f) >= 2 {
			terms = append(terms, f)
		}
	}
	return terms
}
