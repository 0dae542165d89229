package quality

import (
	"strings"
	"unicode"

	"github.com/docshard/docshard/chunk"
	"github.com/docshard/docshard/model"
)

// Weights are the sub-score weights combined into a chunk's overall
// quality score. The defaults are heuristic tuning choices, not
// correctness constraints.
type Weights struct {
	// Coherence weights lexical continuity between adjacent sentences
	Coherence float64

	// Density weights information density
	Density float64

	// EntityPreservation weights how well entities survived chunking
	EntityPreservation float64

	// ContextCompleteness weights structural integrity and header context
	ContextCompleteness float64
}

// DefaultWeights returns the default quality weighting: 0.35 coherence,
// 0.30 density, 0.20 entity preservation, 0.15 context completeness.
func DefaultWeights() Weights {
	return Weights{
		Coherence:           0.35,
		Density:             0.30,
		EntityPreservation:  0.20,
		ContextCompleteness: 0.15,
	}
}

// expectedEntitiesPerKB is the entity count a well-formed chunk of 1000
// bytes is expected to carry.
const expectedEntitiesPerKB = 5.0

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true,
	"at": true, "be": true, "by": true, "for": true, "from": true,
	"has": true, "in": true, "is": true, "it": true, "its": true,
	"of": true, "on": true, "or": true, "that": true, "the": true,
	"this": true, "to": true, "was": true, "were": true, "will": true,
	"with": true,
}

// Evaluator scores chunks. It is safe for concurrent use.
type Evaluator struct {
	weights   Weights
	extractor *chunk.Extractor
}

// New creates an evaluator with the default weights.
func New() *Evaluator {
	return NewWithWeights(DefaultWeights())
}

// NewWithWeights creates an evaluator with custom sub-score weights.
func NewWithWeights(weights Weights) *Evaluator {
	return &Evaluator{
		weights:   weights,
		extractor: chunk.NewExtractor(),
	}
}

// EvaluateChunk scores one chunk, records the scores in its metadata,
// and returns them. Malformed text (unterminated fences, cut tables)
// lowers the score but never fails the evaluation.
func (e *Evaluator) EvaluateChunk(c *model.Chunk) model.QualityScores {
	scores := model.QualityScores{
		Coherence:           e.coherence(c.Text),
		InformationDensity:  e.extractor.Density(c.Text),
		EntityPreservation:  e.entityPreservation(c),
		ContextCompleteness: e.contextCompleteness(c),
	}
	scores.Overall = clamp01(e.weights.Coherence*scores.Coherence +
		e.weights.Density*scores.InformationDensity +
		e.weights.EntityPreservation*scores.EntityPreservation +
		e.weights.ContextCompleteness*scores.ContextCompleteness)

	c.Metadata.Quality = &scores
	return scores
}

// coherence measures lexical continuity: the average stopword-filtered
// token overlap between adjacent sentences, penalized for signs the
// chunk was cut badly.
func (e *Evaluator) coherence(text string) float64 {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}

	sentences := chunk.SplitSentences(trimmed)

	score := 1.0
	if len(sentences) >= 2 {
		var total float64
		pairs := 0
		prev := contentTokens(sentences[0])
		for _, s := range sentences[1:] {
			cur := contentTokens(s)
			total += tokenOverlap(prev, cur)
			pairs++
			prev = cur
		}
		// Raw overlap between well-connected prose sentences sits well
		// below 1; rescale into [0.5,1] so ordinary continuity scores
		// high and only the cut-signal penalties pull a chunk low.
		score = 0.5 + 0.5*clamp01(total/float64(pairs)*3)
	}

	if startsMidSentence(trimmed) {
		score -= 0.1
	}
	if endsWithoutTerminal(trimmed) {
		score -= 0.1
	}
	if strings.Count(trimmed, "```")%2 != 0 {
		score -= 0.3
	}
	if loneListItem(trimmed) {
		score -= 0.1
	}

	return clamp01(score)
}

// entityPreservation compares the entities recorded in chunk metadata
// against the entity signal present in the text: category coverage,
// observed-to-expected count, and a bonus for recorded relationships.
func (e *Evaluator) entityPreservation(c *model.Chunk) float64 {
	features := e.extractor.Extract(c.Text)

	expectedCategories := 0
	for _, hits := range features.EntityHits {
		if hits > 0 {
			expectedCategories++
		}
	}

	foundCategories := 0
	observed := 0
	for category, entities := range c.Metadata.Entities {
		if len(entities) == 0 {
			continue
		}
		observed += len(entities)
		if features.EntityHits[category] > 0 {
			foundCategories++
		}
	}

	categoryScore := 1.0
	if expectedCategories > 0 {
		categoryScore = float64(foundCategories) / float64(expectedCategories)
	}

	expectedCount := float64(len(c.Text)) / 1000 * expectedEntitiesPerKB
	if expectedCount < 1 {
		expectedCount = 1
	}
	countScore := clamp01(float64(observed) / expectedCount)

	relationshipBonus := 0.0
	if len(c.Metadata.Relationships) > 0 {
		relationshipBonus = 1.0
	}

	return clamp01(0.6*categoryScore + 0.3*countScore + 0.1*relationshipBonus)
}

// contextCompleteness checks that a chunk carries enough surrounding
// structure to stand alone: a section header with real trailing content,
// and no broken structural elements.
func (e *Evaluator) contextCompleteness(c *model.Chunk) float64 {
	trimmed := strings.TrimSpace(c.Text)
	if trimmed == "" {
		return 0
	}

	headerScore := 0.0
	if c.Metadata.SectionHeader != "" && len(trimmed) > len(c.Metadata.SectionHeader)+40 {
		headerScore = 1.0
	} else if c.Metadata.SectionHeader != "" || len(c.Metadata.SectionPath) > 0 {
		headerScore = 0.5
	}

	integrity := 1.0
	if strings.Count(trimmed, "```")%2 != 0 {
		integrity -= 0.4
	}
	if endsWithoutTerminal(trimmed) {
		integrity -= 0.2
	}
	if loneListItem(trimmed) {
		integrity -= 0.2
	}
	if integrity < 0 {
		integrity = 0
	}

	score := 0.5*headerScore + 0.5*integrity
	if hangingHeader(trimmed) {
		score -= 0.2
	}
	return clamp01(score)
}

// contentTokens lowercases and tokenizes a sentence, dropping stopwords
// and single-character tokens.
func contentTokens(sentence string) map[string]bool {
	tokens := make(map[string]bool)
	for _, field := range strings.FieldsFunc(strings.ToLower(sentence), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	}) {
		if len(field) < 2 || stopwords[field] {
			continue
		}
		tokens[field] = true
	}
	return tokens
}

// tokenOverlap is the Jaccard similarity of two token sets.
func tokenOverlap(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for token := range a {
		if b[token] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// startsMidSentence reports whether text opens lowercase prose, the
// signature of a cut that landed inside a sentence.
func startsMidSentence(text string) bool {
	for _, r := range text {
		if unicode.IsLetter(r) {
			return unicode.IsLower(r)
		}
		// Structural openers are fine.
		if r == '#' || r == '|' || r == '-' || r == '*' || r == '`' || unicode.IsDigit(r) {
			return false
		}
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return false
}

// endsWithoutTerminal reports whether prose text stops without terminal
// punctuation. Structural endings (fence, table row, list item) are not
// penalized.
func endsWithoutTerminal(text string) bool {
	lines := strings.Split(text, "\n")
	last := ""
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			last = strings.TrimSpace(lines[i])
			break
		}
	}
	if last == "" {
		return false
	}
	if strings.HasPrefix(last, "```") || strings.HasPrefix(last, "|") ||
		strings.HasPrefix(last, "-") || strings.HasPrefix(last, "*") ||
		strings.HasPrefix(last, "#") {
		return false
	}
	switch last[len(last)-1] {
	case '.', '!', '?', ':', ';':
		return false
	}
	return true
}

// loneListItem reports whether the chunk is a single stranded bullet.
func loneListItem(text string) bool {
	lines := strings.Split(text, "\n")
	items := 0
	other := 0
	for _, ln := range lines {
		t := strings.TrimSpace(ln)
		if t == "" {
			continue
		}
		if strings.HasPrefix(t, "- ") || strings.HasPrefix(t, "* ") || strings.HasPrefix(t, "+ ") {
			items++
		} else {
			other++
		}
	}
	return items == 1 && other == 0
}

// hangingHeader reports whether the chunk ends on a heading with nothing
// under it.
func hangingHeader(text string) bool {
	lines := strings.Split(text, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		t := strings.TrimSpace(lines[i])
		if t == "" {
			continue
		}
		return strings.HasPrefix(t, "#")
	}
	return false
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
