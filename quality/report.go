package quality

import "github.com/docshard/docshard/model"

// Band is a quality bucket derived from a chunk's overall score.
type Band string

// Quality bands, from best to worst.
const (
	BandExcellent Band = "excellent"
	BandGood      Band = "good"
	BandAverage   Band = "average"
	BandPoor      Band = "poor"
	BandBad       Band = "bad"
)

// Bands lists all quality bands in display order.
var Bands = []Band{BandExcellent, BandGood, BandAverage, BandPoor, BandBad}

// BandFor buckets an overall score: excellent >= 0.8, good >= 0.6,
// average >= 0.4, poor >= 0.2, bad below.
func BandFor(overall float64) Band {
	switch {
	case overall >= 0.8:
		return BandExcellent
	case overall >= 0.6:
		return BandGood
	case overall >= 0.4:
		return BandAverage
	case overall >= 0.2:
		return BandPoor
	default:
		return BandBad
	}
}

// Distribution summarizes the quality of a chunk set: mean sub-scores
// and the percentage of chunks in each band.
type Distribution struct {
	// Count is the number of chunks evaluated
	Count int

	// Mean holds the mean of each sub-score across the set
	Mean model.QualityScores

	// Bands maps each band to the percentage of chunks in it
	Bands map[Band]float64
}

// EvaluateChunkSet scores every chunk and aggregates the results. An
// empty set yields a zero-count distribution.
func (e *Evaluator) EvaluateChunkSet(chunks []*model.Chunk) Distribution {
	dist := Distribution{
		Count: len(chunks),
		Bands: make(map[Band]float64, len(Bands)),
	}
	if len(chunks) == 0 {
		return dist
	}

	counts := make(map[Band]int, len(Bands))
	for _, c := range chunks {
		scores := e.EvaluateChunk(c)
		dist.Mean.Coherence += scores.Coherence
		dist.Mean.InformationDensity += scores.InformationDensity
		dist.Mean.EntityPreservation += scores.EntityPreservation
		dist.Mean.ContextCompleteness += scores.ContextCompleteness
		dist.Mean.Overall += scores.Overall
		counts[BandFor(scores.Overall)]++
	}

	n := float64(len(chunks))
	dist.Mean.Coherence /= n
	dist.Mean.InformationDensity /= n
	dist.Mean.EntityPreservation /= n
	dist.Mean.ContextCompleteness /= n
	dist.Mean.Overall /= n

	for _, band := range Bands {
		dist.Bands[band] = float64(counts[band]) / n * 100
	}

	return dist
}

// MetricDelta is one metric's side-by-side result in a strategy
// comparison.
type MetricDelta struct {
	// Metric is the sub-score name
	Metric string

	// First and Second are the mean scores of the two chunk sets
	First  float64
	Second float64

	// Delta is Second minus First
	Delta float64

	// Winner is the name of the higher-scoring strategy, or "tie"
	Winner string
}

// Comparison is the result of comparing two chunking strategies over the
// same source material.
type Comparison struct {
	// FirstName and SecondName label the compared strategies
	FirstName  string
	SecondName string

	// First and Second are the per-strategy distributions
	First  Distribution
	Second Distribution

	// Deltas holds per-metric results, overall last
	Deltas []MetricDelta

	// Winner is the strategy with the higher mean overall score, or "tie"
	Winner string
}

// CompareStrategies evaluates two chunk sets produced by different
// strategies and reports per-metric deltas and winners.
func (e *Evaluator) CompareStrategies(firstName string, first []*model.Chunk, secondName string, second []*model.Chunk) Comparison {
	cmp := Comparison{
		FirstName:  firstName,
		SecondName: secondName,
		First:      e.EvaluateChunkSet(first),
		Second:     e.EvaluateChunkSet(second),
	}

	metrics := []struct {
		name string
		pick func(model.QualityScores) float64
	}{
		{"coherence", func(s model.QualityScores) float64 { return s.Coherence }},
		{"information_density", func(s model.QualityScores) float64 { return s.InformationDensity }},
		{"entity_preservation", func(s model.QualityScores) float64 { return s.EntityPreservation }},
		{"context_completeness", func(s model.QualityScores) float64 { return s.ContextCompleteness }},
		{"overall", func(s model.QualityScores) float64 { return s.Overall }},
	}

	for _, m := range metrics {
		a := m.pick(cmp.First.Mean)
		b := m.pick(cmp.Second.Mean)
		delta := MetricDelta{
			Metric: m.name,
			First:  a,
			Second: b,
			Delta:  b - a,
		}
		switch {
		case b > a:
			delta.Winner = secondName
		case a > b:
			delta.Winner = firstName
		default:
			delta.Winner = "tie"
		}
		cmp.Deltas = append(cmp.Deltas, delta)
	}

	cmp.Winner = cmp.Deltas[len(cmp.Deltas)-1].Winner
	return cmp
}
