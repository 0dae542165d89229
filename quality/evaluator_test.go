package quality

import (
	"strings"
	"testing"

	"github.com/docshard/docshard/model"
)

func TestEvaluateChunkScoresInRange(t *testing.T) {
	e := New()

	chunks := []*model.Chunk{
		{Text: "The parser maps each field to the schema. The schema field names follow the common model. The parser output is validated."},
		{Text: "# Setup\n\nInstall the collector and point it at the device. The collector forwards events upstream."},
		{Text: "| a | b |\n|---|---|\n| 1 | 2 |"},
		{Text: "- lone item"},
	}

	for i, c := range chunks {
		scores := e.EvaluateChunk(c)
		for name, v := range map[string]float64{
			"coherence":            scores.Coherence,
			"information_density":  scores.InformationDensity,
			"entity_preservation":  scores.EntityPreservation,
			"context_completeness": scores.ContextCompleteness,
			"overall":              scores.Overall,
		} {
			if v < 0 || v > 1 {
				t.Errorf("chunk %d: %s = %v, out of [0,1]", i, name, v)
			}
		}
		if c.Metadata.Quality == nil {
			t.Errorf("chunk %d: scores not recorded in metadata", i)
		}
	}
}

func TestCoherencePenalizesUnterminatedFence(t *testing.T) {
	e := New()

	c := &model.Chunk{
		Text: "# Notes\n\nThe parser configuration follows below. The configuration maps raw fields.\n```\nformat = syslog\nfield src = source",
	}
	scores := e.EvaluateChunk(c)
	if scores.Coherence >= 0.8 {
		t.Errorf("coherence %v for unterminated fence, want < 0.8", scores.Coherence)
	}
}

func TestCoherenceOrdering(t *testing.T) {
	e := New()

	connected := e.coherence("The parser reads syslog events. The parser maps syslog fields to the schema. The schema validates parser output.")
	cut := e.coherence("and then the mapping continues from before\n```\nleft open")

	if connected <= cut {
		t.Errorf("connected prose scored %v, cut fragment %v; want connected higher", connected, cut)
	}
}

func TestEntityPreservation(t *testing.T) {
	e := New()

	text := "The rule detects T1059 activity in the collected events. T1078 often follows."

	bare := &model.Chunk{Text: text}
	enriched := &model.Chunk{
		Text: text,
		Metadata: model.ChunkMetadata{
			Entities: model.EntitySet{
				model.EntityMitreTechnique: {
					{Name: "T1059", Category: model.EntityMitreTechnique},
					{Name: "T1078", Category: model.EntityMitreTechnique},
				},
			},
			Relationships: []model.Relationship{{
				Source: model.Entity{Name: "rule", Category: model.EntityUseCase},
				Target: model.Entity{Name: "T1059", Category: model.EntityMitreTechnique},
				Kind:   model.RelationDetectsTechnique,
			}},
		},
	}

	if be, en := e.entityPreservation(bare), e.entityPreservation(enriched); en <= be {
		t.Errorf("enriched chunk scored %v, bare %v; want enriched higher", en, be)
	}
}

func TestContextCompleteness(t *testing.T) {
	e := New()

	withHeader := &model.Chunk{
		Text: "## Detection Logic\n\nThe rule inspects authentication events and raises an alert on anomalies.",
		Metadata: model.ChunkMetadata{
			SectionHeader: "Detection Logic",
		},
	}
	hanging := &model.Chunk{
		Text: "Some trailing prose ends here.\n\n## Implementation",
	}

	if wh, h := e.contextCompleteness(withHeader), e.contextCompleteness(hanging); wh <= h {
		t.Errorf("headed chunk scored %v, hanging header %v; want headed higher", wh, h)
	}
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		score float64
		want  Band
	}{
		{0.95, BandExcellent},
		{0.8, BandExcellent},
		{0.7, BandGood},
		{0.5, BandAverage},
		{0.3, BandPoor},
		{0.1, BandBad},
		{0, BandBad},
	}
	for _, tt := range tests {
		if got := BandFor(tt.score); got != tt.want {
			t.Errorf("BandFor(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestEvaluateChunkSet(t *testing.T) {
	e := New()

	var chunks []*model.Chunk
	for i := 0; i < 4; i++ {
		chunks = append(chunks, &model.Chunk{
			Text: "# Section\n\n" + strings.Repeat("The parser maps events to the schema. ", 6),
			Metadata: model.ChunkMetadata{
				SectionHeader: "Section",
			},
		})
	}

	dist := e.EvaluateChunkSet(chunks)
	if dist.Count != 4 {
		t.Fatalf("count = %d, want 4", dist.Count)
	}
	if dist.Mean.Overall <= 0 || dist.Mean.Overall > 1 {
		t.Errorf("mean overall %v out of range", dist.Mean.Overall)
	}

	total := 0.0
	for _, band := range Bands {
		total += dist.Bands[band]
	}
	if total < 99.9 || total > 100.1 {
		t.Errorf("band percentages sum to %v, want 100", total)
	}
}

func TestEvaluateChunkSetEmpty(t *testing.T) {
	dist := New().EvaluateChunkSet(nil)
	if dist.Count != 0 {
		t.Errorf("count = %d, want 0", dist.Count)
	}
}

func TestCompareStrategies(t *testing.T) {
	e := New()

	good := []*model.Chunk{{
		Text: "# Overview\n\nThe parser maps syslog events to the schema. The schema fields validate cleanly.",
		Metadata: model.ChunkMetadata{
			SectionHeader: "Overview",
		},
	}}
	bad := []*model.Chunk{{
		Text: "and the mapping continues\n```\nstill open",
	}}

	cmp := e.CompareStrategies("semantic", good, "fixed", bad)
	if cmp.Winner != "semantic" {
		t.Errorf("winner = %q, want semantic", cmp.Winner)
	}
	if len(cmp.Deltas) != 5 {
		t.Fatalf("got %d metric deltas, want 5", len(cmp.Deltas))
	}
	for _, d := range cmp.Deltas {
		if d.Delta != d.Second-d.First {
			t.Errorf("metric %s delta %v inconsistent with %v-%v", d.Metric, d.Delta, d.Second, d.First)
		}
	}
	overall := cmp.Deltas[len(cmp.Deltas)-1]
	if overall.Metric != "overall" {
		t.Errorf("last delta is %q, want overall", overall.Metric)
	}
	if overall.Winner != "semantic" {
		t.Errorf("overall winner %q, want semantic", overall.Winner)
	}
}
