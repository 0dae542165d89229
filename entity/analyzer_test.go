package entity

import (
	"testing"

	"github.com/docshard/docshard/model"
)

func TestExtractEntities_Categories(t *testing.T) {
	analyzer := NewAnalyzer()

	text := "The Cisco ASA firewall sends syslog to the cisco_asa parser. " +
		"Advanced Analytics correlates authentication events and the " +
		"Brute Force Detection use case detects T1110.001 during Credential Access. " +
		"The src_ip field carries the source address."

	entities := analyzer.ExtractEntities(text)

	tests := []struct {
		category model.EntityCategory
		want     string
	}{
		{model.EntityDataSource, "Cisco"},
		{model.EntityParser, "cisco_asa"},
		{model.EntityProduct, "Advanced Analytics"},
		{model.EntityMitreTechnique, "T1110.001"},
		{model.EntityMitreTactic, "Credential Access"},
		{model.EntityEventType, "authentication"},
		{model.EntityField, "src_ip"},
	}

	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			found := false
			for _, ent := range entities[tt.category] {
				if ent.Name == tt.want {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("expected %q in %v entities, got %v", tt.want, tt.category, entities[tt.category])
			}
		})
	}
}

func TestExtractEntities_DedupCaseInsensitive(t *testing.T) {
	analyzer := NewAnalyzer()

	entities := analyzer.ExtractEntities("Cisco routers and CISCO switches and cisco firewalls.")

	count := 0
	for _, ent := range entities[model.EntityDataSource] {
		if ent.Name == "Cisco" || ent.Name == "CISCO" || ent.Name == "cisco" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected vendor deduplicated to 1 entry, got %d", count)
	}
}

func TestExtractEntities_Empty(t *testing.T) {
	analyzer := NewAnalyzer()

	if got := analyzer.ExtractEntities("   \n\t"); len(got) != 0 {
		t.Errorf("expected no entities from whitespace, got %v", got)
	}
}

func TestExtractEntities_GenericNounsFiltered(t *testing.T) {
	analyzer := NewAnalyzer()

	entities := analyzer.ExtractEntities("Configure the parser before enabling this use case.")

	for _, ent := range entities[model.EntityParser] {
		if ent.Name == "the" {
			t.Error("generic article extracted as parser name")
		}
	}
}

func TestExtractRelationships(t *testing.T) {
	analyzer := NewAnalyzer()

	text := "Windows security logs are handled by the wineventlog parser, " +
		"and the Lateral Movement Detection use case detects technique T1021 in those events."

	entities := model.EntitySet{
		model.EntityDataSource:     {{Name: "Windows", Category: model.EntityDataSource}},
		model.EntityParser:         {{Name: "wineventlog", Category: model.EntityParser}},
		model.EntityUseCase:        {{Name: "Lateral Movement Detection", Category: model.EntityUseCase}},
		model.EntityMitreTechnique: {{Name: "T1021", Category: model.EntityMitreTechnique}},
	}

	relationships := analyzer.ExtractRelationships(text, entities)

	wantKinds := map[model.RelationKind]bool{
		model.RelationHasParser:        false,
		model.RelationDetectsTechnique: false,
	}
	for _, rel := range relationships {
		if _, ok := wantKinds[rel.Kind]; ok {
			wantKinds[rel.Kind] = true
		}
	}
	for kind, found := range wantKinds {
		if !found {
			t.Errorf("expected a %v relationship, got %v", kind, relationships)
		}
	}
}

func TestExtractRelationships_NoPairNoRelation(t *testing.T) {
	analyzer := NewAnalyzer()

	entities := model.EntitySet{
		model.EntityDataSource: {{Name: "Windows", Category: model.EntityDataSource}},
	}

	if got := analyzer.ExtractRelationships("Windows is an operating system.", entities); len(got) != 0 {
		t.Errorf("expected no relationships without target entities, got %v", got)
	}
}

func TestClassifyContent_Proportions(t *testing.T) {
	text := "This parser handles parsing and normalization. The parser extracts fields."

	scores := ClassifyContent(text)

	if scores[ClassParser] <= scores[ClassOverview] {
		t.Errorf("expected parser class to dominate, got %v", scores)
	}

	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	if sum < 0.99 || sum > 1.01 {
		t.Errorf("expected normalized scores summing to 1, got %v (sum %v)", scores, sum)
	}
}

func TestClassifyContent_FallbackPriority(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"technical default", "Completely unrelated prose about gardening and birds and weather patterns over many seasons.", ClassTechnical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := ClassifyContent(tt.text)
			best, _ := primaryClass(scores)
			if best != tt.want {
				t.Errorf("primaryClass() = %v, want %v (scores %v)", best, tt.want, scores)
			}
		})
	}
}

func TestEnrichChunk(t *testing.T) {
	analyzer := NewAnalyzer()

	chunk := &model.Chunk{
		ID:   "doc_chunk_0",
		Text: "The Fortinet firewall data source uses the fortigate parser for authentication events.",
	}

	analyzer.EnrichChunk(chunk)

	if len(chunk.Metadata.Entities) == 0 {
		t.Fatal("expected entities after enrichment")
	}
	if chunk.Metadata.Classifications == nil {
		t.Fatal("expected classifications after enrichment")
	}
}

func TestEnrichChunk_EmptyIsNoop(t *testing.T) {
	analyzer := NewAnalyzer()

	chunk := &model.Chunk{ID: "x", Text: "  "}
	analyzer.EnrichChunk(chunk)

	if chunk.Metadata.Entities != nil {
		t.Error("empty chunk should not be enriched")
	}
}

func TestCrossReference(t *testing.T) {
	chunks := []*model.Chunk{
		{
			ID: "a",
			Metadata: model.ChunkMetadata{
				Entities: model.EntitySet{
					model.EntityParser: {{Name: "cisco_asa", Category: model.EntityParser}},
				},
			},
		},
		{
			ID: "b",
			Metadata: model.ChunkMetadata{
				Entities: model.EntitySet{
					model.EntityParser: {{Name: "Cisco_ASA", Category: model.EntityParser}},
				},
				PrimaryContentType: ClassParser,
			},
		},
		{
			ID: "c",
			Metadata: model.ChunkMetadata{
				Entities: model.EntitySet{
					model.EntityParser: {{Name: "fortigate", Category: model.EntityParser}},
				},
			},
		},
	}

	CrossReference(chunks)

	if len(chunks[0].Metadata.RelatedChunks) != 1 || chunks[0].Metadata.RelatedChunks[0].ID != "b" {
		t.Errorf("chunk a related = %v, want [b]", chunks[0].Metadata.RelatedChunks)
	}
	if chunks[0].Metadata.RelatedChunks[0].ContentType != ClassParser {
		t.Errorf("related content type = %q, want %q", chunks[0].Metadata.RelatedChunks[0].ContentType, ClassParser)
	}
	if len(chunks[2].Metadata.RelatedChunks) != 0 {
		t.Errorf("chunk c should have no cross-references, got %v", chunks[2].Metadata.RelatedChunks)
	}

	// No self-references anywhere.
	for _, chunk := range chunks {
		for _, rel := range chunk.Metadata.RelatedChunks {
			if rel.ID == chunk.ID {
				t.Errorf("chunk %s references itself", chunk.ID)
			}
		}
	}
}
