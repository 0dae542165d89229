package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docshard/docshard/model"
)

func TestFlattenMetadata(t *testing.T) {
	c := &model.Chunk{
		ID:   "doc_chunk_0",
		Text: "text",
		Metadata: model.ChunkMetadata{
			DocumentID:    "doc",
			Category:      model.CategoryUseCase,
			ChunkIndex:    2,
			TotalChunks:   5,
			SectionHeader: "Detection Logic",
			SectionPath:   []string{"Title", "Detection Logic"},
			ContentTypes:  []string{"code_block"},
			Atomic:        true,
			Density:       0.42,
			Entities: model.EntitySet{
				model.EntityMitreTechnique: {{Name: "T1059", Category: model.EntityMitreTechnique}},
				model.EntityDataSource:     {{Name: "Palo Alto", Category: model.EntityDataSource}},
			},
			Relationships: []model.Relationship{{
				Source: model.Entity{Name: "Palo Alto", Category: model.EntityDataSource},
				Target: model.Entity{Name: "pan_fw", Category: model.EntityParser},
				Kind:   model.RelationHasParser,
			}},
			Classifications: map[string]float64{"use_case": 0.6, "technical": 0.4},
			RelatedChunks:   []model.RelatedChunk{{ID: "other_chunk_1"}},
		},
	}

	flat := FlattenMetadata(c)

	assert.Equal(t, "doc", flat["document_id"])
	assert.Equal(t, "use_case", flat["category"])
	assert.Equal(t, 2, flat["chunk_index"])
	assert.Equal(t, 5, flat["total_chunks"])
	assert.Equal(t, true, flat["atomic"])
	assert.Equal(t, []string{"Title", "Detection Logic"}, flat["section_path"])

	entities, ok := flat["entities"].([]string)
	require.True(t, ok)
	assert.Contains(t, entities, "mitre_technique:T1059")
	assert.Contains(t, entities, "data_source:Palo Alto")

	relationships, ok := flat["relationships"].([]string)
	require.True(t, ok)
	assert.Equal(t, []string{"Palo Alto>has_parser>pan_fw"}, relationships)

	classifications, ok := flat["classifications"].([]string)
	require.True(t, ok)
	assert.Equal(t, []string{"technical=0.40", "use_case=0.60"}, classifications)

	assert.Equal(t, []string{"other_chunk_1"}, flat["related_chunks"])

	// Nested values never leak through: everything is a scalar or a
	// string list.
	for key, value := range flat {
		switch value.(type) {
		case string, int, float64, bool, []string:
		default:
			t.Errorf("key %s has non-flat type %T", key, value)
		}
	}
}

func TestFlattenMetadataOmitsEmpty(t *testing.T) {
	flat := FlattenMetadata(&model.Chunk{Metadata: model.ChunkMetadata{DocumentID: "d"}})

	assert.NotContains(t, flat, "entities")
	assert.NotContains(t, flat, "relationships")
	assert.NotContains(t, flat, "section_header")
	assert.NotContains(t, flat, "vendor")
	assert.Contains(t, flat, "document_id")
	assert.Contains(t, flat, "chunk_index")
}
