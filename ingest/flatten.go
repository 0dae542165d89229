package ingest

import (
	"fmt"
	"sort"

	"github.com/docshard/docshard/model"
)

// FlattenMetadata reduces a chunk's nested metadata to scalars and
// string lists, the shape vector-store payloads accept. Entities render
// as "category:name", relationships as "source>kind>target",
// classifications as "class=score". Empty fields are omitted.
func FlattenMetadata(c *model.Chunk) map[string]any {
	meta := c.Metadata
	flat := map[string]any{
		"document_id": meta.DocumentID,
		"category":    meta.Category.String(),
		"chunk_index": meta.ChunkIndex,
	}

	if meta.TotalChunks > 0 {
		flat["total_chunks"] = meta.TotalChunks
	}
	if meta.Source != "" {
		flat["source"] = meta.Source
	}
	if meta.Title != "" {
		flat["title"] = meta.Title
	}
	if meta.Vendor != "" {
		flat["vendor"] = meta.Vendor
	}
	if meta.Product != "" {
		flat["product"] = meta.Product
	}
	if meta.SectionHeader != "" {
		flat["section_header"] = meta.SectionHeader
	}
	if len(meta.SectionPath) > 0 {
		flat["section_path"] = append([]string(nil), meta.SectionPath...)
	}
	if meta.SectionLevel > 0 {
		flat["section_level"] = meta.SectionLevel
	}
	if len(meta.ContentTypes) > 0 {
		flat["content_types"] = append([]string(nil), meta.ContentTypes...)
	}
	if meta.ChunkingMethod != "" {
		flat["chunking_method"] = meta.ChunkingMethod
	}
	if meta.Atomic {
		flat["atomic"] = true
	}
	if meta.Density > 0 {
		flat["density"] = meta.Density
	}
	if meta.PrimaryContentType != "" {
		flat["primary_content_type"] = meta.PrimaryContentType
	}

	if len(meta.Entities) > 0 {
		var entities []string
		for _, category := range model.EntityCategories {
			for _, e := range meta.Entities[category] {
				entities = append(entities, fmt.Sprintf("%s:%s", category, e.Name))
			}
		}
		flat["entities"] = entities
	}

	if len(meta.Relationships) > 0 {
		relationships := make([]string, 0, len(meta.Relationships))
		for _, rel := range meta.Relationships {
			relationships = append(relationships,
				fmt.Sprintf("%s>%s>%s", rel.Source.Name, rel.Kind, rel.Target.Name))
		}
		flat["relationships"] = relationships
	}

	if len(meta.Classifications) > 0 {
		classifications := make([]string, 0, len(meta.Classifications))
		for _, class := range sortedKeys(meta.Classifications) {
			classifications = append(classifications,
				fmt.Sprintf("%s=%.2f", class, meta.Classifications[class]))
		}
		flat["classifications"] = classifications
	}

	if len(meta.RelatedChunks) > 0 {
		related := make([]string, 0, len(meta.RelatedChunks))
		for _, rc := range meta.RelatedChunks {
			related = append(related, rc.ID)
		}
		flat["related_chunks"] = related
	}

	for k, v := range meta.Extra {
		flat["extra_"+k] = v
	}

	return flat
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
