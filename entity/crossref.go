package entity

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/docshard/docshard/model"
)

// crossRefCategories are the entity categories used to link chunks. Broad
// vocabulary categories (event types, tactics, fields) are excluded: they
// occur in nearly every chunk and would connect everything to everything.
var crossRefCategories = []model.EntityCategory{
	model.EntityDataSource,
	model.EntityParser,
	model.EntityUseCase,
	model.EntityMitreTechnique,
}

// CrossReference annotates each chunk with the other chunks that share at
// least one extracted entity, excluding self-references. It must run only
// after every chunk in the batch has been enriched, since it builds a
// global entity index over the whole batch first.
func CrossReference(chunks []*model.Chunk) {
	folder := cases.Fold()

	type indexKey struct {
		category model.EntityCategory
		name     string
	}

	index := make(map[indexKey][]int)
	for i, chunk := range chunks {
		for _, category := range crossRefCategories {
			for _, ent := range chunk.Metadata.Entities[category] {
				key := indexKey{category, folder.String(strings.TrimSpace(ent.Name))}
				index[key] = append(index[key], i)
			}
		}
	}

	for i, chunk := range chunks {
		related := make(map[int]bool)
		for _, category := range crossRefCategories {
			for _, ent := range chunk.Metadata.Entities[category] {
				key := indexKey{category, folder.String(strings.TrimSpace(ent.Name))}
				for _, j := range index[key] {
					if j != i {
						related[j] = true
					}
				}
			}
		}

		if len(related) == 0 {
			continue
		}

		indices := make([]int, 0, len(related))
		for j := range related {
			indices = append(indices, j)
		}
		sort.Ints(indices)

		refs := make([]model.RelatedChunk, 0, len(indices))
		for _, j := range indices {
			refs = append(refs, model.RelatedChunk{
				ID:          chunks[j].ID,
				ContentType: chunks[j].Metadata.PrimaryContentType,
			})
		}
		chunk.Metadata.RelatedChunks = refs
	}
}
