package chunk

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/docshard/docshard/entity"
	"github.com/docshard/docshard/model"
)

var headingLevelRegex = regexp.MustCompile(`^\s*(#{1,6})\s+(.+?)\s*$`)

// section is a heading-delimited region of a document with its lineage.
type section struct {
	Text   string
	Header string
	Level  int
	Path   []string
}

// UseCaseStrategy chunks detection-use-case documents: splits at major
// (level 1-2) headings, tracks the full heading path for each chunk, and
// recovers vendor/product identifiers by matching known name lists
// against the heading lineage.
type UseCaseStrategy struct {
	cfg     Config
	generic *GenericStrategy
}

// Name implements Strategy.
func (s *UseCaseStrategy) Name() string { return "use_case_sections" }

// Chunk implements Strategy.
func (s *UseCaseStrategy) Chunk(doc *model.Document) ([]*model.Chunk, error) {
	sections := splitMajorSections(doc.Text)
	if len(sections) <= 1 && (len(sections) == 0 || sections[0].Header == "") {
		return nil, fmt.Errorf("document %s: no major headings", doc.Metadata.ID)
	}

	table := entity.Patterns()

	var chunks []*model.Chunk
	for _, sec := range sections {
		text := strings.TrimSpace(sec.Text)
		if text == "" {
			continue
		}

		meta := model.ChunkMetadata{
			SectionHeader: sec.Header,
			SectionPath:   append([]string(nil), sec.Path...),
			SectionLevel:  sec.Level,
		}
		meta.Vendor, meta.Product = identifyFromPath(sec.Path, table)

		if len(text) <= s.cfg.MaxSize {
			chunks = append(chunks, &model.Chunk{Text: text, Metadata: meta})
			continue
		}

		for _, piece := range s.generic.split(text) {
			pieceMeta := meta
			pieceMeta.SectionPath = append([]string(nil), sec.Path...)
			chunks = append(chunks, &model.Chunk{Text: piece, Metadata: pieceMeta})
		}
	}

	return chunks, nil
}

// splitMajorSections splits text at level 1-2 markdown headings,
// maintaining a heading stack so every section records its lineage.
func splitMajorSections(text string) []section {
	lines := strings.Split(text, "\n")

	var sections []section
	var current []string
	var currentHeader string
	var currentLevel int
	var path []string
	inFence := false

	flush := func() {
		if len(current) == 0 {
			return
		}
		sections = append(sections, section{
			Text:   strings.Join(current, "\n"),
			Header: currentHeader,
			Level:  currentLevel,
			Path:   append([]string(nil), path...),
		})
		current = nil
	}

	for _, ln := range lines {
		if strings.HasPrefix(strings.TrimSpace(ln), "```") {
			inFence = !inFence
			current = append(current, ln)
			continue
		}
		if inFence {
			current = append(current, ln)
			continue
		}

		m := headingLevelRegex.FindStringSubmatch(ln)
		if m == nil || len(m[1]) > 2 {
			current = append(current, ln)
			continue
		}

		level := len(m[1])
		header := strings.TrimSpace(m[2])

		flush()

		if level == 1 {
			path = []string{header}
		} else {
			for len(path) >= level {
				path = path[:len(path)-1]
			}
			path = append(path, header)
		}

		currentHeader = header
		currentLevel = level
		current = append(current, ln)
	}

	flush()
	return sections
}

// identifyFromPath matches known vendor and product name lists against a
// heading path, returning the first hits.
func identifyFromPath(path []string, table *entity.PatternTable) (vendor, product string) {
	for _, component := range path {
		lower := strings.ToLower(component)
		if vendor == "" {
			for _, name := range table.VendorNames {
				if strings.Contains(lower, strings.ToLower(name)) {
					vendor = component
					break
				}
			}
		}
		if product == "" {
			for _, name := range table.ProductNames {
				if strings.Contains(lower, strings.ToLower(name)) {
					product = name
					break
				}
			}
		}
	}
	return vendor, product
}
