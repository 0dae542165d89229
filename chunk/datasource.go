package chunk

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/docshard/docshard/model"
)

var (
	vendorLineRegex    = regexp.MustCompile(`(?i)^vendor:\s*(.+?)\s*$`)
	productLineRegex   = regexp.MustCompile(`(?i)^product:\s*(.+?)\s*$`)
	tableSeparatorMark = regexp.MustCompile(`\|\s*:?-{2,}:?\s*\|`)
)

// DataSourceStrategy chunks data-source configuration documents. Table-
// dominated documents (a configurable fraction of lines are table rows)
// use a table-aware path that keeps whole tables intact, grouping a
// couple of tables per chunk. Otherwise the document splits at headings
// with vendor/product recovered from the document preamble. When neither
// structure holds, the strategy reports failure and the chunker degrades
// to fixed-size splitting with context-preserving overlap.
type DataSourceStrategy struct {
	cfg       Config
	generic   *GenericStrategy
	assembler *Assembler
	logger    *slog.Logger
}

// Name implements Strategy.
func (s *DataSourceStrategy) Name() string { return "data_source_sections" }

// Chunk implements Strategy.
func (s *DataSourceStrategy) Chunk(doc *model.Document) ([]*model.Chunk, error) {
	text := doc.Text
	lines := strings.Split(text, "\n")

	tableRows := 0
	for _, ln := range lines {
		if isTableRow(ln) {
			tableRows++
		}
	}

	if tableRows > 0 && float64(tableRows)/float64(len(lines)) > s.cfg.TableDominance {
		s.logger.Debug("table-dominated data source, using table-aware chunking",
			"document", doc.Metadata.ID)
		return s.chunkTableHeavy(lines), nil
	}

	vendor, product := parsePreamble(lines)

	if len(strings.TrimSpace(text)) <= s.cfg.MaxSize {
		return []*model.Chunk{{
			Text: strings.TrimSpace(text),
			Metadata: model.ChunkMetadata{
				Vendor:  vendor,
				Product: product,
			},
		}}, nil
	}

	chunks := s.chunkBySections(lines, vendor, product)
	if len(chunks) == 0 {
		s.logger.Warn("section-based chunking found no structure, using fixed-size fallback",
			"document", doc.Metadata.ID)
		return s.chunkFixed(text, vendor, product), nil
	}

	return chunks, nil
}

// parsePreamble reads Vendor:/Product: lines from the first few lines of
// a data-source document.
func parsePreamble(lines []string) (vendor, product string) {
	limit := 6
	if len(lines) < limit {
		limit = len(lines)
	}
	for _, ln := range lines[:limit] {
		if m := vendorLineRegex.FindStringSubmatch(ln); m != nil && vendor == "" {
			vendor = m[1]
		}
		if m := productLineRegex.FindStringSubmatch(ln); m != nil && product == "" {
			product = m[1]
		}
	}
	return vendor, product
}

// chunkTableHeavy groups content so tables stay intact, flushing a chunk
// after two whole tables or fifty lines, never mid-table.
func (s *DataSourceStrategy) chunkTableHeavy(lines []string) []*model.Chunk {
	var chunks []*model.Chunk
	var current []string
	tables := 0
	inTable := false

	flush := func() {
		text := trimJoin(current)
		if text != "" {
			chunks = append(chunks, &model.Chunk{
				Text: text,
				Metadata: model.ChunkMetadata{
					ContentTypes:   []string{ContentTable},
					ChunkingMethod: "table_aware",
				},
			})
		}
		current = nil
		tables = 0
	}

	for _, ln := range lines {
		if isTableRow(ln) && tableSeparatorMark.MatchString(ln) {
			// Separator row: a new table begins.
			inTable = true
			tables++
		} else if inTable && !isTableRow(ln) {
			inTable = false
		}

		current = append(current, ln)

		if !inTable && (tables >= 2 || len(current) > 50) {
			flush()
		}
	}
	flush()

	return chunks
}

// chunkBySections splits a data-source document at headings of any level,
// refining each chunk's content type from its header keywords.
func (s *DataSourceStrategy) chunkBySections(lines []string, vendor, product string) []*model.Chunk {
	sections := splitAllSections(lines)
	if len(sections) <= 1 && (len(sections) == 0 || sections[0].Header == "") {
		return nil
	}

	var chunks []*model.Chunk
	for _, sec := range sections {
		text := strings.TrimSpace(sec.Text)
		if text == "" {
			continue
		}

		meta := model.ChunkMetadata{
			SectionHeader:      sec.Header,
			SectionPath:        append([]string(nil), sec.Path...),
			SectionLevel:       sec.Level,
			Vendor:             vendor,
			Product:            product,
			PrimaryContentType: headerContentType(sec.Header),
		}

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

	return chunks
}

// chunkFixed is the last-resort path: generous fixed windows sized to the
// document with a third of the window as overlap, keeping configuration
// context readable across cuts.
func (s *DataSourceStrategy) chunkFixed(text, vendor, product string) []*model.Chunk {
	size := len(text) / 3
	if size < 1000 {
		size = 1000
	}
	if size > 2000 {
		size = 2000
	}
	overlap := size / 3
	if overlap > 300 {
		overlap = 300
	}

	var chunks []*model.Chunk
	for _, piece := range s.assembler.FixedSize(text, size, overlap) {
		chunks = append(chunks, &model.Chunk{
			Text: piece,
			Metadata: model.ChunkMetadata{
				Vendor:         vendor,
				Product:        product,
				ChunkingMethod: "fixed_size",
			},
		})
	}
	return chunks
}

// splitAllSections splits lines into sections at markdown and
// underline-style headings of any level.
func splitAllSections(lines []string) []section {
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

	startSection := func(header string, level int, headerLine string) {
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
		current = append(current, headerLine)
	}

	for i := 0; i < len(lines); i++ {
		ln := lines[i]

		if strings.HasPrefix(strings.TrimSpace(ln), "```") {
			inFence = !inFence
			current = append(current, ln)
			continue
		}
		if inFence {
			current = append(current, ln)
			continue
		}

		if m := headingLevelRegex.FindStringSubmatch(ln); m != nil {
			startSection(strings.TrimSpace(m[2]), len(m[1]), ln)
			continue
		}

		// Underline-style headings: a plain line followed by === or ---.
		if i+1 < len(lines) && strings.TrimSpace(ln) != "" && !isTableRow(ln) {
			next := strings.TrimSpace(lines[i+1])
			if underlineEqualsRegex.MatchString(next) {
				startSection(strings.TrimSpace(ln), 1, ln)
				current = append(current, lines[i+1])
				i++
				continue
			}
			if underlineHyphensRegex.MatchString(next) {
				startSection(strings.TrimSpace(ln), 2, ln)
				current = append(current, lines[i+1])
				i++
				continue
			}
		}

		current = append(current, ln)
	}

	flush()
	return sections
}

// headerContentType refines a chunk's content type from section header
// keywords, mirroring how configuration guides label their sections.
func headerContentType(header string) string {
	lower := strings.ToLower(header)
	switch {
	case lower == "":
		return ""
	case strings.Contains(lower, "event") || strings.Contains(lower, "type"):
		return "event_type"
	case strings.Contains(lower, "parser") || strings.Contains(lower, "parsing"):
		return "parser"
	case strings.Contains(lower, "configuration") || strings.Contains(lower, "setup"):
		return "configuration"
	case strings.Contains(lower, "vendor") || strings.Contains(lower, "product"):
		return "metadata"
	case strings.Contains(lower, "mitre") || strings.Contains(lower, "att&ck"):
		return "mitre"
	default:
		return ""
	}
}
