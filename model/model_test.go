package model

import "testing"

func TestDocumentCategory_String(t *testing.T) {
	tests := []struct {
		category DocumentCategory
		want     string
	}{
		{CategoryUnknown, "unknown"},
		{CategoryParser, "parser"},
		{CategoryUseCase, "use_case"},
		{CategoryDataSource, "data_source"},
		{DocumentCategory(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.category.String(); got != tt.want {
				t.Errorf("DocumentCategory.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		tag  string
		want DocumentCategory
	}{
		{"parser", CategoryParser},
		{"Parser", CategoryParser},
		{"use_case", CategoryUseCase},
		{"use-case", CategoryUseCase},
		{"data_source", CategoryDataSource},
		{"datasource", CategoryDataSource},
		{"  data-source ", CategoryDataSource},
		{"overview", CategoryUnknown},
		{"", CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if got := ParseCategory(tt.tag); got != tt.want {
				t.Errorf("ParseCategory(%q) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestDocument_IsEmpty(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"empty", "", true},
		{"whitespace only", "  \n\t  ", true},
		{"content", "some text", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &Document{Text: tt.text}
			if got := doc.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntitySet_Count(t *testing.T) {
	es := EntitySet{
		EntityProduct:    {{Name: "Advanced Analytics", Category: EntityProduct}},
		EntityDataSource: {{Name: "Cisco", Category: EntityDataSource}, {Name: "AWS", Category: EntityDataSource}},
		EntityField:      {},
	}

	if got := es.Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}

	if got := es.Categories(); got != 2 {
		t.Errorf("Categories() = %d, want 2", got)
	}
}

func TestRelationKind_String(t *testing.T) {
	tests := []struct {
		kind RelationKind
		want string
	}{
		{RelationHasParser, "has_parser"},
		{RelationSupportsUseCase, "supports_use_case"},
		{RelationDetectsTechnique, "detects_technique"},
		{RelationGeneratesEventType, "generates_event_type"},
		{RelationKind(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("RelationKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChunk_SectionPathString(t *testing.T) {
	tests := []struct {
		name string
		path []string
		want string
	}{
		{"empty path", nil, ""},
		{"single element", []string{"Configuration"}, "Configuration"},
		{"nested", []string{"Cisco ASA", "Setup", "Syslog"}, "Cisco ASA > Setup > Syslog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunk := &Chunk{Metadata: ChunkMetadata{SectionPath: tt.path}}
			if got := chunk.SectionPathString(); got != tt.want {
				t.Errorf("SectionPathString() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChunk_HasContentType(t *testing.T) {
	chunk := &Chunk{Metadata: ChunkMetadata{ContentTypes: []string{"code_block", "table"}}}

	if !chunk.HasContentType("code_block") {
		t.Error("expected code_block content type")
	}
	if chunk.HasContentType("list") {
		t.Error("did not expect list content type")
	}
}
