package chunk

import (
	"testing"

	"github.com/docshard/docshard/model"
)

func TestExtractContentTypes(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "code block",
			text: "Example:\n```\nfield = value\n```\n",
			want: []string{ContentCodeBlock},
		},
		{
			name: "table",
			text: "| Field | Type |\n|-------|------|\n| user | string |\n",
			want: []string{ContentTable},
		},
		{
			name: "bullet list",
			text: "- first item\n- second item\n",
			want: []string{ContentList},
		},
		{
			name: "numbered list",
			text: "1. open the console\n2. apply the change\n",
			want: []string{ContentNumberedList},
		},
		{
			name: "url",
			text: "See https://example.com/docs for details.",
			want: []string{ContentURL},
		},
		{
			name: "plain prose",
			text: "Nothing structured here at all.",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			features := e.Extract(tt.text)
			if len(features.ContentTypes) != len(tt.want) {
				t.Fatalf("got content types %v, want %v", features.ContentTypes, tt.want)
			}
			for i := range tt.want {
				if features.ContentTypes[i] != tt.want[i] {
					t.Errorf("content type %d: got %q, want %q", i, features.ContentTypes[i], tt.want[i])
				}
			}
		})
	}
}

func TestDensityBounds(t *testing.T) {
	e := NewExtractor()

	texts := []string{
		"",
		"Short.",
		"The cat sat on the mat. The mat was warm.",
		"T1059 and T1078 correlate across parser output. | a | b |\n- item one\n- item two\n",
	}

	for _, text := range texts {
		d := e.Density(text)
		if d < 0 || d > 1 {
			t.Errorf("Density(%q) = %v, out of [0,1]", text, d)
		}
	}

	if d := e.Density(""); d != 0.5 {
		t.Errorf("empty text density = %v, want 0.5", d)
	}
}

func TestDensityOrdersContent(t *testing.T) {
	e := NewExtractor()

	sparse := e.Density("The cat sat on the mat. It was warm. The dog slept.")
	dense := e.Density("The detection rule correlates T1059 and T1078 techniques against parser output.\n" +
		"| field | mapping |\n|-------|--------|\n| user | src_user |\n" +
		"- normalize the event type\n- map the data source fields\n")

	if dense <= sparse {
		t.Errorf("dense text scored %v, sparse %v; want dense > sparse", dense, sparse)
	}
	if sparse < 0.1 {
		t.Errorf("sparse density %v below the 0.1 floor", sparse)
	}
}

func TestExtractEntityHits(t *testing.T) {
	e := NewExtractor()
	features := e.Extract("The rule detects T1059.001 activity reported by the data source.")
	if features.EntityHits[model.EntityMitreTechnique] == 0 {
		t.Error("expected at least one MITRE technique hit")
	}
}
