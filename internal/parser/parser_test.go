package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse_FrontmatterAndBody(t *testing.T) {
	input := []byte("---\ntitle: Hello\ndate: 2024-01-15\ntags:\n  - go\n  - web\n---\n# Heading\nBody text.\n")
	r := Parse(input)
	want := [][2]string{
		{"title", "Hello"},
		{"date", "2024-01-15"},
		{"tags", "go, web"},
	}
	if diff := cmp.Diff(want, r.Metadata); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}
	if r.Body != "# Heading\nBody text.\n" {
		t.Errorf("body = %q", r.Body)
	}
	if r.Title != "Heading" {
		t.Errorf("title = %q, want Heading", r.Title)
	}
}

func TestParse_NoFrontmatter(t *testing.T) {
	input := []byte("# Just a heading\nSome text.\n")
	r := Parse(input)
	if r.Metadata != nil {
		t.Errorf("expected no metadata, got %v", r.Metadata)
	}
	if r.Title != "Just a heading" {
		t.Errorf("title = %q, want %q", r.Title, "Just a heading")
	}
	if r.Body != string(input) {
		t.Errorf("body = %q", r.Body)
	}
}

func TestParse_InvalidYAMLFallback(t *testing.T) {
	input := []byte("---\ntitle: [unclosed\n---\nBody\n")
	r := Parse(input)
	if r.Metadata != nil {
		t.Errorf("expected no metadata, got %v", r.Metadata)
	}
	if r.Body != string(input) {
		t.Errorf("body = %q, want whole input", r.Body)
	}
}

func TestParse_UnclosedFrontmatter(t *testing.T) {
	input := []byte("---\ntitle: x\nno closing\n")
	r := Parse(input)
	if r.Metadata != nil || r.Body != string(input) {
		t.Errorf("got %+v", r)
	}
}

func TestParse_NonScalarValues(t *testing.T) {
	input := []byte("---\nauthor: Ann\nextra:\n  nested: true\ncount: 3\n---\ntext\n")
	r := Parse(input)
	want := [][2]string{{"author", "Ann"}, {"count", "3"}}
	if diff := cmp.Diff(want, r.Metadata); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}
}
