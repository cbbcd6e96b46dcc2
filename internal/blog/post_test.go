package blog

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHeaderFromMetadata(t *testing.T) {
	rows := [][2]string{
		{" Title ", " Hello World "},
		{"AUTHOR", "Ada"},
		{"author-bio", "Writes code."},
		{"tags", "go, web ,"},
		{"category", ""},
		{"", "orphan"},
		{"date", "2024-01-15"},
	}
	got := HeaderFromMetadata(rows, "Page Title")
	want := PostHeader{
		Title:     "Hello World",
		Author:    "Ada",
		AuthorBio: "Writes code.",
		Date:      "2024-01-15",
		Tags:      []string{"go", "web"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
}

func TestHeaderFromMetadata_FallbackTitleAndNoTags(t *testing.T) {
	got := HeaderFromMetadata(nil, "Page Title")
	if got.Title != "Page Title" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Tags == nil || len(got.Tags) != 0 {
		t.Errorf("tags = %v, want empty non-nil", got.Tags)
	}
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{0, 1},
		{1, 1},
		{200, 1},
		{201, 2},
		{1000, 5},
	}
	for _, tt := range tests {
		text := strings.Repeat("word ", tt.words)
		if got := ReadingTime("\n  " + text); got != tt.want {
			t.Errorf("ReadingTime(%d words) = %d, want %d", tt.words, got, tt.want)
		}
	}
}

func TestOverlay(t *testing.T) {
	base := PostHeader{Path: "/blog/a", Title: "Index Title", Author: "Ann", Tags: []string{"go"}, ReadingMinutes: 1}
	got := base.Overlay(PostHeader{Title: "Authored", AuthorBio: "Bio", Tags: []string{}, ReadingMinutes: 5})
	want := PostHeader{Path: "/blog/a", Title: "Authored", Author: "Ann", AuthorBio: "Bio", Tags: []string{"go"}, ReadingMinutes: 5}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("overlay mismatch (-want +got):\n%s", diff)
	}
	if base.Title != "Index Title" {
		t.Error("overlay modified the receiver")
	}
}
