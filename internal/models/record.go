// Package models defines the domain types for blogview.
package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

const (
	// BlogPostTemplate is the template value that marks a record as a blog post.
	BlogPostTemplate = "blog-post"
	// DefaultListingPath is the path of the blog listing page itself.
	DefaultListingPath = "/blog"
	// DefaultImage is used for cards whose record has no image.
	DefaultImage = "/styles/images/default-blog.jpg"
)

// dateLayouts are tried in order by ParsedDate.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"01/02/2006",
}

// ContentRecord is one entry of the content index.
// Every field is optional and defaults to the empty string.
type ContentRecord struct {
	Path        string `json:"path"`
	Template    string `json:"template"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Tags        string `json:"tags"`
	Image       string `json:"image"`
}

// UnmarshalJSON accepts numbers and booleans where strings are expected.
// Spreadsheet-backed indexes emit dates and numeric titles unquoted.
func (r *ContentRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	fields := map[string]*string{
		"path":        &r.Path,
		"template":    &r.Template,
		"title":       &r.Title,
		"description": &r.Description,
		"author":      &r.Author,
		"category":    &r.Category,
		"date":        &r.Date,
		"tags":        &r.Tags,
		"image":       &r.Image,
	}
	for key, dst := range fields {
		v, ok := raw[key]
		if !ok {
			continue
		}
		*dst = scalarString(v)
	}
	return nil
}

func scalarString(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		return n.String()
	}
	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		return strconv.FormatBool(b)
	}
	return ""
}

// IsBlogPost reports whether the record carries the given template.
func (r ContentRecord) IsBlogPost(template string) bool {
	return r.Template == template
}

// TagList splits the comma-separated tags into trimmed, non-empty tokens.
// Order and case are preserved.
func (r ContentRecord) TagList() []string {
	if r.Tags == "" {
		return nil
	}
	var out []string
	for _, t := range strings.Split(r.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ParsedDate parses Date using the known layouts or a Unix timestamp in seconds.
func (r ContentRecord) ParsedDate() (time.Time, bool) {
	return ParseDate(r.Date)
}

// SortTime is the date used for ordering. Unparseable dates become the zero
// time so they sort as the oldest.
func (r ContentRecord) SortTime() time.Time {
	t, _ := r.ParsedDate()
	return t
}

// ImageOr returns the record image or def when it has none.
func (r ContentRecord) ImageOr(def string) string {
	if strings.TrimSpace(r.Image) == "" {
		return def
	}
	return r.Image
}

// ParseDate parses a content index date string.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if isDigits(s) {
		secs, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return time.Unix(secs, 0).UTC(), true
		}
	}
	return time.Time{}, false
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}

// TagFrequency is a tag and the number of times it occurs across blog
// posts. A post listing the same tag twice counts twice.
type TagFrequency struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}
