// Package query filters, sorts and paginates blog post records.
package query

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/starford/blogview/internal/models"
)

// TagMatch selects how the tag criterion is compared with a record's tags.
type TagMatch int

const (
	// TagMatchSubstring keeps records whose raw tags string contains the
	// criterion, so "script" matches "javascript". This is the behaviour
	// the published listing has always had.
	TagMatchSubstring TagMatch = iota
	// TagMatchToken keeps records that carry the criterion as a whole tag.
	TagMatchToken
)

// String returns the config name of m.
func (m TagMatch) String() string {
	if m == TagMatchToken {
		return "token"
	}
	return "substring"
}

// ParseTagMatch parses a config value. Empty means substring.
func ParseTagMatch(s string) (TagMatch, error) {
	switch s {
	case "", "substring":
		return TagMatchSubstring, nil
	case "token":
		return TagMatchToken, nil
	}
	return TagMatchSubstring, fmt.Errorf("query: unknown tag match %q", s)
}

// Criteria selects one page of blog posts.
// Empty Category, Tag and Search disable the matching filter.
type Criteria struct {
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
	Category string `json:"category,omitempty"`
	Tag      string `json:"tag,omitempty"`
	Search   string `json:"search,omitempty"`
}

// Result is one page of posts plus the size of the filtered set.
type Result struct {
	Posts   []models.ContentRecord `json:"posts"`
	Total   int                    `json:"total"`
	HasMore bool                   `json:"hasMore"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithTemplate sets the template that marks blog posts.
func WithTemplate(template string) Option {
	return func(e *Engine) {
		e.template = template
	}
}

// WithListingPath sets the path of the listing page, which is never a result.
func WithListingPath(path string) Option {
	return func(e *Engine) {
		e.listingPath = path
	}
}

// WithTagMatch sets the tag comparison mode.
func WithTagMatch(m TagMatch) Option {
	return func(e *Engine) {
		e.tagMatch = m
	}
}

// Engine runs queries. It holds no per-query state and is safe for concurrent use.
type Engine struct {
	template    string
	listingPath string
	tagMatch    TagMatch
}

// New creates an Engine for "blog-post" records listed at "/blog".
func New(opts ...Option) *Engine {
	e := &Engine{
		template:    models.BlogPostTemplate,
		listingPath: models.DefaultListingPath,
		tagMatch:    TagMatchSubstring,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = New()

// Query runs c against records with the default engine.
func Query(records []models.ContentRecord, c Criteria) Result {
	return defaultEngine.Query(records, c)
}

// Query filters records by c, orders them newest first and cuts the page
// [Offset, Offset+Limit). records is not modified.
func (e *Engine) Query(records []models.ContentRecord, c Criteria) Result {
	type entry struct {
		rec  models.ContentRecord
		date time.Time
	}

	search := ""
	if strings.TrimSpace(c.Search) != "" {
		search = strings.ToLower(c.Search)
	}

	var matched []entry
	for _, r := range records {
		if !e.keep(r, c.Category, c.Tag, search) {
			continue
		}
		matched = append(matched, entry{rec: r, date: r.SortTime()})
	}

	// Stable so records sharing a date keep their index order.
	slices.SortStableFunc(matched, func(a, b entry) int {
		return b.date.Compare(a.date)
	})

	total := len(matched)
	start := max(c.Offset, 0)
	res := Result{
		Posts:   []models.ContentRecord{},
		Total:   total,
		HasMore: start < total && start+c.Limit < total,
	}
	if c.Limit <= 0 || start >= total {
		return res
	}
	end := min(start+c.Limit, total)
	for _, m := range matched[start:end] {
		res.Posts = append(res.Posts, m.rec)
	}
	return res
}

func (e *Engine) keep(r models.ContentRecord, category, tag, search string) bool {
	if !r.IsBlogPost(e.template) || r.Path == e.listingPath {
		return false
	}
	if category != "" && r.Category != category {
		return false
	}
	if tag != "" && !e.hasTag(r, tag) {
		return false
	}
	if search != "" {
		content := strings.ToLower(r.Title + " " + r.Description + " " + r.Tags + " " + r.Author)
		if !strings.Contains(content, search) {
			return false
		}
	}
	return true
}

func (e *Engine) hasTag(r models.ContentRecord, tag string) bool {
	if r.Tags == "" {
		return false
	}
	if e.tagMatch == TagMatchToken {
		return slices.Contains(r.TagList(), tag)
	}
	return strings.Contains(r.Tags, tag)
}
