// Package blog builds the listing, tag and single-post views on top of the
// content index, the query engine and the tag aggregator.
package blog

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/starford/blogview/internal/apperr"
	"github.com/starford/blogview/internal/contentindex"
	"github.com/starford/blogview/internal/models"
	"github.com/starford/blogview/internal/query"
	"github.com/starford/blogview/internal/tags"
)

const (
	defaultListLimit = 10
	defaultTagMax    = 20
)

// Service instantiates views. Every view instance fetches the index once
// and never shares records with another instance.
type Service struct {
	src      contentindex.Source
	engine   *query.Engine
	template string
	logger   *slog.Logger
}

// NewService creates a new blog service.
func NewService(src contentindex.Source, engine *query.Engine, template string, logger *slog.Logger) *Service {
	if template == "" {
		template = models.BlogPostTemplate
	}
	return &Service{src: src, engine: engine, template: template, logger: logger}
}

// ListOptions is the persisted configuration of a listing view.
type ListOptions struct {
	Limit      int
	// Offset is where the first LoadMore starts.
	Offset     int
	Category   string
	Tag        string
	Search     string
	Pagination bool
}

// ListPage is what one load-more hands to the renderer.
type ListPage struct {
	Posts        []models.ContentRecord `json:"posts"`
	Total        int                    `json:"total"`
	HasMore      bool                   `json:"hasMore"`
	ShowLoadMore bool                   `json:"showLoadMore"`
}

// ListView is one instance of the blog listing.
type ListView struct {
	engine     *query.Engine
	records    []models.ContentRecord
	base       query.Criteria
	pagination bool

	cursor query.Cursor
	busy   atomic.Bool
}

// NewListView fetches the index and prepares a listing. A failed fetch
// yields a view over zero records.
func (s *Service) NewListView(ctx context.Context, opts ListOptions) *ListView {
	if opts.Limit <= 0 {
		opts.Limit = defaultListLimit
	}
	return &ListView{
		engine:  s.engine,
		records: contentindex.FetchOrEmpty(ctx, s.src, s.logger),
		base: query.Criteria{
			Category: opts.Category,
			Tag:      opts.Tag,
			Search:   opts.Search,
		},
		pagination: opts.Pagination,
		cursor:     query.Cursor{Offset: max(opts.Offset, 0), Limit: opts.Limit},
	}
}

// LoadMore returns the next page and advances the view's cursor.
// It returns apperr.ErrBusy while another LoadMore on the same view runs.
func (v *ListView) LoadMore() (ListPage, error) {
	if !v.busy.CompareAndSwap(false, true) {
		return ListPage{}, apperr.ErrBusy
	}
	defer v.busy.Store(false)

	res := v.engine.Query(v.records, v.cursor.Criteria(v.base))
	v.cursor = v.cursor.Advance()
	return ListPage{
		Posts:        res.Posts,
		Total:        res.Total,
		HasMore:      res.HasMore,
		ShowLoadMore: v.pagination && res.HasMore,
	}, nil
}

// Cursor returns the position the next LoadMore will read from.
func (v *ListView) Cursor() query.Cursor {
	return v.cursor
}

// Query runs a one-off query over a fresh fetch. It is the stateless form
// of a listing view used by the API and MCP tools.
func (s *Service) Query(ctx context.Context, c query.Criteria) query.Result {
	return s.engine.Query(contentindex.FetchOrEmpty(ctx, s.src, s.logger), c)
}

// TagOptions is the persisted configuration of a tag view.
type TagOptions struct {
	Max  int
	Step int
}

// TagPage is one disclosure step of the tag view.
type TagPage struct {
	Tags      []models.TagFrequency `json:"tags"`
	Total     int                   `json:"total"`
	Remaining int                   `json:"remaining"`
}

// TagView is one instance of the tag cloud.
type TagView struct {
	all    []models.TagFrequency
	max    int
	step   int
	failed bool

	cursor tags.Cursor
	busy   atomic.Bool
}

// NewTagView fetches the index and ranks its tags.
func (s *Service) NewTagView(ctx context.Context, opts TagOptions) *TagView {
	if opts.Max <= 0 {
		opts.Max = defaultTagMax
	}
	if opts.Step <= 0 {
		opts.Step = tags.DefaultStep
	}
	v := &TagView{max: opts.Max, step: opts.Step}
	records, err := s.src.Fetch(ctx)
	if err != nil {
		s.logger.Warn("content index unavailable", slog.String("error", err.Error()))
		v.failed = true
		v.all = []models.TagFrequency{}
		return v
	}
	v.all = tags.Aggregate(records, s.template)
	return v
}

// Failed reports whether the index fetch failed.
func (v *TagView) Failed() bool {
	return v.failed
}

// Total is the number of distinct tags.
func (v *TagView) Total() int {
	return len(v.all)
}

// Initial discloses the first Max tags, resetting any earlier disclosure.
// It returns apperr.ErrBusy while a ShowMore on the same view runs.
func (v *TagView) Initial() (TagPage, error) {
	if !v.busy.CompareAndSwap(false, true) {
		return TagPage{}, apperr.ErrBusy
	}
	defer v.busy.Store(false)

	page, cur := tags.Initial(v.all, v.max)
	v.cursor = cur
	return v.page(page), nil
}

// ShowMore discloses the next Step tags.
func (v *TagView) ShowMore() (TagPage, error) {
	if !v.busy.CompareAndSwap(false, true) {
		return TagPage{}, apperr.ErrBusy
	}
	defer v.busy.Store(false)

	page, cur := v.cursor.More(v.all, v.step)
	v.cursor = cur
	return v.page(page), nil
}

func (v *TagView) page(t []models.TagFrequency) TagPage {
	return TagPage{Tags: t, Total: len(v.all), Remaining: v.cursor.Remaining(len(v.all))}
}

// Tags returns a page of the ranked tags over a fresh fetch.
func (s *Service) Tags(ctx context.Context, offset, limit int) TagPage {
	all := tags.Aggregate(contentindex.FetchOrEmpty(ctx, s.src, s.logger), s.template)
	page := tags.Paginate(all, offset, limit)
	shown := tags.Cursor{Shown: max(offset, 0) + len(page)}
	return TagPage{Tags: page, Total: len(all), Remaining: shown.Remaining(len(all))}
}

// Post returns the header of the blog post at path. Records with another
// template, such as the listing page, are not found. Unlike the list views
// it reports fetch failures, since there is nothing to degrade to.
func (s *Service) Post(ctx context.Context, path string) (*PostHeader, error) {
	records, err := s.src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.Path == path && r.IsBlogPost(s.template) {
			h := HeaderFromRecord(r)
			return &h, nil
		}
	}
	return nil, fmt.Errorf("blog: post %s: %w", path, apperr.ErrNotFound)
}

