package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/a-h/templ"

	"github.com/starford/blogview/internal/blog"
	"github.com/starford/blogview/internal/models"
	"github.com/starford/blogview/internal/parser"
	"github.com/starford/blogview/internal/query"
	"github.com/starford/blogview/internal/view"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatHTML = "html"
	FormatText = "text"
)

// ErrUnknownFormat is returned for a format other than json, html or text.
var ErrUnknownFormat = errors.New("unknown format")

func checkFormat(format string) error {
	switch format {
	case FormatJSON, FormatHTML, FormatText:
		return nil
	}
	return fmt.Errorf("%w %q", ErrUnknownFormat, format)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderHTML(ctx context.Context, w io.Writer, components ...templ.Component) error {
	for _, c := range components {
		if err := c.Render(ctx, w); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// ListParams selects the posts printed by ListPosts. Zero values fall back
// to the list section of the config.
type ListParams struct {
	Limit    int
	Offset   int
	Category string
	Tag      string
	Search   string
	// All keeps loading more, starting at Offset, until nothing is left.
	All    bool
	Format string
}

// ListPosts prints one page of posts, or every page with All.
func ListPosts(ctx context.Context, w io.Writer, p ListParams, opts ...Option) error {
	if err := checkFormat(p.Format); err != nil {
		return err
	}
	app, err := newApplication(opts...)
	if err != nil {
		return err
	}
	cfg := app.config
	if p.Limit <= 0 {
		p.Limit = cfg.List.Limit
	}
	if p.Category == "" {
		p.Category = cfg.List.Category
	}
	if p.Tag == "" {
		p.Tag = cfg.List.Tag
	}

	svc := app.service()
	var page blog.ListPage
	if p.All {
		page, err = loadAll(svc.NewListView(ctx, blog.ListOptions{
			Limit:      p.Limit,
			Offset:     p.Offset,
			Category:   p.Category,
			Tag:        p.Tag,
			Search:     p.Search,
			Pagination: cfg.List.Pagination,
		}))
		if err != nil {
			return err
		}
	} else {
		res := svc.Query(ctx, query.Criteria{
			Limit:    p.Limit,
			Offset:   p.Offset,
			Category: p.Category,
			Tag:      p.Tag,
			Search:   p.Search,
		})
		page = blog.ListPage{
			Posts:        res.Posts,
			Total:        res.Total,
			HasMore:      res.HasMore,
			ShowLoadMore: cfg.List.Pagination && res.HasMore,
		}
	}

	switch p.Format {
	case FormatHTML:
		return renderHTML(ctx, w, view.PostGrid(page, cfg.Site.DefaultImage))
	case FormatText:
		return view.RenderPostsText(w, page)
	}
	return writeJSON(w, page)
}

// loadAll drains a listing view one load-more at a time.
func loadAll(v *blog.ListView) (blog.ListPage, error) {
	var all blog.ListPage
	for {
		page, err := v.LoadMore()
		if err != nil {
			return blog.ListPage{}, err
		}
		all.Posts = append(all.Posts, page.Posts...)
		all.Total = page.Total
		if !page.HasMore {
			break
		}
	}
	if all.Posts == nil {
		all.Posts = []models.ContentRecord{}
	}
	return all, nil
}

// TagParams selects the tags printed by ListTags. Zero values fall back to
// the tags section of the config.
type TagParams struct {
	Max int
	// All discloses every tag through repeated show-more steps.
	All    bool
	Format string
}

// ListTags prints the ranked tags the way a tag cloud discloses them.
func ListTags(ctx context.Context, w io.Writer, p TagParams, opts ...Option) error {
	if err := checkFormat(p.Format); err != nil {
		return err
	}
	app, err := newApplication(opts...)
	if err != nil {
		return err
	}
	cfg := app.config
	if p.Max <= 0 {
		p.Max = cfg.Tags.Max
	}

	v := app.service().NewTagView(ctx, blog.TagOptions{Max: p.Max, Step: cfg.Tags.Step})
	page, err := v.Initial()
	if err != nil {
		return err
	}
	expanded := false
	for p.All && page.Remaining > 0 {
		more, err := v.ShowMore()
		if err != nil {
			return err
		}
		page.Tags = append(page.Tags, more.Tags...)
		page.Remaining = more.Remaining
		expanded = true
	}

	switch p.Format {
	case FormatHTML:
		return renderHTML(ctx, w, view.TagCloud(app.tagCloud(v, page, expanded)))
	case FormatText:
		if v.Failed() {
			return errors.New("content index unavailable")
		}
		return view.RenderTagsText(w, page, cfg.Tags.ShowCount)
	}
	return writeJSON(w, page)
}

func (a *application) tagCloud(v *blog.TagView, page blog.TagPage, expanded bool) view.TagCloudData {
	cfg := a.config
	return view.TagCloudData{
		Title:     cfg.Tags.Title,
		Layout:    cfg.Tags.Layout,
		BasePath:  cfg.Site.BasePath,
		ShowCount: cfg.Tags.ShowCount,
		Tags:      page.Tags,
		Remaining: page.Remaining,
		Expanded:  expanded,
		Failed:    v.Failed(),
	}
}

// PostParams selects the post printed by ShowPost. At least one of Path
// and BodyFile is set.
type PostParams struct {
	Path string
	// BodyFile is an authored Markdown post; its frontmatter overrides the
	// index record and its body sets the reading time.
	BodyFile string
	Format   string
}

// ShowPost prints the header of one post.
func ShowPost(ctx context.Context, w io.Writer, p PostParams, opts ...Option) error {
	if err := checkFormat(p.Format); err != nil {
		return err
	}
	if p.Path == "" && p.BodyFile == "" {
		return errors.New("post: path or body file is required")
	}
	app, err := newApplication(opts...)
	if err != nil {
		return err
	}

	hdr, err := app.postHeader(ctx, p.Path, p.BodyFile)
	if err != nil {
		return err
	}

	cfg := app.config
	switch p.Format {
	case FormatHTML:
		pageURL := strings.TrimRight(cfg.Site.URL, "/") + hdr.Path
		return renderHTML(ctx, w,
			view.PostHeader(hdr, cfg.Site.BasePath),
			view.Share(pageURL, hdr.Title),
			view.BackNav(cfg.Site.BasePath),
		)
	case FormatText:
		return view.RenderHeaderText(w, hdr)
	}
	return writeJSON(w, hdr)
}

func (a *application) postHeader(ctx context.Context, path, bodyFile string) (blog.PostHeader, error) {
	var hdr blog.PostHeader
	if path != "" {
		found, err := a.service().Post(ctx, path)
		if err != nil {
			return blog.PostHeader{}, err
		}
		hdr = *found
	}
	if bodyFile == "" {
		return hdr, nil
	}

	data, err := os.ReadFile(bodyFile)
	if err != nil {
		return blog.PostHeader{}, fmt.Errorf("post: read body: %w", err)
	}
	res := parser.Parse(data)
	authored := blog.HeaderFromMetadata(res.Metadata, res.Title)
	authored.ReadingMinutes = blog.ReadingTime(res.Body)
	out := hdr.Overlay(authored)
	if out.Tags == nil {
		out.Tags = []string{}
	}
	return out, nil
}
