package view

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/starford/blogview/internal/models"
)

// Tag cloud layouts.
const (
	LayoutCloud = "cloud"
	LayoutList  = "list"
)

// TagCloudData is everything the tag cloud needs for one render.
type TagCloudData struct {
	Title     string
	Layout    string
	BasePath  string
	ShowCount bool
	Tags      []models.TagFrequency
	Remaining int
	// Expanded is set once at least one show-more has been served.
	Expanded bool
	Failed   bool
}

// TagLink renders a single tag link. The count is shown only when it is
// above one.
func TagLink(tag models.TagFrequency, basePath string, showCount bool) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		writeTagLink(h, tag, basePath, showCount)
		return h.err
	})
}

func writeTagLink(h *htmlWriter, tag models.TagFrequency, basePath string, showCount bool) {
	h.raw(`<a href="`)
	h.href(TagURL(basePath, tag.Tag))
	h.raw(`" class="blog-tag" data-count="`)
	h.itoa(tag.Count)
	h.raw(`">`)
	h.text(tag.Tag)
	if showCount && tag.Count > 1 {
		h.rawf(`<span class="blog-tag-count"> (%d)</span>`, tag.Count)
	}
	h.raw(`</a>`)
}

// TagCloud renders the tag block, its empty state or its error state.
func TagCloud(d TagCloudData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		layout := d.Layout
		if layout == "" {
			layout = LayoutCloud
		}
		h.raw(`<div class="blog-tags-container"><h3 class="blog-tags-title">`)
		h.text(d.Title)
		h.raw(`</h3>`)
		switch {
		case d.Failed:
			h.raw(`<p class="blog-tags-error">Unable to load tags. Please try again later.</p>`)
		case len(d.Tags) == 0:
			h.raw(`<p class="blog-tags-empty">No tags found.</p>`)
		default:
			h.raw(`<div class="blog-tags-list `)
			h.text(layout)
			h.raw(`">`)
			for _, t := range d.Tags {
				writeTagLink(h, t, d.BasePath, d.ShowCount)
			}
			h.raw(`</div>`)
			if d.Remaining > 0 {
				h.raw(`<div class="blog-tags-more"><button class="blog-tags-show-more">`)
				h.text(ShowMoreLabel(d.Remaining, d.Expanded))
				h.raw(`</button></div>`)
			}
		}
		h.raw(`</div>`)
		return h.err
	})
}

// ShowMoreLabel is the show-more button text. Before the first expansion
// it carries no count.
func ShowMoreLabel(remaining int, expanded bool) string {
	if !expanded {
		return "Show More Tags"
	}
	return "Show More Tags (" + strconv.Itoa(remaining) + " remaining)"
}
