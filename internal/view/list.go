package view

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/starford/blogview/internal/blog"
	"github.com/starford/blogview/internal/models"
)

// PostCard renders one blog card.
func PostCard(post models.ContentRecord, defaultImage string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		writeCard(h, post, defaultImage)
		return h.err
	})
}

func writeCard(h *htmlWriter, post models.ContentRecord, defaultImage string) {
	h.raw(`<div class="blog-card"><div class="blog-card-image"><a href="`)
	h.href(post.Path)
	h.raw(`" aria-label="Read `)
	h.text(post.Title)
	h.raw(`"><img src="`)
	h.href(post.ImageOr(defaultImage))
	h.raw(`" alt="`)
	h.text(post.Title)
	h.raw(`" loading="lazy"></a></div><div class="blog-card-content"><div class="blog-card-meta"><span class="blog-card-date">`)
	h.text(FormatDate(post.Date))
	h.raw(`</span>`)
	if post.Category != "" {
		h.raw(`<span class="blog-card-category">`)
		h.text(post.Category)
		h.raw(`</span>`)
	}
	h.raw(`</div><h3 class="blog-card-title"><a href="`)
	h.href(post.Path)
	h.raw(`">`)
	h.text(post.Title)
	h.raw(`</a></h3><p class="blog-card-description">`)
	h.text(post.Description)
	h.raw(`</p><div class="blog-card-author">`)
	if post.Author != "" {
		h.raw(`<span>By `)
		h.text(post.Author)
		h.raw(`</span>`)
	}
	h.raw(`</div>`)
	if tags := post.TagList(); len(tags) > 0 {
		h.raw(`<div class="blog-card-tags">`)
		for _, t := range tags {
			h.raw(`<span class="tag">`)
			h.text(t)
			h.raw(`</span>`)
		}
		h.raw(`</div>`)
	}
	h.raw(`</div></div>`)
}

// PostGrid renders the cards of one load-more page followed by the
// load-more button when the page asks for it.
func PostGrid(page blog.ListPage, defaultImage string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div class="blog-list-container"><div class="blog-posts-grid">`)
		for _, p := range page.Posts {
			writeCard(h, p, defaultImage)
		}
		h.raw(`</div>`)
		if page.ShowLoadMore {
			h.raw(`<button class="blog-load-more">Load More Posts</button>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}
