package view

import (
	"context"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"github.com/starford/blogview/internal/blog"
)

// ShareLink is one third-party sharing endpoint for a page.
type ShareLink struct {
	Network string
	Label   string
	URL     string
}

// ShareLinks builds the Twitter, LinkedIn and Facebook share URLs for pageURL.
func ShareLinks(pageURL, title string) []ShareLink {
	u := url.QueryEscape(pageURL)
	return []ShareLink{
		{Network: "twitter", Label: "Twitter", URL: "https://twitter.com/intent/tweet?url=" + u + "&text=" + url.QueryEscape(title)},
		{Network: "linkedin", Label: "LinkedIn", URL: "https://www.linkedin.com/sharing/share-offsite/?url=" + u},
		{Network: "facebook", Label: "Facebook", URL: "https://www.facebook.com/sharer/sharer.php?u=" + u},
	}
}

// PostHeader renders the header shown above a post.
func PostHeader(hdr blog.PostHeader, basePath string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<header class="blog-post-header"><div class="blog-post-meta">`)
		if hdr.Category != "" {
			h.raw(`<span class="blog-post-category">`)
			h.text(hdr.Category)
			h.raw(`</span>`)
		}
		h.raw(`<time class="blog-post-date" datetime="`)
		h.text(hdr.Date)
		h.raw(`">`)
		h.text(FormatDate(hdr.Date))
		h.raw(`</time>`)
		if hdr.ReadingMinutes > 0 {
			h.raw(`<span class="blog-post-reading-time">`)
			h.itoa(hdr.ReadingMinutes)
			h.raw(` min read</span>`)
		}
		h.raw(`</div><h1 class="blog-post-title">`)
		h.text(hdr.Title)
		h.raw(`</h1>`)
		if hdr.Description != "" {
			h.raw(`<p class="blog-post-description">`)
			h.text(hdr.Description)
			h.raw(`</p>`)
		}
		h.raw(`<div class="blog-post-author">`)
		if hdr.Author != "" {
			h.raw(`<div class="author-info">`)
			if hdr.AuthorImage != "" {
				h.raw(`<img src="`)
				h.href(hdr.AuthorImage)
				h.raw(`" alt="`)
				h.text(hdr.Author)
				h.raw(`" class="author-avatar">`)
			}
			h.raw(`<div class="author-details"><span class="author-name">By `)
			h.text(hdr.Author)
			h.raw(`</span>`)
			if hdr.AuthorBio != "" {
				h.raw(`<span class="author-bio">`)
				h.text(hdr.AuthorBio)
				h.raw(`</span>`)
			}
			h.raw(`</div></div>`)
		}
		h.raw(`</div>`)
		if len(hdr.Tags) > 0 {
			h.raw(`<div class="blog-post-tags">`)
			for _, t := range hdr.Tags {
				h.raw(`<a href="`)
				h.href(TagURL(basePath, t))
				h.raw(`" class="tag">`)
				h.text(t)
				h.raw(`</a>`)
			}
			h.raw(`</div>`)
		}
		h.raw(`</header>`)
		return h.err
	})
}

// Share renders the social sharing block for the page at pageURL.
func Share(pageURL, title string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div class="blog-post-social"><h3>Share this post</h3><div class="social-buttons">`)
		for _, l := range ShareLinks(pageURL, title) {
			h.raw(`<a href="`)
			h.href(l.URL)
			h.raw(`" target="_blank" rel="noopener" class="social-btn `)
			h.text(l.Network)
			h.raw(`"><span class="icon icon-`)
			h.text(l.Network)
			h.raw(`"></span> `)
			h.text(l.Label)
			h.raw(`</a>`)
		}
		h.raw(`</div></div>`)
		return h.err
	})
}

// BackNav renders the link back to the listing.
func BackNav(basePath string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<nav class="blog-post-navigation"><div class="nav-container"><a href="`)
		h.href(basePath)
		h.raw(`" class="back-to-blog">← Back to Blog</a></div></nav>`)
		return h.err
	})
}
