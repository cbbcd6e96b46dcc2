package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/starford/blogview/internal/blog"
	"github.com/starford/blogview/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	metaStyle  = lipgloss.NewStyle().Faint(true)
	tagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	countStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	blockStyle = lipgloss.NewStyle().PaddingLeft(2)
)

// RenderPostsText writes a listing page for terminals.
func RenderPostsText(w io.Writer, page blog.ListPage) error {
	if len(page.Posts) == 0 {
		_, err := fmt.Fprintln(w, metaStyle.Render("No posts found."))
		return err
	}
	var b strings.Builder
	for _, p := range page.Posts {
		b.WriteString(titleStyle.Render(p.Title))
		b.WriteByte('\n')
		b.WriteString(blockStyle.Render(postMeta(p)))
		b.WriteByte('\n')
		if p.Description != "" {
			b.WriteString(blockStyle.Render(p.Description))
			b.WriteByte('\n')
		}
		if tags := p.TagList(); len(tags) > 0 {
			b.WriteString(blockStyle.Render(tagStyle.Render(strings.Join(tags, " · "))))
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%s\n", metaStyle.Render(fmt.Sprintf("%d of %d posts", len(page.Posts), page.Total)))
	_, err := io.WriteString(w, b.String())
	return err
}

func postMeta(p models.ContentRecord) string {
	parts := []string{p.Path}
	if d := FormatDate(p.Date); d != "" {
		parts = append(parts, d)
	}
	if p.Category != "" {
		parts = append(parts, p.Category)
	}
	if p.Author != "" {
		parts = append(parts, "by "+p.Author)
	}
	return metaStyle.Render(strings.Join(parts, "  "))
}

// RenderTagsText writes ranked tags for terminals.
func RenderTagsText(w io.Writer, page blog.TagPage, showCount bool) error {
	if len(page.Tags) == 0 {
		_, err := fmt.Fprintln(w, metaStyle.Render("No tags found."))
		return err
	}
	var b strings.Builder
	for _, t := range page.Tags {
		b.WriteString(tagStyle.Render(t.Tag))
		if showCount {
			b.WriteString(" " + countStyle.Render(fmt.Sprintf("(%d)", t.Count)))
		}
		b.WriteByte('\n')
	}
	if page.Remaining > 0 {
		fmt.Fprintf(&b, "%s\n", metaStyle.Render(fmt.Sprintf("%d more", page.Remaining)))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderHeaderText writes a post header for terminals.
func RenderHeaderText(w io.Writer, hdr blog.PostHeader) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render(hdr.Title))
	b.WriteByte('\n')
	var meta []string
	if d := FormatDate(hdr.Date); d != "" {
		meta = append(meta, d)
	}
	if hdr.Category != "" {
		meta = append(meta, hdr.Category)
	}
	if hdr.Author != "" {
		meta = append(meta, "by "+hdr.Author)
	}
	if hdr.ReadingMinutes > 0 {
		meta = append(meta, fmt.Sprintf("%d min read", hdr.ReadingMinutes))
	}
	if len(meta) > 0 {
		b.WriteString(blockStyle.Render(metaStyle.Render(strings.Join(meta, "  "))))
		b.WriteByte('\n')
	}
	if hdr.Description != "" {
		b.WriteString(blockStyle.Render(hdr.Description))
		b.WriteByte('\n')
	}
	if len(hdr.Tags) > 0 {
		b.WriteString(blockStyle.Render(tagStyle.Render(strings.Join(hdr.Tags, " · "))))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
