package blog

import (
	"math"
	"strings"

	"github.com/starford/blogview/internal/models"
)

const wordsPerMinute = 200

// PostHeader is the metadata shown above a single post.
type PostHeader struct {
	Path           string   `json:"path,omitempty"`
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	Category       string   `json:"category,omitempty"`
	Date           string   `json:"date,omitempty"`
	Author         string   `json:"author,omitempty"`
	AuthorImage    string   `json:"authorImage,omitempty"`
	AuthorBio      string   `json:"authorBio,omitempty"`
	Image          string   `json:"image,omitempty"`
	Tags           []string `json:"tags"`
	ReadingMinutes int      `json:"readingMinutes,omitempty"`
}

// HeaderFromRecord builds a header from an index record.
func HeaderFromRecord(r models.ContentRecord) PostHeader {
	return PostHeader{
		Path:        r.Path,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Date:        r.Date,
		Author:      r.Author,
		Image:       r.Image,
		Tags:        nonNilSlice(r.TagList()),
	}
}

// HeaderFromMetadata builds a header from the key/value rows authored on
// the post page. Keys are trimmed and lowercased, values trimmed; rows with
// an empty key or value are skipped and later rows win. fallbackTitle is
// used when no title row exists.
func HeaderFromMetadata(rows [][2]string, fallbackTitle string) PostHeader {
	meta := make(map[string]string, len(rows))
	for _, row := range rows {
		key := strings.ToLower(strings.TrimSpace(row[0]))
		value := strings.TrimSpace(row[1])
		if key == "" || value == "" {
			continue
		}
		meta[key] = value
	}
	h := PostHeader{
		Title:       meta["title"],
		Description: meta["description"],
		Category:    meta["category"],
		Date:        meta["date"],
		Author:      meta["author"],
		AuthorImage: meta["author-image"],
		AuthorBio:   meta["author-bio"],
		Image:       meta["image"],
		Tags:        nonNilSlice(models.ContentRecord{Tags: meta["tags"]}.TagList()),
	}
	if h.Title == "" {
		h.Title = fallbackTitle
	}
	return h
}

// ReadingTime estimates minutes to read text at 200 words per minute.
// Any text, even empty, reads in at least one minute.
func ReadingTime(text string) int {
	words := len(strings.Fields(text))
	return max(int(math.Ceil(float64(words)/wordsPerMinute)), 1)
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Overlay returns h with every non-empty field of o written over it.
func (h PostHeader) Overlay(o PostHeader) PostHeader {
	for _, f := range []struct{ dst, src *string }{
		{&h.Path, &o.Path},
		{&h.Title, &o.Title},
		{&h.Description, &o.Description},
		{&h.Category, &o.Category},
		{&h.Date, &o.Date},
		{&h.Author, &o.Author},
		{&h.AuthorImage, &o.AuthorImage},
		{&h.AuthorBio, &o.AuthorBio},
		{&h.Image, &o.Image},
	} {
		if *f.src != "" {
			*f.dst = *f.src
		}
	}
	if len(o.Tags) > 0 {
		h.Tags = o.Tags
	}
	if o.ReadingMinutes > 0 {
		h.ReadingMinutes = o.ReadingMinutes
	}
	return h
}
