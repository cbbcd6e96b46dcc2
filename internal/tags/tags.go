// Package tags derives a frequency-ranked tag vocabulary from blog posts.
package tags

import (
	"slices"

	"github.com/starford/blogview/internal/models"
)

// DefaultStep is how many tags one show-more reveals.
const DefaultStep = 10

// Aggregate counts tag usage over records carrying template. Tags are
// trimmed and case-sensitive; empty tags are dropped. The result is ordered
// by count descending, ties in first-seen order.
func Aggregate(records []models.ContentRecord, template string) []models.TagFrequency {
	out := []models.TagFrequency{}
	pos := make(map[string]int)
	for _, r := range records {
		if !r.IsBlogPost(template) {
			continue
		}
		for _, t := range r.TagList() {
			if i, ok := pos[t]; ok {
				out[i].Count++
				continue
			}
			pos[t] = len(out)
			out = append(out, models.TagFrequency{Tag: t, Count: 1})
		}
	}
	slices.SortStableFunc(out, func(a, b models.TagFrequency) int {
		return b.Count - a.Count
	})
	return out
}

// Paginate returns tags[offset:offset+pageSize], clamped to the slice.
func Paginate(tags []models.TagFrequency, offset, pageSize int) []models.TagFrequency {
	offset = max(offset, 0)
	if pageSize <= 0 || offset >= len(tags) {
		return []models.TagFrequency{}
	}
	end := min(offset+pageSize, len(tags))
	return slices.Clone(tags[offset:end])
}

// Cursor tracks how many tags of a ranked list have been disclosed.
type Cursor struct {
	Shown int `json:"shown"`
}

// Initial discloses the first limit tags.
func Initial(tags []models.TagFrequency, limit int) ([]models.TagFrequency, Cursor) {
	page := Paginate(tags, 0, limit)
	return page, Cursor{Shown: len(page)}
}

// More discloses the next step tags after the ones already shown.
func (c Cursor) More(tags []models.TagFrequency, step int) ([]models.TagFrequency, Cursor) {
	if step <= 0 {
		step = DefaultStep
	}
	page := Paginate(tags, c.Shown, step)
	return page, Cursor{Shown: c.Shown + len(page)}
}

// Remaining is the number of tags not yet disclosed out of total.
func (c Cursor) Remaining(total int) int {
	return max(total-c.Shown, 0)
}
