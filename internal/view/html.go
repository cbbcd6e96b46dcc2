// Package view renders blog data as HTML fragments and terminal text.
// It only consumes query, tag and header results, never the raw index.
package view

import (
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/starford/blogview/internal/models"
)

// htmlWriter keeps the first write error so components can write
// unconditionally and report once.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) rawf(format string, args ...any) {
	h.raw(fmt.Sprintf(format, args...))
}

// text writes s escaped for element content and attribute values.
func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// href writes a sanitized, escaped URL.
func (h *htmlWriter) href(u string) {
	h.raw(templ.EscapeString(string(templ.URL(u))))
}

func (h *htmlWriter) itoa(n int) {
	h.raw(strconv.Itoa(n))
}

// FormatDate renders an index date as "January 2, 2006", or "" when it
// cannot be parsed.
func FormatDate(s string) string {
	t, ok := models.ParseDate(s)
	if !ok {
		return ""
	}
	return t.Format("January 2, 2006")
}

// TagURL links to the listing at basePath filtered by tag.
func TagURL(basePath, tag string) string {
	return basePath + "?tag=" + url.QueryEscape(tag)
}
