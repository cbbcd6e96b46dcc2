// Package api implements the read-only blog JSON API using chi.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/blogview/internal/blog"
)

// NewRouter creates a chi router with all API routes mounted.
// events, if non-nil, is mounted at GET /events.
func NewRouter(svc *blog.Service, defaults Defaults, allowOrigin string, events http.Handler) chi.Router {
	h := NewHandler(svc, defaults)

	r := chi.NewRouter()
	r.Use(CORSMiddleware(allowOrigin))

	r.Get("/posts", h.ListPosts)
	r.Get("/tags", h.ListTags)
	r.Get("/post", h.GetPost)

	if events != nil {
		r.Get("/events", events.ServeHTTP)
	}

	return r
}
