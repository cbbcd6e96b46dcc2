package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/starford/blogview/internal/apperr"
	"github.com/starford/blogview/internal/blog"
	"github.com/starford/blogview/internal/query"
)

// Handler holds API route handlers.
type Handler struct {
	svc      *blog.Service
	defaults Defaults
}

// NewHandler creates a new Handler.
func NewHandler(svc *blog.Service, defaults Defaults) *Handler {
	if defaults.Limit <= 0 {
		defaults.Limit = 10
	}
	if defaults.TagLimit <= 0 {
		defaults.TagLimit = 20
	}
	return &Handler{svc: svc, defaults: defaults}
}

// ListPosts handles GET /api/posts.
//
//	@Summary		List blog posts, newest first
//	@Tags			posts
//	@Produce		json
//	@Param			limit		query		int		false	"Page size"
//	@Param			offset		query		int		false	"Page offset"
//	@Param			category	query		string	false	"Exact category"
//	@Param			tag			query		string	false	"Tag filter"
//	@Param			q			query		string	false	"Case-insensitive search"
//	@Success		200			{object}	PostListResponse
//	@Router			/posts [get]
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res := h.svc.Query(r.Context(), query.Criteria{
		Limit:    queryInt(r, "limit", h.defaults.Limit),
		Offset:   queryInt(r, "offset", 0),
		Category: q.Get("category"),
		Tag:      q.Get("tag"),
		Search:   q.Get("q"),
	})
	writeJSON(w, http.StatusOK, res)
}

// ListTags handles GET /api/tags.
//
//	@Summary		List tags ranked by frequency
//	@Tags			tags
//	@Produce		json
//	@Param			offset	query		int	false	"Page offset"
//	@Param			limit	query		int	false	"Page size"
//	@Success		200		{object}	TagListResponse
//	@Router			/tags [get]
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	page := h.svc.Tags(r.Context(), queryInt(r, "offset", 0), queryInt(r, "limit", h.defaults.TagLimit))
	writeJSON(w, http.StatusOK, page)
}

// GetPost handles GET /api/post.
//
//	@Summary		Get the header of a single post
//	@Tags			posts
//	@Produce		json
//	@Param			path	query		string	true	"Post path"
//	@Success		200		{object}	PostResponse
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Failure		502		{object}	errResponse
//	@Router			/post [get]
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	hdr, err := h.svc.Post(r.Context(), path)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		case errors.Is(err, apperr.ErrIndexUnavailable):
			slog.Warn("get post failed", slog.String("path", path), slog.String("error", err.Error()))
			writeJSON(w, http.StatusBadGateway, errorBody("content index unavailable"))
		default:
			slog.Error("get post failed", slog.String("path", path), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, hdr)
}
