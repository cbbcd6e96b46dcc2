// Package contentindex fetches and parses the site's flat content index.
package contentindex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/starford/blogview/internal/apperr"
	"github.com/starford/blogview/internal/models"
)

// IndexFile is the well-known name of the content index resource.
const IndexFile = "query-index.json"

// Source is the interface for content index retrieval.
// Consumers should depend on this interface rather than a concrete source.
type Source interface {
	// Fetch retrieves the full record list. Failures wrap apperr.ErrIndexUnavailable.
	Fetch(ctx context.Context) ([]models.ContentRecord, error)
}

// Verify sources satisfy Source at compile time.
var (
	_ Source = (*HTTPSource)(nil)
	_ Source = (*FileSource)(nil)
)

type document struct {
	Data []models.ContentRecord `json:"data"`
}

// Parse decodes an index document of the form {"data": [...]}.
// Other top-level keys are ignored.
func Parse(r io.Reader) ([]models.ContentRecord, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("contentindex: decode: %w: %w", apperr.ErrIndexUnavailable, err)
	}
	if doc.Data == nil {
		return []models.ContentRecord{}, nil
	}
	return doc.Data, nil
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithClient sets the HTTP client used for fetching.
func WithClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		s.client = c
	}
}

// WithTimeout bounds each fetch. Zero means no timeout beyond ctx.
func WithTimeout(d time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		s.timeout = d
	}
}

// HTTPSource fetches the index over HTTP.
type HTTPSource struct {
	url     string
	client  *http.Client
	timeout time.Duration
}

// NewHTTPSource creates a source for the given URL. A URL whose path does
// not end in ".json" is treated as the site root and gets IndexFile appended
// to its path; the query string is kept.
func NewHTTPSource(rawURL string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{url: resolveIndexURL(rawURL), client: http.DefaultClient}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func resolveIndexURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		if strings.HasSuffix(rawURL, ".json") {
			return rawURL
		}
		return strings.TrimRight(rawURL, "/") + "/" + IndexFile
	}
	if strings.HasSuffix(u.Path, ".json") {
		return u.String()
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/" + IndexFile
	u.RawPath = ""
	return u.String()
}

// URL returns the resolved index URL.
func (s *HTTPSource) URL() string {
	return s.url
}

// Fetch performs a single GET of the index.
func (s *HTTPSource) Fetch(ctx context.Context) ([]models.ContentRecord, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("contentindex: new request: %w: %w", apperr.ErrIndexUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("contentindex: get %s: %w: %w", s.url, apperr.ErrIndexUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("contentindex: get %s: %w: status %d", s.url, apperr.ErrIndexUnavailable, resp.StatusCode)
	}
	return Parse(resp.Body)
}

// FileSource reads the index from a local file.
type FileSource struct {
	path string
}

// NewFileSource creates a source backed by the file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the index file path.
func (s *FileSource) Path() string {
	return s.path
}

// Fetch reads and parses the file.
func (s *FileSource) Fetch(_ context.Context) ([]models.ContentRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("contentindex: open: %w: %w", apperr.ErrIndexUnavailable, err)
	}
	defer f.Close()
	return Parse(f)
}

// FetchOrEmpty fetches from src and substitutes zero records on failure.
// The failure is logged, never returned.
func FetchOrEmpty(ctx context.Context, src Source, logger *slog.Logger) []models.ContentRecord {
	records, err := src.Fetch(ctx)
	if err != nil {
		logger.Warn("content index unavailable", slog.String("error", err.Error()))
		return []models.ContentRecord{}
	}
	return records
}
