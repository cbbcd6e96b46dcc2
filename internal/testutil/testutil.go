// Package testutil provides shared test helpers for content index fixtures.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/starford/blogview/internal/models"
)

// Post builds a blog post record.
func Post(path, date, tags string) models.ContentRecord {
	return models.ContentRecord{
		Path:     path,
		Template: models.BlogPostTemplate,
		Title:    "Title " + path,
		Date:     date,
		Tags:     tags,
	}
}

// Posts builds n blog posts dated one day apart, newest first,
// starting from 2024-02-n.
func Posts(n int) []models.ContentRecord {
	out := make([]models.ContentRecord, 0, n)
	for i := n; i >= 1; i-- {
		out = append(out, Post(fmt.Sprintf("/blog/post-%02d", i), fmt.Sprintf("2024-02-%02d", i), "go"))
	}
	return out
}

// IndexJSON encodes records as an index document.
func IndexJSON(t *testing.T, records []models.ContentRecord) []byte {
	t.Helper()
	data, err := json.Marshal(map[string]any{
		"total":  len(records),
		"offset": 0,
		"limit":  len(records),
		"data":   records,
	})
	if err != nil {
		t.Fatal(err)
	}
	return data
}

// WriteIndex writes records to a temporary index file and returns its path.
func WriteIndex(t *testing.T, records []models.ContentRecord) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "query-index.json")
	if err := os.WriteFile(path, IndexJSON(t, records), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// IndexServer serves records at /query-index.json and counts requests.
func IndexServer(t *testing.T, records []models.ContentRecord) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	body := IndexJSON(t, records)
	hits := new(atomic.Int32)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/query-index.json" {
			http.NotFound(w, r)
			return
		}
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv, hits
}

// FailingServer answers every request with status.
func FailingServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv
}
