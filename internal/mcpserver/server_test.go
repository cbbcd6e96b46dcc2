package mcpserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/blogview/internal/blog"
	"github.com/starford/blogview/internal/contentindex"
	"github.com/starford/blogview/internal/models"
	"github.com/starford/blogview/internal/query"
	"github.com/starford/blogview/internal/testutil"
)

func testServer(t *testing.T, records []models.ContentRecord) *Server {
	t.Helper()
	path := testutil.WriteIndex(t, records)
	return serverFor(contentindex.NewFileSource(path))
}

func serverFor(src contentindex.Source) *Server {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	svc := blog.NewService(src, query.New(), models.BlogPostTemplate, logger)
	return New(svc, "test", 2, 2)
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct call helper, so handlers are invoked directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "list_posts":
		result, err = srv.listPosts(ctx, req)
	case "list_tags":
		result, err = srv.listTags(ctx, req)
	case "get_post":
		result, err = srv.getPost(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestListPosts(t *testing.T) {
	srv := testServer(t, testutil.Posts(3))

	r := callTool(t, srv, "list_posts", map[string]any{})
	if r.IsError {
		t.Fatalf("unexpected error: %s", resultText(r))
	}
	var res query.Result
	if err := json.Unmarshal([]byte(resultText(r)), &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Posts) != 2 || res.Total != 3 || !res.HasMore {
		t.Errorf("got %d posts total %d hasMore %v", len(res.Posts), res.Total, res.HasMore)
	}

	// JSON numbers arrive as float64.
	r = callTool(t, srv, "list_posts", map[string]any{"offset": float64(2), "limit": float64(5)})
	if err := json.Unmarshal([]byte(resultText(r)), &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Posts) != 1 || res.Posts[0].Path != "/blog/post-01" || res.HasMore {
		t.Errorf("second page = %+v", res)
	}
}

func TestListPostsSearch(t *testing.T) {
	records := testutil.Posts(3)
	records[1].Description = "All about Kubernetes"
	srv := testServer(t, records)

	r := callTool(t, srv, "list_posts", map[string]any{"search": "kubernetes"})
	var res query.Result
	if err := json.Unmarshal([]byte(resultText(r)), &res); err != nil {
		t.Fatal(err)
	}
	if res.Total != 1 || res.Posts[0].Path != records[1].Path {
		t.Errorf("search result = %+v", res)
	}
}

func TestListTags(t *testing.T) {
	srv := testServer(t, []models.ContentRecord{
		testutil.Post("/blog/a", "2024-01-01", "go, web, cli"),
		testutil.Post("/blog/b", "2024-01-02", "web"),
	})

	r := callTool(t, srv, "list_tags", map[string]any{})
	var page blog.TagPage
	if err := json.Unmarshal([]byte(resultText(r)), &page); err != nil {
		t.Fatal(err)
	}
	want := []models.TagFrequency{{Tag: "web", Count: 2}, {Tag: "go", Count: 1}}
	if diff := cmp.Diff(want, page.Tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
	if page.Remaining != 1 {
		t.Errorf("remaining = %d", page.Remaining)
	}
}

func TestGetPost(t *testing.T) {
	srv := testServer(t, testutil.Posts(2))

	r := callTool(t, srv, "get_post", map[string]any{"path": "/blog/post-02"})
	if r.IsError {
		t.Fatalf("unexpected error: %s", resultText(r))
	}
	var hdr blog.PostHeader
	if err := json.Unmarshal([]byte(resultText(r)), &hdr); err != nil {
		t.Fatal(err)
	}
	if hdr.Title != "Title /blog/post-02" {
		t.Errorf("title = %q", hdr.Title)
	}
}

func TestGetPostMissing(t *testing.T) {
	srv := testServer(t, testutil.Posts(1))
	r := callTool(t, srv, "get_post", map[string]any{"path": "/blog/nope"})
	if !r.IsError || !strings.Contains(resultText(r), "not found") {
		t.Errorf("expected not found error, got %q", resultText(r))
	}

	r = callTool(t, srv, "get_post", map[string]any{})
	if !r.IsError {
		t.Error("expected error without path")
	}
}

func TestGetPostIndexDown(t *testing.T) {
	srv := serverFor(contentindex.NewHTTPSource(testutil.FailingServer(t, http.StatusBadGateway).URL))
	r := callTool(t, srv, "get_post", map[string]any{"path": "/blog/a"})
	if !r.IsError {
		t.Error("expected error when the index is down")
	}
}

func TestIndexFormatResource(t *testing.T) {
	srv := testServer(t, nil)
	contents, err := srv.readIndexFormatResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok || !strings.Contains(text.Text, "query-index.json") {
		t.Errorf("unexpected resource %+v", contents[0])
	}
}
