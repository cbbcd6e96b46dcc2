// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes read-only blog tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/blogview/internal/apperr"
	"github.com/starford/blogview/internal/blog"
	"github.com/starford/blogview/internal/query"
)

const indexFormatURI = "blogview://index-format"

// Server wraps the MCP server with blog tools.
type Server struct {
	mcp      *server.MCPServer
	svc      *blog.Service
	limit    int
	tagLimit int
}

// New creates a new MCP server with all blog tools registered. limit and
// tagLimit are the page sizes used when a call gives none.
func New(svc *blog.Service, version string, limit, tagLimit int) *Server {
	s := &Server{svc: svc, limit: limit, tagLimit: tagLimit}

	s.mcp = server.NewMCPServer(
		"blogview",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_posts",
		mcp.WithDescription("List blog posts newest first. Filters combine; empty filters are ignored. "+
			"Returns {posts, total, hasMore}."),
		mcp.WithNumber("limit", mcp.Description("Page size")),
		mcp.WithNumber("offset", mcp.Description("Number of posts to skip")),
		mcp.WithString("category", mcp.Description("Exact category")),
		mcp.WithString("tag", mcp.Description("Tag to filter by")),
		mcp.WithString("search", mcp.Description("Case-insensitive text in title, description, tags or author")),
	), s.listPosts)

	s.mcp.AddTool(mcp.NewTool("list_tags",
		mcp.WithDescription("List tags ranked by the number of posts carrying them. Returns {tags, total, remaining}."),
		mcp.WithNumber("offset", mcp.Description("Number of tags to skip")),
		mcp.WithNumber("limit", mcp.Description("Page size")),
	), s.listTags)

	s.mcp.AddTool(mcp.NewTool("get_post",
		mcp.WithDescription("Get the header of one post: title, date, author, category, tags, image."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Post path, e.g. /blog/hello-world")),
	), s.getPost)

	s.mcp.AddResource(
		mcp.NewResource(indexFormatURI, "Content Index Format",
			mcp.WithResourceDescription("Shape of the content index and how queries match it."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readIndexFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listPosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res := s.svc.Query(ctx, query.Criteria{
		Limit:    req.GetInt("limit", s.limit),
		Offset:   req.GetInt("offset", 0),
		Category: req.GetString("category", ""),
		Tag:      req.GetString("tag", ""),
		Search:   req.GetString("search", ""),
	})
	return jsonResult(res)
}

func (s *Server) listTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page := s.svc.Tags(ctx, req.GetInt("offset", 0), req.GetInt("limit", s.tagLimit))
	return jsonResult(page)
}

func (s *Server) getPost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	hdr, err := s.svc.Post(ctx, path)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	case err != nil:
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(hdr)
}

func (s *Server) readIndexFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      indexFormatURI,
			MIMEType: "text/markdown",
			Text:     IndexFormatContract,
		},
	}, nil
}
