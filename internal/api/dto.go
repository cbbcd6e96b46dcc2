package api

import (
	"github.com/starford/blogview/internal/blog"
	"github.com/starford/blogview/internal/query"
)

// Defaults fill in query parameters a request leaves out.
type Defaults struct {
	Limit    int
	TagLimit int
}

// PostListResponse is one page of posts (aliased from the query layer).
type PostListResponse = query.Result

// TagListResponse is one page of ranked tags (aliased from the domain layer).
type TagListResponse = blog.TagPage

// PostResponse is the header of a single post (aliased from the domain layer).
type PostResponse = blog.PostHeader
