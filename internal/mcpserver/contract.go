package mcpserver

// IndexFormatContract describes the content index the tools read, so
// clients know what list_posts and get_post return.
const IndexFormatContract = `# Blog Content Index Format

The site publishes a JSON document (usually ` + "`" + `/query-index.json` + "`" + `):

` + "```" + `json
{
  "total": 2,
  "offset": 0,
  "limit": 2,
  "data": [
    {
      "path": "/blog/hello-world",
      "template": "blog-post",
      "title": "Hello World",
      "description": "First post.",
      "author": "Ann",
      "category": "News",
      "date": "2024-01-15",
      "tags": "go, web",
      "image": "/media/hello.jpg"
    }
  ]
}
` + "```" + `

## Rules

1. Only records whose ` + "`" + `template` + "`" + ` is the blog post template are posts.
2. The listing page itself (` + "`" + `/blog` + "`" + `) is never a post.
3. ` + "`" + `tags` + "`" + ` is one comma-separated string. Tokens are trimmed and keep
   their case.
4. ` + "`" + `date` + "`" + ` is ISO-8601, a long-form date such as ` + "`" + `January 15, 2024` + "`" + `,
   or Unix seconds. Posts with an unreadable date sort last.
5. Every field is optional; numbers and booleans are read as text.

## Queries

- Posts are ordered newest first and paged with ` + "`" + `limit` + "`" + `/` + "`" + `offset` + "`" + `.
- ` + "`" + `category` + "`" + ` matches exactly; ` + "`" + `tag` + "`" + ` matches anywhere in the raw tags
  string unless the server runs with token matching; ` + "`" + `search` + "`" + ` is a
  case-insensitive substring of title, description, tags and author.
- Tags are ranked by how many posts carry them; ties keep first-seen order.
`
