// Package parser reads an authored Markdown post: its YAML frontmatter
// becomes the post metadata and the rest is the body.
package parser

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"
)

// Result holds the output of parsing a Markdown post.
type Result struct {
	// Metadata holds the frontmatter as key/value rows in document order.
	// Sequence values are joined with ", ".
	Metadata [][2]string
	Body     string
	// Title is the first H1 of the body, used when the metadata has none.
	Title string
}

// Parse splits data into frontmatter metadata and body.
func Parse(data []byte) *Result {
	rows, body := splitFrontmatter(data)
	return &Result{
		Metadata: rows,
		Body:     body,
		Title:    firstHeading(body),
	}
}

// splitFrontmatter separates YAML frontmatter (between leading --- delimiters)
// from the Markdown body. If no frontmatter is found the entire content is body.
func splitFrontmatter(data []byte) ([][2]string, string) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data)
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return nil, string(data)
	}

	yamlBlock := rest[:idx]
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")

	var doc yaml.Node
	if err := yaml.Unmarshal(yamlBlock, &doc); err != nil {
		// Invalid YAML is kept as body.
		return nil, string(data)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, body
	}
	return mappingRows(doc.Content[0]), body
}

// mappingRows flattens a YAML mapping into rows. Nested mappings are skipped.
func mappingRows(m *yaml.Node) [][2]string {
	var rows [][2]string
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, val := m.Content[i], m.Content[i+1]
		switch val.Kind {
		case yaml.ScalarNode:
			rows = append(rows, [2]string{key.Value, val.Value})
		case yaml.SequenceNode:
			var items []string
			for _, item := range val.Content {
				if item.Kind == yaml.ScalarNode && strings.TrimSpace(item.Value) != "" {
					items = append(items, strings.TrimSpace(item.Value))
				}
			}
			rows = append(rows, [2]string{key.Value, strings.Join(items, ", ")})
		}
	}
	return rows
}

func firstHeading(body string) string {
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}
