package workspace

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// md is the shared markdown parser used for title/summary extraction.
// GFM matches how the notes are authored (tables, task lists).
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// ExtractTitleSummary pulls a display title and a one-paragraph summary out
// of markdown content. The title comes from a frontmatter "title" key when
// present, else from the first heading. The summary is the first paragraph
// after the title.
func ExtractTitleSummary(content string) (title, summary string) {
	header, body := splitFrontmatter(content)
	if header != "" {
		title = frontmatterTitle(header)
	}

	src := []byte(body)
	doc := md.Parser().Parse(text.NewReader(src))

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.Heading:
			if title == "" {
				title = nodeText(n, src)
			}
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			if summary == "" {
				summary = nodeText(n, src)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return title, summary
}

// nodeText collects the plain text of a node's inline children.
func nodeText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}

// splitFrontmatter splits a leading "---" delimited header from the body.
// Without a header it returns ("", content).
func splitFrontmatter(content string) (header, body string) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", content
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return strings.Join(lines[1:i], "\n"), strings.Join(lines[i+1:], "\n")
		}
	}
	return "", content
}

// frontmatterTitle reads the "title" key from a frontmatter header block.
func frontmatterTitle(header string) string {
	var meta struct {
		Title string `yaml:"title"`
	}
	if err := yaml.Unmarshal([]byte(header), &meta); err != nil {
		return ""
	}
	return strings.TrimSpace(meta.Title)
}
