package extractor

import (
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/Gitanjali1909/pdf-chat/internal/domain"
)

// Markdown extracts a markdown file as a sequence of pages, one per
// top-level section (heading level 1 or 2). A document without such
// headings becomes a single page. Section order is preserved.
type Markdown struct{}

func (Markdown) Extract(path string) ([]domain.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(data))

	var sections []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			sections = append(sections, current.String())
			current.Reset()
		}
	}

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if heading, ok := n.(*ast.Heading); ok {
				if heading.Level <= 2 {
					flush()
				}
				current.WriteString(headingText(heading, data))
				current.WriteString("\n\n")
				return ast.WalkSkipChildren, nil
			}
			if textNode, ok := n.(*ast.Text); ok {
				current.Write(textNode.Segment.Value(data))
			}
		} else {
			if _, ok := n.(*ast.Paragraph); ok {
				current.WriteString("\n\n")
			}
		}
		return ast.WalkContinue, nil
	})
	flush()

	pages := make([]domain.Page, 0, len(sections))
	for i, s := range sections {
		pages = append(pages, domain.Page{Number: i, Text: s})
	}
	if len(pages) == 0 {
		pages = []domain.Page{{Number: 0, Text: ""}}
	}
	return pages, nil
}

func headingText(node ast.Node, source []byte) string {
	var buf strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if textNode, ok := child.(*ast.Text); ok {
			buf.Write(textNode.Segment.Value(source))
		}
	}
	return buf.String()
}
