package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor strips Markdown syntax and reads title and description
// hints from the frontmatter.
type MarkdownExtractor struct{}

type markdownMeta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Summary     string `yaml:"summary"`
}

func (MarkdownExtractor) Extract(_ context.Context, data []byte) (*Result, error) {
	var meta markdownMeta
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return nil, fmt.Errorf("%w: frontmatter: %v", ErrCorruptDocument, err)
	}

	engine := goldmark.New(goldmark.WithExtensions(extension.GFM))
	root := engine.Parser().Parse(text.NewReader(body))

	var out strings.Builder
	newline := func() {
		if out.Len() > 0 && !strings.HasSuffix(out.String(), "\n") {
			out.WriteByte('\n')
		}
	}
	err = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if node.Type() == ast.TypeBlock {
				newline()
			}
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.Text:
			out.Write(n.Segment.Value(body))
			if n.SoftLineBreak() || n.HardLineBreak() {
				out.WriteByte('\n')
			}
		case *ast.String:
			out.Write(n.Value)
		case *ast.AutoLink:
			out.Write(n.Label(body))
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				segment := lines.At(i)
				out.Write(segment.Value(body))
			}
			return ast.WalkSkipChildren, nil
		case *ast.HTMLBlock, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	description := meta.Description
	if description == "" {
		description = meta.Summary
	}
	return &Result{
		Text:        strings.TrimSpace(out.String()),
		Title:       strings.TrimSpace(meta.Title),
		Description: strings.TrimSpace(description),
	}, nil
}
