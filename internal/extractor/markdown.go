package extractor

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
	"github.com/rohmanhakim/weburl/pkg/weburl"
)

// ExtractMarkdown collects link and image destinations of a Markdown
// document, including autolinks, in document order. Markdown always parses,
// so there is no document-level failure.
func (e *LinkExtractor) ExtractMarkdown(
	documentURL *weburl.URL,
	source []byte,
) ExtractionResult {
	// The parser is stateful and must not be reused across documents.
	p := parser.NewWithExtensions(parser.CommonExtensions)
	root := markdown.Parse(source, p)

	c := e.newCollector(documentURL)

	ast.WalkFunc(root, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		switch n := node.(type) {
		case *ast.Link:
			if n.NoteID != 0 {
				return ast.GoToNext
			}
			c.add(string(n.Destination), KindMarkdownLink, "markdown")
		case *ast.Image:
			c.add(string(n.Destination), KindMarkdownImage, "markdown")
		}
		return ast.GoToNext
	})

	return c.finish()
}
