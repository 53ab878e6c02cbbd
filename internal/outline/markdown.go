package outline

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alnah/go-flowpdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// markdown parses both whole outlines and inline text payloads.
var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.Table,         // GFM tables
		extension.Strikethrough, // ~~text~~ kept as plain text
	),
)

// ParseMarkdown compiles a Markdown outline. The first level-one heading
// becomes the document title.
func ParseMarkdown(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyOutline
	}

	c := &mdCompiler{src: data}
	root := markdown.Parser().Parse(text.NewReader(data))
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if err := c.block(n); err != nil {
			return nil, err
		}
	}

	doc := &Document{
		Metadata: flowpdf.Metadata{Title: c.title},
		Sheet:    flowpdf.DefaultStyleSheet(),
		Blocks:   c.blocks,
	}
	if err := checkBlocks(doc.Blocks, doc.Sheet); err != nil {
		return nil, err
	}
	return doc, nil
}

type mdCompiler struct {
	src    []byte
	title  string
	blocks []flowpdf.Block
}

func (c *mdCompiler) emit(b flowpdf.Block) {
	c.blocks = append(c.blocks, b)
}

// styled builds a block of kind from the inline content of n.
func (c *mdCompiler) styled(kind flowpdf.Kind, n ast.Node) (flowpdf.Block, string) {
	plain, spans := inlineOf(n, c.src)
	b := textBlock(kind, "")
	b.Text = plain
	b.Spans = spans
	return b, plain
}

func (c *mdCompiler) block(n ast.Node) error {
	switch v := n.(type) {
	case *ast.Heading:
		switch {
		case v.Level == 1:
			b, plain := c.styled(flowpdf.KindHeading, v)
			if c.title == "" {
				c.title = plain
			}
			c.emit(b)
		case v.Level == 2:
			b, _ := c.styled(flowpdf.KindSubheading, v)
			c.emit(b)
		default:
			b, _ := c.styled(flowpdf.KindSubheading, v)
			c.emit(b.WithStyle(flowpdf.StyleSubsection))
		}

	case *ast.Paragraph, *ast.TextBlock:
		b, _ := c.styled(flowpdf.KindParagraph, v)
		c.emit(b)

	case *ast.List:
		return c.list(v)

	case *ast.Blockquote:
		for p := v.FirstChild(); p != nil; p = p.NextSibling() {
			switch p.Kind() {
			case ast.KindParagraph, ast.KindTextBlock:
				b, _ := c.styled(flowpdf.KindQuote, p)
				c.emit(b)
			default:
				if err := c.block(p); err != nil {
					return err
				}
			}
		}

	case *ast.ThematicBreak:
		c.emit(flowpdf.PageBreak())

	case *ast.FencedCodeBlock:
		c.code(v, string(v.Language(c.src)))
	case *ast.CodeBlock:
		c.code(v, "")

	case *east.Table:
		return c.table(v)

	case *ast.HTMLBlock:
		// Raw HTML has no block equivalent.

	default:
		return fmt.Errorf("%w: unsupported markdown node %s", ErrOutlineParse, n.Kind())
	}
	return nil
}

// list flattens nested lists into bullets in document order.
func (c *mdCompiler) list(l *ast.List) error {
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			switch child.Kind() {
			case ast.KindParagraph, ast.KindTextBlock:
				b, _ := c.styled(flowpdf.KindBullet, child)
				c.emit(b)
			default:
				if err := c.block(child); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// code emits a code block, colored when lang names a known lexer.
func (c *mdCompiler) code(n ast.Node, lang string) {
	lines := n.Lines()
	var sb strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(c.src))
	}
	code := strings.TrimRight(sb.String(), "\n")
	if code == "" {
		return
	}
	b := flowpdf.Paragraph(code).WithStyle(flowpdf.StyleCode)
	if spans := highlight(code, lang); spans != nil {
		b = b.WithSpans(spans...)
	}
	c.emit(b)
}

func (c *mdCompiler) table(t *east.Table) error {
	var (
		cols []flowpdf.Column
		rows [][]string
	)
	for r := t.FirstChild(); r != nil; r = r.NextSibling() {
		var cells []string
		for cell := r.FirstChild(); cell != nil; cell = cell.NextSibling() {
			plain, _ := inlineOf(cell, c.src)
			cells = append(cells, strings.TrimSpace(plain))
		}
		if _, ok := r.(*east.TableHeader); ok {
			for _, h := range cells {
				cols = append(cols, flowpdf.Column{Header: h})
			}
			continue
		}
		rows = append(rows, cells)
	}
	if len(cols) == 0 {
		return fmt.Errorf("%w: table without header row", ErrOutlineParse)
	}
	for i, row := range rows {
		for len(row) < len(cols) {
			row = append(row, "")
		}
		rows[i] = row[:len(cols)]
	}
	c.emit(flowpdf.Table(cols, rows))
	return nil
}
