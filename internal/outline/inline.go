package outline

import (
	"strings"

	"github.com/alnah/go-flowpdf"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// inlineParser reads a text payload as paragraphs only, so a payload that
// starts like a list item or a heading still gets its emphasis parsed.
var inlineParser = parser.NewParser(
	parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 1000)),
	parser.WithInlineParsers(append(parser.DefaultInlineParsers(),
		util.Prioritized(extension.NewStrikethroughParser(), 500))...),
)

// textBlock builds a block of a styled kind from text that may carry
// **bold** and *italic* markup.
func textBlock(kind flowpdf.Kind, s string) flowpdf.Block {
	var b flowpdf.Block
	switch kind {
	case flowpdf.KindHeading:
		b = flowpdf.Heading(s)
	case flowpdf.KindSubheading:
		b = flowpdf.Subheading(s)
	case flowpdf.KindBullet:
		b = flowpdf.Bullet(s)
	case flowpdf.KindQuote:
		b = flowpdf.Quote(s)
	default:
		b = flowpdf.Paragraph(s)
	}
	if spans := parseInline(s); spans != nil {
		b = b.WithSpans(spans...)
	}
	return b
}

// parseInline returns the spans of s, or nil when s carries no emphasis.
// Paragraphs separated by blank lines are joined with a line break.
func parseInline(s string) []flowpdf.Span {
	if !strings.ContainsAny(s, "*_") {
		return nil
	}
	src := []byte(s)
	root := inlineParser.Parse(text.NewReader(src))
	c := &inlineCollector{src: src}
	for p := root.FirstChild(); p != nil; p = p.NextSibling() {
		if p != root.FirstChild() {
			c.add("\n", false, false)
		}
		c.walk(p, false, false)
	}
	if !c.styled {
		return nil
	}
	return c.spans
}

// inlineOf flattens the inline children of n. spans is nil unless n
// contains emphasis.
func inlineOf(n ast.Node, src []byte) (plain string, spans []flowpdf.Span) {
	c := &inlineCollector{src: src}
	c.walk(n, false, false)
	var sb strings.Builder
	for _, sp := range c.spans {
		sb.WriteString(sp.Text)
	}
	if !c.styled {
		return sb.String(), nil
	}
	return sb.String(), c.spans
}

type inlineCollector struct {
	src    []byte
	spans  []flowpdf.Span
	styled bool
}

func (c *inlineCollector) add(s string, bold, italic bool) {
	if s == "" {
		return
	}
	if n := len(c.spans); n > 0 && c.spans[n-1].Bold == bold && c.spans[n-1].Italic == italic {
		c.spans[n-1].Text += s
		return
	}
	c.spans = append(c.spans, flowpdf.Span{Text: s, Bold: bold, Italic: italic})
}

func (c *inlineCollector) walk(n ast.Node, bold, italic bool) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch v := child.(type) {
		case *ast.Text:
			c.add(string(v.Segment.Value(c.src)), bold, italic)
			switch {
			case v.HardLineBreak():
				c.add("\n", bold, italic)
			case v.SoftLineBreak():
				c.add(" ", bold, italic)
			}
		case *ast.String:
			c.add(string(v.Value), bold, italic)
		case *ast.Emphasis:
			c.styled = true
			if v.Level >= 2 {
				c.walk(v, true, italic)
			} else {
				c.walk(v, bold, true)
			}
		case *ast.AutoLink:
			c.add(string(v.Label(c.src)), bold, italic)
		case *ast.RawHTML:
			// Printed as written.
			for i := 0; i < v.Segments.Len(); i++ {
				seg := v.Segments.At(i)
				c.add(string(seg.Value(c.src)), bold, italic)
			}
		default:
			c.walk(child, bold, italic)
		}
	}
}
