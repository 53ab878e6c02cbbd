package flowpdf

import (
	"fmt"

	"github.com/alnah/go-flowpdf/internal/layout"
)

// Table cell geometry in millimetres.
const (
	cellPadding = 2.0
	bulletGlyph = "•"
)

// resolver turns blocks into layout flowables against one style sheet.
type resolver struct {
	sheet *StyleSheet
}

// flowables resolves every block. The returned error is a *RenderError for
// the first block that cannot be resolved.
func (r *resolver) flowables(blocks []Block) ([]layout.Flowable, error) {
	flows := make([]layout.Flowable, 0, len(blocks))
	for i, b := range blocks {
		f, err := r.flowable(b)
		if err != nil {
			return nil, &RenderError{Block: i, Kind: b.Kind, Err: err}
		}
		flows = append(flows, f)
	}
	return flows, nil
}

func (r *resolver) flowable(b Block) (layout.Flowable, error) {
	switch b.Kind {
	case KindSpacer:
		return layout.Flowable{Kind: layout.KindSpacer, Length: b.Length}, nil
	case KindPageBreak:
		return layout.Flowable{Kind: layout.KindPageBreak}, nil
	case KindTable:
		return r.table(b)
	}

	s, err := r.style(b.Style)
	if err != nil {
		return layout.Flowable{}, err
	}

	f := layout.Flowable{
		Kind:  layout.KindText,
		Spans: spansFor(s, b.spans()),
		Para:  paragraphFor(s),
	}
	if b.Kind == KindBullet {
		f.Kind = layout.KindBullet
		f.Bullet = &layout.Bullet{
			Glyph:  bulletGlyph,
			Indent: ptToMM(s.BulletIndent),
			Font:   fontFor(s, false, false),
			Color:  colorFor(s.Color),
		}
	}
	return f, nil
}

func (r *resolver) table(b Block) (layout.Flowable, error) {
	body, err := r.style(b.Style)
	if err != nil {
		return layout.Flowable{}, err
	}
	headerName := b.Table.HeaderStyle
	if headerName == "" {
		headerName = StyleTableHeader
	}
	head, err := r.style(headerName)
	if err != nil {
		return layout.Flowable{}, err
	}

	t := &layout.Table{
		Rows:         b.Table.Rows,
		HeaderFont:   fontFor(head, false, false),
		HeaderColor:  colorFor(head.Color),
		HeaderFill:   colorFor(White),
		BodyFont:     fontFor(body, false, false),
		BodyColor:    colorFor(body.Color),
		Border:       colorFor(Black),
		HeaderHeight: ptToMM(head.leading()),
		RowHeight:    ptToMM(body.leading()),
		Padding:      cellPadding,
	}
	if head.Fill != nil {
		t.HeaderFill = colorFor(*head.Fill)
	}
	for _, c := range b.Table.Columns {
		t.Header = append(t.Header, c.Header)
		t.Widths = append(t.Widths, c.Width)
	}

	return layout.Flowable{Kind: layout.KindTable, Table: t, Para: paragraphFor(body)}, nil
}

// style looks a style up, reporting ErrUnknownStyle when it is missing.
func (r *resolver) style(name string) (Style, error) {
	s, ok := r.sheet.Style(name)
	if !ok {
		return Style{}, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	return s, nil
}

// decoration returns the named decoration style, falling back to the
// default sheet so custom sheets need not define it.
func (r *resolver) decoration(name string) Style {
	if s, ok := r.sheet.Style(name); ok {
		return s
	}
	s, _ := DefaultStyleSheet().Style(name)
	return s
}

func spansFor(s Style, spans []Span) []layout.Span {
	out := make([]layout.Span, 0, len(spans))
	for _, sp := range spans {
		c := s.Color
		if sp.Color != nil {
			c = *sp.Color
		}
		out = append(out, layout.Span{
			Text:  sp.Text,
			Font:  fontFor(s, sp.Bold, sp.Italic),
			Color: colorFor(c),
		})
	}
	return out
}

func paragraphFor(s Style) layout.Paragraph {
	return layout.Paragraph{
		Align:        alignFor(s.Align),
		Leading:      ptToMM(s.leading()),
		SpaceBefore:  ptToMM(s.SpaceBefore),
		SpaceAfter:   ptToMM(s.SpaceAfter),
		LeftIndent:   ptToMM(s.LeftIndent),
		RightIndent:  ptToMM(s.RightIndent),
		KeepWithNext: s.KeepWithNext,
	}
}

// fontFor returns the layout font of s, adding bold or italic from inline markup.
func fontFor(s Style, bold, italic bool) layout.Font {
	d := s.Derive(s.Name, WithBold(s.Bold || bold), WithItalic(s.Italic || italic))
	return layout.Font{Family: s.Font, Style: d.fontStyle(), Size: s.Size}
}

func colorFor(c Color) layout.Color {
	return layout.Color{R: c.R, G: c.G, B: c.B}
}

func alignFor(a Align) layout.Align {
	switch a {
	case AlignCenter:
		return layout.AlignCenter
	case AlignRight:
		return layout.AlignRight
	case AlignJustify:
		return layout.AlignJustify
	}
	return layout.AlignLeft
}
