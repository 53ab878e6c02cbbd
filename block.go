package flowpdf

import (
	"fmt"
	"strings"
)

// Kind discriminates content blocks.
type Kind int

// Block kinds.
const (
	KindHeading Kind = iota
	KindSubheading
	KindParagraph
	KindBullet
	KindQuote
	KindSpacer
	KindPageBreak
	KindTable
)

var kindNames = map[Kind]string{
	KindHeading:    "heading",
	KindSubheading: "subheading",
	KindParagraph:  "paragraph",
	KindBullet:     "bullet",
	KindQuote:      "quote",
	KindSpacer:     "spacer",
	KindPageBreak:  "pagebreak",
	KindTable:      "table",
}

// String returns the kind name used in outlines.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind parses a kind name (case-insensitive).
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidBlock, s)
}

// defaultStyle returns the style a constructor assigns to kind k.
func (k Kind) defaultStyle() string {
	switch k {
	case KindHeading:
		return StyleHeading
	case KindSubheading:
		return StyleSubheading
	case KindParagraph:
		return StyleBody
	case KindBullet:
		return StyleBullet
	case KindQuote:
		return StyleQuote
	case KindTable:
		return StyleTable
	}
	return ""
}

// styled reports whether blocks of kind k carry text and a style.
func (k Kind) styled() bool {
	switch k {
	case KindHeading, KindSubheading, KindParagraph, KindBullet, KindQuote:
		return true
	}
	return false
}

// Span is a run of inline text. Bold and Italic add to the block style;
// a non-nil Color replaces the style color.
type Span struct {
	Text   string
	Bold   bool
	Italic bool
	Color  *Color
}

// Column describes one table column. Width is in millimetres; 0 shares the
// width left over by fixed columns.
type Column struct {
	Header string
	Width  float64
}

// TableData is the payload of a table block.
type TableData struct {
	Columns     []Column
	Rows        [][]string
	HeaderStyle string // default "table-header"
}

// Block is one content block. Use the constructors to build blocks.
type Block struct {
	Kind   Kind
	Text   string  // styled kinds; ignored when Spans is set
	Spans  []Span  // styled kinds, inline bold/italic runs
	Style  string  // styled kinds and tables
	Length float64 // spacer, mm
	Table  *TableData
}

// Heading returns a chapter heading block.
func Heading(text string) Block { return textBlock(KindHeading, text) }

// Subheading returns a section heading block.
func Subheading(text string) Block { return textBlock(KindSubheading, text) }

// Paragraph returns a body text block.
func Paragraph(text string) Block { return textBlock(KindParagraph, text) }

// Bullet returns a bullet list item.
func Bullet(text string) Block { return textBlock(KindBullet, text) }

// Quote returns a highlighted quotation block.
func Quote(text string) Block { return textBlock(KindQuote, text) }

// Spacer returns vertical space of mm millimetres.
func Spacer(mm float64) Block { return Block{Kind: KindSpacer, Length: mm} }

// PageBreak returns an unconditional page break.
func PageBreak() Block { return Block{Kind: KindPageBreak} }

// Table returns a table block with a header row.
func Table(columns []Column, rows [][]string) Block {
	return Block{
		Kind:  KindTable,
		Style: StyleTable,
		Table: &TableData{Columns: columns, Rows: rows, HeaderStyle: StyleTableHeader},
	}
}

func textBlock(k Kind, text string) Block {
	return Block{Kind: k, Text: text, Style: k.defaultStyle()}
}

// WithStyle returns a copy of b referencing style name.
func (b Block) WithStyle(name string) Block {
	b.Style = name
	return b
}

// WithSpans returns a copy of b carrying inline runs instead of plain text.
func (b Block) WithSpans(spans ...Span) Block {
	b.Spans = spans
	return b
}

// Validate reports structural problems that do not depend on a style sheet.
func (b Block) Validate() error {
	switch {
	case b.Kind.styled():
		if b.Style == "" {
			return fmt.Errorf("%w: %s without style", ErrInvalidBlock, b.Kind)
		}
	case b.Kind == KindSpacer:
		if b.Length < 0 {
			return fmt.Errorf("%w: negative spacer length %v", ErrInvalidBlock, b.Length)
		}
	case b.Kind == KindPageBreak:
	case b.Kind == KindTable:
		return b.validateTable()
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidBlock, int(b.Kind))
	}
	return nil
}

func (b Block) validateTable() error {
	t := b.Table
	if t == nil || len(t.Columns) == 0 {
		return fmt.Errorf("%w: table without columns", ErrInvalidBlock)
	}
	if b.Style == "" {
		return fmt.Errorf("%w: table without style", ErrInvalidBlock)
	}
	for _, c := range t.Columns {
		if c.Width < 0 {
			return fmt.Errorf("%w: negative column width", ErrInvalidBlock)
		}
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("%w: table row %d has %d cells, want %d", ErrInvalidBlock, i, len(row), len(t.Columns))
		}
	}
	return nil
}

// spans returns the inline runs of a styled block.
func (b Block) spans() []Span {
	if len(b.Spans) > 0 {
		return b.Spans
	}
	return []Span{{Text: b.Text}}
}
