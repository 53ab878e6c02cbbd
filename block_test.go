package flowpdf

import (
	"errors"
	"math"
	"testing"

	"github.com/alnah/go-flowpdf/internal/layout"
)

// ---------------------------------------------------------------------------
// TestParseLength - Length parsing with units
// ---------------------------------------------------------------------------

func TestParseLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    float64
		wantErr error
	}{
		{"6cm", 60, nil},
		{"0.5cm", 5, nil},
		{"10mm", 10, nil},
		{"72pt", 25.4, nil},
		{"1in", 25.4, nil},
		{"12", 12, nil},
		{" 2 CM ", 20, nil},
		{"", 0, ErrInvalidLength},
		{"cm", 0, ErrInvalidLength},
		{"-1cm", 0, ErrInvalidLength},
		{"abc", 0, ErrInvalidLength},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLength(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseLength(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseLength(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBlockConstructors - Default styles per kind
// ---------------------------------------------------------------------------

func TestBlockConstructors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		block     Block
		wantKind  Kind
		wantStyle string
	}{
		{Heading("h"), KindHeading, StyleHeading},
		{Subheading("s"), KindSubheading, StyleSubheading},
		{Paragraph("p"), KindParagraph, StyleBody},
		{Bullet("b"), KindBullet, StyleBullet},
		{Quote("q"), KindQuote, StyleQuote},
		{Spacer(5), KindSpacer, ""},
		{PageBreak(), KindPageBreak, ""},
		{Table([]Column{{Header: "A"}}, nil), KindTable, StyleTable},
	}

	for _, tt := range tests {
		t.Run(tt.wantKind.String(), func(t *testing.T) {
			t.Parallel()

			if tt.block.Kind != tt.wantKind || tt.block.Style != tt.wantStyle {
				t.Errorf("block = %+v, want kind %s style %q", tt.block, tt.wantKind, tt.wantStyle)
			}
			if err := tt.block.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestBlock_WithStyle(t *testing.T) {
	t.Parallel()

	p := Paragraph("x")
	q := p.WithStyle("closing")
	if p.Style != StyleBody || q.Style != "closing" {
		t.Errorf("WithStyle changed the original or failed: %q, %q", p.Style, q.Style)
	}
}

// ---------------------------------------------------------------------------
// TestBlock_Validate - Structural validation
// ---------------------------------------------------------------------------

func TestBlock_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		block Block
	}{
		{"styled without style", Paragraph("x").WithStyle("")},
		{"negative spacer", Spacer(-1)},
		{"table without columns", Table(nil, nil)},
		{"ragged table", Table([]Column{{Header: "A"}, {Header: "B"}}, [][]string{{"1"}})},
		{"negative column width", Table([]Column{{Header: "A", Width: -1}}, nil)},
		{"unknown kind", Block{Kind: Kind(99)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := tt.block.Validate(); !errors.Is(err, ErrInvalidBlock) {
				t.Errorf("Validate() = %v, want ErrInvalidBlock", err)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	for k, name := range kindNames {
		got, err := ParseKind(name)
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", name, got, err, k)
		}
	}
	if _, err := ParseKind("chapter"); !errors.Is(err, ErrInvalidBlock) {
		t.Errorf("ParseKind(chapter) error = %v, want ErrInvalidBlock", err)
	}
	if got, _ := ParseKind(" PageBreak "); got != KindPageBreak {
		t.Errorf("ParseKind is not case-insensitive: %v", got)
	}
}

// ---------------------------------------------------------------------------
// TestResolver_SpanColor - Span colors override the style color
// ---------------------------------------------------------------------------

func TestResolver_SpanColor(t *testing.T) {
	t.Parallel()

	sheet := DefaultStyleSheet()
	code, _ := sheet.Style(StyleCode)
	red := Color{R: 0xd7, G: 0x3a, B: 0x49}

	r := &resolver{sheet: sheet}
	f, err := r.flowable(Paragraph("func main").WithStyle(StyleCode).WithSpans(
		Span{Text: "func", Bold: true, Color: &red},
		Span{Text: " main"},
	))
	if err != nil {
		t.Fatalf("flowable() error = %v", err)
	}
	if len(f.Spans) != 2 {
		t.Fatalf("len(Spans) = %d, want 2", len(f.Spans))
	}
	if want := (layout.Color{R: 0xd7, G: 0x3a, B: 0x49}); f.Spans[0].Color != want {
		t.Errorf("colored span = %+v, want %+v", f.Spans[0].Color, want)
	}
	if f.Spans[0].Font.Style != "B" {
		t.Errorf("colored span font style = %q, want B", f.Spans[0].Font.Style)
	}
	if want := colorFor(code.Color); f.Spans[1].Color != want {
		t.Errorf("plain span = %+v, want style color %+v", f.Spans[1].Color, want)
	}
}
