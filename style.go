package flowpdf

import (
	"fmt"
	"strconv"
	"strings"
)

// Font family constants. Only the PDF core fonts are supported.
const (
	FontHelvetica = "Helvetica"
	FontTimes     = "Times"
	FontCourier   = "Courier"
	FontArial     = "Arial"
)

// Align controls horizontal placement of text lines.
type Align string

// Alignment constants.
const (
	AlignLeft    Align = "left"
	AlignCenter  Align = "center"
	AlignRight   Align = "right"
	AlignJustify Align = "justify"
)

// Color is an RGB color.
type Color struct {
	R, G, B uint8
}

// Palette used by the default style sheet.
var (
	Black     = Color{0, 0, 0}
	White     = Color{255, 255, 255}
	DarkBlue  = Color{0x00, 0x33, 0x66}
	MidBlue   = Color{0x00, 0x66, 0x99}
	Grey      = Color{0x66, 0x66, 0x66}
	LightGrey = Color{128, 128, 128}
)

// ParseColor parses "#RRGGBB" or "RRGGBB".
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("%w: %q (want #RRGGBB)", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Style is a named, immutable set of typographic attributes.
// Sizes, leading, spacing and indents are in points.
type Style struct {
	Name         string
	Font         string
	Size         float64
	Bold         bool
	Italic       bool
	Color        Color
	Fill         *Color // background of table header cells
	Align        Align
	Leading      float64 // line height; 0 means 1.2 x Size
	SpaceBefore  float64
	SpaceAfter   float64
	LeftIndent   float64
	RightIndent  float64
	BulletIndent float64 // bullet glyph offset from the left margin
	KeepWithNext bool
}

// StyleOption overrides one field of a derived style.
type StyleOption func(*Style)

// Derive returns a copy of s named name with opts applied.
// The receiver is not modified.
func (s Style) Derive(name string, opts ...StyleOption) Style {
	d := s
	d.Name = name
	if s.Fill != nil {
		fill := *s.Fill
		d.Fill = &fill
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// WithFont sets the font family.
func WithFont(family string) StyleOption {
	return func(s *Style) { s.Font = family }
}

// WithSize sets the font size in points.
func WithSize(pt float64) StyleOption {
	return func(s *Style) { s.Size = pt }
}

// WithBold sets the bold flag.
func WithBold(b bool) StyleOption {
	return func(s *Style) { s.Bold = b }
}

// WithItalic sets the italic flag.
func WithItalic(b bool) StyleOption {
	return func(s *Style) { s.Italic = b }
}

// WithColor sets the text color.
func WithColor(c Color) StyleOption {
	return func(s *Style) { s.Color = c }
}

// WithFill sets the cell background color.
func WithFill(c Color) StyleOption {
	return func(s *Style) { s.Fill = &c }
}

// WithAlign sets the alignment.
func WithAlign(a Align) StyleOption {
	return func(s *Style) { s.Align = a }
}

// WithLeading sets the line height in points.
func WithLeading(pt float64) StyleOption {
	return func(s *Style) { s.Leading = pt }
}

// WithSpacing sets space before and after in points.
func WithSpacing(before, after float64) StyleOption {
	return func(s *Style) {
		s.SpaceBefore = before
		s.SpaceAfter = after
	}
}

// WithIndent sets the left and right indents in points.
func WithIndent(left, right float64) StyleOption {
	return func(s *Style) {
		s.LeftIndent = left
		s.RightIndent = right
	}
}

// WithBulletIndent sets the bullet glyph offset in points.
func WithBulletIndent(pt float64) StyleOption {
	return func(s *Style) { s.BulletIndent = pt }
}

// WithKeepWithNext keeps a block on the same page as the first line of the
// block that follows it.
func WithKeepWithNext(b bool) StyleOption {
	return func(s *Style) { s.KeepWithNext = b }
}

// Validate reports whether the style can be laid out.
func (s Style) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidStyle)
	}
	if !isValidFont(s.Font) {
		return fmt.Errorf("%w: %s: unknown font %q", ErrInvalidStyle, s.Name, s.Font)
	}
	if s.Size <= 0 {
		return fmt.Errorf("%w: %s: size must be positive", ErrInvalidStyle, s.Name)
	}
	if !isValidAlign(s.Align) {
		return fmt.Errorf("%w: %s: unknown alignment %q", ErrInvalidStyle, s.Name, s.Align)
	}
	if s.Leading < 0 || s.SpaceBefore < 0 || s.SpaceAfter < 0 ||
		s.LeftIndent < 0 || s.RightIndent < 0 || s.BulletIndent < 0 {
		return fmt.Errorf("%w: %s: negative spacing or indent", ErrInvalidStyle, s.Name)
	}
	return nil
}

// leading returns the effective line height in points.
func (s Style) leading() float64 {
	if s.Leading > 0 {
		return s.Leading
	}
	return 1.2 * s.Size
}

// fontStyle returns the fpdf style string ("", "B", "I", "BI").
func (s Style) fontStyle() string {
	var b strings.Builder
	if s.Bold {
		b.WriteByte('B')
	}
	if s.Italic {
		b.WriteByte('I')
	}
	return b.String()
}

func isValidFont(family string) bool {
	switch family {
	case FontHelvetica, FontTimes, FontCourier, FontArial:
		return true
	}
	return false
}

func isValidAlign(a Align) bool {
	switch a {
	case "", AlignLeft, AlignCenter, AlignRight, AlignJustify:
		return true
	}
	return false
}
