package layout

import (
	"errors"
	"fmt"
)

// Sentinel errors for layout operations.
var (
	ErrBlockTooTall    = errors.New("block taller than a page content area")
	ErrTableTooWide    = errors.New("table wider than the content area")
	ErrNoMeasurer      = errors.New("layout engine has no measurer")
	ErrInvalidFlow     = errors.New("invalid flowable")
	ErrInvalidGeometry = errors.New("invalid page geometry")
)

// PtToMM converts typographic points to millimetres.
const PtToMM = 25.4 / 72

// epsilon absorbs float rounding in fit checks.
const epsilon = 1e-6

// Font identifies a font face. Size is in points.
type Font struct {
	Family string // "Helvetica", "Times", "Courier", "Arial"
	Style  string // "", "B", "I", "BI"
	Size   float64
}

// SizeMM returns the font size in millimetres.
func (f Font) SizeMM() float64 {
	return f.Size * PtToMM
}

// Color is an RGB color.
type Color struct {
	R, G, B uint8
}

// Align controls horizontal placement of lines.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
	AlignJustify
)

// Span is a run of text sharing one font and color.
type Span struct {
	Text  string
	Font  Font
	Color Color
}

// Paragraph holds the resolved spacing of a text flowable, in millimetres.
type Paragraph struct {
	Align        Align
	Leading      float64 // line height
	SpaceBefore  float64 // dropped at the top of a page
	SpaceAfter   float64
	LeftIndent   float64
	RightIndent  float64
	KeepWithNext bool
}

// Bullet describes the glyph drawn before the first line of a bullet item.
type Bullet struct {
	Glyph  string
	Indent float64 // from the left content edge, mm
	Font   Font
	Color  Color
}

// Kind discriminates flowables.
type Kind int

const (
	KindText Kind = iota
	KindBullet
	KindSpacer
	KindPageBreak
	KindTable
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBullet:
		return "bullet"
	case KindSpacer:
		return "spacer"
	case KindPageBreak:
		return "pagebreak"
	case KindTable:
		return "table"
	}
	return "unknown"
}

// Flowable is one unit of content to place.
type Flowable struct {
	Kind   Kind
	Spans  []Span    // KindText, KindBullet
	Para   Paragraph // KindText, KindBullet, KindTable (spacing only)
	Bullet *Bullet   // KindBullet
	Length float64   // KindSpacer, mm
	Table  *Table    // KindTable
}

// Table is a grid of single-line cells.
type Table struct {
	Widths       []float64 // per column, mm; 0 shares the remaining width
	Header       []string
	Rows         [][]string
	HeaderFont   Font
	HeaderColor  Color
	HeaderFill   Color
	BodyFont     Font
	BodyColor    Color
	Border       Color
	HeaderHeight float64 // mm
	RowHeight    float64 // mm
	Padding      float64 // mm, horizontal cell padding
}

// Geometry is the fixed page geometry, in millimetres.
type Geometry struct {
	Width, Height            float64
	Top, Right, Bottom, Left float64
	HeaderBand               float64 // reserved at the top of the content area when a header is drawn
	FooterOffset             float64 // footer baseline distance below the content area
}

// ContentWidth returns the width between the left and right margins.
func (g Geometry) ContentWidth() float64 {
	return g.Width - g.Left - g.Right
}

// ContentHeight returns the height between the top and bottom margins.
func (g Geometry) ContentHeight() float64 {
	return g.Height - g.Top - g.Bottom
}

func (g Geometry) validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return ErrInvalidGeometry
	}
	if g.Top < 0 || g.Right < 0 || g.Bottom < 0 || g.Left < 0 || g.HeaderBand < 0 {
		return ErrInvalidGeometry
	}
	if g.ContentWidth() <= 0 || g.ContentHeight()-g.HeaderBand <= 0 {
		return ErrInvalidGeometry
	}
	return nil
}

// Decorations configures the running header and the page footer.
type Decorations struct {
	HeaderText   string // empty disables the running header
	HeaderFont   Font
	HeaderColor  Color
	FooterFormat string // "{page}" and "{pages}" are substituted; empty disables the footer
	FooterFont   Font
	FooterColor  Color
}

// Overflow selects what happens to a block taller than a full page.
type Overflow int

const (
	// OverflowFail aborts layout with ErrBlockTooTall.
	OverflowFail Overflow = iota
	// OverflowSplit breaks the block between lines across pages.
	OverflowSplit
)

// Options configures an Engine.
type Options struct {
	Geometry    Geometry
	Decorations Decorations
	Overflow    Overflow
}

// Measurer measures rendered text width in millimetres.
type Measurer interface {
	Width(f Font, s string) (float64, error)
}

// Run is a positioned piece of text. Y is the baseline.
type Run struct {
	X, Y  float64
	Text  string
	Font  Font
	Color Color
}

// Rect is a positioned rectangle. Nil Fill or Stroke skips that operation.
type Rect struct {
	X, Y, W, H float64
	Fill       *Color
	Stroke     *Color
}

// Page is one laid-out page.
type Page struct {
	Number    int // 1-based
	HasHeader bool
	Runs      []Run
	Rects     []Rect
}

// Placement records where a flowable landed.
type Placement struct {
	Index    int // position in the input
	Page     int // first page
	LastPage int // last page (differs from Page only for split blocks and tables)
	Top      float64
	Bottom   float64
	Lines    int
}

// Plan is the complete layout result.
type Plan struct {
	Geometry   Geometry
	Pages      []*Page
	Placements []Placement
}

// BlockError attaches the failing flowable index to a layout error.
type BlockError struct {
	Index int
	Kind  Kind
	Err   error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("block %d (%s): %v", e.Index, e.Kind, e.Err)
}

func (e *BlockError) Unwrap() error {
	return e.Err
}
