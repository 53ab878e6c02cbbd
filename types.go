package flowpdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-flowpdf/internal/layout"
)

// Page size constants.
const (
	PageSizeA4     = "a4"
	PageSizeLetter = "letter"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in millimetres.
const (
	MinMargin     = 5.0
	MaxMargin     = 75.0
	DefaultMargin = 20.0
)

// Decoration geometry in millimetres.
const (
	headerBand   = 10.0
	footerOffset = 10.0
)

// pageSizes maps page size names to portrait width and height in mm.
var pageSizes = map[string][2]float64{
	PageSizeA4:     {210, 297},
	PageSizeLetter: {215.9, 279.4},
	PageSizeLegal:  {215.9, 355.6},
}

// PageSettings configures page dimensions.
type PageSettings struct {
	Size        string  // "a4", "letter", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // mm, applied to all sides
}

// DefaultPageSettings returns A4 portrait with 2 cm margins.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeA4,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	if _, ok := pageSizes[strings.ToLower(p.Size)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}
	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}
	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.1f (must be between %.0f and %.0f mm)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// geometry converts validated settings into layout geometry.
func (p *PageSettings) geometry() layout.Geometry {
	wh := pageSizes[strings.ToLower(p.Size)]
	w, h := wh[0], wh[1]
	if strings.ToLower(p.Orientation) == OrientationLandscape {
		w, h = h, w
	}
	return layout.Geometry{
		Width: w, Height: h,
		Top: p.Margin, Right: p.Margin, Bottom: p.Margin, Left: p.Margin,
		HeaderBand:   headerBand,
		FooterOffset: footerOffset,
	}
}

// Metadata is written into the PDF information dictionary.
type Metadata struct {
	Title    string
	Author   string
	Subject  string
	Keywords []string
	Creator  string
}

// Overflow selects what happens to a block taller than a full page.
type Overflow string

// Overflow policies.
const (
	// OverflowFail aborts the build with a RenderError wrapping ErrBlockTooTall.
	OverflowFail Overflow = "fail"
	// OverflowSplit breaks the block between lines across pages.
	OverflowSplit Overflow = "split"
)

// Backend selects the painter producing the PDF bytes.
type Backend string

// Backends.
const (
	// BackendNative draws with the PDF core fonts. No external process.
	BackendNative Backend = "native"
	// BackendBrowser prints positioned HTML with headless Chrome.
	BackendBrowser Backend = "browser"
)

// Option configures a Document.
type Option func(*Document)

// documentConfig holds the options of a Document.
type documentConfig struct {
	page         *PageSettings
	sheet        *StyleSheet
	meta         Metadata
	header       string
	headerSet    bool
	footer       string
	overflow     Overflow
	backend      Backend
	timeout      time.Duration
	creationDate time.Time
}

// defaultTimeout bounds the browser backend when no timeout is specified.
const defaultTimeout = 30 * time.Second

// defaultFooter is the footer format when none is given.
const defaultFooter = "{page}"

// epoch is the fixed creation date so identical input yields identical bytes.
var epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// WithPage sets the page geometry.
func WithPage(p *PageSettings) Option {
	return func(d *Document) { d.cfg.page = p }
}

// WithStyleSheet replaces the default style sheet.
func WithStyleSheet(ss *StyleSheet) Option {
	return func(d *Document) { d.cfg.sheet = ss }
}

// WithMetadata sets the PDF metadata. The title is also the default running
// header text.
func WithMetadata(m Metadata) Option {
	return func(d *Document) { d.cfg.meta = m }
}

// WithRunningHeader sets the text drawn on every page after the first.
// An empty string disables the header.
func WithRunningHeader(text string) Option {
	return func(d *Document) {
		d.cfg.header = text
		d.cfg.headerSet = true
	}
}

// WithFooterFormat sets the footer text. "{page}" and "{pages}" are replaced
// by the page number and the page count. An empty string disables the footer.
func WithFooterFormat(format string) Option {
	return func(d *Document) { d.cfg.footer = format }
}

// WithOverflow sets the policy for blocks taller than a page.
func WithOverflow(o Overflow) Option {
	return func(d *Document) { d.cfg.overflow = o }
}

// WithBackend selects the painter.
func WithBackend(b Backend) Option {
	return func(d *Document) { d.cfg.backend = b }
}

// WithCreationDate sets the date recorded in the PDF. Defaults to a fixed
// date so builds are reproducible.
func WithCreationDate(t time.Time) Option {
	return func(d *Document) { d.cfg.creationDate = t }
}

// WithTimeout bounds the browser backend.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(timeout time.Duration) Option {
	if timeout <= 0 {
		panic("flowpdf: WithTimeout duration must be positive")
	}
	return func(d *Document) { d.cfg.timeout = timeout }
}

func (c *documentConfig) validate() error {
	if err := c.page.Validate(); err != nil {
		return err
	}
	if c.sheet == nil {
		return fmt.Errorf("%w: nil style sheet", ErrInvalidStyle)
	}
	switch c.overflow {
	case OverflowFail, OverflowSplit:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOverflow, c.overflow)
	}
	switch c.backend {
	case BackendNative, BackendBrowser:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBackend, c.backend)
	}
	return nil
}

// headerText returns the running header, defaulting to the title.
func (c *documentConfig) headerText() string {
	if c.headerSet {
		return c.header
	}
	return c.meta.Title
}
