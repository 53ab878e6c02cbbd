// Package outline compiles document outlines into flowpdf blocks.
//
// Two source formats are accepted:
//
//   - YAML: metadata, page settings, derived styles and an ordered list of
//     blocks, decoded strictly so unknown fields fail.
//   - Markdown: headings, paragraphs, lists, quotes, rules, code and GFM
//     tables mapped onto block kinds.
//
// Text payloads in both formats may carry **bold** and *italic* markup.
package outline

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-flowpdf"
	"github.com/alnah/go-flowpdf/internal/assets"
	"github.com/alnah/go-flowpdf/internal/dateutil"
)

// Sentinel errors for outline compilation.
var (
	ErrOutlineParse   = errors.New("invalid outline")
	ErrUnknownKind    = errors.New("unknown block kind")
	ErrUnknownParent  = errors.New("unknown parent style")
	ErrUnknownFormat  = errors.New("unknown outline format")
	ErrEmptyOutline   = errors.New("outline has no blocks")
	ErrInvalidSetting = errors.New("invalid outline setting")
)

// Document is a compiled outline, ready to be appended to a flowpdf.Document.
type Document struct {
	Metadata flowpdf.Metadata
	Page     *flowpdf.PageSettings // nil keeps the library default
	Sheet    *flowpdf.StyleSheet
	Header   *string // nil defaults to the title
	Footer   *string // nil keeps the library default
	Date     string  // "auto", "auto:FORMAT" or literal text for {date}
	Lang     string  // month name language for Date
	Blocks   []flowpdf.Block
}

// ResolveDate replaces {date} in the header and footer with Date rendered
// at now. Without a Date the placeholders are left as they are.
func (d *Document) ResolveDate(now time.Time) error {
	if d.Date == "" {
		return nil
	}
	date, err := dateutil.Resolve(d.Date, now, d.Lang)
	if err != nil {
		return fmt.Errorf("%w: date: %w", ErrInvalidSetting, err)
	}
	for _, p := range []**string{&d.Header, &d.Footer} {
		if *p == nil {
			continue
		}
		text := strings.ReplaceAll(**p, "{date}", date)
		*p = &text
	}
	return nil
}

// Options returns the document options the outline carries.
func (d *Document) Options() []flowpdf.Option {
	opts := []flowpdf.Option{
		flowpdf.WithMetadata(d.Metadata),
		flowpdf.WithStyleSheet(d.Sheet),
	}
	if d.Page != nil {
		opts = append(opts, flowpdf.WithPage(d.Page))
	}
	if d.Header != nil {
		opts = append(opts, flowpdf.WithRunningHeader(*d.Header))
	}
	if d.Footer != nil {
		opts = append(opts, flowpdf.WithFooterFormat(*d.Footer))
	}
	return opts
}

// Compile turns a loaded outline into a Document.
func Compile(o *assets.Outline) (*Document, error) {
	if o == nil {
		return nil, fmt.Errorf("%w: nil outline", ErrOutlineParse)
	}

	var (
		doc *Document
		err error
	)
	switch o.Format {
	case assets.FormatYAML:
		doc, err = ParseYAML(o.Data)
	case assets.FormatMarkdown:
		doc, err = ParseMarkdown(o.Data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, o.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("outline %q: %w", o.Name, err)
	}
	return doc, nil
}

// checkBlocks verifies every block is well formed and names a known style.
func checkBlocks(blocks []flowpdf.Block, sheet *flowpdf.StyleSheet) error {
	if len(blocks) == 0 {
		return ErrEmptyOutline
	}
	for i, b := range blocks {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("%w: block %d: %w", ErrOutlineParse, i, err)
		}
		if b.Style == "" {
			continue
		}
		if _, ok := sheet.Style(b.Style); !ok {
			return fmt.Errorf("%w: block %d: %w: %q", ErrOutlineParse, i, flowpdf.ErrUnknownStyle, b.Style)
		}
		if b.Table != nil && b.Table.HeaderStyle != "" {
			if _, ok := sheet.Style(b.Table.HeaderStyle); !ok {
				return fmt.Errorf("%w: block %d: %w: %q", ErrOutlineParse, i, flowpdf.ErrUnknownStyle, b.Table.HeaderStyle)
			}
		}
	}
	return nil
}
