package flowpdf

import (
	"fmt"
	"sort"
)

// Names of the styles in DefaultStyleSheet.
const (
	StyleTitle       = "title"
	StyleSubtitle    = "subtitle"
	StyleHeading     = "heading"
	StyleSubheading  = "subheading"
	StyleSubsection  = "subsection"
	StyleBody        = "body"
	StyleQuote       = "quote"
	StyleBullet      = "bullet"
	StyleCode        = "code"
	StyleTable       = "table"
	StyleTableHeader = "table-header"
	StyleHeader      = "header"
	StyleFooter      = "footer"
)

// StyleSheet is an immutable table of styles keyed by name.
type StyleSheet struct {
	styles map[string]Style
}

// NewStyleSheet builds a sheet from styles. Names must be unique.
func NewStyleSheet(styles ...Style) (*StyleSheet, error) {
	m := make(map[string]Style, len(styles))
	for _, s := range styles {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := m[s.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateStyle, s.Name)
		}
		m[s.Name] = s
	}
	return &StyleSheet{styles: m}, nil
}

// With returns a new sheet holding the receiver's styles plus styles, which
// replace entries with the same name.
func (ss *StyleSheet) With(styles ...Style) (*StyleSheet, error) {
	m := make(map[string]Style, len(ss.styles)+len(styles))
	for name, s := range ss.styles {
		m[name] = s
	}
	seen := make(map[string]bool, len(styles))
	for _, s := range styles {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateStyle, s.Name)
		}
		seen[s.Name] = true
		m[s.Name] = s
	}
	return &StyleSheet{styles: m}, nil
}

// Style looks up a style by name.
func (ss *StyleSheet) Style(name string) (Style, bool) {
	s, ok := ss.styles[name]
	return s, ok
}

// Names returns the style names in sorted order.
func (ss *StyleSheet) Names() []string {
	names := make([]string, 0, len(ss.styles))
	for name := range ss.styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultStyleSheet returns the built-in palette: dark blue headings, medium
// blue subheadings and quotes, justified 10pt body text.
func DefaultStyleSheet() *StyleSheet {
	base := Style{Name: StyleBody, Font: FontHelvetica, Size: 10, Color: Black, Align: AlignLeft}

	body := base.Derive(StyleBody, WithAlign(AlignJustify), WithLeading(14), WithSpacing(0, 8))
	heading := base.Derive(StyleHeading,
		WithSize(16), WithBold(true), WithColor(DarkBlue),
		WithSpacing(20, 15), WithKeepWithNext(true))

	styles := []Style{
		base.Derive(StyleTitle, WithSize(24), WithBold(true), WithColor(DarkBlue),
			WithAlign(AlignCenter), WithSpacing(0, 20)),
		base.Derive(StyleSubtitle, WithSize(14), WithColor(MidBlue),
			WithAlign(AlignCenter), WithSpacing(0, 30)),
		heading,
		heading.Derive(StyleSubheading, WithSize(12), WithColor(MidBlue), WithSpacing(15, 8)),
		heading.Derive(StyleSubsection, WithSize(11), WithColor(Black), WithSpacing(10, 5)),
		body,
		base.Derive(StyleQuote, WithSize(11), WithItalic(true), WithColor(MidBlue),
			WithAlign(AlignCenter), WithSpacing(10, 15), WithIndent(30, 30)),
		base.Derive(StyleBullet, WithLeading(14), WithIndent(20, 0), WithBulletIndent(10), WithSpacing(0, 5)),
		base.Derive(StyleCode, WithFont(FontCourier), WithSize(9), WithLeading(11), WithSpacing(0, 8), WithIndent(10, 0)),
		base.Derive(StyleTable, WithSize(9), WithLeading(14)),
		base.Derive(StyleTableHeader, WithSize(9), WithBold(true), WithColor(White),
			WithFill(DarkBlue), WithAlign(AlignCenter), WithLeading(20)),
		base.Derive(StyleHeader, WithSize(8), WithItalic(true), WithColor(LightGrey), WithAlign(AlignCenter)),
		base.Derive(StyleFooter, WithSize(8), WithItalic(true), WithColor(LightGrey), WithAlign(AlignCenter)),
	}

	ss, err := NewStyleSheet(styles...)
	if err != nil {
		// Built-in styles are static; failure is a programming error.
		panic(fmt.Sprintf("flowpdf: default style sheet: %v", err))
	}
	return ss
}
