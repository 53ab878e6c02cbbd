package outline

import (
	"fmt"
	"strings"

	"github.com/alnah/go-flowpdf"
	"github.com/alnah/go-flowpdf/internal/yamlutil"
)

type yamlOutline struct {
	Title    string      `yaml:"title"`
	Author   string      `yaml:"author"`
	Subject  string      `yaml:"subject"`
	Keywords []string    `yaml:"keywords"`
	Header   *string     `yaml:"header"`
	Footer   *string     `yaml:"footer"`
	Date     string      `yaml:"date"`
	Lang     string      `yaml:"lang"`
	Page     *yamlPage   `yaml:"page"`
	Styles   []yamlStyle `yaml:"styles"`
	Blocks   []yamlBlock `yaml:"blocks"`
}

type yamlPage struct {
	Size        string `yaml:"size"`
	Orientation string `yaml:"orientation"`
	Margin      string `yaml:"margin"`
}

// yamlStyle derives a named style from parent. Nil fields keep the parent's
// value. Sizes and spacings are in points.
type yamlStyle struct {
	Name         string   `yaml:"name"`
	Parent       string   `yaml:"parent"`
	Font         *string  `yaml:"font"`
	Size         *float64 `yaml:"size"`
	Bold         *bool    `yaml:"bold"`
	Italic       *bool    `yaml:"italic"`
	Color        *string  `yaml:"color"`
	Fill         *string  `yaml:"fill"`
	Align        *string  `yaml:"align"`
	Leading      *float64 `yaml:"leading"`
	SpaceBefore  *float64 `yaml:"space_before"`
	SpaceAfter   *float64 `yaml:"space_after"`
	LeftIndent   *float64 `yaml:"left_indent"`
	RightIndent  *float64 `yaml:"right_indent"`
	BulletIndent *float64 `yaml:"bullet_indent"`
	KeepWithNext *bool    `yaml:"keep_with_next"`
}

type yamlBlock struct {
	Kind    string       `yaml:"kind"`
	Text    string       `yaml:"text"`
	Style   string       `yaml:"style"`
	Length  string       `yaml:"length"`
	Columns []yamlColumn `yaml:"columns"`
	Rows    [][]string   `yaml:"rows"`
}

type yamlColumn struct {
	Header string `yaml:"header"`
	Width  string `yaml:"width"`
}

// ParseYAML compiles a YAML outline. Unknown fields are rejected.
func ParseYAML(data []byte) (*Document, error) {
	var y yamlOutline
	if err := yamlutil.UnmarshalStrict(data, &y); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutlineParse, err)
	}

	doc := &Document{
		Metadata: flowpdf.Metadata{
			Title:    y.Title,
			Author:   y.Author,
			Subject:  y.Subject,
			Keywords: y.Keywords,
		},
		Header: y.Header,
		Footer: y.Footer,
		Date:   y.Date,
		Lang:   y.Lang,
	}

	if y.Page != nil {
		page, err := y.Page.settings()
		if err != nil {
			return nil, err
		}
		doc.Page = page
	}

	sheet, err := deriveStyles(flowpdf.DefaultStyleSheet(), y.Styles)
	if err != nil {
		return nil, err
	}
	doc.Sheet = sheet

	for i, yb := range y.Blocks {
		b, err := yb.block()
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		doc.Blocks = append(doc.Blocks, b)
	}

	if err := checkBlocks(doc.Blocks, doc.Sheet); err != nil {
		return nil, err
	}
	return doc, nil
}

func (p *yamlPage) settings() (*flowpdf.PageSettings, error) {
	page := flowpdf.DefaultPageSettings()
	if p.Size != "" {
		page.Size = strings.ToLower(p.Size)
	}
	if p.Orientation != "" {
		page.Orientation = strings.ToLower(p.Orientation)
	}
	if p.Margin != "" {
		mm, err := flowpdf.ParseLength(p.Margin)
		if err != nil {
			return nil, fmt.Errorf("%w: page margin: %w", ErrInvalidSetting, err)
		}
		page.Margin = mm
	}
	if err := page.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSetting, err)
	}
	return page, nil
}

// deriveStyles adds styles to sheet in order, so a style may use one defined
// earlier in the list as its parent.
func deriveStyles(sheet *flowpdf.StyleSheet, styles []yamlStyle) (*flowpdf.StyleSheet, error) {
	seen := make(map[string]bool, len(styles))
	for _, ys := range styles {
		if ys.Name == "" {
			return nil, fmt.Errorf("%w: style without name", ErrOutlineParse)
		}
		if seen[ys.Name] {
			return nil, fmt.Errorf("%w: %w: %q", ErrOutlineParse, flowpdf.ErrDuplicateStyle, ys.Name)
		}
		seen[ys.Name] = true
		parentName := ys.Parent
		if parentName == "" {
			parentName = flowpdf.StyleBody
		}
		parent, ok := sheet.Style(parentName)
		if !ok {
			return nil, fmt.Errorf("%w: %q (style %q)", ErrUnknownParent, parentName, ys.Name)
		}

		opts, err := ys.options()
		if err != nil {
			return nil, fmt.Errorf("style %q: %w", ys.Name, err)
		}
		next, err := sheet.With(parent.Derive(ys.Name, opts...))
		if err != nil {
			return nil, fmt.Errorf("%w: style %q: %w", ErrOutlineParse, ys.Name, err)
		}
		sheet = next
	}
	return sheet, nil
}

func (ys yamlStyle) options() ([]flowpdf.StyleOption, error) {
	var opts []flowpdf.StyleOption
	if ys.Font != nil {
		opts = append(opts, flowpdf.WithFont(*ys.Font))
	}
	if ys.Size != nil {
		opts = append(opts, flowpdf.WithSize(*ys.Size))
	}
	if ys.Bold != nil {
		opts = append(opts, flowpdf.WithBold(*ys.Bold))
	}
	if ys.Italic != nil {
		opts = append(opts, flowpdf.WithItalic(*ys.Italic))
	}
	if ys.Color != nil {
		c, err := flowpdf.ParseColor(*ys.Color)
		if err != nil {
			return nil, err
		}
		opts = append(opts, flowpdf.WithColor(c))
	}
	if ys.Fill != nil {
		c, err := flowpdf.ParseColor(*ys.Fill)
		if err != nil {
			return nil, err
		}
		opts = append(opts, flowpdf.WithFill(c))
	}
	if ys.Align != nil {
		opts = append(opts, flowpdf.WithAlign(flowpdf.Align(strings.ToLower(*ys.Align))))
	}
	if ys.Leading != nil {
		opts = append(opts, flowpdf.WithLeading(*ys.Leading))
	}
	if ys.SpaceBefore != nil || ys.SpaceAfter != nil {
		opts = append(opts, func(s *flowpdf.Style) {
			if ys.SpaceBefore != nil {
				s.SpaceBefore = *ys.SpaceBefore
			}
			if ys.SpaceAfter != nil {
				s.SpaceAfter = *ys.SpaceAfter
			}
		})
	}
	if ys.LeftIndent != nil || ys.RightIndent != nil {
		opts = append(opts, func(s *flowpdf.Style) {
			if ys.LeftIndent != nil {
				s.LeftIndent = *ys.LeftIndent
			}
			if ys.RightIndent != nil {
				s.RightIndent = *ys.RightIndent
			}
		})
	}
	if ys.BulletIndent != nil {
		opts = append(opts, flowpdf.WithBulletIndent(*ys.BulletIndent))
	}
	if ys.KeepWithNext != nil {
		opts = append(opts, flowpdf.WithKeepWithNext(*ys.KeepWithNext))
	}
	return opts, nil
}

func (yb yamlBlock) block() (flowpdf.Block, error) {
	kind, err := flowpdf.ParseKind(yb.Kind)
	if err != nil {
		return flowpdf.Block{}, fmt.Errorf("%w: %q", ErrUnknownKind, yb.Kind)
	}

	switch kind {
	case flowpdf.KindSpacer:
		mm, err := flowpdf.ParseLength(yb.Length)
		if err != nil {
			return flowpdf.Block{}, fmt.Errorf("%w: spacer length: %w", ErrOutlineParse, err)
		}
		return flowpdf.Spacer(mm), nil

	case flowpdf.KindPageBreak:
		return flowpdf.PageBreak(), nil

	case flowpdf.KindTable:
		cols := make([]flowpdf.Column, len(yb.Columns))
		for i, yc := range yb.Columns {
			cols[i].Header = yc.Header
			if yc.Width == "" {
				continue
			}
			w, err := flowpdf.ParseLength(yc.Width)
			if err != nil {
				return flowpdf.Block{}, fmt.Errorf("%w: column %d width: %w", ErrOutlineParse, i, err)
			}
			cols[i].Width = w
		}
		b := flowpdf.Table(cols, yb.Rows)
		if yb.Style != "" {
			b = b.WithStyle(yb.Style)
		}
		return b, nil
	}

	b := textBlock(kind, yb.Text)
	if yb.Style != "" {
		b = b.WithStyle(yb.Style)
	}
	return b, nil
}
