package layout

import (
	"strconv"
	"strings"
)

// Engine lays out flowables on pages. An Engine holds no state between
// Layout calls and can be reused.
type Engine struct {
	m    Measurer
	opts Options
}

// New creates an Engine measuring text with m.
func New(m Measurer, opts Options) *Engine {
	return &Engine{m: m, opts: opts}
}

// cursor tracks the current page and vertical position during one Layout.
type cursor struct {
	plan  *Plan
	page  *Page
	y     float64
	fresh bool // nothing placed on the current page yet
}

// Layout places flows in order and returns the resulting plan.
// Errors from individual flowables are returned as *BlockError.
func (e *Engine) Layout(flows []Flowable) (*Plan, error) {
	if e.m == nil {
		return nil, ErrNoMeasurer
	}
	if err := e.opts.Geometry.validate(); err != nil {
		return nil, err
	}

	c := &cursor{plan: &Plan{Geometry: e.opts.Geometry}}
	if err := e.newPage(c); err != nil {
		return nil, err
	}

	for i := range flows {
		f := &flows[i]

		var err error
		switch f.Kind {
		case KindText, KindBullet:
			err = e.layoutText(c, i, f, flows[i+1:])
		case KindSpacer:
			err = e.layoutSpacer(c, i, f)
		case KindPageBreak:
			err = e.newPage(c)
			if err == nil {
				e.place(c, i, c.page.Number, c.y, c.y, 0)
			}
		case KindTable:
			err = e.layoutTable(c, i, f)
		default:
			err = ErrInvalidFlow
		}
		if err != nil {
			return nil, &BlockError{Index: i, Kind: f.Kind, Err: err}
		}
	}

	if err := e.drawFooters(c.plan); err != nil {
		return nil, err
	}
	return c.plan, nil
}

// top returns the first usable y on a page.
func (e *Engine) top(p *Page) float64 {
	g := e.opts.Geometry
	if p.HasHeader {
		return g.Top + g.HeaderBand
	}
	return g.Top
}

// bottom returns the lowest usable y on any page.
func (e *Engine) bottom() float64 {
	g := e.opts.Geometry
	return g.Height - g.Bottom
}

// newPage appends a page, draws its running header and resets the cursor.
func (e *Engine) newPage(c *cursor) error {
	d := e.opts.Decorations
	p := &Page{Number: len(c.plan.Pages) + 1}
	p.HasHeader = d.HeaderText != "" && p.Number > 1
	c.plan.Pages = append(c.plan.Pages, p)
	c.page = p
	c.y = e.top(p)
	c.fresh = true

	if p.HasHeader {
		g := e.opts.Geometry
		run, err := e.centered(d.HeaderText, d.HeaderFont, d.HeaderColor, baseline(g.Top, g.HeaderBand, d.HeaderFont.SizeMM()))
		if err != nil {
			return err
		}
		p.Runs = append(p.Runs, run)
	}
	return nil
}

func (e *Engine) remaining(c *cursor) float64 {
	return e.bottom() - c.y
}

func (e *Engine) place(c *cursor, index, first int, top, bottom float64, lines int) {
	c.plan.Placements = append(c.plan.Placements, Placement{
		Index:    index,
		Page:     first,
		LastPage: c.page.Number,
		Top:      top,
		Bottom:   bottom,
		Lines:    lines,
	})
}

// layoutSpacer advances the cursor, starting a new page first when the
// spacer would cross the bottom margin.
func (e *Engine) layoutSpacer(c *cursor, index int, f *Flowable) error {
	if f.Length < 0 {
		return ErrInvalidFlow
	}
	if c.y+f.Length > e.bottom()+epsilon {
		if err := e.newPage(c); err != nil {
			return err
		}
	}
	top := c.y
	c.y += f.Length
	if f.Length > 0 {
		c.fresh = false
	}
	e.place(c, index, c.page.Number, top, c.y, 0)
	return nil
}

// textBox is a wrapped text flowable ready to be placed.
type textBox struct {
	lines []line
	left  float64
	avail float64
}

func (e *Engine) wrap(f *Flowable) (*textBox, error) {
	g := e.opts.Geometry
	left := g.Left + f.Para.LeftIndent
	avail := g.ContentWidth() - f.Para.LeftIndent - f.Para.RightIndent
	if avail <= 0 || f.Para.Leading <= 0 {
		return nil, ErrInvalidFlow
	}

	words := splitWords(f.Spans)
	if err := measureWords(e.m, words); err != nil {
		return nil, err
	}
	lines, err := wrapWords(e.m, words, avail)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		lines = []line{{hard: true}}
	}
	return &textBox{lines: lines, left: left, avail: avail}, nil
}

// leadHeight returns the height a flowable needs on the current page before
// its first line can be drawn: its space before plus one line, or for tables
// the header plus one row.
func (e *Engine) leadHeight(f *Flowable) float64 {
	switch f.Kind {
	case KindText, KindBullet:
		return f.Para.SpaceBefore + f.Para.Leading
	case KindTable:
		if f.Table != nil {
			return f.Para.SpaceBefore + f.Table.HeaderHeight + f.Table.RowHeight
		}
	}
	return 0
}

// keepHeight returns the space that must follow a keep-with-next block on the
// same page. Consecutive keep-with-next blocks are kept whole and the chain
// ends with the lead of the first block that does not keep. Spacers in the
// chain count with their length; a page break ends it.
func (e *Engine) keepHeight(rest []Flowable) float64 {
	total := 0.0
	for i := range rest {
		f := &rest[i]
		switch f.Kind {
		case KindSpacer:
			total += f.Length
			continue
		case KindText, KindBullet:
			if !f.Para.KeepWithNext {
				return total + e.leadHeight(f)
			}
			box, err := e.wrap(f)
			if err != nil {
				// The error is reported when the block itself is laid out.
				return total + e.leadHeight(f)
			}
			total += f.Para.SpaceBefore + float64(len(box.lines))*f.Para.Leading + f.Para.SpaceAfter
			continue
		case KindTable:
			return total + e.leadHeight(f)
		}
		return total
	}
	return total
}

// layoutText places a text or bullet flowable. The block is kept together:
// when it does not fit the remaining space it moves to a new page. A block
// taller than a fresh page fails or is split, depending on the overflow policy.
func (e *Engine) layoutText(c *cursor, index int, f *Flowable, rest []Flowable) error {
	box, err := e.wrap(f)
	if err != nil {
		return err
	}

	height := float64(len(box.lines)) * f.Para.Leading
	before := f.Para.SpaceBefore
	if c.fresh {
		before = 0
	}

	keep := 0.0
	if f.Para.KeepWithNext {
		if k := e.keepHeight(rest); k > 0 {
			keep = f.Para.SpaceAfter + k
		}
	}

	if before+height+keep > e.remaining(c)+epsilon && !c.fresh {
		if err := e.newPage(c); err != nil {
			return err
		}
		before = 0
	}

	// Still too tall on a page that holds nothing else.
	if before+height > e.remaining(c)+epsilon {
		if e.opts.Overflow == OverflowSplit {
			return e.splitText(c, index, f, box)
		}
		return ErrBlockTooTall
	}

	first := c.page.Number
	c.y += before
	top := c.y
	for i, l := range box.lines {
		e.drawLine(c, f, box, l, i == 0)
	}
	c.y += f.Para.SpaceAfter
	c.fresh = false
	e.place(c, index, first, top, top+height, len(box.lines))
	return nil
}

// splitText places lines until the page is full and continues on new pages.
// It is only called on a page that holds nothing else.
func (e *Engine) splitText(c *cursor, index int, f *Flowable, box *textBox) error {
	if f.Para.Leading > e.remaining(c)+epsilon {
		return ErrBlockTooTall
	}

	first := c.page.Number
	top := c.y
	for i, l := range box.lines {
		if f.Para.Leading > e.remaining(c)+epsilon {
			if err := e.newPage(c); err != nil {
				return err
			}
		}
		e.drawLine(c, f, box, l, i == 0)
	}
	bottom := c.y
	c.y += f.Para.SpaceAfter
	c.fresh = false
	e.place(c, index, first, top, bottom, len(box.lines))
	return nil
}

// drawLine emits the runs of one line at the cursor and advances it.
func (e *Engine) drawLine(c *cursor, f *Flowable, box *textBox, l line, first bool) {
	size := lineFontSize(l)
	if first && f.Kind == KindBullet && f.Bullet != nil && f.Bullet.Font.SizeMM() > size {
		size = f.Bullet.Font.SizeMM()
	}
	y := baseline(c.y, f.Para.Leading, size)

	if first && f.Kind == KindBullet && f.Bullet != nil {
		c.page.Runs = append(c.page.Runs, Run{
			X:     e.opts.Geometry.Left + f.Bullet.Indent,
			Y:     y,
			Text:  f.Bullet.Glyph,
			Font:  f.Bullet.Font,
			Color: f.Bullet.Color,
		})
	}
	c.page.Runs = append(c.page.Runs, placeLine(l, box.left, box.avail, y, f.Para.Align)...)
	c.y += f.Para.Leading
}

// centered builds a run horizontally centered in the content area.
func (e *Engine) centered(text string, font Font, color Color, y float64) (Run, error) {
	g := e.opts.Geometry
	w, err := e.m.Width(font, text)
	if err != nil {
		return Run{}, err
	}
	return Run{X: g.Left + (g.ContentWidth()-w)/2, Y: y, Text: text, Font: font, Color: color}, nil
}

// drawFooters appends the page footer to every page once the page count is
// known. The footer sits at a fixed offset below the content area.
func (e *Engine) drawFooters(p *Plan) error {
	d := e.opts.Decorations
	if d.FooterFormat == "" {
		return nil
	}
	g := e.opts.Geometry
	total := strconv.Itoa(len(p.Pages))
	y := g.Height - g.Bottom + g.FooterOffset
	for _, page := range p.Pages {
		text := strings.NewReplacer("{page}", strconv.Itoa(page.Number), "{pages}", total).Replace(d.FooterFormat)
		run, err := e.centered(text, d.FooterFont, d.FooterColor, y)
		if err != nil {
			return err
		}
		page.Runs = append(page.Runs, run)
	}
	return nil
}
