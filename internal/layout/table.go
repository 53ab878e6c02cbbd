package layout

// ellipsis marks clipped cell text.
const ellipsis = "..."

// layoutTable places a table row by row. The header and the first row are
// kept together; when a row does not fit, a new page starts and the header is
// repeated.
func (e *Engine) layoutTable(c *cursor, index int, f *Flowable) error {
	t := f.Table
	if t == nil || len(t.Header) == 0 || t.HeaderHeight <= 0 || t.RowHeight <= 0 {
		return ErrInvalidFlow
	}
	for _, row := range t.Rows {
		if len(row) != len(t.Header) {
			return ErrInvalidFlow
		}
	}

	left := e.opts.Geometry.Left + f.Para.LeftIndent
	widths, err := e.columnWidths(t, e.opts.Geometry.ContentWidth()-f.Para.LeftIndent-f.Para.RightIndent)
	if err != nil {
		return err
	}

	before := f.Para.SpaceBefore
	if c.fresh {
		before = 0
	}
	lead := t.HeaderHeight
	if len(t.Rows) > 0 {
		lead += t.RowHeight
	}
	if before+lead > e.remaining(c)+epsilon && !c.fresh {
		if err := e.newPage(c); err != nil {
			return err
		}
		before = 0
	}
	if before+lead > e.remaining(c)+epsilon {
		return ErrBlockTooTall
	}

	first := c.page.Number
	c.y += before
	top := c.y
	if err := e.drawRow(c, t, left, widths, t.Header, true); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if t.RowHeight > e.remaining(c)+epsilon {
			if err := e.newPage(c); err != nil {
				return err
			}
			if err := e.drawRow(c, t, left, widths, t.Header, true); err != nil {
				return err
			}
		}
		if err := e.drawRow(c, t, left, widths, row, false); err != nil {
			return err
		}
	}
	bottom := c.y
	c.y += f.Para.SpaceAfter
	c.fresh = false
	e.place(c, index, first, top, bottom, len(t.Rows)+1)
	return nil
}

// columnWidths resolves zero widths by sharing what is left of avail.
func (e *Engine) columnWidths(t *Table, avail float64) ([]float64, error) {
	widths := make([]float64, len(t.Header))
	fixed, zeros := 0.0, 0
	for i := range widths {
		if i < len(t.Widths) && t.Widths[i] > 0 {
			widths[i] = t.Widths[i]
			fixed += t.Widths[i]
		} else {
			zeros++
		}
	}
	if fixed > avail+epsilon {
		return nil, ErrTableTooWide
	}
	if zeros > 0 {
		share := (avail - fixed) / float64(zeros)
		if share <= 0 {
			return nil, ErrTableTooWide
		}
		for i := range widths {
			if widths[i] == 0 {
				widths[i] = share
			}
		}
	}
	return widths, nil
}

// drawRow emits cell rectangles and clipped cell text for one row.
func (e *Engine) drawRow(c *cursor, t *Table, left float64, widths []float64, cells []string, header bool) error {
	height, font, color := t.RowHeight, t.BodyFont, t.BodyColor
	if header {
		height, font, color = t.HeaderHeight, t.HeaderFont, t.HeaderColor
	}

	x := left
	for i, w := range widths {
		border := t.Border
		r := Rect{X: x, Y: c.y, W: w, H: height, Stroke: &border}
		if header {
			fill := t.HeaderFill
			r.Fill = &fill
		}
		c.page.Rects = append(c.page.Rects, r)

		text, tw, err := e.clip(font, cells[i], w-2*t.Padding)
		if err != nil {
			return err
		}
		if text != "" {
			tx := x + t.Padding
			if header {
				tx = x + (w-tw)/2
			}
			c.page.Runs = append(c.page.Runs, Run{
				X:     tx,
				Y:     baseline(c.y, height, font.SizeMM()),
				Text:  text,
				Font:  font,
				Color: color,
			})
		}
		x += w
	}
	c.y += height
	return nil
}

// clip shortens s with an ellipsis until it fits width.
func (e *Engine) clip(font Font, s string, width float64) (string, float64, error) {
	w, err := e.m.Width(font, s)
	if err != nil || w <= width+epsilon {
		return s, w, err
	}
	runes := []rune(s)
	for n := len(runes) - 1; n > 0; n-- {
		candidate := string(runes[:n]) + ellipsis
		w, err = e.m.Width(font, candidate)
		if err != nil {
			return "", 0, err
		}
		if w <= width+epsilon {
			return candidate, w, nil
		}
	}
	return "", 0, nil
}
