package layout

import "strings"

// piece is a measured fragment of a word in a single font.
type piece struct {
	text  string
	font  Font
	color Color
	width float64
}

// word is a run of non-space characters, possibly spanning several fonts.
type word struct {
	pieces      []piece
	width       float64
	space       float64 // width of the space preceding the word
	spaced      bool    // whitespace preceded the word in the source
	breakBefore bool    // a newline preceded the word in the source
}

// line is a wrapped line of words.
type line struct {
	words []word
	width float64
	hard  bool // ended by an explicit newline or the end of the text
}

// splitWords tokenizes spans into words. Whitespace ends a word; a span
// boundary without whitespace glues the next span onto the current word.
func splitWords(spans []Span) []word {
	var (
		words  []word
		cur    = -1
		buf    strings.Builder
		spaced bool
		brk    bool
	)

	flush := func(sp Span) {
		if buf.Len() == 0 {
			return
		}
		if cur < 0 {
			words = append(words, word{spaced: spaced, breakBefore: brk})
			cur = len(words) - 1
			spaced, brk = false, false
		}
		words[cur].pieces = append(words[cur].pieces, piece{text: buf.String(), font: sp.Font, color: sp.Color})
		buf.Reset()
	}

	for _, sp := range spans {
		for _, r := range sp.Text {
			switch r {
			case '\n':
				flush(sp)
				cur = -1
				brk = true
			case ' ', '\t', '\r':
				flush(sp)
				cur = -1
				spaced = true
			default:
				buf.WriteRune(r)
			}
		}
		flush(sp)
	}
	return words
}

// measureWords fills piece, word and space widths.
func measureWords(m Measurer, words []word) error {
	for i := range words {
		w := &words[i]
		w.width = 0
		for j := range w.pieces {
			pw, err := m.Width(w.pieces[j].font, w.pieces[j].text)
			if err != nil {
				return err
			}
			w.pieces[j].width = pw
			w.width += pw
		}
		if w.spaced && len(w.pieces) > 0 {
			sw, err := m.Width(w.pieces[0].font, " ")
			if err != nil {
				return err
			}
			w.space = sw
		}
	}
	return nil
}

// wrapWords breaks measured words into lines no wider than avail.
// Words wider than avail are broken between characters.
func wrapWords(m Measurer, words []word, avail float64) ([]line, error) {
	var (
		lines []line
		cur   line
	)

	finish := func(hard bool) {
		cur.hard = hard
		lines = append(lines, cur)
		cur = line{}
	}

	for _, w := range words {
		if len(cur.words) > 0 {
			if w.breakBefore {
				finish(true)
			} else if cur.width+w.space+w.width > avail+epsilon {
				finish(false)
			}
		}

		if w.width > avail+epsilon {
			chunks, err := breakWord(m, w, avail)
			if err != nil {
				return nil, err
			}
			for i, c := range chunks {
				if i > 0 {
					finish(false)
				}
				addWord(&cur, c)
			}
			continue
		}

		addWord(&cur, w)
	}

	if len(cur.words) > 0 {
		finish(true)
	}
	return lines, nil
}

func addWord(l *line, w word) {
	if len(l.words) == 0 {
		w.space = 0
	}
	l.words = append(l.words, w)
	l.width += w.space + w.width
}

// breakWord splits an over-wide word into chunks that each fit avail.
// Every chunk holds at least one character.
func breakWord(m Measurer, w word, avail float64) ([]word, error) {
	var (
		chunks []word
		cur    = word{space: w.space, spaced: w.spaced}
	)

	for _, p := range w.pieces {
		var buf []rune
		bufWidth := 0.0
		for _, r := range p.text {
			candidate := append(buf, r)
			cw, err := m.Width(p.font, string(candidate))
			if err != nil {
				return nil, err
			}
			if cur.width+cw > avail+epsilon && (len(buf) > 0 || len(cur.pieces) > 0) {
				if len(buf) > 0 {
					cur.pieces = append(cur.pieces, piece{text: string(buf), font: p.font, color: p.color, width: bufWidth})
					cur.width += bufWidth
				}
				chunks = append(chunks, cur)
				cur = word{}
				buf = []rune{r}
				bufWidth, err = m.Width(p.font, string(r))
				if err != nil {
					return nil, err
				}
				continue
			}
			buf = candidate
			bufWidth = cw
		}
		if len(buf) > 0 {
			cur.pieces = append(cur.pieces, piece{text: string(buf), font: p.font, color: p.color, width: bufWidth})
			cur.width += bufWidth
		}
	}
	if len(cur.pieces) > 0 {
		chunks = append(chunks, cur)
	}
	return chunks, nil
}

// lineFontSize returns the largest font size on a line, in millimetres.
func lineFontSize(l line) float64 {
	size := 0.0
	for _, w := range l.words {
		for _, p := range w.pieces {
			if s := p.font.SizeMM(); s > size {
				size = s
			}
		}
	}
	return size
}

// baseline returns the baseline of a line box, centered the way fpdf centers
// cell text: half the box height plus 0.3 of the font size.
func baseline(top, height, fontSize float64) float64 {
	return top + height/2 + 0.3*fontSize
}

// placeLine positions the words of a line inside [left, left+avail].
// The last line of a justified paragraph and lines ended by a newline are
// left aligned.
func placeLine(l line, left, avail, y float64, align Align) []Run {
	x := left
	extra := 0.0

	switch align {
	case AlignCenter:
		x += (avail - l.width) / 2
	case AlignRight:
		x += avail - l.width
	case AlignJustify:
		if !l.hard && len(l.words) > 1 {
			extra = (avail - l.width) / float64(len(l.words)-1)
		}
	}

	var runs []Run
	for i, w := range l.words {
		gap := false
		if i > 0 {
			x += w.space + extra
			gap = true
		}
		for j, p := range w.pieces {
			if n := len(runs); n > 0 && extra == 0 && runs[n-1].Font == p.font && runs[n-1].Color == p.color {
				if gap && j == 0 {
					runs[n-1].Text += " "
				}
				runs[n-1].Text += p.text
			} else {
				runs = append(runs, Run{X: x, Y: y, Text: p.text, Font: p.font, Color: p.color})
			}
			x += p.width
		}
	}
	return runs
}
