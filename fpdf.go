package flowpdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/alnah/go-flowpdf/internal/layout"
)

// Compile-time interface implementation checks.
var (
	_ layout.Measurer = (*fpdfMeasurer)(nil)
	_ painter         = (*nativePainter)(nil)
)

// painter turns a layout plan into PDF bytes.
type painter interface {
	Paint(ctx context.Context, plan *layout.Plan) ([]byte, error)
	Close() error
}

// toWinAnsi transcodes UTF-8 to Windows-1252, the encoding of the PDF core
// fonts. Runes outside the code page become '?'.
func toWinAnsi(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x80 {
			b.WriteByte(byte(r))
			continue
		}
		if c, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('?')
	}
	return b.String()
}

type measureKey struct {
	font layout.Font
	text string
}

// fpdfMeasurer measures text with the core font metrics used by the painter.
type fpdfMeasurer struct {
	pdf   *fpdf.Fpdf
	cache map[measureKey]float64
}

func newFpdfMeasurer() *fpdfMeasurer {
	return &fpdfMeasurer{
		pdf:   fpdf.New("P", "mm", "A4", ""),
		cache: make(map[measureKey]float64),
	}
}

// Width returns the width of s in millimetres.
func (m *fpdfMeasurer) Width(f layout.Font, s string) (float64, error) {
	key := measureKey{font: f, text: s}
	if w, ok := m.cache[key]; ok {
		return w, nil
	}
	m.pdf.SetFont(f.Family, f.Style, f.Size)
	w := m.pdf.GetStringWidth(toWinAnsi(s))
	if err := m.pdf.Error(); err != nil {
		return 0, fmt.Errorf("measuring with %s %s: %w", f.Family, f.Style, err)
	}
	m.cache[key] = w
	return w, nil
}

// nativePainter draws plans with go-pdf/fpdf.
type nativePainter struct {
	meta         Metadata
	creationDate time.Time
}

// Paint draws every page of plan and returns the PDF bytes.
func (p *nativePainter) Paint(ctx context.Context, plan *layout.Plan) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g := plan.Geometry
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: g.Width, Ht: g.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(g.Left, g.Top, g.Right)
	pdf.SetCreationDate(p.creationDate)
	pdf.SetModificationDate(p.creationDate)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(p.meta.Title, true)
	pdf.SetAuthor(p.meta.Author, true)
	pdf.SetSubject(p.meta.Subject, true)
	pdf.SetKeywords(strings.Join(p.meta.Keywords, " "), true)
	pdf.SetCreator(p.meta.Creator, true)
	pdf.SetLineWidth(0.2)

	for _, page := range plan.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pdf.AddPage()
		for _, r := range page.Rects {
			drawRect(pdf, r)
		}
		for _, run := range page.Runs {
			pdf.SetFont(run.Font.Family, run.Font.Style, run.Font.Size)
			pdf.SetTextColor(int(run.Color.R), int(run.Color.G), int(run.Color.B))
			pdf.Text(run.X, run.Y, toWinAnsi(run.Text))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	return buf.Bytes(), nil
}

// Close is a no-op; the native painter holds no resources.
func (p *nativePainter) Close() error {
	return nil
}

func drawRect(pdf *fpdf.Fpdf, r layout.Rect) {
	style := ""
	if r.Fill != nil {
		pdf.SetFillColor(int(r.Fill.R), int(r.Fill.G), int(r.Fill.B))
		style += "F"
	}
	if r.Stroke != nil {
		pdf.SetDrawColor(int(r.Stroke.R), int(r.Stroke.G), int(r.Stroke.B))
		style += "D"
	}
	if style != "" {
		pdf.Rect(r.X, r.Y, r.W, r.H, style)
	}
}
