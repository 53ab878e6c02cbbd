package flowpdf

import (
	"context"
	"fmt"
	"html"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-flowpdf/internal/fileutil"
	"github.com/alnah/go-flowpdf/internal/layout"
	"github.com/alnah/go-flowpdf/internal/process"
)

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, g layout.Geometry) ([]byte, error)
	Close() error
}

// Compile-time interface checks
var (
	_ pdfRenderer = (*rodRenderer)(nil)
	_ painter     = (*browserPainter)(nil)
)

// baselineRatio is the distance from the top of a line-height:1 box to the
// baseline, as a fraction of the font size, for the sans-serif core faces.
const baselineRatio = 0.85

// cssFamilies maps core font families to CSS font stacks.
var cssFamilies = map[string]string{
	FontHelvetica: "Helvetica, Arial, sans-serif",
	FontArial:     "Arial, Helvetica, sans-serif",
	FontTimes:     `"Times New Roman", Times, serif`,
	FontCourier:   `"Courier New", Courier, monospace`,
}

// rodRenderer implements pdfRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

// newRodRenderer creates a rodRenderer with the given timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		r.kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources and kills the Chrome process tree.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.kill()
	return err
}

func (r *rodRenderer) kill() {
	if r.launcher == nil {
		return
	}
	_ = process.KillTree(r.launcher.PID())
	r.launcher.Kill()
	r.launcher = nil
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it
// on pages of geometry g.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, g layout.Geometry) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(printOptions(g))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// printOptions prints edge to edge; margins are already part of the layout.
func printOptions(g layout.Geometry) *proto.PagePrintToPDF {
	zero := 0.0
	return &proto.PagePrintToPDF{
		PaperWidth:        floatPtr(g.Width / MMPerInch),
		PaperHeight:       floatPtr(g.Height / MMPerInch),
		MarginTop:         &zero,
		MarginBottom:      &zero,
		MarginLeft:        &zero,
		MarginRight:       &zero,
		PrintBackground:   true,
		PreferCSSPageSize: true,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// browserPainter paints plans as absolutely positioned HTML printed by Chrome.
type browserPainter struct {
	renderer pdfRenderer
	meta     Metadata
}

func newBrowserPainter(timeout time.Duration, meta Metadata) *browserPainter {
	return &browserPainter{renderer: newRodRenderer(timeout), meta: meta}
}

// Paint renders plan to HTML, writes it to a temp file and prints it.
func (p *browserPainter) Paint(ctx context.Context, plan *layout.Plan) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile([]byte(planHTML(plan, p.meta)), "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return p.renderer.RenderFromFile(ctx, tmpPath, plan.Geometry)
}

// Close releases the browser.
func (p *browserPainter) Close() error {
	if p.renderer != nil {
		return p.renderer.Close()
	}
	return nil
}

// planHTML renders every page of plan as a fixed-size box holding
// absolutely positioned rectangles and text runs. Coordinates are in mm.
func planHTML(plan *layout.Plan, meta Metadata) string {
	g := plan.Geometry
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(meta.Title))
	if meta.Author != "" {
		fmt.Fprintf(&b, "<meta name=\"author\" content=\"%s\">\n", html.EscapeString(meta.Author))
	}
	b.WriteString("<style>\n")
	fmt.Fprintf(&b, "@page { size: %smm %smm; margin: 0; }\n", mm(g.Width), mm(g.Height))
	b.WriteString("html, body { margin: 0; padding: 0; }\n")
	fmt.Fprintf(&b, ".page { position: relative; overflow: hidden; width: %smm; height: %smm; page-break-after: always; }\n", mm(g.Width), mm(g.Height))
	b.WriteString(".page:last-child { page-break-after: auto; }\n")
	b.WriteString(".run { position: absolute; white-space: pre; line-height: 1; }\n")
	b.WriteString(".rect { position: absolute; box-sizing: border-box; }\n")
	b.WriteString("</style>\n</head>\n<body>\n")

	for _, page := range plan.Pages {
		fmt.Fprintf(&b, "<div class=\"page\" data-page=\"%d\">\n", page.Number)
		for _, r := range page.Rects {
			writeRect(&b, r)
		}
		for _, run := range page.Runs {
			writeRun(&b, run)
		}
		b.WriteString("</div>\n")
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func writeRect(b *strings.Builder, r layout.Rect) {
	style := fmt.Sprintf("left:%smm;top:%smm;width:%smm;height:%smm;", mm(r.X), mm(r.Y), mm(r.W), mm(r.H))
	if r.Fill != nil {
		style += "background:" + cssColor(*r.Fill) + ";"
	}
	if r.Stroke != nil {
		style += "border:0.2mm solid " + cssColor(*r.Stroke) + ";"
	}
	fmt.Fprintf(b, "<div class=\"rect\" style=\"%s\"></div>\n", style)
}

func writeRun(b *strings.Builder, run layout.Run) {
	f := run.Font
	top := run.Y - baselineRatio*f.SizeMM()
	family, ok := cssFamilies[f.Family]
	if !ok {
		family = cssFamilies[FontHelvetica]
	}
	weight, slant := "normal", "normal"
	if strings.Contains(f.Style, "B") {
		weight = "bold"
	}
	if strings.Contains(f.Style, "I") {
		slant = "italic"
	}
	fmt.Fprintf(b,
		"<span class=\"run\" style=\"left:%smm;top:%smm;font-family:%s;font-size:%spt;font-weight:%s;font-style:%s;color:%s\">%s</span>\n",
		mm(run.X), mm(top), html.EscapeString(family), mm(f.Size), weight, slant, cssColor(run.Color), html.EscapeString(run.Text))
}

// mm formats a length with fixed precision so output is stable.
func mm(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

func cssColor(c layout.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
