package flowpdf

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-flowpdf/internal/fileutil"
	"github.com/alnah/go-flowpdf/internal/layout"
)

// outputPerm is the permission of written artifacts.
const outputPerm = 0o644

// Document is an ordered sequence of blocks plus page geometry.
// Create with NewDocument, populate with Append and finalize once with Build.
// A Document is not safe for concurrent use.
type Document struct {
	cfg       documentConfig
	blocks    []Block
	finalized bool

	// injectable for tests
	measurer layout.Measurer
	painter  painter
}

// NewDocument creates an empty document. Without options it lays out A4
// portrait pages with 2 cm margins using DefaultStyleSheet.
func NewDocument(opts ...Option) (*Document, error) {
	d := &Document{
		cfg: documentConfig{
			page:         DefaultPageSettings(),
			sheet:        DefaultStyleSheet(),
			footer:       defaultFooter,
			overflow:     OverflowFail,
			backend:      BackendNative,
			timeout:      defaultTimeout,
			creationDate: epoch,
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.cfg.page == nil {
		d.cfg.page = DefaultPageSettings()
	}
	if err := d.cfg.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Append adds blocks to the end of the sequence. Blocks are validated
// structurally; style references are resolved at Build. On error nothing
// is appended.
func (d *Document) Append(blocks ...Block) error {
	if d.finalized {
		return ErrDocumentFinalized
	}
	for i, b := range blocks {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("block %d: %w", len(d.blocks)+i, err)
		}
	}
	d.blocks = append(d.blocks, blocks...)
	return nil
}

// Len returns the number of appended blocks.
func (d *Document) Len() int {
	return len(d.blocks)
}

// Build lays out every block, paints the pages and writes the PDF to path.
// It finalizes the document whatever the outcome; later calls to Append or
// Build return ErrDocumentFinalized.
//
// Failures are *RenderError when a block cannot be resolved, measured or
// drawn, and *IOError when path cannot be written. No file is left at path
// on failure.
func (d *Document) Build(ctx context.Context, path string) (result *Result, err error) {
	if d.finalized {
		return nil, ErrDocumentFinalized
	}
	d.finalized = true
	blocks := d.blocks
	d.blocks = nil

	if path == "" {
		return nil, &IOError{Op: "open", Path: path, Err: ErrEmptyPath}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	plan, err := d.layout(blocks)
	if err != nil {
		return nil, err
	}

	p := d.painter
	if p == nil {
		p = d.newPainter()
	}
	defer func() {
		if closeErr := p.Close(); closeErr != nil && err == nil {
			err = &RenderError{Block: -1, Err: closeErr}
		}
	}()

	data, err := p.Paint(ctx, plan)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &RenderError{Block: -1, Err: err}
	}

	if err := fileutil.WriteAtomic(path, data, outputPerm); err != nil {
		return nil, toIOError(path, err)
	}

	return newResult(path, data, plan, blocks), nil
}

// layout resolves styles and runs the layout engine.
func (d *Document) layout(blocks []Block) (*layout.Plan, error) {
	r := &resolver{sheet: d.cfg.sheet}
	flows, err := r.flowables(blocks)
	if err != nil {
		return nil, err
	}

	header := r.decoration(StyleHeader)
	footer := r.decoration(StyleFooter)
	overflow := layout.OverflowFail
	if d.cfg.overflow == OverflowSplit {
		overflow = layout.OverflowSplit
	}

	m := d.measurer
	if m == nil {
		m = newFpdfMeasurer()
	}
	engine := layout.New(m, layout.Options{
		Geometry: d.cfg.page.geometry(),
		Decorations: layout.Decorations{
			HeaderText:   d.cfg.headerText(),
			HeaderFont:   fontFor(header, false, false),
			HeaderColor:  colorFor(header.Color),
			FooterFormat: d.cfg.footer,
			FooterFont:   fontFor(footer, false, false),
			FooterColor:  colorFor(footer.Color),
		},
		Overflow: overflow,
	})

	plan, err := engine.Layout(flows)
	if err != nil {
		var be *layout.BlockError
		if errors.As(err, &be) {
			return nil, &RenderError{Block: be.Index, Kind: blocks[be.Index].Kind, Err: be.Err}
		}
		return nil, &RenderError{Block: -1, Err: err}
	}
	return plan, nil
}

func (d *Document) newPainter() painter {
	if d.cfg.backend == BackendBrowser {
		return newBrowserPainter(d.cfg.timeout, d.cfg.meta)
	}
	return &nativePainter{meta: d.cfg.meta, creationDate: d.cfg.creationDate}
}

// toIOError converts a write failure into an *IOError.
func toIOError(path string, err error) *IOError {
	var ae *fileutil.AtomicError
	if errors.As(err, &ae) {
		return &IOError{Op: ae.Op, Path: ae.Path, Err: ae.Err}
	}
	return &IOError{Op: "write", Path: path, Err: err}
}

// WriteFile is a convenience for building blocks into path in one call.
func WriteFile(ctx context.Context, path string, blocks []Block, opts ...Option) (*Result, error) {
	d, err := NewDocument(opts...)
	if err != nil {
		return nil, err
	}
	if err := d.Append(blocks...); err != nil {
		return nil, err
	}
	return d.Build(ctx, path)
}
