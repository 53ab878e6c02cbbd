package flowpdf

import (
	"errors"
	"fmt"

	"github.com/alnah/go-flowpdf/internal/layout"
)

// Sentinel errors for library operations.
var (
	ErrInvalidBlock      = errors.New("invalid block")
	ErrDocumentFinalized = errors.New("document already built")
	ErrUnknownStyle      = errors.New("unknown style")
	ErrEmptyPath         = errors.New("destination path cannot be empty")
	ErrPDFGeneration     = errors.New("PDF generation failed")
	ErrBrowserConnect    = errors.New("failed to connect to browser")
	ErrPageCreate        = errors.New("failed to create browser page")
	ErrPageLoad          = errors.New("failed to load page")

	// Style validation errors.
	ErrInvalidStyle   = errors.New("invalid style")
	ErrDuplicateStyle = errors.New("duplicate style")
	ErrInvalidColor   = errors.New("invalid color")
	ErrInvalidLength  = errors.New("invalid length")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Option validation errors.
	ErrInvalidBackend  = errors.New("invalid backend")
	ErrInvalidOverflow = errors.New("invalid overflow policy")

	// Layout errors, reported inside a RenderError.
	ErrBlockTooTall = layout.ErrBlockTooTall
	ErrTableTooWide = layout.ErrTableTooWide
)

// IOError reports a failure to write the output artifact.
type IOError struct {
	Op   string // "create", "write", "rename", ...
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// RenderError reports a block that could not be measured or drawn.
// Block is the index of the block in append order, or -1 when the failure is
// not tied to a single block (painting, browser).
type RenderError struct {
	Block int
	Kind  Kind
	Err   error
}

func (e *RenderError) Error() string {
	if e.Block < 0 {
		return fmt.Sprintf("render: %v", e.Err)
	}
	return fmt.Sprintf("render block %d (%s): %v", e.Block, e.Kind, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
