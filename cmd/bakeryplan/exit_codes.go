package main

import (
	"errors"
	"os"

	"github.com/alnah/go-flowpdf"
	"github.com/alnah/go-flowpdf/internal/assets"
	"github.com/alnah/go-flowpdf/internal/config"
	"github.com/alnah/go-flowpdf/internal/outline"
)

// Exit codes for the bakeryplan CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // PDF written
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or outline
	ExitIO      = 3 // Output or input file errors
	ExitRender  = 4 // Layout, painting, or browser errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is/As to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	var ioErr *flowpdf.IOError
	if errors.As(err, &ioErr) ||
		errors.Is(err, assets.ErrAssetRead) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	// Render errors (exit 4)
	var renderErr *flowpdf.RenderError
	if errors.As(err, &renderErr) ||
		errors.Is(err, flowpdf.ErrBrowserConnect) ||
		errors.Is(err, flowpdf.ErrPageCreate) ||
		errors.Is(err, flowpdf.ErrPageLoad) ||
		errors.Is(err, flowpdf.ErrPDFGeneration) {
		return ExitRender
	}

	// Usage/config/outline errors (exit 2)
	if errors.Is(err, ErrUnexpectedArgs) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, assets.ErrOutlineNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrPathTraversal) ||
		errors.Is(err, outline.ErrOutlineParse) ||
		errors.Is(err, outline.ErrUnknownKind) ||
		errors.Is(err, outline.ErrUnknownParent) ||
		errors.Is(err, outline.ErrUnknownFormat) ||
		errors.Is(err, outline.ErrEmptyOutline) ||
		errors.Is(err, outline.ErrInvalidSetting) ||
		errors.Is(err, flowpdf.ErrInvalidBlock) ||
		errors.Is(err, flowpdf.ErrInvalidStyle) ||
		errors.Is(err, flowpdf.ErrInvalidPageSize) ||
		errors.Is(err, flowpdf.ErrInvalidOrientation) ||
		errors.Is(err, flowpdf.ErrInvalidMargin) ||
		errors.Is(err, flowpdf.ErrInvalidBackend) ||
		errors.Is(err, flowpdf.ErrInvalidOverflow) {
		return ExitUsage
	}

	return ExitGeneral
}
