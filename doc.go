// Package flowpdf lays out typed, styled content blocks into a paginated PDF.
//
// # Quick Start
//
// Create a document, append blocks in order, and build it once:
//
//	doc, err := flowpdf.NewDocument(
//	    flowpdf.WithMetadata(flowpdf.Metadata{Title: "Report"}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = doc.Append(
//	    flowpdf.Heading("Introduction"),
//	    flowpdf.Paragraph("Some text that wraps across lines."),
//	    flowpdf.Bullet("First point"),
//	    flowpdf.PageBreak(),
//	    flowpdf.Quote("A closing thought"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := doc.Build(ctx, "report.pdf")
//
// After Build the document is finalized: further Append or Build calls return
// ErrDocumentFinalized.
//
// # Layout
//
// Blocks are placed top to bottom inside the content area (page minus
// margins). Text is wrapped to the content width minus the style's indents
// and kept together: a block that does not fit the space left on the page
// moves to the next page. Spacers advance the cursor, page breaks always
// start a new page. Bullet items hang their continuation lines under the
// first character of text. Pages after the first carry a running header
// (the document title by default) and every page carries a numbered footer.
//
// A block taller than a whole page fails the build with a RenderError
// wrapping ErrBlockTooTall. WithOverflow(OverflowSplit) breaks such blocks
// between lines instead.
//
// # Styles
//
// Styles are immutable records. Derive a variant from a base:
//
//	body, _ := flowpdf.DefaultStyleSheet().Style(flowpdf.StyleBody)
//	note := body.Derive("note", flowpdf.WithSize(9), flowpdf.WithItalic(true))
//	sheet, err := flowpdf.DefaultStyleSheet().With(note)
//
// # Errors
//
// Build returns *IOError when the destination cannot be written and
// *RenderError when a block cannot be resolved, measured or drawn. No
// partial file is left at the destination on failure.
//
// # Backends
//
// The native backend (default) draws with the PDF core fonts through
// go-pdf/fpdf. BackendBrowser prints the same layout with headless Chrome
// via go-rod; set ROD_BROWSER_BIN to use a pre-installed browser.
package flowpdf
