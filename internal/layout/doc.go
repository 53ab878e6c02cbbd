// Package layout implements the flowable layout engine.
//
// The engine takes an ordered list of flowables (text, bullets, spacers, page
// breaks, tables) whose styles are already resolved to concrete fonts and
// millimetre spacing, and places them on fixed-size pages:
//   - Text is word-wrapped against the content width using a Measurer
//   - Blocks are kept together; a block that does not fit starts a new page
//   - Pages after the first carry a running header band
//   - Every page carries a footer at a fixed offset below the content area
//
// The result is a Plan: positioned text runs and rectangles per page. Painting
// the plan to bytes is handled separately by the root flowpdf package, which
// keeps this package free of any PDF or browser dependency and lets tests drive
// it with a synthetic Measurer.
package layout
