package flowpdf

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"

	"github.com/alnah/go-flowpdf/internal/layout"
)

// Result describes a written artifact.
type Result struct {
	Path       string
	Pages      int
	Size       int64  // bytes
	Digest     string // BLAKE2b-256, hex
	Placements []Placement
}

// Placement records the pages a block landed on, in append order.
// Page breaks report the page they start.
type Placement struct {
	Block     int
	Kind      Kind
	FirstPage int
	LastPage  int
}

func newResult(path string, data []byte, plan *layout.Plan, blocks []Block) *Result {
	sum := blake2b.Sum256(data)
	r := &Result{
		Path:       path,
		Pages:      len(plan.Pages),
		Size:       int64(len(data)),
		Digest:     hex.EncodeToString(sum[:]),
		Placements: make([]Placement, 0, len(plan.Placements)),
	}
	for _, p := range plan.Placements {
		r.Placements = append(r.Placements, Placement{
			Block:     p.Index,
			Kind:      blocks[p.Index].Kind,
			FirstPage: p.Page,
			LastPage:  p.LastPage,
		})
	}
	return r
}

// PageOf returns the first page of block i, or 0 if i was not placed.
func (r *Result) PageOf(i int) int {
	for _, p := range r.Placements {
		if p.Block == i {
			return p.FirstPage
		}
	}
	return 0
}
