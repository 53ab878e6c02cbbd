package outline

import (
	"errors"
	"testing"
	"time"

	"github.com/alnah/go-flowpdf"
	"github.com/alnah/go-flowpdf/internal/assets"
)

// Notes:
// - Block payloads are checked through the exported Block fields; the
//   resolved layout is covered by the flowpdf package tests.
// These are acceptable gaps: we test observable behavior, not implementation details.

const sampleYAML = `
title: Piano
author: Lab
keywords: [dolci, inclusivi]
header: ""
footer: "Pagina {page} di {pages}"
page:
  size: A4
  orientation: landscape
  margin: 1.5cm
styles:
  - name: closing
    parent: body
    size: 12
    bold: true
    align: center
    color: "#003366"
  - name: closing-small
    parent: closing
    size: 9
    space_before: 4
    keep_with_next: true
blocks:
  - kind: heading
    text: Introduzione
  - kind: paragraph
    text: "**Nome:** Laboratorio *inclusivo*"
  - kind: spacer
    length: 2cm
  - kind: pagebreak
  - kind: paragraph
    text: Fine
    style: closing-small
  - kind: table
    columns:
      - header: Voce
        width: 60mm
      - header: Costo
    rows:
      - [Forno, "1200"]
`

// ---------------------------------------------------------------------------
// TestParseYAML - Metadata, page, styles and blocks
// ---------------------------------------------------------------------------

func TestParseYAML(t *testing.T) {
	t.Parallel()

	doc, err := ParseYAML([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}

	t.Run("metadata", func(t *testing.T) {
		t.Parallel()

		if doc.Metadata.Title != "Piano" || doc.Metadata.Author != "Lab" {
			t.Errorf("Metadata = %+v", doc.Metadata)
		}
		if len(doc.Metadata.Keywords) != 2 {
			t.Errorf("Keywords = %v, want 2 entries", doc.Metadata.Keywords)
		}
		if doc.Header == nil || *doc.Header != "" {
			t.Errorf("Header = %v, want explicit empty string", doc.Header)
		}
		if doc.Footer == nil || *doc.Footer != "Pagina {page} di {pages}" {
			t.Errorf("Footer = %v", doc.Footer)
		}
	})

	t.Run("page", func(t *testing.T) {
		t.Parallel()

		if doc.Page == nil {
			t.Fatal("Page = nil")
		}
		if doc.Page.Size != flowpdf.PageSizeA4 || doc.Page.Orientation != flowpdf.OrientationLandscape {
			t.Errorf("Page = %+v", doc.Page)
		}
		if doc.Page.Margin != 15 {
			t.Errorf("Margin = %v, want 15", doc.Page.Margin)
		}
	})

	t.Run("derived styles", func(t *testing.T) {
		t.Parallel()

		s, ok := doc.Sheet.Style("closing-small")
		if !ok {
			t.Fatal("closing-small not in sheet")
		}
		if s.Size != 9 || !s.Bold || s.Align != flowpdf.AlignCenter || s.Color != flowpdf.DarkBlue {
			t.Errorf("closing-small = %+v, want inherited bold/center/dark blue at 9pt", s)
		}
		if s.SpaceBefore != 4 || !s.KeepWithNext {
			t.Errorf("closing-small spacing = %v keep = %v", s.SpaceBefore, s.KeepWithNext)
		}
		if _, ok := doc.Sheet.Style(flowpdf.StyleBody); !ok {
			t.Error("default styles missing from derived sheet")
		}
	})

	t.Run("blocks", func(t *testing.T) {
		t.Parallel()

		wantKinds := []flowpdf.Kind{
			flowpdf.KindHeading, flowpdf.KindParagraph, flowpdf.KindSpacer,
			flowpdf.KindPageBreak, flowpdf.KindParagraph, flowpdf.KindTable,
		}
		if len(doc.Blocks) != len(wantKinds) {
			t.Fatalf("len(Blocks) = %d, want %d", len(doc.Blocks), len(wantKinds))
		}
		for i, k := range wantKinds {
			if doc.Blocks[i].Kind != k {
				t.Errorf("Blocks[%d].Kind = %s, want %s", i, doc.Blocks[i].Kind, k)
			}
		}
		if doc.Blocks[0].Style != flowpdf.StyleHeading {
			t.Errorf("heading style = %q", doc.Blocks[0].Style)
		}
		if spans := doc.Blocks[1].Spans; len(spans) != 3 || !spans[0].Bold || !spans[2].Italic {
			t.Errorf("inline spans = %+v", spans)
		}
		if doc.Blocks[2].Length != 20 {
			t.Errorf("spacer length = %v, want 20", doc.Blocks[2].Length)
		}
		if doc.Blocks[4].Style != "closing-small" {
			t.Errorf("styled paragraph = %q", doc.Blocks[4].Style)
		}
		tbl := doc.Blocks[5].Table
		if tbl == nil || tbl.Columns[0].Width != 60 || tbl.Columns[1].Width != 0 || tbl.Rows[0][1] != "1200" {
			t.Errorf("table = %+v", tbl)
		}
	})

	t.Run("options build a document", func(t *testing.T) {
		t.Parallel()

		d, err := flowpdf.NewDocument(doc.Options()...)
		if err != nil {
			t.Fatalf("NewDocument(Options()) error = %v", err)
		}
		if err := d.Append(doc.Blocks...); err != nil {
			t.Errorf("Append() error = %v", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestParseYAML_Errors - Rejected outlines
// ---------------------------------------------------------------------------

func TestParseYAML_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "unknown top-level field",
			input:   "titel: x\nblocks:\n  - kind: pagebreak\n",
			wantErr: ErrOutlineParse,
		},
		{
			name:    "unknown block field",
			input:   "blocks:\n  - kind: paragraph\n    txt: x\n",
			wantErr: ErrOutlineParse,
		},
		{
			name:    "unknown kind",
			input:   "blocks:\n  - kind: image\n",
			wantErr: ErrUnknownKind,
		},
		{
			name:    "unknown style",
			input:   "blocks:\n  - kind: paragraph\n    text: x\n    style: nope\n",
			wantErr: flowpdf.ErrUnknownStyle,
		},
		{
			name:    "unknown parent",
			input:   "styles:\n  - name: a\n    parent: nope\nblocks:\n  - kind: pagebreak\n",
			wantErr: ErrUnknownParent,
		},
		{
			name:    "invalid color",
			input:   "styles:\n  - name: a\n    color: blu\nblocks:\n  - kind: pagebreak\n",
			wantErr: flowpdf.ErrInvalidColor,
		},
		{
			name:    "duplicate derived style",
			input:   "styles:\n  - name: a\n  - name: a\nblocks:\n  - kind: pagebreak\n",
			wantErr: flowpdf.ErrDuplicateStyle,
		},
		{
			name:    "bad spacer length",
			input:   "blocks:\n  - kind: spacer\n    length: tall\n",
			wantErr: flowpdf.ErrInvalidLength,
		},
		{
			name:    "margin out of range",
			input:   "page:\n  margin: 1mm\nblocks:\n  - kind: pagebreak\n",
			wantErr: ErrInvalidSetting,
		},
		{
			name:    "ragged table",
			input:   "blocks:\n  - kind: table\n    columns: [{header: A}, {header: B}]\n    rows: [[x]]\n",
			wantErr: flowpdf.ErrInvalidBlock,
		},
		{
			name:    "no blocks",
			input:   "title: vuoto\n",
			wantErr: ErrEmptyOutline,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseYAML([]byte(tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseYAML() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestCompile_BusinessPlan - Embedded outline
// ---------------------------------------------------------------------------

func TestCompile_BusinessPlan(t *testing.T) {
	t.Parallel()

	o, err := assets.LoadOutline(assets.DefaultOutlineName)
	if err != nil {
		t.Fatalf("LoadOutline() error = %v", err)
	}
	doc, err := Compile(o)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if doc.Metadata.Title != "Laboratorio di Pasticceria Artigianale Inclusiva e Salutistica" {
		t.Errorf("Title = %q", doc.Metadata.Title)
	}
	if doc.Footer == nil || *doc.Footer != "Pagina {page}" {
		t.Errorf("Footer = %v, want Pagina {page}", doc.Footer)
	}
	if doc.Page == nil || doc.Page.Margin != 20 {
		t.Errorf("Page = %+v, want 2 cm margins", doc.Page)
	}

	counts := make(map[flowpdf.Kind]int)
	for _, b := range doc.Blocks {
		counts[b.Kind]++
	}
	want := map[flowpdf.Kind]int{
		flowpdf.KindHeading:    23,
		flowpdf.KindSubheading: 125,
		flowpdf.KindParagraph:  124,
		flowpdf.KindBullet:     323,
		flowpdf.KindQuote:      24,
		flowpdf.KindSpacer:     10,
		flowpdf.KindPageBreak:  23,
	}
	for k, n := range want {
		if counts[k] != n {
			t.Errorf("%s blocks = %d, want %d", k, counts[k], n)
		}
	}

	payoff, ok := doc.Sheet.Style("payoff")
	if !ok || payoff.Size != 20 || !payoff.Bold || !payoff.Italic {
		t.Errorf("payoff style = %+v, %v", payoff, ok)
	}
}

func TestCompile_Errors(t *testing.T) {
	t.Parallel()

	if _, err := Compile(nil); !errors.Is(err, ErrOutlineParse) {
		t.Errorf("Compile(nil) error = %v, want ErrOutlineParse", err)
	}
	_, err := Compile(&assets.Outline{Name: "x", Format: "toml", Data: []byte("a")})
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Compile(toml) error = %v, want ErrUnknownFormat", err)
	}
}

// ---------------------------------------------------------------------------
// TestDocument_ResolveDate - {date} placeholders
// ---------------------------------------------------------------------------

func TestDocument_ResolveDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.May, 9, 0, 0, 0, 0, time.UTC)

	t.Run("replaces header and footer", func(t *testing.T) {
		t.Parallel()

		doc, err := ParseYAML([]byte("title: Piano\nheader: \"Piano, {date}\"\nfooter: \"Pagina {page} - {date}\"\ndate: auto:long\nlang: it\nblocks:\n  - kind: paragraph\n    text: x\n"))
		if err != nil {
			t.Fatalf("ParseYAML() error = %v", err)
		}
		if err := doc.ResolveDate(now); err != nil {
			t.Fatalf("ResolveDate() error = %v", err)
		}
		if *doc.Header != "Piano, 9 maggio 2024" {
			t.Errorf("Header = %q", *doc.Header)
		}
		if *doc.Footer != "Pagina {page} - 9 maggio 2024" {
			t.Errorf("Footer = %q", *doc.Footer)
		}
	})

	t.Run("no date leaves placeholders", func(t *testing.T) {
		t.Parallel()

		footer := "{date}"
		doc := &Document{Footer: &footer}
		if err := doc.ResolveDate(now); err != nil || *doc.Footer != "{date}" {
			t.Errorf("ResolveDate() = %v, footer %q", err, *doc.Footer)
		}
	})

	t.Run("nil header stays nil", func(t *testing.T) {
		t.Parallel()

		doc := &Document{Date: "2024"}
		if err := doc.ResolveDate(now); err != nil || doc.Header != nil {
			t.Errorf("ResolveDate() = %v, header %v", err, doc.Header)
		}
	})

	t.Run("unknown language", func(t *testing.T) {
		t.Parallel()

		doc := &Document{Date: "auto:long", Lang: "xx"}
		if err := doc.ResolveDate(now); !errors.Is(err, ErrInvalidSetting) {
			t.Errorf("ResolveDate() error = %v, want ErrInvalidSetting", err)
		}
	})
}
