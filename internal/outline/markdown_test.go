package outline

import (
	"errors"
	"testing"

	"github.com/alnah/go-flowpdf"
)

const sampleMarkdown = `# Laboratorio Inclusivo

Un laboratorio di pasticceria **artigianale** e *salutistica*.

## Obiettivi

- Senza glutine
- Senza lattosio
  - Anche vegano

### Dettagli

> Dolci sani, belli, buoni

---

| Voce | Costo |
|------|-------|
| Forno | 1200 |
| Impastatrice |

` + "```" + `
riga uno
riga due
` + "```" + `

# Secondo capitolo
`

// ---------------------------------------------------------------------------
// TestParseMarkdown - Block mapping
// ---------------------------------------------------------------------------

func TestParseMarkdown(t *testing.T) {
	t.Parallel()

	doc, err := ParseMarkdown([]byte(sampleMarkdown))
	if err != nil {
		t.Fatalf("ParseMarkdown() error = %v", err)
	}

	if doc.Metadata.Title != "Laboratorio Inclusivo" {
		t.Errorf("Title = %q, want first level-one heading", doc.Metadata.Title)
	}

	type want struct {
		kind  flowpdf.Kind
		style string
		text  string
	}
	wants := []want{
		{flowpdf.KindHeading, flowpdf.StyleHeading, "Laboratorio Inclusivo"},
		{flowpdf.KindParagraph, flowpdf.StyleBody, "Un laboratorio di pasticceria artigianale e salutistica."},
		{flowpdf.KindSubheading, flowpdf.StyleSubheading, "Obiettivi"},
		{flowpdf.KindBullet, flowpdf.StyleBullet, "Senza glutine"},
		{flowpdf.KindBullet, flowpdf.StyleBullet, "Senza lattosio"},
		{flowpdf.KindBullet, flowpdf.StyleBullet, "Anche vegano"},
		{flowpdf.KindSubheading, flowpdf.StyleSubsection, "Dettagli"},
		{flowpdf.KindQuote, flowpdf.StyleQuote, "Dolci sani, belli, buoni"},
		{flowpdf.KindPageBreak, "", ""},
		{flowpdf.KindTable, flowpdf.StyleTable, ""},
		{flowpdf.KindParagraph, flowpdf.StyleCode, "riga uno\nriga due"},
		{flowpdf.KindHeading, flowpdf.StyleHeading, "Secondo capitolo"},
	}

	if len(doc.Blocks) != len(wants) {
		for i, b := range doc.Blocks {
			t.Logf("block %d: %s %q %q", i, b.Kind, b.Style, b.Text)
		}
		t.Fatalf("len(Blocks) = %d, want %d", len(doc.Blocks), len(wants))
	}
	for i, w := range wants {
		b := doc.Blocks[i]
		if b.Kind != w.kind || b.Style != w.style || b.Text != w.text {
			t.Errorf("Blocks[%d] = {%s %q %q}, want {%s %q %q}", i, b.Kind, b.Style, b.Text, w.kind, w.style, w.text)
		}
	}

	if spans := doc.Blocks[1].Spans; len(spans) != 5 || !spans[1].Bold || !spans[3].Italic {
		t.Errorf("paragraph spans = %+v", spans)
	}

	tbl := doc.Blocks[9].Table
	if len(tbl.Columns) != 2 || tbl.Columns[0].Header != "Voce" {
		t.Errorf("table columns = %+v", tbl.Columns)
	}
	if len(tbl.Rows) != 2 || tbl.Rows[0][0] != "Forno" || len(tbl.Rows[1]) != 2 {
		t.Errorf("table rows = %v, want 2 rows padded to 2 cells", tbl.Rows)
	}
}

func TestParseMarkdown_Errors(t *testing.T) {
	t.Parallel()

	if _, err := ParseMarkdown([]byte("  \n\n")); !errors.Is(err, ErrEmptyOutline) {
		t.Errorf("ParseMarkdown(blank) error = %v, want ErrEmptyOutline", err)
	}
	if _, err := ParseMarkdown([]byte("<div>solo html</div>\n")); !errors.Is(err, ErrEmptyOutline) {
		t.Errorf("ParseMarkdown(html only) error = %v, want ErrEmptyOutline", err)
	}
}

// ---------------------------------------------------------------------------
// TestParseInline - Emphasis to spans
// ---------------------------------------------------------------------------

func TestParseInline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []flowpdf.Span
	}{
		{
			name:  "plain text has no spans",
			input: "Dolci sani, belli, buoni",
			want:  nil,
		},
		{
			name:  "bold label",
			input: "**Nome Progetto:** Laboratorio",
			want:  []flowpdf.Span{{Text: "Nome Progetto:", Bold: true}, {Text: " Laboratorio"}},
		},
		{
			name:  "italic with underscores",
			input: "un _vero_ dolce",
			want:  []flowpdf.Span{{Text: "un "}, {Text: "vero", Italic: true}, {Text: " dolce"}},
		},
		{
			name:  "bold italic",
			input: "***PER TUTTI***",
			want:  []flowpdf.Span{{Text: "PER TUTTI", Bold: true, Italic: true}},
		},
		{
			name:  "lone asterisk stays plain",
			input: "3 * 4",
			want:  nil,
		},
		{
			name:  "list-like text stays plain",
			input: "* non una lista",
			want:  nil,
		},
		{
			name:  "ordered item marker keeps emphasis",
			input: "1. Item *x*",
			want:  []flowpdf.Span{{Text: "1. Item "}, {Text: "x", Italic: true}},
		},
		{
			name:  "bullet marker keeps emphasis",
			input: "* foo *bar*",
			want:  []flowpdf.Span{{Text: "* foo "}, {Text: "bar", Italic: true}},
		},
		{
			name:  "heading marker keeps emphasis",
			input: "# Titolo **forte**",
			want:  []flowpdf.Span{{Text: "# Titolo "}, {Text: "forte", Bold: true}},
		},
		{
			name:  "inline html printed as written",
			input: "**a** <i>b</i>",
			want:  []flowpdf.Span{{Text: "a", Bold: true}, {Text: " <i>b</i>"}},
		},
		{
			name:  "paragraphs joined by a line break",
			input: "**a**\n\nb",
			want:  []flowpdf.Span{{Text: "a", Bold: true}, {Text: "\nb"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := parseInline(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseInline(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("span %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseMarkdown_InlineHTML(t *testing.T) {
	t.Parallel()

	doc, err := ParseMarkdown([]byte("a <b>x</b> b\n"))
	if err != nil {
		t.Fatalf("ParseMarkdown() error = %v", err)
	}
	if len(doc.Blocks) != 1 || doc.Blocks[0].Text != "a <b>x</b> b" {
		t.Errorf("Blocks = %+v, want one paragraph with the tags kept", doc.Blocks)
	}
}

func TestParseMarkdown_FencedCodeLanguage(t *testing.T) {
	t.Parallel()

	src := "```go\n// saluto\nfunc main() {}\n```\n\n```\nsenza lingua\n```\n"
	doc, err := ParseMarkdown([]byte(src))
	if err != nil {
		t.Fatalf("ParseMarkdown() error = %v", err)
	}
	if len(doc.Blocks) != 2 {
		t.Fatalf("len(Blocks) = %d, want 2", len(doc.Blocks))
	}

	colored := doc.Blocks[0]
	if colored.Style != flowpdf.StyleCode || colored.Text != "// saluto\nfunc main() {}" {
		t.Errorf("code block = {%q %q}", colored.Style, colored.Text)
	}
	if len(colored.Spans) == 0 {
		t.Fatal("go code block has no spans")
	}

	if plain := doc.Blocks[1]; plain.Spans != nil || plain.Text != "senza lingua" {
		t.Errorf("code without language = %+v, want plain text", plain)
	}
}
