package outline

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-flowpdf"
)

// CodeStyle is the chroma style used to color fenced code.
const CodeStyle = "github"

// highlight tokenizes code with the lexer named by lang and returns colored
// spans. It returns nil when lang is empty or unknown, or when tokenizing
// fails; the code is then printed in the plain code style.
func highlight(code, lang string) []flowpdf.Span {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return nil
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return nil
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return nil
	}

	style := styles.Get(CodeStyle)
	var spans []flowpdf.Span
	for _, tok := range it.Tokens() {
		if tok.Value == "" {
			continue
		}
		entry := style.Get(tok.Type)
		sp := flowpdf.Span{
			Text:   tok.Value,
			Bold:   entry.Bold == chroma.Yes,
			Italic: entry.Italic == chroma.Yes,
		}
		if entry.Colour.IsSet() {
			sp.Color = &flowpdf.Color{R: entry.Colour.Red(), G: entry.Colour.Green(), B: entry.Colour.Blue()}
		}
		if n := len(spans); n > 0 && sameLook(spans[n-1], sp) {
			spans[n-1].Text += sp.Text
			continue
		}
		spans = append(spans, sp)
	}

	// Lexers end the input with a newline the block does not have.
	if n := len(spans); n > 0 {
		spans[n-1].Text = strings.TrimRight(spans[n-1].Text, "\n")
		if spans[n-1].Text == "" {
			spans = spans[:n-1]
		}
	}
	return spans
}

func sameLook(a, b flowpdf.Span) bool {
	if a.Bold != b.Bold || a.Italic != b.Italic || (a.Color == nil) != (b.Color == nil) {
		return false
	}
	return a.Color == nil || *a.Color == *b.Color
}
