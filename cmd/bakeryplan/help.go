package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: bakeryplan [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate the business plan PDF of the bakery laboratory.")
	fmt.Fprintf(w, "Without flags, writes %s in the current directory.\n", defaultOutput)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output PDF path")
	fmt.Fprintln(w, "      --outline <s>         Outline name or .yaml/.yml/.md file")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with custom outlines/")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --backend <s>         Renderer: native, browser")
	fmt.Fprintln(w, "      --overflow <s>        Over-tall blocks: fail, split")
	fmt.Fprintln(w, "  -t, --timeout <d>         Browser timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show pages, digest and timing")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  BAKERYPLAN_CONFIG, BAKERYPLAN_OUTPUT, BAKERYPLAN_OUTLINE,")
	fmt.Fprintln(w, "  BAKERYPLAN_ASSET_PATH, BAKERYPLAN_BACKEND, BAKERYPLAN_TIMEOUT")
}
