package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags controlling configuration and output verbosity.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// generateFlags holds all flags of the command.
type generateFlags struct {
	common    commonFlags
	output    string
	outline   string
	assetPath string
	backend   string
	overflow  string
	timeout   string
	version   bool
	help      bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show pages, digest and timing")
}

// parseFlags parses the command line (without the program name) and returns
// positional args.
func parseFlags(args []string, w io.Writer) (*generateFlags, []string, error) {
	fs := flag.NewFlagSet("bakeryplan", flag.ContinueOnError)
	fs.SetOutput(w)
	f := &generateFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output PDF path")
	fs.StringVar(&f.outline, "outline", "", "outline name or .yaml/.yml/.md file")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with custom outlines/")
	fs.StringVar(&f.backend, "backend", "", "renderer: native, browser")
	fs.StringVar(&f.overflow, "overflow", "", "over-tall blocks: fail, split")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "browser timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.version, "version", false, "show version information")
	fs.BoolVarP(&f.help, "help", "h", false, "show this help")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printUsage(w) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
