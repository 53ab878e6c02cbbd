package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-flowpdf"
	"github.com/alnah/go-flowpdf/internal/assets"
	"github.com/alnah/go-flowpdf/internal/config"
	"github.com/alnah/go-flowpdf/internal/fileutil"
	"github.com/alnah/go-flowpdf/internal/hints"
	"github.com/alnah/go-flowpdf/internal/outline"
)

// defaultOutput is written in the working directory when no path is given.
const defaultOutput = "Business_Plan_Pasticceria_Inclusiva.pdf"

// Sentinel errors for CLI operations.
var ErrUnexpectedArgs = errors.New("unexpected arguments")

// runMain parses args, runs the generation and returns the exit code.
func runMain(args []string, env *Environment) int {
	flags, positional, err := parseFlags(args[1:], env.Stderr)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}
	if flags.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "bakeryplan %s\n", Version)
		return ExitSuccess
	}
	if len(positional) > 0 {
		err := fmt.Errorf("%w: %s", ErrUnexpectedArgs, strings.Join(positional, " "))
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		printUsage(env.Stderr)
		return ExitUsage
	}

	configureMaxProcs(flags.common.verbose, env.Stderr)
	warnUnknownEnvVars(env.Stderr)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runGenerate(ctx, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runGenerate loads the configuration and outline, then builds the PDF.
func runGenerate(ctx context.Context, flags *generateFlags, env *Environment) error {
	envCfg := loadEnvConfig()

	// Load configuration
	cfg := config.DefaultConfig()
	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	if configName != "" {
		var err error
		cfg, err = config.LoadConfig(configName)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// CLI flags > config file > env vars > defaults
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	src, err := loadOutline(cfg)
	if err != nil {
		return fmt.Errorf("loading outline: %w", err)
	}
	doc, err := outline.Compile(src)
	if err != nil {
		return err
	}

	opts, err := buildOptions(doc, cfg, env.Now())
	if err != nil {
		return err
	}

	output := cfg.Output.Path
	if output == "" {
		output = defaultOutput
	}

	start := env.Now()
	res, err := flowpdf.WriteFile(ctx, output, doc.Blocks, opts...)
	if err != nil {
		return err
	}

	printResult(res, src, len(doc.Blocks), env.Now().Sub(start), flags.common, env)
	return nil
}

// mergeFlags applies explicitly set CLI flags over config values.
func mergeFlags(flags *generateFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Output.Path = flags.output
	}
	if flags.outline != "" {
		setOutline(cfg, flags.outline)
	}
	if flags.assetPath != "" {
		cfg.Outline.BasePath = flags.assetPath
	}
	if flags.backend != "" {
		cfg.Render.Backend = flags.backend
	}
	if flags.overflow != "" {
		cfg.Render.Overflow = flags.overflow
	}
	if flags.timeout != "" {
		cfg.Render.Timeout = flags.timeout
	}
}

// setOutline stores value as an outline file path when it has an outline
// extension or a path separator, and as an outline name otherwise.
func setOutline(cfg *config.Config, value string) {
	switch strings.ToLower(filepath.Ext(value)) {
	case ".yaml", ".yml", ".md", ".markdown":
		cfg.Outline.Path, cfg.Outline.Name = value, ""
		return
	}
	if fileutil.IsFilePath(value) {
		cfg.Outline.Path, cfg.Outline.Name = value, ""
		return
	}
	cfg.Outline.Name, cfg.Outline.Path = value, ""
}

// loadOutline reads the outline file, or resolves the outline name against
// the custom asset directory and the embedded outlines.
func loadOutline(cfg *config.Config) (*assets.Outline, error) {
	if cfg.Outline.Path != "" {
		return assets.LoadOutlineFile(cfg.Outline.Path)
	}

	resolver, err := assets.NewAssetResolver(cfg.Outline.BasePath)
	if err != nil {
		return nil, err
	}
	name := cfg.Outline.Name
	if name == "" {
		name = assets.DefaultOutlineName
	}
	return resolver.LoadOutline(name)
}

// buildOptions combines the outline's document options with config overrides.
// now resolves "auto" dates.
func buildOptions(doc *outline.Document, cfg *config.Config, now time.Time) ([]flowpdf.Option, error) {
	if cfg.Document.Author != "" {
		doc.Metadata.Author = cfg.Document.Author
	}
	if cfg.Document.Header != nil {
		doc.Header = cfg.Document.Header
	}
	if cfg.Document.Footer != nil {
		doc.Footer = cfg.Document.Footer
	}
	if cfg.Document.Date != "" {
		doc.Date = cfg.Document.Date
	}
	if cfg.Document.Lang != "" {
		doc.Lang = cfg.Document.Lang
	}
	if err := doc.ResolveDate(now); err != nil {
		return nil, err
	}
	if doc.Metadata.Creator == "" {
		doc.Metadata.Creator = "bakeryplan " + Version
	}

	opts := doc.Options()
	if cfg.Render.Backend != "" {
		opts = append(opts, flowpdf.WithBackend(flowpdf.Backend(strings.ToLower(cfg.Render.Backend))))
	}
	if cfg.Render.Overflow != "" {
		opts = append(opts, flowpdf.WithOverflow(flowpdf.Overflow(strings.ToLower(cfg.Render.Overflow))))
	}
	timeout, err := cfg.Render.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		opts = append(opts, flowpdf.WithTimeout(timeout))
	}
	return opts, nil
}

// printResult reports the written file.
func printResult(res *flowpdf.Result, src *assets.Outline, blocks int, elapsed time.Duration, common commonFlags, env *Environment) {
	if common.verbose {
		fmt.Fprintf(env.Stderr, "outline: %s (%s, %d blocks)\n", src.Name, src.Format, blocks)
		fmt.Fprintf(env.Stderr, "pages: %d\n", res.Pages)
		fmt.Fprintf(env.Stderr, "size: %d bytes\n", res.Size)
		fmt.Fprintf(env.Stderr, "digest: %s\n", res.Digest)
		fmt.Fprintf(env.Stderr, "elapsed: %v\n", elapsed.Round(time.Millisecond))
	}
	if !common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", res.Path)
	}
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	var ioErr *flowpdf.IOError
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, assets.ErrOutlineNotFound):
		return hints.ForOutlineNotFound(assets.Names())
	case errors.Is(err, outline.ErrUnknownKind), errors.Is(err, outline.ErrOutlineParse):
		return hints.ForOutlineSyntax()
	case errors.Is(err, flowpdf.ErrBlockTooTall):
		return hints.ForBlockTooTall()
	case errors.Is(err, flowpdf.ErrTableTooWide):
		return hints.ForTableTooWide()
	case errors.Is(err, flowpdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.As(err, &ioErr):
		return hints.ForOutputDirectory()
	}
	return ""
}
