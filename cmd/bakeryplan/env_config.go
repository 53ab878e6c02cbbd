package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alnah/go-flowpdf/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // BAKERYPLAN_CONFIG: config file name or path
	Output     string // BAKERYPLAN_OUTPUT: output PDF path
	Outline    string // BAKERYPLAN_OUTLINE: outline name or file
	AssetPath  string // BAKERYPLAN_ASSET_PATH: custom outline directory
	Backend    string // BAKERYPLAN_BACKEND: native, browser
	Timeout    string // BAKERYPLAN_TIMEOUT: browser timeout
}

// knownEnvVars lists valid BAKERYPLAN_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"BAKERYPLAN_CONFIG":     true,
	"BAKERYPLAN_OUTPUT":     true,
	"BAKERYPLAN_OUTLINE":    true,
	"BAKERYPLAN_ASSET_PATH": true,
	"BAKERYPLAN_BACKEND":    true,
	"BAKERYPLAN_TIMEOUT":    true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath: os.Getenv("BAKERYPLAN_CONFIG"),
		Output:     os.Getenv("BAKERYPLAN_OUTPUT"),
		Outline:    os.Getenv("BAKERYPLAN_OUTLINE"),
		AssetPath:  os.Getenv("BAKERYPLAN_ASSET_PATH"),
		Backend:    os.Getenv("BAKERYPLAN_BACKEND"),
		Timeout:    os.Getenv("BAKERYPLAN_TIMEOUT"),
	}
}

// warnUnknownEnvVars logs warnings for unrecognized BAKERYPLAN_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "BAKERYPLAN_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig fills config values the config file left empty.
// CLI flags are applied afterwards by mergeFlags and override both.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Output != "" && cfg.Output.Path == "" {
		cfg.Output.Path = env.Output
	}
	if env.Outline != "" && cfg.Outline.Name == "" && cfg.Outline.Path == "" {
		setOutline(cfg, env.Outline)
	}
	if env.AssetPath != "" && cfg.Outline.BasePath == "" {
		cfg.Outline.BasePath = env.AssetPath
	}
	if env.Backend != "" && cfg.Render.Backend == "" {
		cfg.Render.Backend = env.Backend
	}
	if env.Timeout != "" && cfg.Render.Timeout == "" {
		cfg.Render.Timeout = env.Timeout
	}
}
