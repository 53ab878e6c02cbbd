package main

// Notes:
// - loadEnvConfig and warnUnknownEnvVars use t.Setenv, so these tests
//   cannot run in parallel.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alnah/go-flowpdf/internal/config"
)

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("BAKERYPLAN_CONFIG", "team")
	t.Setenv("BAKERYPLAN_OUTPUT", "env.pdf")
	t.Setenv("BAKERYPLAN_OUTLINE", "menu.md")
	t.Setenv("BAKERYPLAN_ASSET_PATH", "/srv/assets")
	t.Setenv("BAKERYPLAN_BACKEND", "browser")
	t.Setenv("BAKERYPLAN_TIMEOUT", "45s")

	env := loadEnvConfig()
	if env.ConfigPath != "team" || env.Output != "env.pdf" || env.Outline != "menu.md" {
		t.Errorf("loadEnvConfig() = %+v", env)
	}
	if env.AssetPath != "/srv/assets" || env.Backend != "browser" || env.Timeout != "45s" {
		t.Errorf("loadEnvConfig() = %+v", env)
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("BAKERYPLAN_OUTPUTT", "x")
	t.Setenv("BAKERYPLAN_OUTPUT", "y")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	if !strings.Contains(buf.String(), "BAKERYPLAN_OUTPUTT") {
		t.Errorf("expected warning for typo, got %q", buf.String())
	}
	if strings.Contains(buf.String(), "BAKERYPLAN_OUTPUT ") {
		t.Errorf("known variable reported as unknown: %q", buf.String())
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("fills empty values", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		applyEnvConfig(&envConfig{Output: "env.pdf", Outline: "custom", Backend: "browser", Timeout: "1m"}, cfg)

		if cfg.Output.Path != "env.pdf" || cfg.Outline.Name != "custom" {
			t.Errorf("cfg = %+v", cfg)
		}
		if cfg.Render.Backend != "browser" || cfg.Render.Timeout != "1m" {
			t.Errorf("render = %+v", cfg.Render)
		}
	})

	t.Run("config file wins over env", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Output.Path = "config.pdf"
		cfg.Outline.Path = "plan.yaml"
		applyEnvConfig(&envConfig{Output: "env.pdf", Outline: "custom"}, cfg)

		if cfg.Output.Path != "config.pdf" || cfg.Outline.Path != "plan.yaml" || cfg.Outline.Name != "" {
			t.Errorf("cfg = %+v, want config values kept", cfg)
		}
	})
}

func TestSetOutline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value    string
		wantName string
		wantPath string
	}{
		{"business-plan", "business-plan", ""},
		{"plan.yaml", "", "plan.yaml"},
		{"notes.MD", "", "notes.MD"},
		{"dir/plan", "", "dir/plan"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			cfg.Outline.Name = "previous"
			setOutline(cfg, tt.value)
			if cfg.Outline.Name != tt.wantName || cfg.Outline.Path != tt.wantPath {
				t.Errorf("setOutline(%q) = {%q, %q}, want {%q, %q}", tt.value, cfg.Outline.Name, cfg.Outline.Path, tt.wantName, tt.wantPath)
			}
		})
	}
}
