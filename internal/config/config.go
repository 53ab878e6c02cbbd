package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-flowpdf/internal/fileutil"
	"github.com/alnah/go-flowpdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// appName names the directory searched under the user config dir.
const appName = "bakeryplan"

// Field length limits.
const (
	MaxPathLength     = 4096
	MaxNameLength     = 100 // outline name, author
	MaxTextLength     = 500 // header and footer text
	MaxBackendLength  = 10  // "native", "browser"
	MaxOverflowLength = 10  // "fail", "split"
	MaxDurationLength = 20  // "30s", "1m30s"
	MaxLangLength     = 5   // "en", "it"
)

// Config holds the settings of a plan generation run.
type Config struct {
	Output   OutputConfig   `yaml:"output"`
	Outline  OutlineConfig  `yaml:"outline"`
	Render   RenderConfig   `yaml:"render"`
	Document DocumentConfig `yaml:"document"`
}

// OutputConfig defines the output destination.
type OutputConfig struct {
	Path string `yaml:"path"` // Empty = default file name in the working directory
}

// OutlineConfig selects the document content.
type OutlineConfig struct {
	Name     string `yaml:"name"`     // Outline name (empty = business-plan)
	Path     string `yaml:"path"`     // Outline file, takes precedence over Name
	BasePath string `yaml:"basePath"` // Directory with outlines/, searched before embedded outlines
}

// RenderConfig defines how the document is laid out and painted.
type RenderConfig struct {
	Backend  string `yaml:"backend"`  // "native" (default), "browser"
	Overflow string `yaml:"overflow"` // "fail" (default), "split"
	Timeout  string `yaml:"timeout"`  // Go duration for the browser backend, e.g. "30s"
}

// DocumentConfig overrides outline metadata and decorations.
type DocumentConfig struct {
	Author string  `yaml:"author"`
	Header *string `yaml:"header"` // nil = outline value, "" = no running header
	Footer *string `yaml:"footer"` // nil = outline value, "" = no footer
	Date   string  `yaml:"date"`   // replaces {date} in header and footer
	Lang   string  `yaml:"lang"`   // month names for date: en, it
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("output.path", c.Output.Path, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("outline.name", c.Outline.Name, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("outline.path", c.Outline.Path, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("outline.basePath", c.Outline.BasePath, MaxPathLength); err != nil {
		return err
	}

	// Validate render fields
	if err := validateFieldLength("render.backend", c.Render.Backend, MaxBackendLength); err != nil {
		return err
	}
	if c.Render.Backend != "" {
		switch strings.ToLower(c.Render.Backend) {
		case "native", "browser":
			// valid
		default:
			return fmt.Errorf("%w: render.backend %q (must be native or browser)", ErrInvalidValue, c.Render.Backend)
		}
	}
	if err := validateFieldLength("render.overflow", c.Render.Overflow, MaxOverflowLength); err != nil {
		return err
	}
	if c.Render.Overflow != "" {
		switch strings.ToLower(c.Render.Overflow) {
		case "fail", "split":
			// valid
		default:
			return fmt.Errorf("%w: render.overflow %q (must be fail or split)", ErrInvalidValue, c.Render.Overflow)
		}
	}
	if err := validateFieldLength("render.timeout", c.Render.Timeout, MaxDurationLength); err != nil {
		return err
	}
	if _, err := c.Render.TimeoutDuration(); err != nil {
		return err
	}

	// Validate document fields
	if err := validateFieldLength("document.author", c.Document.Author, MaxNameLength); err != nil {
		return err
	}
	if c.Document.Header != nil {
		if err := validateFieldLength("document.header", *c.Document.Header, MaxTextLength); err != nil {
			return err
		}
	}
	if c.Document.Footer != nil {
		if err := validateFieldLength("document.footer", *c.Document.Footer, MaxTextLength); err != nil {
			return err
		}
	}
	if err := validateFieldLength("document.date", c.Document.Date, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.lang", c.Document.Lang, MaxLangLength); err != nil {
		return err
	}

	return nil
}

// TimeoutDuration parses Timeout. An empty value returns 0.
func (r RenderConfig) TimeoutDuration() (time.Duration, error) {
	if r.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(r.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: render.timeout %q: %v", ErrInvalidValue, r.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: render.timeout must be positive, got %s", ErrInvalidValue, r.Timeout)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration that reproduces the built-in plan.
func DefaultConfig() *Config {
	return &Config{
		Output:  OutputConfig{Path: ""},
		Outline: OutlineConfig{Name: ""},
		Render:  RenderConfig{Backend: "", Overflow: ""},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := yamlutil.DecodeFile(configPath, &cfg); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		if errors.Is(err, yamlutil.ErrNilData) {
			// An empty file is a valid, empty configuration.
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/bakeryplan/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appName, name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
