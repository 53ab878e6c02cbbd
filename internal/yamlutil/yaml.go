// Package yamlutil wraps YAML parsing to isolate the external dependency.
// Outlines and configuration files are both decoded through it.
package yamlutil

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 4MB).
// Outlines of long documents are a few hundred kilobytes.
var MaxInputSize = 4 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// UnmarshalStrict rejects unknown fields and duplicate keys in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// DecodeFile reads path and decodes it strictly into v. The size limit is
// checked before the file is read.
func DecodeFile(path string, v any) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > int64(MaxInputSize) {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, info.Size(), MaxInputSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return UnmarshalStrict(data, v)
}
