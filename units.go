package flowpdf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alnah/go-flowpdf/internal/layout"
)

// Unit conversions to millimetres.
const (
	MMPerCM   = 10.0
	MMPerInch = 25.4
	MMPerPt   = layout.PtToMM
)

// unitScale maps length suffixes to millimetres per unit.
var unitScale = map[string]float64{
	"mm": 1,
	"cm": MMPerCM,
	"in": MMPerInch,
	"pt": MMPerPt,
}

// ParseLength parses a length such as "6cm", "10mm", "12pt" or "1in" and
// returns it in millimetres. A bare number is read as millimetres.
func ParseLength(s string) (float64, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidLength)
	}

	scale := 1.0
	for suffix, mm := range unitScale {
		if strings.HasSuffix(v, suffix) {
			v = strings.TrimSpace(strings.TrimSuffix(v, suffix))
			scale = mm
			break
		}
	}

	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLength, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidLength, s)
	}
	return n * scale, nil
}

// ptToMM converts points to millimetres.
func ptToMM(pt float64) float64 {
	return pt * MMPerPt
}
