// Package dateutil renders dates for running headers and footers.
//
// Formats use the tokens YYYY, YY, MMMM, MMM, MM, M, DD and D. Text inside
// brackets is copied literally, as are characters that are not tokens.
// Month names are available in English and Italian.
package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// ErrUnknownLanguage indicates a language without month names.
var ErrUnknownLanguage = errors.New("unknown date language")

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// DefaultDateFormat is used when "auto" is specified without a format.
const DefaultDateFormat = "YYYY-MM-DD"

// DefaultLanguage is used when no language is given.
const DefaultLanguage = "en"

// tokens are ordered longest first so MMMM wins over MM.
var tokens = []string{"YYYY", "MMMM", "MMM", "YY", "MM", "DD", "M", "D"}

// Presets provides named shortcuts for common date formats.
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "D MMMM YYYY",
}

var months = map[string][12]string{
	"en": {"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
	"it": {"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno",
		"luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre"},
}

// Languages returns the supported language codes, sorted.
func Languages() []string {
	return []string{"en", "it"}
}

func monthNames(lang string) ([12]string, error) {
	if lang == "" {
		lang = DefaultLanguage
	}
	names, ok := months[strings.ToLower(lang)]
	if !ok {
		return names, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownLanguage, lang, strings.Join(Languages(), ", "))
	}
	return names, nil
}

// Format renders t with a token format. Presets are accepted by name.
func Format(t time.Time, format, lang string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}
	if preset, ok := Presets[strings.ToLower(format)]; ok {
		format = preset
	}
	names, err := monthNames(lang)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i := 0; i < len(format); {
		if format[i] == '[' {
			end := strings.IndexByte(format[i+1:], ']')
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			b.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}
		tok := matchToken(format[i:])
		if tok == "" {
			b.WriteByte(format[i])
			i++
			continue
		}
		b.WriteString(render(t, tok, names))
		i += len(tok)
	}
	return b.String(), nil
}

func matchToken(s string) string {
	for _, tok := range tokens {
		if strings.HasPrefix(s, tok) {
			return tok
		}
	}
	return ""
}

func render(t time.Time, tok string, names [12]string) string {
	month := names[t.Month()-1]
	switch tok {
	case "YYYY":
		return strconv.Itoa(t.Year())
	case "YY":
		return fmt.Sprintf("%02d", t.Year()%100)
	case "MMMM":
		return month
	case "MMM":
		r := []rune(month)
		return string(r[:min(3, len(r))])
	case "MM":
		return fmt.Sprintf("%02d", int(t.Month()))
	case "M":
		return strconv.Itoa(int(t.Month()))
	case "DD":
		return fmt.Sprintf("%02d", t.Day())
	default:
		return strconv.Itoa(t.Day())
	}
}

// Resolve handles "auto" and "auto:FORMAT" date values.
//   - "auto" renders t in DefaultDateFormat
//   - "auto:FORMAT" renders t in FORMAT or a named preset
//   - any other value is returned unchanged
func Resolve(value string, t time.Time, lang string) (string, error) {
	lower := strings.ToLower(value)
	switch {
	case !strings.HasPrefix(lower, "auto"):
		return value, nil
	case lower == "auto":
		return Format(t, DefaultDateFormat, lang)
	case !strings.HasPrefix(lower, "auto:"):
		return "", fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
	}
	format := value[len("auto:"):]
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty after \"auto:\"", ErrInvalidDateFormat)
	}
	return Format(t, format, lang)
}
