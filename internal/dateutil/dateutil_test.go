package dateutil

import (
	"errors"
	"testing"
	"time"
)

var fixed = time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		lang    string
		want    string
		wantErr error
	}{
		{name: "iso tokens", format: "YYYY-MM-DD", want: "2024-03-05"},
		{name: "short year and unpadded", format: "D/M/YY", want: "5/3/24"},
		{name: "english month", format: "MMMM D, YYYY", lang: "en", want: "March 5, 2024"},
		{name: "italian month", format: "D MMMM YYYY", lang: "it", want: "5 marzo 2024"},
		{name: "italian short month", format: "DD MMM", lang: "IT", want: "05 mar"},
		{name: "default language", format: "MMM", want: "Mar"},
		{name: "preset", format: "european", want: "05/03/2024"},
		{name: "long preset in italian", format: "long", lang: "it", want: "5 marzo 2024"},
		{name: "bracket literal", format: "[Data:] DD", want: "Data: 05"},
		{name: "literal characters kept", format: "YYYY.MM", want: "2024.03"},
		{name: "empty format", format: "", wantErr: ErrInvalidDateFormat},
		{name: "unclosed bracket", format: "[YYYY", wantErr: ErrInvalidDateFormat},
		{name: "too long", format: "YYYY-MM-DD YYYY-MM-DD YYYY-MM-DD YYYY-MM-DD YYYY-MM-DD", wantErr: ErrInvalidDateFormat},
		{name: "unknown language", format: "MMMM", lang: "fr", wantErr: ErrUnknownLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Format(fixed, tt.format, tt.lang)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Format(%q) error = %v, want %v", tt.format, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Format(%q) unexpected error: %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		lang    string
		want    string
		wantErr error
	}{
		{name: "passthrough", value: "Marzo 2024", want: "Marzo 2024"},
		{name: "empty passthrough", value: "", want: ""},
		{name: "auto", value: "auto", want: "2024-03-05"},
		{name: "auto case insensitive", value: "AUTO", want: "2024-03-05"},
		{name: "auto with format", value: "auto:DD/MM/YYYY", want: "05/03/2024"},
		{name: "auto with italian preset", value: "auto:long", lang: "it", want: "5 marzo 2024"},
		{name: "auto without colon", value: "automatic", wantErr: ErrInvalidDateFormat},
		{name: "auto with empty format", value: "auto:", wantErr: ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Resolve(tt.value, fixed, tt.lang)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Resolve(%q) error = %v, want %v", tt.value, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) unexpected error: %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
