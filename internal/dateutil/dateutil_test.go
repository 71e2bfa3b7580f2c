package dateutil

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseDateFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr error
	}{
		{name: "full ISO date", format: "YYYY-MM-DD", want: "2006-01-02"},
		{name: "european slashes", format: "DD/MM/YYYY", want: "02/01/2006"},
		{name: "long month", format: "MMMM D, YYYY", want: "January 2, 2006"},
		{name: "short month with short year", format: "MMM YY", want: "Jan 06"},
		{name: "non-padded day and month", format: "M/D", want: "1/2"},
		{name: "literal text survives", format: "Week of DD", want: "Week of 02"},
		{name: "brackets escape tokens", format: "[DD] DD", want: "DD 02"},
		{name: "empty brackets", format: "[]YYYY", want: "2006"},
		{
			name:    "empty format",
			format:  "",
			wantErr: ErrInvalidDateFormat,
		},
		{
			name:    "unclosed bracket",
			format:  "[Date DD",
			wantErr: ErrInvalidDateFormat,
		},
		{
			name:    "oversized format",
			format:  strings.Repeat("Y", MaxDateFormatLength+1),
			wantErr: ErrInvalidDateFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDateFormat(tt.format)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseDateFormat(%q) error = %v, want %v", tt.format, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDateFormat(%q) error = %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("ParseDateFormat(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestResolveDate(t *testing.T) {
	t.Parallel()

	// Fixed clock: March 7, 2026.
	clock := time.Date(2026, time.March, 7, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		value   string
		want    string
		wantErr error
	}{
		{name: "empty passthrough", value: "", want: ""},
		{name: "literal date passthrough", value: "2026-01-15", want: "2026-01-15"},
		{name: "arbitrary text passthrough", value: "Draft", want: "Draft"},
		{name: "auto uses ISO default", value: "auto", want: "2026-03-07"},
		{name: "AUTO is case insensitive", value: "AUTO", want: "2026-03-07"},
		{name: "auto with explicit format", value: "auto:DD/MM/YYYY", want: "07/03/2026"},
		{name: "auto with long format", value: "auto:MMMM D, YYYY", want: "March 7, 2026"},
		{name: "auto with iso preset", value: "auto:iso", want: "2026-03-07"},
		{name: "auto with european preset", value: "auto:european", want: "07/03/2026"},
		{name: "auto with us preset", value: "auto:us", want: "03/07/2026"},
		{name: "auto with long preset", value: "auto:long", want: "March 7, 2026"},
		{name: "preset is case insensitive", value: "auto:LONG", want: "March 7, 2026"},
		{name: "auto with bracket literal", value: "auto:[Updated ]YYYY", want: "Updated 2026"},
		{
			name:    "auto with empty format",
			value:   "auto:",
			wantErr: ErrInvalidDateFormat,
		},
		{
			name:    "auto with junk suffix",
			value:   "autoX",
			wantErr: ErrInvalidDateFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveDate(tt.value, clock)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolveDate(%q) error = %v, want %v", tt.value, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveDate(%q) error = %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("ResolveDate(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
