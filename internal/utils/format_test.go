package utils

import (
	"testing"
	"time"
)

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		name string
		size int64
		want string
	}{
		{"Zero", 0, "0 B"},
		{"Bytes", 512, "512.00 B"},
		{"Kilobytes", 2048, "2.00 kB"},
		{"Megabytes", 5 * 1024 * 1024, "5.00 MB"},
		{"Gigabytes", 3 * 1024 * 1024 * 1024, "3.00 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatFileSize(tt.size); got != tt.want {
				t.Errorf("Expected %q for %d, got %q", tt.want, tt.size, got)
			}
		})
	}
}

func TestParseSizeFilter(t *testing.T) {
	tests := []struct {
		name      string
		filter    string
		threshold int64
		operator  string
		wantErr   bool
	}{
		{"Plain number", "100", 100, "=", false},
		{"At least one megabyte", "+1M", 1024 * 1024, ">=", false},
		{"At most 500 kilobytes", "-500K", 500 * 1024, "<=", false},
		{"Lowercase unit", "+2g", 2 * 1024 * 1024 * 1024, ">=", false},
		{"Empty", "", 0, "", true},
		{"Operator only", "+", 0, "", true},
		{"No number", "+M", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			threshold, operator, err := ParseSizeFilter(tt.filter)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.filter)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for %q: %v", tt.filter, err)
			}
			if threshold != tt.threshold || operator != tt.operator {
				t.Errorf("Expected (%d, %q) for %q, got (%d, %q)",
					tt.threshold, tt.operator, tt.filter, threshold, operator)
			}
		})
	}
}

func TestMatchesSizeFilter(t *testing.T) {
	tests := []struct {
		name   string
		size   int64
		filter string
		want   bool
	}{
		{"Above minimum", 2 * 1024 * 1024, "+1M", true},
		{"Below minimum", 512, "+1M", false},
		{"Below maximum", 512, "-1K", true},
		{"Above maximum", 2048, "-1K", false},
		{"Exact", 100, "100", true},
		{"Invalid filter", 100, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesSizeFilter(tt.size, tt.filter); got != tt.want {
				t.Errorf("Expected %v for size %d filter %q, got %v", tt.want, tt.size, tt.filter, got)
			}
		})
	}
}

func TestDeltaTime(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{"Seconds", 42 * time.Second, "42s"},
		{"Minutes", 150 * time.Second, "2m 30s"},
		{"Hours", 2*time.Hour + 5*time.Minute + 3*time.Second, "2h 5m 3s"},
		{"Zero", 0, "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeltaTime(tt.duration); got != tt.want {
				t.Errorf("Expected %q for %v, got %q", tt.want, tt.duration, got)
			}
		})
	}
}
