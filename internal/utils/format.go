package utils

import (
	"fmt"
	"time"
)

// units for file size formatting
var sizeUnits = []string{"B", "kB", "MB", "GB", "TB", "PB"}

// FormatFileSize converts a file size in bytes to a human-readable format.
func FormatFileSize(size int64) string {
	if size == 0 {
		return "0 B"
	}

	floatSize := float64(size)
	unitIndex := 0

	for unitIndex < len(sizeUnits)-1 && floatSize >= 1024 {
		floatSize /= 1024
		unitIndex++
	}

	return fmt.Sprintf("%4.2f %s", floatSize, sizeUnits[unitIndex])
}

// ParseSizeFilter parses a size filter string like "+1M", "-500K", "100".
// Returns the threshold in bytes and the comparison operator.
func ParseSizeFilter(filter string) (int64, string, error) {
	if len(filter) == 0 {
		return 0, "", fmt.Errorf("empty filter")
	}

	operator := "="
	start := 0

	if filter[0] == '+' {
		operator = ">="
		start = 1
	} else if filter[0] == '-' {
		operator = "<="
		start = 1
	}

	if start >= len(filter) {
		return 0, "", fmt.Errorf("invalid filter: %s", filter)
	}

	numEnd := start
	for numEnd < len(filter) && filter[numEnd] >= '0' && filter[numEnd] <= '9' {
		numEnd++
	}

	if numEnd == start {
		return 0, "", fmt.Errorf("no number in filter: %s", filter)
	}

	var number int64
	if _, err := fmt.Sscanf(filter[start:numEnd], "%d", &number); err != nil {
		return 0, "", err
	}

	multiplier := int64(1)
	if numEnd < len(filter) {
		switch filter[numEnd] {
		case 'k', 'K':
			multiplier = 1024
		case 'm', 'M':
			multiplier = 1024 * 1024
		case 'g', 'G':
			multiplier = 1024 * 1024 * 1024
		case 't', 'T':
			multiplier = 1024 * 1024 * 1024 * 1024
		}
	}

	return number * multiplier, operator, nil
}

// MatchesSizeFilter checks if a size matches the given filter.
func MatchesSizeFilter(size int64, filter string) bool {
	threshold, operator, err := ParseSizeFilter(filter)
	if err != nil {
		return false
	}

	switch operator {
	case ">=":
		return size >= threshold
	case "<=":
		return size <= threshold
	case "=":
		return size == threshold
	default:
		return false
	}
}

// DeltaTime formats a duration as a human-readable string.
// Format: "Xh Ym Zs" or "Ym Zs" or "Zs" depending on duration.
func DeltaTime(d time.Duration) string {
	totalSeconds := int(d.Seconds())

	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
