package validation

import "strings"

// IsNotEmpty checks if string is not empty after trimming
func IsNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// TrimAndValidate trims string and validates it's not empty
func TrimAndValidate(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}

// IsValidLatitude validates latitude is within [-90, 90]
func IsValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

// IsValidLongitude validates longitude is within [-180, 180]
func IsValidLongitude(lon float64) bool {
	return lon >= -180 && lon <= 180
}

// StripOuterQuotes removes exactly one layer of matching surrounding quote
// characters, mirroring how numeric strings arrive wrapped in quotes from
// model output.
func StripOuterQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
