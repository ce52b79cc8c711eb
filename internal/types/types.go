package types

import (
	"regexp"
)

var positiveNumericRegex = regexp.MustCompile(`^[1-9][0-9]*$`)

// StringPtr converts a string to a pointer to a string
func StringPtr(s string) *string {
	return &s
}

// Int64Ptr converts an int64 to a pointer to an int64
func Int64Ptr(v int64) *int64 {
	return &v
}

// StringNilOrEmpty checks if a pointer to a string is nil or empty
func StringNilOrEmpty(s *string) bool {
	return s == nil || *s == ""
}

// SafeString returns a safe string from a pointer to a string
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// IsPositiveNumeric checks if a string is a valid positive numeric value
func IsPositiveNumeric(s string) bool {
	return positiveNumericRegex.MatchString(s)
}
