package filtering

import (
	"fmt"
	"strings"
)

// ValidationError represents a pattern validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidatePattern checks that a wildcard pattern resolves to a non-empty literal
// and only uses wildcards at its ends.
func ValidatePattern(pattern string) error {
	if pattern == "" {
		return &ValidationError{Field: "pattern", Message: "pattern cannot be empty"}
	}

	text, _ := ParsePattern(pattern)
	if text == "" {
		return &ValidationError{
			Field:   "pattern",
			Message: fmt.Sprintf("pattern %q has no literal text", pattern),
		}
	}

	stripped := strings.ReplaceAll(pattern, `\*`, "")
	stripped = strings.TrimPrefix(stripped, "*")
	stripped = strings.TrimSuffix(stripped, "*")
	if strings.Contains(stripped, "*") {
		return &ValidationError{
			Field:   "pattern",
			Message: fmt.Sprintf("pattern %q has an unescaped wildcard in the middle", pattern),
		}
	}

	return nil
}
