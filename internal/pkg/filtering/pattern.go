// Package filtering parses the wildcard pattern syntax used to anchor scan patterns.
package filtering

import "strings"

// PatternType represents the type of pattern matching to perform.
type PatternType int

const (
	// PatternTypeContains matches if the pattern is found anywhere in the string.
	// This is the default for patterns without wildcards.
	PatternTypeContains PatternType = iota
	// PatternTypePrefix matches if the string starts with the pattern.
	PatternTypePrefix
	// PatternTypeSuffix matches if the string ends with the pattern.
	PatternTypeSuffix
)

func (t PatternType) String() string {
	switch t {
	case PatternTypeContains:
		return "contains"
	case PatternTypePrefix:
		return "prefix"
	case PatternTypeSuffix:
		return "suffix"
	}
	return "unknown"
}

// ParsePattern parses a pattern string and returns the pattern with wildcards
// stripped and the detected pattern type.
//
// Pattern syntax:
//   - "alice"    -> PatternTypeContains (substring match)
//   - "*456789"  -> PatternTypeSuffix (matches any prefix + 456789)
//   - "alice*"   -> PatternTypePrefix (matches alice + any suffix)
//   - "*alice*"  -> PatternTypeContains (explicit contains)
//   - "\\*alice" -> PatternTypeContains with literal "*" (escaped asterisk)
//
// Escape sequences:
//   - "\\*" is unescaped to a literal "*" character
func ParsePattern(input string) (pattern string, patternType PatternType) {
	if input == "" {
		return "", PatternTypeContains
	}

	// Escaped asterisks are parked on a placeholder while wildcards are stripped.
	const placeholder = "\x00"

	working := strings.ReplaceAll(input, `\*`, placeholder)

	hasLeadingWildcard := strings.HasPrefix(working, "*")
	hasTrailingWildcard := strings.HasSuffix(working, "*")

	switch {
	case hasLeadingWildcard && hasTrailingWildcard:
		patternType = PatternTypeContains
		working = strings.TrimPrefix(working, "*")
		working = strings.TrimSuffix(working, "*")
	case hasLeadingWildcard:
		patternType = PatternTypeSuffix
		working = strings.TrimPrefix(working, "*")
	case hasTrailingWildcard:
		patternType = PatternTypePrefix
		working = strings.TrimSuffix(working, "*")
	default:
		patternType = PatternTypeContains
	}

	pattern = strings.ReplaceAll(working, placeholder, "*")

	return pattern, patternType
}

// Match checks if the given value matches the pattern according to the pattern type.
// Matching is exact and case-sensitive.
func Match(value, pattern string, patternType PatternType) bool {
	if pattern == "" {
		return true
	}

	switch patternType {
	case PatternTypePrefix:
		return strings.HasPrefix(value, pattern)
	case PatternTypeSuffix:
		return strings.HasSuffix(value, pattern)
	default:
		return strings.Contains(value, pattern)
	}
}
