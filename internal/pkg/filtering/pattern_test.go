package filtering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePattern(t *testing.T) {
	tests := []struct {
		name            string
		input           string
		expectedPattern string
		expectedType    PatternType
	}{
		{name: "plain string is contains", input: "needle", expectedPattern: "needle", expectedType: PatternTypeContains},
		{name: "empty string", input: "", expectedPattern: "", expectedType: PatternTypeContains},
		{name: "leading wildcard is suffix", input: "*.exe", expectedPattern: ".exe", expectedType: PatternTypeSuffix},
		{name: "trailing wildcard is prefix", input: "GET *", expectedPattern: "GET ", expectedType: PatternTypePrefix},
		{name: "both wildcards is contains", input: "*token*", expectedPattern: "token", expectedType: PatternTypeContains},
		{name: "escaped leading asterisk", input: `\*abc`, expectedPattern: "*abc", expectedType: PatternTypeContains},
		{name: "escaped asterisk in middle", input: `a\*b`, expectedPattern: "a*b", expectedType: PatternTypeContains},
		{name: "escaped leading with unescaped trailing", input: `\*abc*`, expectedPattern: "*abc", expectedType: PatternTypePrefix},
		{name: "unescaped leading with escaped trailing", input: `*abc\*`, expectedPattern: "abc*", expectedType: PatternTypeSuffix},
		{name: "escaped on both ends", input: `\*31\*`, expectedPattern: "*31*", expectedType: PatternTypeContains},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern, patternType := ParsePattern(tt.input)
			assert.Equal(t, tt.expectedPattern, pattern, "pattern mismatch")
			assert.Equal(t, tt.expectedType, patternType, "pattern type mismatch")
		})
	}
}

func TestPatternType_String(t *testing.T) {
	assert.Equal(t, "contains", PatternTypeContains.String())
	assert.Equal(t, "prefix", PatternTypePrefix.String())
	assert.Equal(t, "suffix", PatternTypeSuffix.String())
	assert.Equal(t, "unknown", PatternType(42).String())
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name        string
		value       string
		pattern     string
		patternType PatternType
		expected    bool
	}{
		{name: "contains match", value: "xxneedlexx", pattern: "needle", patternType: PatternTypeContains, expected: true},
		{name: "contains no match", value: "haystack", pattern: "needle", patternType: PatternTypeContains, expected: false},
		{name: "contains is case sensitive", value: "xxNEEDLExx", pattern: "needle", patternType: PatternTypeContains, expected: false},
		{name: "prefix match", value: "GET /index.html", pattern: "GET ", patternType: PatternTypePrefix, expected: true},
		{name: "prefix exact", value: "GET", pattern: "GET", patternType: PatternTypePrefix, expected: true},
		{name: "prefix no match", value: "XGET /", pattern: "GET", patternType: PatternTypePrefix, expected: false},
		{name: "prefix is case sensitive", value: "get /", pattern: "GET", patternType: PatternTypePrefix, expected: false},
		{name: "suffix match", value: "setup.exe", pattern: ".exe", patternType: PatternTypeSuffix, expected: true},
		{name: "suffix no match", value: "setup.exe.txt", pattern: ".exe", patternType: PatternTypeSuffix, expected: false},
		{name: "empty pattern matches anything", value: "anything", pattern: "", patternType: PatternTypeContains, expected: true},
		{name: "empty value no match", value: "", pattern: "a", patternType: PatternTypeContains, expected: false},
		{name: "unknown type falls back to contains", value: "abc", pattern: "b", patternType: PatternType(9), expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Match(tt.value, tt.pattern, tt.patternType))
		})
	}
}

func TestParsePatternAndMatch(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		value    string
		expected bool
	}{
		{name: "plain substring", input: "ab", value: "xxabyy", expected: true},
		{name: "suffix match", input: "*456789", value: "+49123456789", expected: true},
		{name: "suffix different ending", input: "*456789", value: "+49123456000", expected: false},
		{name: "prefix match", input: "HTTP/1.1*", value: "HTTP/1.1 200 OK", expected: true},
		{name: "prefix no match", input: "HTTP/1.1*", value: "xHTTP/1.1", expected: false},
		{name: "escaped literal prefix", input: `\*31#*`, value: "*31#+49123456", expected: true},
		{name: "escaped literal suffix", input: `*\*31#`, value: "suppress*31#", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern, patternType := ParsePattern(tt.input)
			require.NotEmpty(t, pattern)
			assert.Equal(t, tt.expected, Match(tt.value, pattern, patternType))
		})
	}
}
