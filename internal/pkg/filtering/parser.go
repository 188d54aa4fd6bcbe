package filtering

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseFile reads a pattern file and resolves every enabled entry.
// Files ending in .yaml or .yml are parsed as a PatternFile; anything else is
// read as plain text with one pattern per line.
func ParseFile(path string) ([]ParsedPattern, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAMLFile(path)
	}

	lines, err := LoadPatternsFromFile(path)
	if err != nil {
		return nil, err
	}
	return ParseAll(lines)
}

// ParseAll resolves wildcard patterns, numbering them in input order.
func ParseAll(inputs []string) ([]ParsedPattern, error) {
	parsed := make([]ParsedPattern, 0, len(inputs))
	for i, input := range inputs {
		if err := ValidatePattern(input); err != nil {
			return nil, fmt.Errorf("pattern %d: %w", i, err)
		}
		text, patternType := ParsePattern(input)
		parsed = append(parsed, ParsedPattern{ID: i, Text: text, Type: patternType})
	}
	return parsed, nil
}

func parseYAMLFile(path string) ([]ParsedPattern, error) {
	// #nosec G304 -- Path is supplied by the operator on the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern file: %w", err)
	}

	var file PatternFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse pattern YAML: %w", err)
	}

	var parsed []ParsedPattern
	for _, entry := range file.Patterns {
		if entry == nil || !entry.IsEnabled() {
			continue
		}
		if err := ValidatePattern(entry.Pattern); err != nil {
			return nil, fmt.Errorf("pattern %d: %w", entry.ID, err)
		}
		text, patternType := ParsePattern(entry.Pattern)
		parsed = append(parsed, ParsedPattern{ID: entry.ID, Text: text, Type: patternType})
	}
	return parsed, nil
}

// LoadPatternsFromFile loads patterns from a file, one per line.
// Empty lines and lines starting with # are ignored.
func LoadPatternsFromFile(filename string) ([]string, error) {
	// #nosec G304 -- Path is supplied by the operator on the command line
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var patterns []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return patterns, nil
}
