package filtering

// PatternFile represents the YAML structure of a scan pattern file.
type PatternFile struct {
	Patterns []*PatternYAML `yaml:"patterns" json:"patterns"`
}

// PatternYAML represents a single pattern entry in YAML/JSON format.
// Pattern uses the wildcard syntax understood by ParsePattern.
type PatternYAML struct {
	ID          int    `yaml:"id" json:"id"`
	Pattern     string `yaml:"pattern" json:"pattern"`
	Enabled     *bool  `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// IsEnabled reports whether the entry should be loaded. Entries are enabled unless
// explicitly switched off.
func (p *PatternYAML) IsEnabled() bool {
	return p.Enabled == nil || *p.Enabled
}

// ParsedPattern is a pattern with its wildcards resolved.
type ParsedPattern struct {
	ID   int
	Text string
	Type PatternType
}
