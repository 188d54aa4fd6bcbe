package benchmark

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/endorses/patmatch/internal/pkg/constants"
	"github.com/endorses/patmatch/internal/pkg/simd"
	"github.com/endorses/patmatch/internal/pkg/sysmetrics"
)

// Result is one algorithm's timing at one text size.
type Result struct {
	Algorithm string        `json:"algorithm" yaml:"algorithm"`
	Duration  time.Duration `json:"duration_ns" yaml:"duration_ns"`
	Matches   int           `json:"matches" yaml:"matches"`
}

// Millis returns the duration in fractional milliseconds.
func (r Result) Millis() float64 {
	return float64(r.Duration) / float64(time.Millisecond)
}

// SizeResult holds every algorithm's result for one text size.
type SizeResult struct {
	TextSize int      `json:"text_size" yaml:"text_size"`
	Pattern  string   `json:"pattern" yaml:"pattern"`
	Results  []Result `json:"results" yaml:"results"`
}

// Report is the outcome of a comparison run.
type Report struct {
	RunID      string             `json:"run_id" yaml:"run_id"`
	StartedAt  time.Time          `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time          `json:"finished_at" yaml:"finished_at"`
	Config     Config             `json:"config" yaml:"config"`
	CPU        simd.CPUFeatures   `json:"cpu" yaml:"cpu"`
	Resources  sysmetrics.Metrics `json:"resources" yaml:"resources"`
	Sizes      []SizeResult       `json:"sizes" yaml:"sizes"`
}

// Durations returns the named algorithm's duration at each text size, in
// configuration order. Sizes where it did not run are zero.
func (r *Report) Durations(algorithm string) []time.Duration {
	out := make([]time.Duration, len(r.Sizes))
	for i, size := range r.Sizes {
		for _, res := range size.Results {
			if res.Algorithm == algorithm {
				out[i] = res.Duration
			}
		}
	}
	return out
}

// Fastest returns the algorithm with the lowest duration at each text size.
func (r *Report) Fastest() []string {
	out := make([]string, len(r.Sizes))
	for i, size := range r.Sizes {
		var best time.Duration = -1
		for _, res := range size.Results {
			if best < 0 || res.Duration < best {
				best = res.Duration
				out[i] = res.Algorithm
			}
		}
	}
	return out
}

// Encode writes the report as JSON or YAML.
func (r *Report) Encode(w io.Writer, format string) error {
	switch format {
	case constants.FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report to JSON: %w", err)
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err
	case constants.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to marshal report to YAML: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported report format %q", format)
}
