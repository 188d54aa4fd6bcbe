// Package benchmark times the registered matchers against generated inputs and
// checks that they agree with each other.
package benchmark

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/endorses/patmatch/internal/pkg/algorithms"
	"github.com/endorses/patmatch/internal/pkg/constants"
	"github.com/endorses/patmatch/internal/pkg/datagen"
	"github.com/endorses/patmatch/internal/pkg/logger"
	"github.com/endorses/patmatch/internal/pkg/simd"
	"github.com/endorses/patmatch/internal/pkg/sysmetrics"
)

var (
	// ErrInvalidRuns is returned when fewer than one timed run is requested.
	ErrInvalidRuns = errors.New("number of runs must be greater than zero")

	// ErrUnknownAlgorithm is returned when a configured algorithm is not registered.
	ErrUnknownAlgorithm = algorithms.ErrUnknownAlgorithm
)

// MeasureExecutionTime runs s over text and pattern runs times and returns the
// mean wall time of one search.
func MeasureExecutionTime(s algorithms.Searcher, text, pattern []byte, runs int) (time.Duration, error) {
	d, _, err := measure(s, text, pattern, runs)
	return d, err
}

// measure also returns the match count of the last run.
func measure(s algorithms.Searcher, text, pattern []byte, runs int) (time.Duration, int, error) {
	if runs <= 0 {
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidRuns, runs)
	}

	var total time.Duration
	var matches int
	for i := 0; i < runs; i++ {
		start := time.Now()
		positions := s.Search(text, pattern)
		total += time.Since(start)
		matches = len(positions)
	}
	return total / time.Duration(runs), matches, nil
}

// RunComparison times every configured algorithm on one generated text and pattern
// per text size. Cancelling ctx stops the run between measurements.
func RunComparison(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	searchers, err := algorithms.Select(cfg.Algorithms)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(searchers))
	for i, s := range searchers {
		names[i] = s.Name()
	}
	cfg.Algorithms = names

	report := &Report{
		RunID:     uuid.New().String(),
		StartedAt: time.Now().UTC(),
		Config:    cfg,
		CPU:       simd.GetCPUFeatures(),
	}

	log := logger.With("run_id", report.RunID)
	log.Info("Starting comparison",
		"algorithms", names,
		"text_sizes", cfg.TextSizes,
		"pattern_size", cfg.PatternSize,
		"num_tests", cfg.NumTests)

	resources := sysmetrics.New(0)
	resources.Start(ctx)
	defer resources.Stop()

	gen := datagen.New(cfg.Seed, cfg.Charset)
	for _, size := range cfg.TextSizes {
		if size > constants.MaxRecommendedTextSize {
			log.Warn("Text size exceeds recommended maximum",
				"text_size", size,
				"max", constants.MaxRecommendedTextSize)
		}

		text, pattern, err := generate(gen, cfg, size)
		if err != nil {
			return nil, fmt.Errorf("generating input for text size %d: %w", size, err)
		}

		log.Info("Testing text size", "text_size", size)
		run := SizeResult{TextSize: size, Pattern: string(pattern)}
		for _, s := range searchers {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			d, matches, err := measure(s, text, pattern, cfg.NumTests)
			if err != nil {
				return nil, err
			}
			log.Debug("Measured algorithm",
				"algorithm", s.Name(),
				"text_size", size,
				"duration", d,
				"matches", matches)
			run.Results = append(run.Results, Result{
				Algorithm: s.Name(),
				Duration:  d,
				Matches:   matches,
			})
		}
		report.Sizes = append(report.Sizes, run)
	}

	report.FinishedAt = time.Now().UTC()
	report.Resources = resources.Stop()
	log.Info("Comparison finished",
		"elapsed", report.FinishedAt.Sub(report.StartedAt),
		"peak_rss_bytes", report.Resources.PeakRSSBytes)
	return report, nil
}

// generate draws the pattern before the text, so a given seed yields the same
// pattern regardless of text size ordering.
func generate(gen *datagen.Generator, cfg Config, size int) (text, pattern []byte, err error) {
	if cfg.WorstCase != "" {
		return gen.WorstCase(cfg.WorstCase, size, cfg.PatternSize)
	}
	pattern, err = gen.RandomPattern(cfg.PatternSize)
	if err != nil {
		return nil, nil, err
	}
	text, err = gen.RandomText(size)
	if err != nil {
		return nil, nil, err
	}
	return text, pattern, nil
}

// CompareFixed times each searcher on the same text and pattern.
func CompareFixed(ctx context.Context, searchers []algorithms.Searcher, text, pattern []byte, runs int) (map[string]time.Duration, error) {
	if runs <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRuns, runs)
	}

	results := make(map[string]time.Duration, len(searchers))
	for _, s := range searchers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d, err := MeasureExecutionTime(s, text, pattern, runs)
		if err != nil {
			return nil, err
		}
		logger.Debug("Measured algorithm", "algorithm", s.Name(), "duration", d)
		results[s.Name()] = d
	}
	return results, nil
}

// Validation records whether each searcher agreed with the reference, which is
// the first searcher given.
type Validation struct {
	Reference string           `json:"reference" yaml:"reference"`
	Expected  []int            `json:"expected" yaml:"expected"`
	Correct   map[string]bool  `json:"correct" yaml:"correct"`
	Positions map[string][]int `json:"positions" yaml:"positions"`
	Order     []string         `json:"order" yaml:"order"`
}

// OK reports whether every searcher agreed with the reference.
func (v Validation) OK() bool {
	for _, ok := range v.Correct {
		if !ok {
			return false
		}
	}
	return true
}

// Failed returns the names of searchers that disagreed, in input order.
func (v Validation) Failed() []string {
	var failed []string
	for _, name := range v.Order {
		if !v.Correct[name] {
			failed = append(failed, name)
		}
	}
	return failed
}

// Validate runs every searcher on text and pattern and compares each result with
// the first searcher's.
func Validate(searchers []algorithms.Searcher, text, pattern []byte) Validation {
	v := Validation{
		Correct:   make(map[string]bool, len(searchers)),
		Positions: make(map[string][]int, len(searchers)),
	}
	for i, s := range searchers {
		positions := s.Search(text, pattern)
		v.Order = append(v.Order, s.Name())
		v.Positions[s.Name()] = positions
		if i == 0 {
			v.Reference = s.Name()
			v.Expected = positions
			v.Correct[s.Name()] = true
			continue
		}
		v.Correct[s.Name()] = slices.Equal(positions, v.Expected)
	}
	return v
}
