// Package validate implements `patmatch validate`, which checks that every
// algorithm reports the same occurrences on the same input.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/endorses/patmatch/internal/pkg/algorithms"
	"github.com/endorses/patmatch/internal/pkg/benchmark"
	"github.com/endorses/patmatch/internal/pkg/cmdutil"
	"github.com/endorses/patmatch/internal/pkg/constants"
	"github.com/endorses/patmatch/internal/pkg/datagen"
	"github.com/endorses/patmatch/internal/pkg/logger"
	"github.com/endorses/patmatch/internal/pkg/output"
	"github.com/endorses/patmatch/internal/pkg/render"
)

// ValidateCmd is the command registered on the root.
var ValidateCmd = NewCommand()

// ErrDisagreement is returned when at least one algorithm disagrees with the reference.
var ErrDisagreement = errors.New("algorithms disagree")

type options struct {
	text        string
	pattern     string
	textSize    string
	patternSize int
	occurrences int
	seed        int64
	worstCase   string
	algorithms  []string
	jsonOutput  bool
}

// NewCommand builds a fresh validate command.
func NewCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that all algorithms agree",
		Long: `Run every selected algorithm on the same text and pattern and compare the
results with the first algorithm's. Without --text a random text of --text-size
bytes is generated with --occurrences copies of the pattern planted in it.
Exits non-zero when any algorithm disagrees.

Examples:
  patmatch validate
  patmatch validate --text ABABDABACDABABCABAB --pattern ABABCABAB
  patmatch validate --worst-case boyer-moore --text-size 1M`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.text, "text", "t", "", "Text to search (default: generated)")
	flags.StringVarP(&opts.pattern, "pattern", "p", "", "Pattern to search for (default: generated)")
	flags.StringVar(&opts.textSize, "text-size", "10K", "Size of the generated text")
	flags.IntVar(&opts.patternSize, "pattern-size", constants.DefaultPatternSize, "Size of the generated pattern")
	flags.IntVar(&opts.occurrences, "occurrences", 5, "Pattern copies planted in the generated text")
	flags.Int64Var(&opts.seed, "seed", constants.DefaultSeed, "Random seed for generated data")
	flags.StringVar(&opts.worstCase, "worst-case", "", "Generate the worst-case input of this algorithm instead")
	flags.StringSliceVarP(&opts.algorithms, "algorithms", "a", nil, "Algorithms to compare; the first is the reference (default all)")
	flags.BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

// input resolves the text and pattern from flags, generating what is missing.
func input(opts *options) (text, pattern []byte, err error) {
	if opts.text != "" {
		if opts.pattern == "" {
			return nil, nil, errors.New("--pattern is required with --text")
		}
		return []byte(opts.text), []byte(opts.pattern), nil
	}

	size, err := cmdutil.ParseSize(opts.textSize)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --text-size: %w", err)
	}
	gen := datagen.New(opts.seed, "")

	if opts.worstCase != "" {
		return gen.WorstCase(opts.worstCase, size, opts.patternSize)
	}

	pattern = []byte(opts.pattern)
	if len(pattern) == 0 {
		if pattern, err = gen.RandomPattern(opts.patternSize); err != nil {
			return nil, nil, err
		}
	}
	text, _, err = gen.TextWithPattern(size, pattern, opts.occurrences)
	return text, pattern, err
}

func run(cmd *cobra.Command, opts *options) error {
	searchers, err := algorithms.Select(opts.algorithms)
	if err != nil {
		return err
	}
	text, pattern, err := input(opts)
	if err != nil {
		return err
	}

	v := benchmark.Validate(searchers, text, pattern)
	logger.Info("Validation finished",
		"reference", v.Reference,
		"matches", len(v.Expected),
		"ok", v.OK())

	if opts.jsonOutput {
		if err := output.WriteJSON(cmd.OutOrStdout(), v); err != nil {
			return err
		}
	} else {
		rows := make([]render.MatchRow, 0, len(v.Order))
		for _, name := range v.Order {
			status := "ok"
			if !v.Correct[name] {
				status = "MISMATCH"
			}
			rows = append(rows, render.MatchRow{
				Pattern:   string(pattern),
				Algorithm: fmt.Sprintf("%s (%s)", name, status),
				Positions: v.Positions[name],
			})
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), render.MatchTable(rows)); err != nil {
			return err
		}
	}

	if !v.OK() {
		return fmt.Errorf("%w: %s", ErrDisagreement, strings.Join(v.Failed(), ", "))
	}
	return nil
}
