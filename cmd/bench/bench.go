// Package bench implements `patmatch bench`, the timing comparison of all
// matchers over generated texts.
package bench

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/endorses/patmatch/internal/pkg/algorithms"
	"github.com/endorses/patmatch/internal/pkg/benchmark"
	"github.com/endorses/patmatch/internal/pkg/cmdutil"
	"github.com/endorses/patmatch/internal/pkg/constants"
	"github.com/endorses/patmatch/internal/pkg/logger"
	"github.com/endorses/patmatch/internal/pkg/render"
	"github.com/endorses/patmatch/internal/pkg/signals"
)

// BenchCmd is the command registered on the root.
var BenchCmd = NewCommand()

type options struct {
	textSize    string
	patternSize int
	numTests    int
	seed        int64
	charset     string
	sizes       []string
	algorithms  []string
	worstCase   string
	format      string
	output      string
}

// NewCommand builds a fresh bench command with its flags bound to viper.
func NewCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare matcher execution times over generated texts",
		Long: `Generate a random pattern and text for each text size, run every selected
algorithm on it several times and report the mean search time.

Examples:
  patmatch bench
  patmatch bench --sizes 1K,10K,100K --pattern-size 16 --num-tests 10
  patmatch bench --algorithms kmp,boyer-moore --format json -o report.json
  patmatch bench --worst-case brute-force --pattern-size 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.textSize, "text-size", "", "Benchmark a single text size (e.g. 100000, 100K); overrides --sizes")
	flags.IntVar(&opts.patternSize, "pattern-size", constants.DefaultPatternSize, "Length of the generated pattern")
	flags.IntVarP(&opts.numTests, "num-tests", "n", constants.DefaultNumTests, "Timed runs averaged per measurement")
	flags.Int64Var(&opts.seed, "seed", constants.DefaultSeed, "Random seed for generated data")
	flags.StringVar(&opts.charset, "charset", constants.DefaultCharset, "Characters used for generated data")
	flags.StringSliceVar(&opts.sizes, "sizes", nil, "Text sizes to sweep (default 1000,10000,100000,1000000)")
	flags.StringSliceVarP(&opts.algorithms, "algorithms", "a", nil, "Algorithms to compare (default all: "+strings.Join(algorithms.Names(), ",")+")")
	flags.StringVar(&opts.worstCase, "worst-case", "", "Use the worst-case input shape of this algorithm instead of random data")
	flags.StringVarP(&opts.format, "format", "f", constants.FormatTable, "Output format: table, json or yaml")
	flags.StringVarP(&opts.output, "output", "o", "", "Write the report to this file instead of stdout")

	_ = cmdutil.BindFlags(flags, "bench",
		"pattern-size", "num-tests", "seed", "charset", "worst-case", "format")

	return cmd
}

// buildConfig merges flags with the bench section of the config file.
func buildConfig(opts *options) (benchmark.Config, error) {
	cfg := benchmark.DefaultConfig()
	cfg.PatternSize = viper.GetInt("bench.pattern_size")
	cfg.NumTests = viper.GetInt("bench.num_tests")
	cfg.Seed = viper.GetInt64("bench.seed")
	cfg.Charset = viper.GetString("bench.charset")
	cfg.WorstCase = viper.GetString("bench.worst_case")
	cfg.Algorithms = cmdutil.GetStringSliceConfig("bench.algorithms", opts.algorithms)

	if size := cmdutil.GetStringConfig("bench.text_size", opts.textSize); size != "" {
		n, err := cmdutil.ParseSize(size)
		if err != nil {
			return cfg, fmt.Errorf("invalid --text-size: %w", err)
		}
		cfg.TextSizes = []int{n}
	} else if sizes := cmdutil.GetStringSliceConfig("bench.sizes", opts.sizes); len(sizes) > 0 {
		parsed, err := cmdutil.ParseSizes(sizes)
		if err != nil {
			return cfg, fmt.Errorf("invalid --sizes: %w", err)
		}
		cfg.TextSizes = parsed
	}

	return cfg, cfg.Validate()
}

func run(cmd *cobra.Command, opts *options) error {
	cfg, err := buildConfig(opts)
	if err != nil {
		return err
	}

	format := viper.GetString("bench.format")
	switch format {
	case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
	default:
		return fmt.Errorf("unsupported format %q (want table, json or yaml)", format)
	}

	ctx, release := signals.Context(cmd.Context())
	defer release()

	report, err := benchmark.RunComparison(ctx, cfg)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if opts.output != "" {
		// #nosec G304 -- Path is supplied by the operator on the command line
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
		logger.Info("Writing report", "path", opts.output, "format", format)
	}

	if format == constants.FormatTable {
		_, err = fmt.Fprintln(w, render.ComparisonTable(report))
		return err
	}
	return report.Encode(w, format)
}
