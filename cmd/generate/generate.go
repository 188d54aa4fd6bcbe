// Package generate implements `patmatch generate`, which writes reproducible
// test texts.
package generate

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/endorses/patmatch/internal/pkg/cmdutil"
	"github.com/endorses/patmatch/internal/pkg/constants"
	"github.com/endorses/patmatch/internal/pkg/datagen"
	"github.com/endorses/patmatch/internal/pkg/logger"
)

// GenerateCmd is the command registered on the root.
var GenerateCmd = NewCommand()

type options struct {
	size        string
	pattern     string
	patternSize int
	occurrences int
	worstCase   string
	seed        int64
	charset     string
	output      string
}

// NewCommand builds a fresh generate command.
func NewCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a generated text",
		Long: `Write a random text, optionally with a pattern planted at random offsets or
shaped as the worst case of an algorithm. The text goes to stdout or --output;
planted offsets and worst-case patterns are logged to stderr.

Examples:
  patmatch generate --size 1M -o text.txt
  patmatch generate --size 10K --pattern needle --occurrences 20
  patmatch generate --size 100K --worst-case kmp --pattern-size 32`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.size, "size", "s", "100K", "Text size (e.g. 1000, 10K, 1M)")
	flags.StringVarP(&opts.pattern, "pattern", "p", "", "Pattern to plant in the text")
	flags.IntVar(&opts.patternSize, "pattern-size", constants.DefaultPatternSize, "Pattern size for --worst-case")
	flags.IntVar(&opts.occurrences, "occurrences", 1, "Copies of --pattern to plant")
	flags.StringVar(&opts.worstCase, "worst-case", "", "Generate the worst-case text of this algorithm")
	flags.Int64Var(&opts.seed, "seed", constants.DefaultSeed, "Random seed")
	flags.StringVar(&opts.charset, "charset", constants.DefaultCharset, "Characters to draw from")
	flags.StringVarP(&opts.output, "output", "o", "", "Write to this file instead of stdout")

	return cmd
}

// Text produces the text described by opts.
func Text(opts *options) ([]byte, error) {
	size, err := cmdutil.ParseSize(opts.size)
	if err != nil {
		return nil, fmt.Errorf("invalid --size: %w", err)
	}
	gen := datagen.New(opts.seed, opts.charset)

	switch {
	case opts.worstCase != "":
		text, pattern, err := gen.WorstCase(opts.worstCase, size, opts.patternSize)
		if err != nil {
			return nil, err
		}
		logger.Info("Generated worst-case text", "algorithm", opts.worstCase, "pattern", string(pattern))
		return text, nil
	case opts.pattern != "":
		text, positions, err := gen.TextWithPattern(size, []byte(opts.pattern), opts.occurrences)
		if err != nil {
			return nil, err
		}
		logger.Info("Planted pattern", "pattern", opts.pattern, "positions", positions)
		return text, nil
	}
	return gen.RandomText(size)
}

func run(cmd *cobra.Command, opts *options) error {
	text, err := Text(opts)
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
	}

	_, err = w.Write(text)
	return err
}
