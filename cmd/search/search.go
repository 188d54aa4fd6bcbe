// Package search implements `patmatch search`, which finds every occurrence of
// one or more patterns in a text.
package search

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/endorses/patmatch/internal/pkg/ahocorasick"
	"github.com/endorses/patmatch/internal/pkg/algorithms"
	"github.com/endorses/patmatch/internal/pkg/logger"
	"github.com/endorses/patmatch/internal/pkg/output"
	"github.com/endorses/patmatch/internal/pkg/render"
)

// SearchCmd is the command registered on the root.
var SearchCmd = NewCommand()

type options struct {
	text       string
	file       string
	patterns   []string
	algorithm  string
	dense      bool
	jsonOutput bool
}

// NewCommand builds a fresh search command.
func NewCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find every occurrence of patterns in a text",
		Long: `Search a text for one or more patterns and print every start offset,
overlapping occurrences included. A single pattern uses --algorithm; several
patterns are always matched together with Aho-Corasick.

Examples:
  patmatch search --text ababababa -p aba
  patmatch search --file corpus.txt -p needle --algorithm boyer-moore
  patmatch search --text ahishers -p he -p she -p his -p hers --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.text, "text", "t", "", "Text to search")
	flags.StringVarP(&opts.file, "file", "r", "", "Read the text from this file (- for stdin)")
	flags.StringArrayVarP(&opts.patterns, "pattern", "p", nil, "Pattern to search for (repeatable)")
	flags.StringVarP(&opts.algorithm, "algorithm", "a", algorithms.KMP, "Algorithm for a single pattern")
	flags.BoolVar(&opts.dense, "dense", false, "Use the dense 256-way transition table for multi-pattern search")
	flags.BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	_ = viper.BindPFlag("search.algorithm", flags.Lookup("algorithm"))
	_ = viper.BindPFlag("search.dense", flags.Lookup("dense"))

	return cmd
}

// readText loads the text from --text, --file or stdin.
func readText(cmd *cobra.Command, opts *options) ([]byte, error) {
	switch {
	case opts.text != "" && opts.file != "":
		return nil, errors.New("--text and --file are mutually exclusive")
	case opts.text != "":
		return []byte(opts.text), nil
	case opts.file == "-":
		return io.ReadAll(cmd.InOrStdin())
	case opts.file != "":
		// #nosec G304 -- Path is supplied by the operator on the command line
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return nil, fmt.Errorf("failed to read text file: %w", err)
		}
		return data, nil
	}
	return nil, errors.New("one of --text or --file is required")
}

// Find returns one row per distinct pattern, in the order given. dense selects
// the array-based automaton when several patterns are given.
func Find(text []byte, patterns []string, algorithm string, dense bool) ([]render.MatchRow, error) {
	if len(patterns) == 1 {
		s, err := algorithms.Lookup(algorithm)
		if err != nil {
			return nil, err
		}
		return []render.MatchRow{{
			Pattern:   patterns[0],
			Algorithm: s.Name(),
			Positions: s.Search(text, []byte(patterns[0])),
		}}, nil
	}

	acPatterns := make([]ahocorasick.Pattern, len(patterns))
	for i, p := range patterns {
		acPatterns[i] = ahocorasick.Pattern{ID: i, Text: p}
	}
	var matcher ahocorasick.Matcher = &ahocorasick.AhoCorasick{}
	label := algorithms.AhoCorasick
	if dense {
		matcher = ahocorasick.NewDenseAhoCorasick()
		label += "/dense"
	}
	if err := matcher.Build(acPatterns); err != nil {
		return nil, err
	}

	found := matcher.SearchAll(text)
	rows := make([]render.MatchRow, 0, len(patterns))
	seen := make(map[string]bool, len(patterns))
	for _, p := range patterns {
		if seen[p] {
			continue
		}
		seen[p] = true
		rows = append(rows, render.MatchRow{
			Pattern:   p,
			Algorithm: label,
			Positions: found[p],
		})
	}
	return rows, nil
}

func run(cmd *cobra.Command, opts *options) error {
	if len(opts.patterns) == 0 {
		return errors.New("at least one --pattern is required")
	}
	text, err := readText(cmd, opts)
	if err != nil {
		return err
	}

	algorithm := viper.GetString("search.algorithm")
	if len(opts.patterns) > 1 && cmd.Flags().Changed("algorithm") && algorithm != algorithms.AhoCorasick {
		logger.Warn("Multiple patterns are matched with Aho-Corasick", "requested", algorithm)
	}

	rows, err := Find(text, opts.patterns, algorithm, viper.GetBool("search.dense"))
	if err != nil {
		return err
	}
	logger.Debug("Search finished", "text_bytes", len(text), "patterns", len(opts.patterns))

	if opts.jsonOutput {
		return output.WriteJSON(cmd.OutOrStdout(), rows)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), render.MatchTable(rows))
	return err
}
