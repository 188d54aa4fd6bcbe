// Package scan implements `patmatch scan`, which searches the payload of every
// packet in a pcap capture for a set of anchored patterns.
package scan

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"

	"github.com/endorses/patmatch/internal/pkg/ahocorasick"
	"github.com/endorses/patmatch/internal/pkg/algorithms"
	"github.com/endorses/patmatch/internal/pkg/filtering"
	"github.com/endorses/patmatch/internal/pkg/logger"
	"github.com/endorses/patmatch/internal/pkg/output"
	"github.com/endorses/patmatch/internal/pkg/pcapsource"
	"github.com/endorses/patmatch/internal/pkg/pcapwriter"
	"github.com/endorses/patmatch/internal/pkg/render"
)

// ScanCmd is the command registered on the root.
var ScanCmd = NewCommand()

type options struct {
	readFile     string
	patterns     []string
	patternsFile string
	writeFile    string
	jsonOutput   bool
}

// Hit is every occurrence of one pattern in one packet payload.
type Hit struct {
	Packet    int       `json:"packet"`
	Timestamp time.Time `json:"timestamp"`
	Flow      string    `json:"flow,omitempty"`
	PatternID int       `json:"pattern_id"`
	Pattern   string    `json:"pattern"`
	Type      string    `json:"type"`
	Positions []int     `json:"positions"`
}

// NewCommand builds a fresh scan command.
func NewCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Search packet payloads in a pcap file",
		Long: `Read a pcap capture and search every packet payload for a set of patterns
in one Aho-Corasick pass per packet.

Pattern syntax:
  needle     occurs anywhere in the payload
  GET *      payload starts with "GET "
  *\r\n      payload ends with the pattern
  \*31#      literal asterisk

Examples:
  patmatch scan -r capture.pcap -p "GET *" -p "password"
  patmatch scan -r capture.pcap --patterns-file patterns.yaml --json
  patmatch scan -r capture.pcap -p "INVITE *" -w invites.pcap`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.readFile, "read-file", "r", "", "pcap file to scan (required)")
	flags.StringArrayVarP(&opts.patterns, "pattern", "p", nil, "Pattern to search for (repeatable)")
	flags.StringVar(&opts.patternsFile, "patterns-file", "", "Load patterns from a YAML file or a text file with one pattern per line")
	flags.StringVarP(&opts.writeFile, "write-file", "w", "", "Write packets with at least one hit to this pcap file")
	flags.BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	_ = cmd.MarkFlagRequired("read-file")

	return cmd
}

// loadPatterns merges --pattern values and --patterns-file entries. Command-line
// patterns are numbered in order; file entries keep the file's IDs, or their
// line order for text files.
func loadPatterns(opts *options) ([]ahocorasick.Pattern, error) {
	parsed, err := filtering.ParseAll(opts.patterns)
	if err != nil {
		return nil, err
	}
	if opts.patternsFile != "" {
		fromFile, err := filtering.ParseFile(opts.patternsFile)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, fromFile...)
	}
	if len(parsed) == 0 {
		return nil, errors.New("at least one --pattern or --patterns-file is required")
	}

	patterns := make([]ahocorasick.Pattern, len(parsed))
	for i, p := range parsed {
		patterns[i] = ahocorasick.Pattern{ID: p.ID, Text: p.Text, Type: p.Type}
	}
	return patterns, nil
}

// Scan matches every payload against the patterns and returns hits ordered by
// packet, then by first occurrence. Payloads are matched concurrently on up to
// GOMAXPROCS goroutines; the automaton is read-only once built.
func Scan(payloads []pcapsource.Payload, patterns []ahocorasick.Pattern) ([]Hit, error) {
	matcher := ahocorasick.NewMultiModeAC()
	if err := matcher.Build(patterns); err != nil {
		return nil, err
	}

	perPacket := make([][]Hit, len(payloads))
	p := pool.New().WithMaxGoroutines(runtime.GOMAXPROCS(0))
	for i := range payloads {
		p.Go(func() {
			perPacket[i] = scanPayload(matcher, patterns, payloads[i])
		})
	}
	p.Wait()

	var hits []Hit
	for _, h := range perPacket {
		hits = append(hits, h...)
	}
	return hits, nil
}

// scanPayload groups one payload's matches by pattern.
func scanPayload(matcher *ahocorasick.MultiModeAC, patterns []ahocorasick.Pattern, payload pcapsource.Payload) []Hit {
	var hits []Hit
	byPattern := make(map[int]int)
	for _, m := range matcher.Match(payload.Data) {
		idx, ok := byPattern[m.PatternIndex]
		if !ok {
			p := patterns[m.PatternIndex]
			hits = append(hits, Hit{
				Packet:    payload.Index,
				Timestamp: payload.Timestamp,
				Flow:      payload.Flow,
				PatternID: p.ID,
				Pattern:   p.Text,
				Type:      p.Type.String(),
			})
			idx = len(hits) - 1
			byPattern[m.PatternIndex] = idx
		}
		hits[idx].Positions = append(hits[idx].Positions, m.Start)
	}
	return hits
}

func run(cmd *cobra.Command, opts *options) error {
	patterns, err := loadPatterns(opts)
	if err != nil {
		return err
	}

	payloads, err := pcapsource.Open(opts.readFile)
	if err != nil {
		return err
	}
	logger.Info("Scanning capture",
		"file", opts.readFile,
		"payloads", len(payloads),
		"patterns", len(patterns))

	hits, err := Scan(payloads, patterns)
	if err != nil {
		return err
	}
	logger.Info("Scan finished", "hits", len(hits))

	if opts.writeFile != "" {
		if err := writeMatched(opts.writeFile, payloads, hits); err != nil {
			return err
		}
	}

	if opts.jsonOutput {
		if hits == nil {
			hits = []Hit{}
		}
		return output.WriteJSON(cmd.OutOrStdout(), hits)
	}

	rows := make([]render.MatchRow, len(hits))
	for i, h := range hits {
		source := fmt.Sprintf("packet %d", h.Packet)
		if h.Flow != "" {
			source += " " + h.Flow
		}
		rows[i] = render.MatchRow{
			Source:    source,
			Pattern:   h.Pattern,
			Algorithm: algorithms.AhoCorasick + "/" + h.Type,
			Positions: h.Positions,
		}
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), render.MatchTable(rows))
	return err
}

// writeMatched saves every packet that has at least one hit, in capture order.
func writeMatched(path string, payloads []pcapsource.Payload, hits []Hit) error {
	matched := make(map[int]bool, len(hits))
	for _, h := range hits {
		matched[h.Packet] = true
	}

	w, err := pcapwriter.New(pcapwriter.Config{FilePath: path})
	if err != nil {
		return err
	}
	for _, p := range payloads {
		if !matched[p.Index] {
			continue
		}
		if err := w.WritePayload(p); err != nil {
			_ = w.Close()
			return err
		}
	}
	return w.Close()
}
