// Package cmd wires the patmatch subcommands under one root command.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/endorses/patmatch/cmd/bench"
	"github.com/endorses/patmatch/cmd/generate"
	"github.com/endorses/patmatch/cmd/scan"
	"github.com/endorses/patmatch/cmd/search"
	"github.com/endorses/patmatch/cmd/validate"
	"github.com/endorses/patmatch/internal/pkg/logger"
	"github.com/endorses/patmatch/internal/pkg/version"
)

var cfgFile string

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patmatch",
		Short: "Exact string matching algorithms and benchmarks",
		Long: `patmatch finds every occurrence of a pattern in a text with brute force,
Knuth-Morris-Pratt, Boyer-Moore, Rabin-Karp or Aho-Corasick, and compares how
fast they are on generated or captured data.`,
		Version:       version.Get().Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.SetLevel(viper.GetString("log_level"))
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.patmatch.yaml)")
	cmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))

	cmd.AddCommand(bench.BenchCmd)
	cmd.AddCommand(search.SearchCmd)
	cmd.AddCommand(scan.ScanCmd)
	cmd.AddCommand(validate.ValidateCmd)
	cmd.AddCommand(generate.GenerateCmd)
	cmd.AddCommand(versionCmd)

	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command failed", "error", err)
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	logger.Initialize()
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".patmatch")
	}

	viper.SetEnvPrefix("PATMATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger.Debug("Using config file", "path", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		logger.Warn("Failed to read config file", "path", cfgFile, "error", err)
	}
}
