package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/endorses/patmatch/internal/pkg/output"
	"github.com/endorses/patmatch/internal/pkg/simd"
	"github.com/endorses/patmatch/internal/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		info := version.Get()

		if jsonOutput {
			return output.WriteJSON(cmd.OutOrStdout(), struct {
				version.Info
				CPU simd.CPUFeatures `json:"cpu"`
			}{info, simd.GetCPUFeatures()})
		}

		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\ncpu features: %s\n", info, simd.GetCPUFeatures())
		return err
	},
}

func init() {
	versionCmd.Flags().Bool("json", false, "Output in JSON format")
}
