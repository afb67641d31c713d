package commands

import (
	"github.com/spf13/cobra"

	echronos "github.com/data61/echronos-lwip"
	"github.com/data61/echronos-lwip/internal/output"
)

// RootCmd creates and returns the root command for the rtosgen CLI
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "rtosgen",
		Short: "Assemble RTOS modules from component fragments",
		Long: `rtosgen assembles target-specific RTOS modules from reusable component
fragment files.

Each skeleton composes an ordered list of components; for every configured
(skeleton, architecture) pair the tool extracts named sections from the
component fragments, renders them against the target configuration, and
writes a source file, a header file, a merged schema.xml and the skeleton's
metadata artifact into the output tree.`,
		Version: echronos.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")

	return cmd
}
