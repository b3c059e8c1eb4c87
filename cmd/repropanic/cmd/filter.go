package cmd

import (
	"github.com/de-vri-es/reproducible-panic/report"
	"github.com/spf13/cobra"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Rewrite panic output read from stdin",
	Long:  `Copies stdin to stdout, replacing the Go runtime's crash output with a deterministic report.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := backtraceStatus()
		if err != nil {
			return err
		}
		return report.Rewrite(cmd.InOrStdin(), cmd.OutOrStdout(), newReporter(cmd.OutOrStdout()), status)
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)
}
