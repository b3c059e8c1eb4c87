package cmd

import (
	"github.com/de-vri-es/reproducible-panic/report"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a single panic report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		thread, _ := flags.GetString("thread")
		file, _ := flags.GetString("file")
		line, _ := flags.GetInt("line")
		column, _ := flags.GetInt("column")
		message, _ := flags.GetString("message")
		opaque, _ := flags.GetBool("opaque")

		if !opaque && !flags.Changed("message") {
			return errors.New("either --message or --opaque is required")
		}

		status, err := backtraceStatus()
		if err != nil {
			return err
		}

		record := &report.Record{Thread: thread, Payload: report.Text(message), Backtrace: status}
		if opaque {
			record.Payload = report.Opaque{}
		}
		if file != "" {
			record.Location = &report.Location{File: file, Line: line, Column: column}
		}

		newReporter(cmd.OutOrStdout()).Report(record)
		return nil
	},
}

func init() {
	renderCmd.Flags().String("thread", "", "Goroutine label (default: <unnamed>)")
	renderCmd.Flags().String("file", "", "Source file of the panic")
	renderCmd.Flags().Int("line", 0, "Line of the panic")
	renderCmd.Flags().Int("column", 0, "Column of the panic (0: unknown)")
	renderCmd.Flags().String("message", "", "Panic message")
	renderCmd.Flags().Bool("opaque", false, "Render the fallback for a value without a textual form")
	rootCmd.AddCommand(renderCmd)
}
