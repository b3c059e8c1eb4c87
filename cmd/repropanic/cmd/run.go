package cmd

import (
	"github.com/de-vri-es/reproducible-panic/logger"
	"github.com/de-vri-es/reproducible-panic/report"
	"github.com/de-vri-es/reproducible-panic/u"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"io"
	"os"
	"os/exec"
)

var runCmd = &cobra.Command{
	Use:   "run -- program [args...]",
	Short: "Run a program and rewrite panics on its stderr",
	Long: `Runs a program with stdin and stdout attached. Its stderr is passed through
with the crash output replaced by a deterministic report. Exits with the program's status.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := backtraceStatus()
		if err != nil {
			return err
		}
		teePath, _ := cmd.Flags().GetString("tee")

		child := exec.CommandContext(cmd.Context(), args[0], args[1:]...)
		child.Stdin = cmd.InOrStdin()
		child.Stdout = cmd.OutOrStdout()

		pr, pw := io.Pipe()
		child.Stderr = pw
		if teePath != "" {
			teeFile, err := os.Create(teePath)
			if err != nil {
				return errors.Wrap(err, "open tee file")
			}
			defer u.CloseOptimistic(teeFile)
			child.Stderr = u.NewSpyWriter(pw, teeFile)
		}

		if err := child.Start(); err != nil {
			return errors.Wrapf(err, "start %s", args[0])
		}
		logger.Debug(cliTag, "started", args[0])

		waitCh := make(chan error, 1)
		go func() {
			err := child.Wait()
			_ = pw.Close()
			waitCh <- err
		}()

		rewriteErr := report.Rewrite(pr, cmd.ErrOrStderr(), newReporter(cmd.ErrOrStderr()), status)
		if rewriteErr != nil {
			_, _ = io.Copy(io.Discard, pr)
		}

		waitErr := <-waitCh
		logger.Info(cliTag, "finished", args[0])
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return &exitStatusError{code: exitErr.ExitCode()}
		}
		if waitErr != nil {
			return errors.Wrapf(waitErr, "run %s", args[0])
		}
		return rewriteErr
	},
}

func init() {
	runCmd.Flags().String("tee", "", "Also write the program's raw stderr to this file")
	rootCmd.AddCommand(runCmd)
}
