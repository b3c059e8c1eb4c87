package cmd

import (
	"fmt"
	"github.com/de-vri-es/reproducible-panic/env"
	"github.com/de-vri-es/reproducible-panic/report"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"io"
	"os"
	"strings"
)

const cliTag = "CLI"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "repropanic",
	Short: "Deterministic panic reports for snapshot tests",
	Long: `Rewrites the Go runtime's panic output into a form that is identical across runs:
no goroutine numbers, no addresses, no tracebacks.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitStatusError carries a child's exit status out of the run command.
type exitStatusError struct {
	code int
}

func (e *exitStatusError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitStatusError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .repropanic.yaml in the working directory, if present)")
	rootCmd.PersistentFlags().String("backtrace-var", report.DefaultBacktraceVar, "Variable named in the backtrace note")
	rootCmd.PersistentFlags().String("backtrace", "", "Backtrace status: disabled, enabled or unsupported (default: detected from the environment)")

	_ = viper.BindPFlag("backtrace-var", rootCmd.PersistentFlags().Lookup("backtrace-var"))
	_ = viper.BindPFlag("backtrace", rootCmd.PersistentFlags().Lookup("backtrace"))

	viper.SetEnvPrefix("REPROPANIC")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(".repropanic")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		}
	}
}

func newReporter(out io.Writer) *report.Reporter {
	return &report.Reporter{Out: out, BacktraceVar: viper.GetString("backtrace-var")}
}

func backtraceStatus() (report.BacktraceStatus, error) {
	switch value := strings.ToLower(viper.GetString("backtrace")); value {
	case "":
		return report.DetectBacktrace(env.Lookup, viper.GetString("backtrace-var")), nil
	case report.BacktraceDisabled.String():
		return report.BacktraceDisabled, nil
	case report.BacktraceEnabled.String():
		return report.BacktraceEnabled, nil
	case report.BacktraceUnsupported.String():
		return report.BacktraceUnsupported, nil
	default:
		return 0, errors.Errorf("unknown backtrace status %q", value)
	}
}
