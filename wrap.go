package reproduciblepanic

import (
	"github.com/bugsnag/panicwrap"
	"github.com/de-vri-es/reproducible-panic/logger"
	"github.com/de-vri-es/reproducible-panic/report"
	"github.com/pkg/errors"
	"io"
)

const wrapTag = "WRAP"
const wrapParam = "REPROPANIC_WRAP"

var wrapLog = logger.NewWithTag(wrapTag)

func wrapConfig() *panicwrap.WrapConfig {
	return &panicwrap.WrapConfig{
		Handler:   handleCrashOutput,
		HidePanic: true,
		Writer:    stderr,
	}
}

// wrap returns -1 inside the monitored child, otherwise the child's exit status.
func wrap() (int, error) {
	config := wrapConfig()
	if panicwrap.Wrapped(config) {
		wrapLog.Debug("already monitored")
		return -1, nil
	}

	wrapLog.Info("monitoring started")
	exitStatus, err := panicwrap.Wrap(config)
	if err != nil {
		return 0, errors.Wrap(err, "panicwrap")
	}
	return exitStatus, nil
}

// handleCrashOutput runs in the monitoring parent with the child's crash output.
func handleCrashOutput(output string) {
	record, err := report.ParseReport(output)
	if err != nil {
		wrapLog.LogIfError("unrecognized crash output", err)
		_, _ = io.WriteString(stderr, output)
		return
	}
	record.Backtrace = report.CurrentBacktrace()

	h := CurrentHook()
	if h == nil {
		h = DefaultHook()
	}
	dispatch(h, record)
}
