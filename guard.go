package reproduciblepanic

import (
	bugsnagerrors "github.com/bugsnag/bugsnag-go/v2/errors"
	"github.com/de-vri-es/reproducible-panic/report"
	"os"
)

// Same status the runtime uses for an unrecovered panic.
const panicExitStatus = 2

var exit = os.Exit

// Recover reports a panic of the calling goroutine and exits. It must be deferred directly:
//
//	defer reproduciblepanic.Recover()
func Recover() {
	if reason := recover(); reason != nil {
		handlePanic(reason, "")
	}
}

// RecoverNamed is Recover with a label for the goroutine.
func RecoverNamed(name string) {
	if reason := recover(); reason != nil {
		handlePanic(reason, name)
	}
}

// Go starts fn in a goroutine labelled name.
func Go(name string, fn func()) {
	go func() {
		defer RecoverNamed(name)
		fn()
	}()
}

// Main runs fn under the "main" label.
func Main(fn func()) {
	defer RecoverNamed(report.MainThread)
	fn()
}

func handlePanic(reason any, thread string) {
	h := CurrentHook()
	if h == nil {
		panic(reason)
	}

	frames := bugsnagerrors.New("recovered panic", 1).StackFrames()
	record := report.NewRecord(reason, frames, thread)
	record.Backtrace = report.CurrentBacktrace()

	dispatch(h, record)
	exit(panicExitStatus)
}
