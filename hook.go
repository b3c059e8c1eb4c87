package reproduciblepanic

import (
	"github.com/de-vri-es/reproducible-panic/env"
	"github.com/de-vri-es/reproducible-panic/logger"
	"github.com/de-vri-es/reproducible-panic/report"
	"github.com/de-vri-es/reproducible-panic/u"
	"io"
	"os"
	"sync"
)

const hookTag = "PANIC"
const debugLoggingParam = "REPROPANIC_DEBUG_LOG"

// Hook receives every panic that reaches a guard or the process monitor.
type Hook func(record *report.Record)

var mu sync.Mutex
var hook Hook

var stderr io.Writer = os.Stderr

func init() {
	if env.GetEnv(debugLoggingParam).AsBoolDefault(false) {
		logger.Init(logger.DEBUG)
	}
}

// Install routes panics through the deterministic reporter, process-wide.
// It must run before anything that can panic, normally first thing in main.
//
// Unless REPROPANIC_WRAP=false, the process re-executes itself as a monitored child.
// The parent never returns from Install: it exits with the child's status.
// Calling Install again is harmless.
func Install() {
	SetHook(DefaultHook())
	logger.Debug(hookTag, "deterministic reporter installed")

	if !env.GetEnv(wrapParam).AsBoolDefault(true) {
		return
	}
	exitStatus, err := wrap()
	if err != nil {
		logger.Error(hookTag, "process monitoring unavailable:", err)
		return
	}
	if exitStatus >= 0 {
		exit(exitStatus)
	}
}

// DefaultHook writes the rendered record to stderr.
func DefaultHook() Hook {
	return report.NewReporter(stderr).Report
}

// SetHook replaces the current hook. It is not meant to race with panics in flight.
func SetHook(h Hook) {
	mu.Lock()
	defer mu.Unlock()
	hook = h
}

// TakeHook removes the current hook and returns it. Without a hook, guards re-raise
// panics to the runtime.
func TakeHook() Hook {
	mu.Lock()
	defer mu.Unlock()
	h := hook
	hook = nil
	return h
}

// CurrentHook returns the installed hook, or nil after TakeHook.
func CurrentHook() Hook {
	mu.Lock()
	defer mu.Unlock()
	return hook
}

func dispatch(h Hook, record *report.Record) {
	if !u.Safe(func() { h(record) }) {
		logger.Debug(hookTag, "hook panicked while reporting")
	}
}
