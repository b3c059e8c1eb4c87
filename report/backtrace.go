package report

import "github.com/de-vri-es/reproducible-panic/env"

const (
	DefaultBacktraceVar = "PANIC_BACKTRACE"

	backtraceVarParam = "REPROPANIC_BACKTRACE_VAR"
	tracebackVar      = "GOTRACEBACK"
)

// BacktraceVar is the name of the toggle variable, overridable through REPROPANIC_BACKTRACE_VAR.
func BacktraceVar() string {
	return env.GetEnv(backtraceVarParam).AsStringDefault(DefaultBacktraceVar)
}

// DetectBacktrace looks only at whether variables are set, never at what a trace would contain.
// GOTRACEBACK=none turns traces off entirely. A toggle set to anything but "0" enables them.
func DetectBacktrace(lookup func(string) (string, bool), toggleVar string) BacktraceStatus {
	if level, found := lookup(tracebackVar); found && (level == "none" || level == "0") {
		return BacktraceUnsupported
	}
	if value, found := lookup(toggleVar); found && value != "0" {
		return BacktraceEnabled
	}
	return BacktraceDisabled
}

func CurrentBacktrace() BacktraceStatus {
	return DetectBacktrace(env.Lookup, BacktraceVar())
}
