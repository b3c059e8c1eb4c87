package report

import "strconv"

const (
	// MainThread labels the goroutine running main.main.
	MainThread = "main"
	// UnnamedThread is printed for goroutines without a label. It never carries a goroutine number.
	UnnamedThread = "<unnamed>"
)

type BacktraceStatus int

const (
	// BacktraceDisabled means tracebacks are possible but the toggle variable is not set.
	BacktraceDisabled BacktraceStatus = iota
	BacktraceEnabled
	BacktraceUnsupported
)

func (status BacktraceStatus) String() string {
	switch status {
	case BacktraceDisabled:
		return "disabled"
	case BacktraceEnabled:
		return "enabled"
	case BacktraceUnsupported:
		return "unsupported"
	default:
		return "BacktraceStatus(" + strconv.Itoa(int(status)) + ")"
	}
}

type Location struct {
	File   string
	Line   int
	Column int
}

// String renders file:line:column, or file:line when the column is unknown.
func (location Location) String() string {
	s := location.File + ":" + strconv.Itoa(location.Line)
	if location.Column > 0 {
		s += ":" + strconv.Itoa(location.Column)
	}
	return s
}

// Record is everything a report is rendered from. It is built once per panic and not modified afterwards.
type Record struct {
	Thread    string
	Location  *Location
	Payload   Payload
	Backtrace BacktraceStatus
}

func (record *Record) threadName() string {
	if record.Thread == "" {
		return UnnamedThread
	}
	return record.Thread
}
