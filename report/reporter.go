package report

import (
	"bytes"
	"io"
	"os"
)

type Reporter struct {
	Out io.Writer
	// BacktraceVar is the variable named in the note line.
	BacktraceVar string
}

func NewReporter(out io.Writer) *Reporter {
	return &Reporter{Out: out, BacktraceVar: BacktraceVar()}
}

// Render formats record the way the runtime would, minus anything that differs between runs.
// It accepts any record, including nil.
func (instance *Reporter) Render(record *Record) []byte {
	if record == nil {
		record = &Record{}
	}

	var buf bytes.Buffer
	buf.WriteString("thread '")
	buf.WriteString(record.threadName())
	buf.WriteString("' panicked")
	if record.Location != nil {
		buf.WriteString(" at ")
		buf.WriteString(record.Location.String())
	}
	buf.WriteString(":\n")

	buf.WriteString(payloadText(record.Payload))
	buf.WriteByte('\n')

	if record.Backtrace == BacktraceDisabled {
		buf.WriteString("note: run with `")
		buf.WriteString(instance.backtraceVar())
		buf.WriteString("=1` environment variable to display a backtrace\n")
	}

	return buf.Bytes()
}

// Report writes the rendered record in a single write. Write errors are dropped.
func (instance *Reporter) Report(record *Record) {
	out := instance.Out
	if out == nil {
		out = os.Stderr
	}
	_, _ = out.Write(instance.Render(record))
}

func (instance *Reporter) backtraceVar() string {
	if instance.BacktraceVar == "" {
		return DefaultBacktraceVar
	}
	return instance.BacktraceVar
}
