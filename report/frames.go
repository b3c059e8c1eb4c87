package report

import (
	"bufio"
	bugsnagerrors "github.com/bugsnag/bugsnag-go/v2/errors"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxSourceLine = 1 << 20

// NewRecord builds a record for a recovered value. frames is the stack of the
// recovering goroutine, innermost first. thread may be empty.
func NewRecord(value any, frames []bugsnagerrors.StackFrame, thread string) *Record {
	record := &Record{Thread: thread, Payload: PayloadOf(value)}
	if site, found := PanicSite(frames); found {
		record.Location = locationOf(site)
	}
	if record.Thread == "" && isMainGoroutine(frames) {
		record.Thread = MainThread
	}
	return record
}

// PanicSite picks the first frame below the runtime's panic machinery.
// Stacks that never pass through the runtime yield their first user frame.
func PanicSite(frames []bugsnagerrors.StackFrame) (bugsnagerrors.StackFrame, bool) {
	seenRuntime := false
	for _, frame := range frames {
		if isRuntimeFrame(frame) {
			seenRuntime = true
			continue
		}
		if seenRuntime {
			return frame, true
		}
	}
	for _, frame := range frames {
		if !isRuntimeFrame(frame) {
			return frame, true
		}
	}
	return bugsnagerrors.StackFrame{}, false
}

// Builtins such as panic() come out of parsed tracebacks without a package.
func isRuntimeFrame(frame bugsnagerrors.StackFrame) bool {
	return frame.Package == "runtime" || frame.Package == ""
}

func isMainGoroutine(frames []bugsnagerrors.StackFrame) bool {
	for _, frame := range frames {
		if frame.Package == "main" && frame.Name == "main" {
			return true
		}
	}
	return false
}

func locationOf(frame bugsnagerrors.StackFrame) *Location {
	return &Location{
		File:   frame.File,
		Line:   frame.LineNumber,
		Column: ResolveColumn(frame.File, frame.LineNumber),
	}
}

// ResolveColumn returns the 1-based column of the first panic( call on the given
// source line, or of its first non-blank character. It returns 0 if the line cannot be read.
func ResolveColumn(file string, line int) int {
	if file == "" || line <= 0 {
		return 0
	}
	f, err := os.Open(file)
	if err != nil {
		return 0
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 4096), maxSourceLine)
	for current := 1; scanner.Scan(); current++ {
		if current == line {
			return columnIn(scanner.Text())
		}
	}
	return 0
}

func columnIn(source string) int {
	if idx := panicCallIndex(source); idx >= 0 {
		return utf8.RuneCountInString(source[:idx]) + 1
	}
	trimmed := strings.TrimLeftFunc(source, unicode.IsSpace)
	if trimmed == "" {
		return 0
	}
	return utf8.RuneCountInString(source[:len(source)-len(trimmed)]) + 1
}

func panicCallIndex(source string) int {
	const call = "panic("
	for offset := 0; ; {
		idx := strings.Index(source[offset:], call)
		if idx < 0 {
			return -1
		}
		idx += offset
		if idx == 0 || !isIdentRune(lastRune(source[:idx])) {
			return idx
		}
		offset = idx + len(call)
	}
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
