package report

import (
	bugsnagerrors "github.com/bugsnag/bugsnag-go/v2/errors"
	"github.com/de-vri-es/reproducible-panic/logger"
	"github.com/pkg/errors"
	"regexp"
	"strings"
)

const parseTag = "PARSE"

const (
	panicPrefix      = "panic: "
	fatalErrorPrefix = "fatal error: "
	nestedPrefix     = "\t" + panicPrefix
)

var recoveredSuffix = regexp.MustCompile(` \[recovered(, repanicked)?\]$`)

// Values of non-printable types come out as "(T) 0xADDR"; the address changes on every run.
var opaqueValue = regexp.MustCompile(`^\(.+\) 0x[0-9a-f]+$`)

// IsCrashStart reports whether line opens the runtime's crash output.
func IsCrashStart(line string) bool {
	return strings.HasPrefix(line, panicPrefix) || strings.HasPrefix(line, fatalErrorPrefix)
}

// ParseReport turns the text the Go runtime prints for an unrecovered panic or
// fatal error into a record. Text before the first crash line is ignored.
// The goroutine number in the traceback is never read.
func ParseReport(text string) (*Record, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	start := -1
	for i, line := range lines {
		if IsCrashStart(line) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, errors.New("no panic or fatal error in output")
	}

	record := &Record{Payload: parseMessage(lines[start:])}

	frames, err := parseFrames(strings.Join(tracebackBlock(lines[start:]), "\n"))
	if err != nil {
		logger.Debug(parseTag, "traceback skipped:", err)
		return record, nil
	}
	if site, found := PanicSite(frames); found {
		record.Location = locationOf(site)
	}
	if isMainGoroutine(frames) {
		record.Thread = MainThread
	}
	return record, nil
}

// parseMessage keeps the value of the last panic in a chain of recovered
// panics. Continuation lines lose one leading tab.
func parseMessage(lines []string) Payload {
	var message []string
	for i, line := range lines {
		switch {
		case i == 0 && strings.HasPrefix(line, panicPrefix):
			message = []string{strings.TrimPrefix(line, panicPrefix)}
		case i == 0:
			message = []string{strings.TrimPrefix(line, fatalErrorPrefix)}
		case strings.HasPrefix(line, nestedPrefix):
			message = []string{strings.TrimPrefix(line, nestedPrefix)}
		case line == "" || strings.HasPrefix(line, "goroutine ") || strings.HasPrefix(line, "[signal "):
			return messagePayload(message)
		default:
			message = append(message, strings.TrimPrefix(line, "\t"))
		}
	}
	return messagePayload(message)
}

func messagePayload(message []string) Payload {
	text := recoveredSuffix.ReplaceAllString(strings.Join(message, "\n"), "")
	if opaqueValue.MatchString(text) {
		return Opaque{}
	}
	return Text(text)
}

// tracebackBlock cuts lines after the frames of the first running goroutine.
// Whatever follows ("exit status 2" from go run, "...additional frames elided...",
// other goroutines) is not a frame pair and would fail the whole parse.
func tracebackBlock(lines []string) []string {
	for i, line := range lines {
		if !strings.HasPrefix(line, "goroutine ") || !strings.HasSuffix(line, "[running]:") {
			continue
		}
		end := i + 1
		for end+1 < len(lines) && lines[end] != "" && strings.HasPrefix(lines[end+1], "\t") {
			end += 2
		}
		return lines[:end]
	}
	return lines
}

func parseFrames(crash string) ([]bugsnagerrors.StackFrame, error) {
	if strings.HasPrefix(crash, fatalErrorPrefix) {
		crash = panicPrefix + strings.TrimPrefix(crash, fatalErrorPrefix)
	}
	parsed, err := bugsnagerrors.ParsePanic(crash)
	if err != nil {
		return nil, errors.Wrap(err, "parse traceback")
	}
	return parsed.StackFrames(), nil
}
