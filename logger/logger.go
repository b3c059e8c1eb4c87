package logger

import (
	"fmt"
	"github.com/de-vri-es/reproducible-panic/u"
	"io"
	"log"
	"os"
	"sync"
	"sync/atomic"
)

var lDebug = log.New(io.Discard, "DEBUG ", log.Ldate|log.Ltime|log.Lmsgprefix|log.Lmicroseconds|log.Lshortfile)
var lInfo = log.New(io.Discard, "INFO ", log.Ldate|log.Ltime|log.Lmsgprefix|log.Lmicroseconds|log.Lshortfile)
var lError = log.New(os.Stderr, "ERROR ", log.Ldate|log.Ltime|log.Lmsgprefix|log.Lmicroseconds|log.Lshortfile)

//goland:noinspection GoUnusedConst
const (
	DEBUG = iota
	INFO
	ERROR
)

// Reports may end up in snapshot files, so anything below ERROR stays quiet by default.
const defaultLogLevel = ERROR

var mu = sync.Mutex{}
var logLevel = int32(defaultLogLevel)
var out io.Writer = os.Stderr

func init() {
	Init(defaultLogLevel)
}

func Init(level int) {
	mu.Lock()
	defer mu.Unlock()

	atomic.StoreInt32(&logLevel, int32(level))
	applyOutputs()
}

// SetWriter duplicates log output into w. Passing nil restores plain stderr.
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	if w == nil {
		out = os.Stderr
	} else {
		out = u.NewSpyWriter(w, os.Stderr)
	}
	applyOutputs()
}

func applyOutputs() {
	level := atomic.LoadInt32(&logLevel)

	if DEBUG < level {
		lDebug.SetOutput(io.Discard)
	} else {
		lDebug.SetOutput(out)
	}
	if INFO < level {
		lInfo.SetOutput(io.Discard)
	} else {
		lInfo.SetOutput(out)
	}
	lError.SetOutput(out)
}

func Debug(tag string, data ...any) {
	_ = lDebug.Output(2, fmt.Sprintln(withTags(tag, data)...))
}

func debugInt(tag string, data ...any) {
	_ = lDebug.Output(3, fmt.Sprintln(withTags(tag, data)...))
}

func Info(tag string, data ...any) {
	_ = lInfo.Output(2, fmt.Sprintln(withTags(tag, data)...))
}

func infoInt(tag string, data ...any) {
	_ = lInfo.Output(3, fmt.Sprintln(withTags(tag, data)...))
}

func Error(tag string, data ...any) {
	_ = lError.Output(2, fmt.Sprintln(withTags(tag, data)...))
}

func errorInt(tag string, data ...any) {
	_ = lError.Output(3, fmt.Sprintln(withTags(tag, data)...))
}

func withTags(tag string, data []any) []any {
	tagged := make([]any, 0, len(data)+1)
	tagged = append(tagged, "["+tag+"]")
	return append(tagged, data...)
}
