package report

import (
	"bufio"
	"github.com/pkg/errors"
	"io"
)

// Rewrite copies r to w line by line until the runtime's crash output starts.
// Everything from the first crash line to the end of the stream is treated as
// crash output and replaced by the rendered report, so lines written after the
// traceback (such as "exit status 2" from go run) are not copied. Crash text that
// cannot be parsed is copied unchanged.
func Rewrite(r io.Reader, w io.Writer, rep *Reporter, backtrace BacktraceStatus) error {
	reader := bufio.NewReader(r)
	for {
		line, readErr := reader.ReadString('\n')

		if IsCrashStart(line) {
			rest, err := io.ReadAll(reader)
			if err != nil {
				return errors.Wrap(err, "read crash output")
			}
			crash := line + string(rest)

			record, err := ParseReport(crash)
			if err != nil {
				_, err = io.WriteString(w, crash)
				return errors.Wrap(err, "write crash output")
			}
			record.Backtrace = backtrace
			_, err = w.Write(rep.Render(record))
			return errors.Wrap(err, "write report")
		}

		if len(line) > 0 {
			if _, err := io.WriteString(w, line); err != nil {
				return errors.Wrap(err, "write output")
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return errors.Wrap(readErr, "read output")
		}
	}
}
