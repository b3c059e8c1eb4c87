package report

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/onsi/gomega"
)

const workerCrash = `panic: worker failed

goroutine 7 [running]:
main.worker(...)
	/src/worker.go:12
created by main.main in goroutine 1
	/src/main.go:8 +0x3d
exit status 2
`

func mainCrash(file string) string {
	return fmt.Sprintf("panic: Oh no!\n\ngoroutine 1 [running]:\nmain.main()\n\t%s:4 +0x25\nexit status 2\n", file)
}

func TestParseReportShape(t *testing.T) {
	g := gomega.NewWithT(t)
	file := fixture(t)

	record, err := ParseReport(mainCrash(file))
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(string(rustShaped().Render(record))).To(gomega.Equal(
		"thread 'main' panicked at " + file + ":4:5:\n" +
			"Oh no!\n" +
			"note: run with `RUST_BACKTRACE=1` environment variable to display a backtrace\n"))
}

func TestParseReportOtherGoroutine(t *testing.T) {
	g := gomega.NewWithT(t)

	record, err := ParseReport(workerCrash)
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(record.Thread).To(gomega.BeEmpty())
	g.Expect(record.Location).To(gomega.Equal(&Location{File: "/src/worker.go", Line: 12}))

	out := string(rustShaped().Render(record))
	g.Expect(out).To(gomega.HavePrefix("thread '<unnamed>' panicked at /src/worker.go:12:\nworker failed\n"))
	g.Expect(out).NotTo(gomega.ContainSubstring("goroutine"))
	g.Expect(out).NotTo(gomega.ContainSubstring("7"))
}

func TestParseReportRuntimeFrames(t *testing.T) {
	g := gomega.NewWithT(t)

	record, err := ParseReport(`panic: runtime error: invalid memory address or nil pointer dereference
[signal SIGSEGV: segmentation violation code=0x1 addr=0x0 pc=0x47e3f2]

goroutine 1 gp=0xc000002380 m=0 mp=0x5a3e40 [running]:
panic({0x4a1b20?, 0x5a0e50?})
	/usr/local/go/src/runtime/panic.go:787 +0x132
main.main()
	/src/main.go:9 +0x12
`)
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(record.Payload).To(gomega.Equal(Text("runtime error: invalid memory address or nil pointer dereference")))
	g.Expect(record.Location).To(gomega.Equal(&Location{File: "/src/main.go", Line: 9}))
	g.Expect(record.Thread).To(gomega.Equal(MainThread))
}

func TestParseReportMultiline(t *testing.T) {
	g := gomega.NewWithT(t)

	for _, crash := range []string{
		"panic: first\nsecond\nthird\n\ngoroutine 1 [running]:\nmain.main()\n\t/src/main.go:3 +0x25\n",
		"panic: first\n\tsecond\n\tthird\n\ngoroutine 1 [running]:\nmain.main()\n\t/src/main.go:3 +0x25\n",
	} {
		record, err := ParseReport(crash)
		g.Expect(err).NotTo(gomega.HaveOccurred())
		g.Expect(record.Payload).To(gomega.Equal(Text("first\nsecond\nthird")))
	}
}

func TestParseReportRecoveredChain(t *testing.T) {
	g := gomega.NewWithT(t)

	record, err := ParseReport("panic: first [recovered]\n\tpanic: second\n\ngoroutine 1 [running]:\nmain.main()\n\t/src/main.go:3 +0x25\n")
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(record.Payload).To(gomega.Equal(Text("second")))

	record, err = ParseReport("panic: same [recovered, repanicked]\n\ngoroutine 1 [running]:\nmain.main()\n\t/src/main.go:3 +0x25\n")
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(record.Payload).To(gomega.Equal(Text("same")))
}

func TestParseReportOpaqueValue(t *testing.T) {
	g := gomega.NewWithT(t)

	record, err := ParseReport("panic: (main.T) 0xc000012345\n\ngoroutine 1 [running]:\nmain.main()\n\t/src/main.go:3 +0x25\n")
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(record.Payload).To(gomega.Equal(Opaque{}))
	g.Expect(string(rustShaped().Render(record))).To(gomega.ContainSubstring("\n" + FallbackMessage + "\n"))
}

func TestParseReportTrailingOutput(t *testing.T) {
	g := gomega.NewWithT(t)

	for _, tail := range []string{
		"...additional frames elided...\n",
		"exit status 2\n",
		"\ngoroutine 5 [chan receive]:\nmain.worker()\n\t/src/worker.go:20 +0x44\nexit status 2\n",
		"FAIL\texample.com/app\t0.012s\n",
	} {
		record, err := ParseReport("panic: Oh no!\n\ngoroutine 1 [running]:\nmain.main()\n\t/src/main.go:3 +0x25\n" + tail)
		g.Expect(err).NotTo(gomega.HaveOccurred())
		g.Expect(record.Thread).To(gomega.Equal(MainThread), tail)
		g.Expect(record.Location).To(gomega.Equal(&Location{File: "/src/main.go", Line: 3}), tail)
	}
}

func TestParseReportFatalError(t *testing.T) {
	g := gomega.NewWithT(t)

	record, err := ParseReport("fatal error: all goroutines are asleep - deadlock!\n\ngoroutine 1 [chan receive]:\nmain.main()\n\t/src/main.go:5 +0x2d\n")
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(record.Payload).To(gomega.Equal(Text("all goroutines are asleep - deadlock!")))
}

func TestParseReportWithoutTraceback(t *testing.T) {
	g := gomega.NewWithT(t)

	record, err := ParseReport("panic: quiet\n")
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(record.Location).To(gomega.BeNil())
	g.Expect(string(rustShaped().Render(record))).To(gomega.HavePrefix("thread '<unnamed>' panicked:\nquiet\n"))

	_, err = ParseReport("nothing to see here\n")
	g.Expect(err).To(gomega.HaveOccurred())
}

func TestRewrite(t *testing.T) {
	g := gomega.NewWithT(t)

	input := "starting\nworking\n" + strings.Replace(mainCrash("/src/main.go"), ":4 ", ":3 ", 1)
	var out bytes.Buffer

	g.Expect(Rewrite(strings.NewReader(input), &out, rustShaped(), BacktraceEnabled)).To(gomega.Succeed())
	g.Expect(out.String()).To(gomega.Equal("starting\nworking\nthread 'main' panicked at /src/main.go:3:\nOh no!\n"))
}

func TestRewritePassThrough(t *testing.T) {
	g := gomega.NewWithT(t)

	var out bytes.Buffer
	g.Expect(Rewrite(strings.NewReader("a\nb\nno trailing newline"), &out, rustShaped(), BacktraceDisabled)).To(gomega.Succeed())
	g.Expect(out.String()).To(gomega.Equal("a\nb\nno trailing newline"))
}

func TestRewriteDropsOutputAfterCrash(t *testing.T) {
	g := gomega.NewWithT(t)

	input := "starting\npanic: Oh no!\n\ngoroutine 1 [running]:\nmain.main()\n\t/src/main.go:3 +0x25\n" +
		"...additional frames elided...\nexit status 2\nlate line\n"
	var out bytes.Buffer

	g.Expect(Rewrite(strings.NewReader(input), &out, rustShaped(), BacktraceUnsupported)).To(gomega.Succeed())
	g.Expect(out.String()).To(gomega.Equal("starting\nthread 'main' panicked at /src/main.go:3:\nOh no!\n"))
}

func TestRewriteDeterministic(t *testing.T) {
	g := gomega.NewWithT(t)

	render := func(goroutine int) string {
		var out bytes.Buffer
		crash := strings.Replace(workerCrash, "goroutine 7", fmt.Sprintf("goroutine %d", goroutine), 1)
		g.Expect(Rewrite(strings.NewReader(crash), &out, rustShaped(), BacktraceDisabled)).To(gomega.Succeed())
		return out.String()
	}

	g.Expect(render(7)).To(gomega.Equal(render(12993)))
}
