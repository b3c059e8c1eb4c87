// Package reproduciblepanic prints panics without anything that changes between
// otherwise identical runs, most notably the goroutine number.
//
// Call Install at the top of main:
//
//	func main() {
//		reproduciblepanic.Install()
//		panic("Oh no!")
//	}
//
// which prints
//
//	thread 'main' panicked at /src/app/main.go:3:2:
//	Oh no!
//	note: run with `PANIC_BACKTRACE=1` environment variable to display a backtrace
//
// where the runtime would have printed "goroutine 1 [running]:" and a traceback
// full of addresses. This keeps snapshot tests of program output stable.
package reproduciblepanic
