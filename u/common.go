package u

import "io"

func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// Safe runs block and reports whether it returned without panicking.
func Safe(block func()) (ok bool) {
	defer func() {
		if reason := recover(); reason != nil {
			ok = false
		}
	}()
	block()
	return true
}

func CloseOptimistic(resource io.Closer) {
	Must(resource.Close())
}
