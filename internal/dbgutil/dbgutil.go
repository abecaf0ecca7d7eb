// Package dbgutil provides opt-in trace logging; the curve package is its
// only user. It mirrors the teacher's env-var-gated fmt.Fprintf
// helper rather than pulling in a logging library.
package dbgutil

import (
	"fmt"
	"io"
	"os"
)

var enabled = os.Getenv("HESSIAN_DEBUG") == "1"

// Enabled reports whether HESSIAN_DEBUG=1 was set in the environment.
func Enabled() bool { return enabled }

// Printf writes a trace line to w when debug logging is enabled, and is a
// no-op otherwise.
func Printf(w io.Writer, format string, args ...any) {
	if enabled {
		fmt.Fprintf(w, format, args...)
	}
}
