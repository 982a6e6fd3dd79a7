//go:build gbapudebug

package apu

import "fmt"

// debugAssert panics with a formatted message when cond is false. Only
// compiled in under the gbapudebug build tag, for catching programmer
// errors (out-of-range channel indices, register offsets outside the
// documented window) during development without paying for the checks
// in a release build. See SPEC_FULL.md §7.
func debugAssert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("apu: assertion failed: "+format, args...))
	}
}
