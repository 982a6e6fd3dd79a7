//go:build !gbapudebug

package apu

// debugAssert is a no-op in release builds (the default); see debug.go
// for the gbapudebug-tagged version that actually checks.
func debugAssert(cond bool, format string, args ...any) {}
