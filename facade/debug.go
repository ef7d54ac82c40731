//go:build debug

package facade

import "fmt"

const debugBuild = true

// assertf panics with a formatted message if cond is false. Debug builds
// only — in a release build (see debug_stub.go) the same call logs and
// no-ops, matching spec.md §7's "internal invariant violations ... abort
// the process in debug builds; in release they are logged and the
// offending command becomes a no-op."
func (f *Facade) assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
