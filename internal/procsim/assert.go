package procsim

import "fmt"

// DebugChecks gates the invariant assertions below. It is off by default
// — stage logic never fails at runtime (§7) — and is flipped on by tests
// that want the stronger safety net of §8's invariant list.
var DebugChecks = false

// debugAssert panics with a formatted message if cond is false and
// DebugChecks is enabled. A failure here always indicates a simulator
// defect, never a runtime/data condition.
func debugAssert(cond bool, format string, args ...any) {
	if DebugChecks && !cond {
		panic(fmt.Sprintf("procsim: invariant violated: "+format, args...))
	}
}
