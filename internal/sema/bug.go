package sema

import "fmt"

// BugExitCode is the process exit code the driver uses when a Bug panic
// escapes analysis of a single compilation unit.
const BugExitCode = 2

// Bug panics with a formatted message. It marks a condition the analyzer
// itself is responsible for preventing (an invariant violation, not a
// user-facing diagnostic) — e.g. a node kind the parser is documented to
// never produce in a given position.
func Bug(format string, args ...any) {
	panic(fmt.Sprintf("sema: "+format, args...))
}
