// Package diag defines the diagnostic model shared by every pipeline phase:
// lexer, parser, dependency resolver, and expression analyzer.
//
// # Data model
//
// Diagnostic is the central record: Severity, Code, Message, a primary
// source.Span, optional Notes (e.g. a C-import failure carries its inner
// errors as notes), and optional Fixes (a title plus a list of text
// edits). Rendering lives in internal/diagfmt, not here.
//
// # Emitting diagnostics
//
// Phases depend on the Reporter interface, never on a concrete Bag, so
// the dependency resolver and analyzer stay decoupled from how
// diagnostics are stored. Use ReportError/ReportWarning/ReportInfo to
// build one incrementally (WithNote, WithFix) and call Emit exactly
// once. BagReporter adapts a Reporter onto a Bag; DedupReporter wraps
// another Reporter and drops exact repeats.
//
// # Severity and absorption
//
// The sentinel "invalid" type (types.NoTypeID) is absorbing: once an
// expression's type becomes invalid, further analysis of it emits no
// further diagnostics. Compilation fails (non-zero exit) iff the bag
// holds an error-severity diagnostic when analysis completes (see
// Bag.HasErrors); a bag holding only warnings or notes does not fail it.
package diag
