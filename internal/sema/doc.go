// Package sema is the Expression Analyzer, Peer-Type Unification,
// Coercion & Cast Classifier, and Constant Folding components (spec
// §4.4-§4.7): it walks each declaration's AST in the order produced by
// internal/depres, assigns every expression a resolved type and
// (possibly) a constant value, records any implicit coercion directly on
// the node it applies to rather than splicing a synthetic cast node into
// the tree, and reports every diagnostic through internal/diag. The
// analyzer is single-threaded and never blocks.
package sema
