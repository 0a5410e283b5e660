// Package backend defines the boundary between the expression analyzer
// and whatever turns its annotated AST into machine or IR output. The
// interface is deliberately narrow: a backend reads a file's AST plus
// its analysis result and reports only a failure.
package backend

import (
	"ember/internal/ast"
	"ember/internal/sema"
	"ember/internal/source"
)

// Backend turns one analyzed file into output, writing wherever the
// concrete implementation was configured to write. It reads fs, b and
// result but never mutates them.
type Backend interface {
	Emit(fs *source.FileSet, b *ast.Builder, file ast.FileID, result *sema.Result) error
}
