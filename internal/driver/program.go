// Package driver wires the lexer, parser, dependency resolver, binder,
// analyzer, layout engine, C-header importer and backend into the single
// pipeline cmd/emberc drives: load the entry file and its transitive
// import graph, analyze it single-threaded, then optionally lower it.
package driver

import (
	"ember/internal/ast"
	"ember/internal/depres"
	"ember/internal/diag"
	"ember/internal/layout"
	"ember/internal/scope"
	"ember/internal/sema"
	"ember/internal/source"
	"ember/internal/types"
)

// FileUnit is one loaded and parsed source file plus the bookkeeping the
// driver accumulates about it: its own scope, its own dependency
// resolver (CreateIndex is only meaningful within one file, per
// depres.Decl's doc), and the edges it declares via `import`.
type FileUnit struct {
	Path     string
	AbsPath  string
	FileID   ast.FileID
	SourceID source.FileID
	Scope    scope.ScopeID
	Resolver *depres.Resolver
	Order    []ast.ItemID
	Imports  []importEdge
	Analyzed bool
}

type importEdge struct {
	Item  ast.ItemID
	Path  string // import path, joined onto the importer's directory unless absolute
	Alias source.StringID
	Span  source.Span
}

// Program is one compilation's full state: every file reachable from the
// entry point, the shared arenas they were parsed into, and the shared
// scope/type/layout machinery the analyzer consults. It is the
// CompileContext-equivalent value threaded through one compilation.
type Program struct {
	FileSet *source.FileSet
	Strings *source.Interner
	Builder *ast.Builder
	Types   *types.Interner
	Scope   *scope.Table
	Layout  *layout.LayoutEngine
	PtrBits uint8

	Bag      *diag.Bag
	Reporter diag.Reporter

	RootScope scope.ScopeID

	// Files is every loaded file in discovery (load) order.
	Files []*FileUnit
	// ByAbsPath is the import map (absolute path -> compiled file)
	// spec's cross-file name resolution is built on: a second `import`
	// of an already-loaded file resolves here instead of reloading it.
	ByAbsPath map[string]*FileUnit

	Analyzer *sema.Analyzer
}

// NewProgram allocates the shared arenas and binds the primitive-type
// prelude into a root scope every file's own scope parents off of.
func NewProgram(maxDiagnostics int, target layout.Target) *Program {
	reg := types.NewInterner()
	table := scope.NewTable()
	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}

	root := table.NewScope(scope.KindModule, scope.NoScopeID, scope.NoScopeID, source.Span{})
	strs := source.NewInterner()
	scope.Prelude(table, strs, reg, root)

	p := &Program{
		FileSet:   source.NewFileSet(),
		Strings:   strs,
		Builder:   ast.NewBuilder(ast.Hints{}),
		Types:     reg,
		Scope:     table,
		Layout:    layout.New(target, reg),
		PtrBits:   target.PtrBits(),
		Bag:       bag,
		Reporter:  reporter,
		RootScope: root,
		ByAbsPath: make(map[string]*FileUnit),
	}
	p.Analyzer = sema.NewAnalyzer(p.Builder, p.Strings, p.Types, p.Scope, p.Reporter, p.Layout, p.PtrBits)
	return p
}

// Unit looks up the FileUnit for an already-loaded absolute path.
func (p *Program) Unit(absPath string) (*FileUnit, bool) {
	u, ok := p.ByAbsPath[absPath]
	return u, ok
}
