package driver

import (
	"ember/internal/depres"
	"ember/internal/scope"
	"ember/internal/sema"
)

// Analyze runs dependency resolution, binding and expression analysis
// over every file in p, in an order where a file's imports are always
// fully bound (so their public declarations have a resolved type) before
// the importing file is bound itself.
//
// Each file gets its own depres.Resolver (the resolver's CreateIndex
// tie-breaker is only meaningful within one file's own item list) and its
// own scope.ScopeID, but all files share the one sema.Analyzer built in
// NewProgram, so annotations and function signatures accumulate across
// the whole program rather than being file-local.
func Analyze(p *Program) {
	order := topologicalFileOrder(p)
	for _, unit := range order {
		analyzeFile(p, unit)
	}
}

func analyzeFile(p *Program, unit *FileUnit) {
	if unit.Analyzed {
		return
	}
	unit.Analyzed = true

	propagateImports(p, unit)

	unit.Resolver = depres.NewResolver(p.Builder, p.Strings)
	unit.Resolver.AddFile(unit.FileID)
	unit.Order = unit.Resolver.Order()

	bd := sema.NewBinder(p.Builder, p.Strings, p.Types, p.Scope, p.Reporter, unit.Scope)
	sema.AnalyzeProgram(p.Analyzer, bd, unit.Scope, unit.Order)

	processCImports(p, unit)
}

// propagateImports binds every already-analyzed import's exported
// (pub/export) declarations into unit's own scope. BindImported reports
// "import of X overrides existing definition" itself when a name
// collides with something already bound in unit's scope.
func propagateImports(p *Program, unit *FileUnit) {
	for _, edge := range unit.Imports {
		imported, ok := p.ByAbsPath[edge.Path]
		if !ok || imported == unit {
			continue // load failure already reported a diagnostic
		}
		if !imported.Analyzed {
			analyzeFile(p, imported)
		}
		if imported.Resolver == nil {
			continue
		}
		for _, decl := range imported.Resolver.ExportedDecls() {
			binding, ok := p.Scope.LookupLocal(imported.Scope, decl.Name)
			if !ok {
				continue
			}
			scope.BindImported(p.Scope, p.Strings, p.Reporter, unit.Scope, binding)
		}
	}
}

// topologicalFileOrder orders files so that every import is visited
// before its importer, falling back to discovery order for any file
// caught in an import cycle (propagateImports's recursive analyzeFile
// call handles those directly; this ordering is an optimization, not a
// correctness requirement, since analyzeFile is idempotent per file).
func topologicalFileOrder(p *Program) []*FileUnit {
	visited := make(map[*FileUnit]bool, len(p.Files))
	visiting := make(map[*FileUnit]bool, len(p.Files))
	var order []*FileUnit

	var visit func(u *FileUnit)
	visit = func(u *FileUnit) {
		if visited[u] || visiting[u] {
			return
		}
		visiting[u] = true
		for _, edge := range u.Imports {
			if dep, ok := p.ByAbsPath[edge.Path]; ok {
				visit(dep)
			}
		}
		visiting[u] = false
		visited[u] = true
		order = append(order, u)
	}

	for _, u := range p.Files {
		visit(u)
	}
	return order
}
