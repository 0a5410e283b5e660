package depres

import (
	"sort"

	"ember/internal/ast"
)

// ExportedDecls returns every tracked declaration visible to an importer
// (Visibility pub or export), in source order. The driver binds these
// into each importing file's scope via scope.BindImported once the
// declaration's type has been resolved.
func (r *Resolver) ExportedDecls() []*Decl {
	var out []*Decl
	for _, d := range r.byName {
		if d.Visibility == ast.VisPub || d.Visibility == ast.VisExport {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreateIndex < out[j].CreateIndex })
	return out
}
