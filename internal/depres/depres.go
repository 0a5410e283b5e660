// Package depres implements the Declaration Dependency Resolver (spec
// §4.3): for each top-level declaration it collects the set of identifier
// references that might name another top-level declaration, then drives
// analysis in an order where a declaration's dependencies are analyzed
// first, breaking cycles rather than looping forever.
package depres

import (
	"sort"

	"ember/internal/ast"
	"ember/internal/source"
)

// Decl is one top-level declaration tracked by the resolver.
type Decl struct {
	Item        ast.ItemID
	Name        source.StringID
	Visibility  ast.Visibility
	CreateIndex uint32
	Span        source.Span

	deps          map[source.StringID]struct{}
	inCurrentDeps bool
	resolved      bool
}

// Deps returns the collected dependency set, for tests and diagnostics.
func (d *Decl) Deps() []source.StringID {
	out := make([]source.StringID, 0, len(d.deps))
	for name := range d.deps {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Resolver builds the dependency graph for one file's top-level items and
// produces an analysis order.
type Resolver struct {
	builder *ast.Builder
	strs    *source.Interner

	byName map[source.StringID]*Decl
	order  []ast.ItemID
}

func NewResolver(builder *ast.Builder, strs *source.Interner) *Resolver {
	return &Resolver{
		builder: builder,
		strs:    strs,
		byName:  make(map[source.StringID]*Decl),
	}
}

// AddFile registers every top-level item of file as a tracked declaration
// and extracts its dependency set. CreateIndex is the item's position in
// source order, used as the work-list's tie-breaker.
func (r *Resolver) AddFile(file ast.FileID) {
	items := r.builder.Files.Get(file).Items
	for idx, item := range items {
		name, vis, span, ok := declHeader(r.builder.Items, item)
		if !ok {
			continue
		}
		d := &Decl{
			Item:        item,
			Name:        name,
			Visibility:  vis,
			CreateIndex: uint32(idx),
			Span:        span,
			deps:        make(map[source.StringID]struct{}),
		}
		r.byName[name] = d
	}
	for _, item := range items {
		name, _, _, ok := declHeader(r.builder.Items, item)
		if !ok {
			continue
		}
		extractDeps(r.builder, item, r.byName[name].deps, r.strs)
	}
}

// declHeader reports the declared name, visibility and span of item, or
// ok=false for items with no single name (error decls, which may declare
// several names, and imports are skipped by the caller and not tracked).
func declHeader(items *ast.Items, id ast.ItemID) (name source.StringID, vis ast.Visibility, span source.Span, ok bool) {
	item := items.Get(id)
	if item == nil {
		return 0, 0, source.Span{}, false
	}
	switch item.Kind {
	case ast.ItemFnProto:
		p, _ := items.FnProto(id)
		return p.Name, p.Visibility, p.Span, true
	case ast.ItemFnDef:
		d, _ := items.FnDef(id)
		return d.Proto.Name, d.Proto.Visibility, d.Proto.Span, true
	case ast.ItemStruct:
		s, _ := items.Struct(id)
		return s.Name, s.Visibility, s.Span, true
	case ast.ItemEnum:
		e, _ := items.Enum(id)
		return e.Name, e.Visibility, e.Span, true
	case ast.ItemVar:
		v, _ := items.Var(id)
		return v.Name, v.Visibility, v.Span, true
	default:
		return 0, 0, source.Span{}, false
	}
}

// Order runs the work-list algorithm and returns the items in an order
// where every declaration follows its resolvable dependencies. Processing
// starts from the lowest CreateIndex among not-yet-resolved declarations;
// a declaration whose resolution re-enters itself (directly or through a
// cycle) is left for the analyzer to report as an infinite-size or
// self-reference error — the resolver itself never
// fails, it only stops recursing.
func (r *Resolver) Order() []ast.ItemID {
	names := make([]source.StringID, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return r.byName[names[i]].CreateIndex < r.byName[names[j]].CreateIndex
	})
	r.order = r.order[:0]
	for _, name := range names {
		r.resolve(name)
	}
	return r.order
}

func (r *Resolver) resolve(name source.StringID) {
	d, ok := r.byName[name]
	if !ok || d.resolved {
		return
	}
	if d.inCurrentDeps {
		// Cycle: cannot be broken here. Stop recursing; the outer frame
		// still orders d once its other dependencies are done. A later pass
		// (struct/enum field resolution's embedded_in_current guard, or
		// a direct self-reference check) reports the concrete error.
		return
	}
	d.inCurrentDeps = true
	deps := d.Deps()
	for _, dep := range deps {
		r.resolve(dep)
	}
	d.inCurrentDeps = false
	d.resolved = true
	r.order = append(r.order, d.Item)
}

// Unresolved returns declarations that Order has not sequenced. Order
// sequences every tracked declaration, including those on a dependency
// cycle, so after Order this is empty.
func (r *Resolver) Unresolved() []*Decl {
	var out []*Decl
	for _, d := range r.byName {
		if !d.resolved {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreateIndex < out[j].CreateIndex })
	return out
}

// Lookup returns the tracked declaration for name, if any.
func (r *Resolver) Lookup(name source.StringID) (*Decl, bool) {
	d, ok := r.byName[name]
	return d, ok
}
