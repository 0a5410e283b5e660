// Package scope implements the name-scope tree:
// a lexical scope tree mapping identifiers to variables, types and error
// values, with ancestor lookup restricted at function boundaries for
// shadowing checks and a per-function flat label table for goto.
package scope

import (
	"ember/internal/ast"
	"ember/internal/source"
	"ember/internal/types"
)

// ScopeID indexes into a Table's scope arena. Zero is invalid.
type ScopeID uint32

const NoScopeID ScopeID = 0

// Kind classifies the scope's lexical role.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindFile
	KindModule
	KindFunction
	KindBlock
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindModule:
		return "module"
	case KindFunction:
		return "function"
	case KindBlock:
		return "block"
	default:
		return "invalid"
	}
}

// BindingKind classifies what a name is bound to.
type BindingKind uint8

const (
	BindInvalid BindingKind = iota
	BindVariable
	BindType
	BindError
	BindFunction
)

// Binding is one name -> entity mapping recorded in a scope.
type Binding struct {
	Kind     BindingKind
	Name     source.StringID
	Type     types.TypeID // variable/function: declared type; type binding: the type itself
	Item     ast.ItemID   // originating declaration, if any
	Mutable  bool
	IsConst  bool
	Span     source.Span
}

// Scope is one node of the lexical scope tree.
// FuncScope is the nearest enclosing KindFunction scope's ID
// (NoScopeID at file/module level); lookup_local stops there.
type Scope struct {
	Kind      Kind
	Parent    ScopeID
	FuncScope ScopeID
	Span      source.Span

	names map[source.StringID]Binding

	// EnclosingLoop is the innermost loop statement surrounding this
	// scope, used for break/continue reachability; zero if none.
	EnclosingLoop ast.StmtID

	Children []ScopeID
}

// Table owns the scope tree for one compilation unit (file or module
// graph) plus the per-function label tables that sit outside the tree
// because goto must cross block boundaries.
type Table struct {
	scopes []Scope
	labels map[ScopeID]map[source.StringID]*LabelInfo
}

// LabelInfo tracks a goto target declared somewhere inside a function.
type LabelInfo struct {
	Name  source.StringID
	Span  source.Span
	Used  bool
}

func NewTable() *Table {
	t := &Table{labels: make(map[ScopeID]map[source.StringID]*LabelInfo)}
	// index 0 is the invalid sentinel scope.
	t.scopes = append(t.scopes, Scope{Kind: KindInvalid})
	return t
}

// NewScope creates a child of parent (NoScopeID for a root scope) and
// returns its ID. funcScope should be passed through unchanged for
// non-function children and set to the new ID when kind is KindFunction.
func (t *Table) NewScope(kind Kind, parent ScopeID, funcScope ScopeID, span source.Span) ScopeID {
	id := ScopeID(len(t.scopes))
	t.scopes = append(t.scopes, Scope{
		Kind:      kind,
		Parent:    parent,
		FuncScope: funcScope,
		Span:      span,
		names:     make(map[source.StringID]Binding),
	})
	if kind == KindFunction {
		t.scopes[id].FuncScope = id
	}
	if parent != NoScopeID {
		t.scopes[parent].Children = append(t.scopes[parent].Children, id)
	}
	return id
}

func (t *Table) Get(id ScopeID) *Scope {
	if int(id) <= 0 || int(id) >= len(t.scopes) {
		return nil
	}
	return &t.scopes[id]
}

// Lookup walks parent links starting at id and returns the first binding
// for name (spec's lookup(scope, name)).
func (t *Table) Lookup(id ScopeID, name source.StringID) (Binding, bool) {
	for cur := id; cur != NoScopeID; {
		s := t.Get(cur)
		if s == nil {
			break
		}
		if b, ok := s.names[name]; ok {
			return b, true
		}
		cur = s.Parent
	}
	return Binding{}, false
}

// LookupLocal walks parent links but stops once it crosses the function
// boundary of id's own enclosing function (spec's lookup_local): used to
// detect shadowing within a function without blocking legitimate
// shadowing of names from an outer function or file scope.
func (t *Table) LookupLocal(id ScopeID, name source.StringID) (Binding, bool) {
	boundary := NoScopeID
	if s := t.Get(id); s != nil {
		boundary = s.FuncScope
	}
	for cur := id; cur != NoScopeID; {
		s := t.Get(cur)
		if s == nil {
			break
		}
		if b, ok := s.names[name]; ok {
			return b, true
		}
		if cur == boundary {
			break
		}
		cur = s.Parent
	}
	return Binding{}, false
}

// Bind inserts a raw binding with no redeclaration checking; used for
// prelude/primitive-type population and for already-validated bindings.
func (t *Table) Bind(id ScopeID, b Binding) {
	s := t.Get(id)
	if s == nil {
		return
	}
	s.names[b.Name] = b
}

func (t *Table) label(fn ScopeID) map[source.StringID]*LabelInfo {
	m, ok := t.labels[fn]
	if !ok {
		m = make(map[source.StringID]*LabelInfo)
		t.labels[fn] = m
	}
	return m
}

// DeclareLabel records a goto target in the owning function's flat label
// table. Returns false if the label already exists in that function.
func (t *Table) DeclareLabel(fnScope ScopeID, name source.StringID, span source.Span) bool {
	m := t.label(fnScope)
	if _, ok := m[name]; ok {
		return false
	}
	m[name] = &LabelInfo{Name: name, Span: span}
	return true
}

// ResolveLabel looks up name in fnScope's label table and marks it used.
func (t *Table) ResolveLabel(fnScope ScopeID, name source.StringID) (*LabelInfo, bool) {
	m := t.labels[fnScope]
	if m == nil {
		return nil, false
	}
	l, ok := m[name]
	if ok {
		l.Used = true
	}
	return l, ok
}

// UnusedLabels returns every label declared in fnScope that was never
// targeted by a goto, for the "label unused" warning.
func (t *Table) UnusedLabels(fnScope ScopeID) []*LabelInfo {
	var out []*LabelInfo
	for _, l := range t.labels[fnScope] {
		if !l.Used {
			out = append(out, l)
		}
	}
	return out
}
