package scope

import (
	"testing"

	"ember/internal/diag"
	"ember/internal/source"
	"ember/internal/types"
)

func TestLookupWalksParents(t *testing.T) {
	tbl := NewTable()
	strs := source.NewInterner()
	root := tbl.NewScope(KindFile, NoScopeID, NoScopeID, source.Span{})
	fn := tbl.NewScope(KindFunction, root, NoScopeID, source.Span{})
	blk := tbl.NewScope(KindBlock, fn, fn, source.Span{})

	x := strs.Intern("x")
	tbl.Bind(root, Binding{Kind: BindVariable, Name: x, Type: 7})

	if _, ok := tbl.Lookup(blk, x); !ok {
		t.Fatalf("expected lookup to find binding through ancestor scopes")
	}
	if _, ok := tbl.Lookup(blk, strs.Intern("nope")); ok {
		t.Fatalf("expected lookup of undeclared name to fail")
	}
}

func TestLookupLocalStopsAtFunctionBoundary(t *testing.T) {
	tbl := NewTable()
	strs := source.NewInterner()
	root := tbl.NewScope(KindFile, NoScopeID, NoScopeID, source.Span{})
	outerFn := tbl.NewScope(KindFunction, root, NoScopeID, source.Span{})
	innerFn := tbl.NewScope(KindFunction, outerFn, NoScopeID, source.Span{})

	x := strs.Intern("x")
	tbl.Bind(outerFn, Binding{Kind: BindVariable, Name: x, Type: 1})

	if _, ok := tbl.LookupLocal(innerFn, x); ok {
		t.Fatalf("lookup_local must not cross into an outer function's scope")
	}
	if _, ok := tbl.Lookup(innerFn, x); !ok {
		t.Fatalf("plain lookup should still find the outer binding")
	}
}

func TestAddVariableRedeclaration(t *testing.T) {
	tbl := NewTable()
	strs := source.NewInterner()
	bag := diag.NewBag(16)
	reporter := diag.BagReporter{Bag: bag}
	reg := types.NewInterner()

	fn := tbl.NewScope(KindFunction, NoScopeID, NoScopeID, source.Span{})
	x := strs.Intern("x")

	got := AddVariable(tbl, strs, reg, reporter, fn, x, reg.Builtins().I32, true, false, 0, source.Span{})
	if got != reg.Builtins().I32 {
		t.Fatalf("first declaration should keep its type")
	}
	got = AddVariable(tbl, strs, reg, reporter, fn, x, reg.Builtins().I32, true, false, 0, source.Span{})
	if got.IsValid() {
		t.Fatalf("redeclared variable should carry the invalid type")
	}
	if !bag.HasErrors() {
		t.Fatalf("expected a redeclaration diagnostic")
	}
}

func TestAddVariableShadowsType(t *testing.T) {
	tbl := NewTable()
	strs := source.NewInterner()
	bag := diag.NewBag(16)
	reporter := diag.BagReporter{Bag: bag}
	reg := types.NewInterner()

	root := tbl.NewScope(KindFile, NoScopeID, NoScopeID, source.Span{})
	fn := tbl.NewScope(KindFunction, root, NoScopeID, source.Span{})
	Prelude(tbl, strs, reg, root)

	i32Name := strs.Intern("i32")
	got := AddVariable(tbl, strs, reg, reporter, fn, i32Name, reg.Builtins().I32, true, false, 0, source.Span{})
	if got.IsValid() {
		t.Fatalf("variable shadowing a primitive type should carry the invalid type")
	}
	if !bag.HasErrors() {
		t.Fatalf("expected a shadowing diagnostic")
	}
}

func TestLabelsTrackUsage(t *testing.T) {
	tbl := NewTable()
	strs := source.NewInterner()
	fn := tbl.NewScope(KindFunction, NoScopeID, NoScopeID, source.Span{})

	done := strs.Intern("done")
	if !tbl.DeclareLabel(fn, done, source.Span{}) {
		t.Fatalf("first label declaration should succeed")
	}
	if tbl.DeclareLabel(fn, done, source.Span{}) {
		t.Fatalf("duplicate label declaration should fail")
	}
	if unused := tbl.UnusedLabels(fn); len(unused) != 1 {
		t.Fatalf("expected one unused label, got %d", len(unused))
	}
	if _, ok := tbl.ResolveLabel(fn, done); !ok {
		t.Fatalf("expected to resolve the declared label")
	}
	if unused := tbl.UnusedLabels(fn); len(unused) != 0 {
		t.Fatalf("label should be marked used after resolution, got %d unused", len(unused))
	}
}
