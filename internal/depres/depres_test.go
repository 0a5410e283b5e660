package depres

import (
	"testing"

	"ember/internal/ast"
	"ember/internal/source"
)

// buildTwoFuncs builds:
//   fn a() -> i32 { return b(); }
//   fn b() -> i32 { return 1; }
// so that a depends on b; Order must place b before a.
func buildTwoFuncs(t *testing.T, strs *source.Interner) (*ast.Builder, ast.FileID) {
	t.Helper()
	b := ast.NewBuilder(ast.Hints{})
	i32 := b.Types.NewPath(source.Span{}, strs.Intern("i32"))

	bodyB := b.Stmts.NewBlock(source.Span{}, []ast.StmtID{
		b.Stmts.NewReturn(source.Span{}, b.Exprs.NewLiteral(source.Span{}, ast.LitInt, strs.Intern("1"))),
	})
	fnB := b.Items.NewFnDef(strs.Intern("b"), ast.VisPrivate, nil, i32, bodyB, source.Span{})

	callB := b.Exprs.NewCall(source.Span{}, b.Exprs.NewIdent(source.Span{}, strs.Intern("b")), nil)
	bodyA := b.Stmts.NewBlock(source.Span{}, []ast.StmtID{
		b.Stmts.NewReturn(source.Span{}, callB),
	})
	fnA := b.Items.NewFnDef(strs.Intern("a"), ast.VisPub, nil, i32, bodyA, source.Span{})

	file := b.NewFile(source.Span{})
	b.PushItem(file, fnA)
	b.PushItem(file, fnB)
	return b, file
}

func TestOrderPlacesDependencyFirst(t *testing.T) {
	strs := source.NewInterner()
	b, file := buildTwoFuncs(t, strs)

	r := NewResolver(b, strs)
	r.AddFile(file)
	order := r.Order()
	if len(order) != 2 {
		t.Fatalf("expected 2 resolved declarations, got %d", len(order))
	}
	nameOf := func(id ast.ItemID) string {
		def, _ := b.Items.FnDef(id)
		s, _ := strs.Lookup(def.Proto.Name)
		return s
	}
	if nameOf(order[0]) != "b" || nameOf(order[1]) != "a" {
		t.Fatalf("expected order [b, a], got [%s, %s]", nameOf(order[0]), nameOf(order[1]))
	}
	if len(r.Unresolved()) != 0 {
		t.Fatalf("expected no unresolved declarations")
	}
}

func TestCycleStillOrdersBothDeclarations(t *testing.T) {
	strs := source.NewInterner()
	b := ast.NewBuilder(ast.Hints{})
	i32 := b.Types.NewPath(source.Span{}, strs.Intern("i32"))

	callB := b.Exprs.NewCall(source.Span{}, b.Exprs.NewIdent(source.Span{}, strs.Intern("b")), nil)
	bodyA := b.Stmts.NewBlock(source.Span{}, []ast.StmtID{b.Stmts.NewReturn(source.Span{}, callB)})
	fnA := b.Items.NewFnDef(strs.Intern("a"), ast.VisPrivate, nil, i32, bodyA, source.Span{})

	callA := b.Exprs.NewCall(source.Span{}, b.Exprs.NewIdent(source.Span{}, strs.Intern("a")), nil)
	bodyB := b.Stmts.NewBlock(source.Span{}, []ast.StmtID{b.Stmts.NewReturn(source.Span{}, callA)})
	fnB := b.Items.NewFnDef(strs.Intern("b"), ast.VisPrivate, nil, i32, bodyB, source.Span{})

	file := b.NewFile(source.Span{})
	b.PushItem(file, fnA)
	b.PushItem(file, fnB)

	r := NewResolver(b, strs)
	r.AddFile(file)
	order := r.Order()
	if len(order) != 2 {
		t.Fatalf("mutually recursive functions should both still be ordered by the resolver, got %d", len(order))
	}
	if len(r.Unresolved()) != 0 {
		t.Fatalf("expected no declaration to remain unresolved, got %d", len(r.Unresolved()))
	}
}

func TestLocalBindingsAreNotDependencies(t *testing.T) {
	strs := source.NewInterner()
	b := ast.NewBuilder(ast.Hints{})
	i32 := b.Types.NewPath(source.Span{}, strs.Intern("i32"))

	xName := strs.Intern("x")
	body := b.Stmts.NewBlock(source.Span{}, []ast.StmtID{
		b.Stmts.NewLet(source.Span{}, ast.StmtLetData{
			Name: xName, Type: i32,
			Value: b.Exprs.NewLiteral(source.Span{}, ast.LitInt, strs.Intern("1")),
		}),
		b.Stmts.NewReturn(source.Span{}, b.Exprs.NewIdent(source.Span{}, xName)),
	})
	fn := b.Items.NewFnDef(strs.Intern("f"), ast.VisPrivate, nil, i32, body, source.Span{})
	file := b.NewFile(source.Span{})
	b.PushItem(file, fn)

	r := NewResolver(b, strs)
	r.AddFile(file)
	d, ok := r.Lookup(strs.Intern("f"))
	if !ok {
		t.Fatalf("expected 'f' to be tracked")
	}
	for _, dep := range d.Deps() {
		text, _ := strs.Lookup(dep)
		if text == "x" {
			t.Fatalf("local let-binding 'x' should not appear as a dependency")
		}
	}
}
