package sema

import (
	"math/big"
	"testing"

	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/scope"
	"ember/internal/source"
	"ember/internal/types"
)

// newTestPipeline wires the minimal Binder+Analyzer pair a driver would
// assemble, with a file scope pre-seeded with the primitive type names
// the prelude would otherwise bind.
func newTestPipeline(t *testing.T) (*ast.Builder, *source.Interner, *types.Interner, *scope.Table, scope.ScopeID, *diag.Bag) {
	t.Helper()
	b := ast.NewBuilder(ast.Hints{})
	strs := source.NewInterner()
	reg := types.NewInterner()
	table := scope.NewTable()
	bag := diag.NewBag(64)

	fileScope := table.NewScope(scope.KindFile, scope.NoScopeID, scope.NoScopeID, source.Span{})
	r := diag.BagReporter{Bag: bag}
	for name, id := range map[string]types.TypeID{
		"i32":  reg.IntType(true, types.Width32),
		"bool": reg.Builtins().Bool,
		"u8":   reg.IntType(false, types.Width8),
	} {
		scope.AddType(table, strs, r, fileScope, strs.Intern(name), id, ast.NoItemID, source.Span{})
	}
	return b, strs, reg, table, fileScope, bag
}

// buildAddFunction builds:
//   fn add(a: i32, b: i32) -> i32 { let x: i32 = a + b; return x; }
// and returns the function item along with the ExprIDs of the "a + b"
// expression and the "x" return expression, so the test can inspect
// their annotations directly.
func buildAddFunction(b *ast.Builder, strs *source.Interner) (fnID ast.ItemID, sumExpr, retExpr ast.ExprID) {
	sp := source.Span{}
	i32 := func() ast.TypeID { return b.Types.NewPath(sp, strs.Intern("i32")) }

	identA := b.Exprs.NewIdent(sp, strs.Intern("a"))
	identB := b.Exprs.NewIdent(sp, strs.Intern("b"))
	sumExpr = b.Exprs.NewBinary(sp, ast.BinAdd, identA, identB)

	letStmt := b.Stmts.NewLet(sp, ast.StmtLetData{
		Name: strs.Intern("x"), Type: i32(), Value: sumExpr, Mutable: false,
	})
	retExpr = b.Exprs.NewIdent(sp, strs.Intern("x"))
	returnStmt := b.Stmts.NewReturn(sp, retExpr)
	body := b.Stmts.NewBlock(sp, []ast.StmtID{letStmt, returnStmt})

	params := []ast.FnParam{
		{Name: strs.Intern("a"), Type: i32(), Span: sp},
		{Name: strs.Intern("b"), Type: i32(), Span: sp},
	}
	fnID = b.Items.NewFnDef(strs.Intern("add"), ast.VisPub, params, i32(), body, sp)
	return fnID, sumExpr, retExpr
}

func TestAnalyzeProgramResolvesSimpleFunction(t *testing.T) {
	b, strs, reg, table, fileScope, bag := newTestPipeline(t)
	r := diag.BagReporter{Bag: bag}

	fnID, sumExpr, retExpr := buildAddFunction(b, strs)
	file := b.NewFile(source.Span{})
	b.PushItem(file, fnID)

	bd := NewBinder(b, strs, reg, table, r, fileScope)
	a := NewAnalyzer(b, strs, reg, table, r, nil, 64)

	AnalyzeProgram(a, bd, fileScope, []ast.ItemID{fnID})

	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %d", bag.Len())
	}

	i32 := reg.IntType(true, types.Width32)
	if got := a.Ann.TypeOf(sumExpr); got != i32 {
		t.Fatalf("a + b resolved to type %d, want i32 (%d)", got, i32)
	}
	if got := a.Ann.TypeOf(retExpr); got != i32 {
		t.Fatalf("return x resolved to type %d, want i32 (%d)", got, i32)
	}
}

func TestAnalyzeFunctionFoldsConstantLet(t *testing.T) {
	b, strs, reg, table, fileScope, bag := newTestPipeline(t)
	r := diag.BagReporter{Bag: bag}
	sp := source.Span{}

	two := b.Exprs.NewLiteral(sp, ast.LitInt, strs.Intern("2"))
	three := b.Exprs.NewLiteral(sp, ast.LitInt, strs.Intern("3"))
	sum := b.Exprs.NewBinary(sp, ast.BinAdd, two, three)
	i32 := b.Types.NewPath(sp, strs.Intern("i32"))
	letStmt := b.Stmts.NewLet(sp, ast.StmtLetData{Name: strs.Intern("x"), Type: i32, Value: sum, Mutable: false})
	body := b.Stmts.NewBlock(sp, []ast.StmtID{letStmt, b.Stmts.NewReturn(sp, ast.NoExprID)})
	fnID := b.Items.NewFnDef(strs.Intern("f"), ast.VisPub, nil, ast.NoTypeID, body, sp)

	bd := NewBinder(b, strs, reg, table, r, fileScope)
	a := NewAnalyzer(b, strs, reg, table, r, nil, 64)
	AnalyzeProgram(a, bd, fileScope, []ast.ItemID{fnID})

	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %d", bag.Len())
	}
	val := a.Ann.Get(sum).Value
	if !val.Ok || val.Int.Cmp(big.NewInt(5)) != 0 {
		t.Fatalf("2 + 3 should fold to the constant 5, got %v", val)
	}
}

func TestAnalyzeFunctionReportsUndeclaredIdentifier(t *testing.T) {
	b, strs, reg, table, fileScope, bag := newTestPipeline(t)
	r := diag.BagReporter{Bag: bag}
	sp := source.Span{}

	ident := b.Exprs.NewIdent(sp, strs.Intern("missing"))
	body := b.Stmts.NewBlock(sp, []ast.StmtID{b.Stmts.NewReturn(sp, ident)})
	fnID := b.Items.NewFnDef(strs.Intern("f"), ast.VisPub, nil, ast.NoTypeID, body, sp)

	bd := NewBinder(b, strs, reg, table, r, fileScope)
	a := NewAnalyzer(b, strs, reg, table, r, nil, 64)
	AnalyzeProgram(a, bd, fileScope, []ast.ItemID{fnID})

	if bag.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic for the undeclared identifier, got %d", bag.Len())
	}
	if bag.Items()[0].Code != diag.SemaUndeclaredIdentifier {
		t.Fatalf("expected SemaUndeclaredIdentifier, got %v", bag.Items()[0].Code)
	}
}

func TestAnalyzeFunctionAssignToImmutableIsRejected(t *testing.T) {
	b, strs, reg, table, fileScope, bag := newTestPipeline(t)
	r := diag.BagReporter{Bag: bag}
	sp := source.Span{}

	i32 := b.Types.NewPath(sp, strs.Intern("i32"))
	one := b.Exprs.NewLiteral(sp, ast.LitInt, strs.Intern("1"))
	letStmt := b.Stmts.NewLet(sp, ast.StmtLetData{Name: strs.Intern("x"), Type: i32, Value: one, Mutable: false})

	xIdent := b.Exprs.NewIdent(sp, strs.Intern("x"))
	two := b.Exprs.NewLiteral(sp, ast.LitInt, strs.Intern("2"))
	assign := b.Exprs.NewBinary(sp, ast.BinAssign, xIdent, two)
	assignStmt := b.Stmts.NewExpr(sp, assign)

	body := b.Stmts.NewBlock(sp, []ast.StmtID{letStmt, assignStmt, b.Stmts.NewReturn(sp, ast.NoExprID)})
	fnID := b.Items.NewFnDef(strs.Intern("f"), ast.VisPub, nil, ast.NoTypeID, body, sp)

	bd := NewBinder(b, strs, reg, table, r, fileScope)
	a := NewAnalyzer(b, strs, reg, table, r, nil, 64)
	AnalyzeProgram(a, bd, fileScope, []ast.ItemID{fnID})

	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SemaInvalidLValue {
			found = true
		}
	}
	if !found {
		t.Fatalf("assigning to an immutable binding should report SemaInvalidLValue, got %v", bag.Items())
	}
}

func TestAnalyzeFunctionSliceExpr(t *testing.T) {
	b, strs, reg, table, fileScope, bag := newTestPipeline(t)
	r := diag.BagReporter{Bag: bag}
	sp := source.Span{}

	i32 := b.Types.NewPath(sp, strs.Intern("i32"))
	sliceParamType := b.Types.NewSlice(sp, i32, false)

	xsIdent := b.Exprs.NewIdent(sp, strs.Intern("xs"))
	zero := b.Exprs.NewLiteral(sp, ast.LitInt, strs.Intern("0"))
	two := b.Exprs.NewLiteral(sp, ast.LitInt, strs.Intern("2"))
	sliceExpr := b.Exprs.NewSlice(sp, xsIdent, zero, two, true)

	letStmt := b.Stmts.NewLet(sp, ast.StmtLetData{Name: strs.Intern("head"), Value: sliceExpr, Mutable: false})
	body := b.Stmts.NewBlock(sp, []ast.StmtID{letStmt, b.Stmts.NewReturn(sp, ast.NoExprID)})

	params := []ast.FnParam{{Name: strs.Intern("xs"), Type: sliceParamType, Span: sp}}
	fnID := b.Items.NewFnDef(strs.Intern("f"), ast.VisPub, params, ast.NoTypeID, body, sp)

	bd := NewBinder(b, strs, reg, table, r, fileScope)
	a := NewAnalyzer(b, strs, reg, table, r, nil, 64)
	AnalyzeProgram(a, bd, fileScope, []ast.ItemID{fnID})

	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %v", bag.Items())
	}
	wantElem := reg.IntType(true, types.Width32)
	want := reg.SliceOf(wantElem, true)
	if got := a.Ann.TypeOf(sliceExpr); got != want {
		t.Fatalf("xs[0..2] (const) resolved to %v, want const slice of i32 (%v)", got, want)
	}
}

func TestAnalyzeFunctionSliceOfNonArrayIsRejected(t *testing.T) {
	b, strs, reg, table, fileScope, bag := newTestPipeline(t)
	r := diag.BagReporter{Bag: bag}
	sp := source.Span{}

	i32 := b.Types.NewPath(sp, strs.Intern("i32"))
	xIdent := b.Exprs.NewIdent(sp, strs.Intern("x"))
	one := b.Exprs.NewLiteral(sp, ast.LitInt, strs.Intern("1"))
	sliceExpr := b.Exprs.NewSlice(sp, xIdent, one, ast.NoExprID, false)

	letX := b.Stmts.NewLet(sp, ast.StmtLetData{Name: strs.Intern("x"), Type: i32, Value: b.Exprs.NewLiteral(sp, ast.LitInt, strs.Intern("5")), Mutable: false})
	sliceStmt := b.Stmts.NewExpr(sp, sliceExpr)
	body := b.Stmts.NewBlock(sp, []ast.StmtID{letX, sliceStmt, b.Stmts.NewReturn(sp, ast.NoExprID)})
	fnID := b.Items.NewFnDef(strs.Intern("f"), ast.VisPub, nil, ast.NoTypeID, body, sp)

	bd := NewBinder(b, strs, reg, table, r, fileScope)
	a := NewAnalyzer(b, strs, reg, table, r, nil, 64)
	AnalyzeProgram(a, bd, fileScope, []ast.ItemID{fnID})

	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SemaTypeMismatch {
			found = true
		}
	}
	if !found {
		t.Fatalf("slicing a non-array type should report SemaTypeMismatch, got %v", bag.Items())
	}
}

func TestAnalyzeFunctionForwardGoto(t *testing.T) {
	b, strs, reg, table, fileScope, bag := newTestPipeline(t)
	r := diag.BagReporter{Bag: bag}
	sp := source.Span{}

	gotoStmt := b.Stmts.NewGoto(sp, strs.Intern("done"))
	labelStmt := b.Stmts.NewLabel(sp, strs.Intern("done"))
	body := b.Stmts.NewBlock(sp, []ast.StmtID{gotoStmt, labelStmt, b.Stmts.NewReturn(sp, ast.NoExprID)})
	fnID := b.Items.NewFnDef(strs.Intern("f"), ast.VisPub, nil, ast.NoTypeID, body, sp)

	bd := NewBinder(b, strs, reg, table, r, fileScope)
	a := NewAnalyzer(b, strs, reg, table, r, nil, 64)
	AnalyzeProgram(a, bd, fileScope, []ast.ItemID{fnID})

	for _, d := range bag.Items() {
		if d.Severity == diag.SevError {
			t.Fatalf("a goto targeting a later label should not error, got %v", d)
		}
	}
}
