package parser

import (
	"testing"

	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/lexer"
	"ember/internal/source"
	"ember/internal/testkit"
)

// parse parses src as a standalone file and fails the test if any
// diagnostic was reported. Every successful parse is also checked for
// span-containment invariants: malformed spans here would otherwise
// surface much later, as a confusing offset in diagfmt output.
func parse(t *testing.T, src string) (*ast.Builder, ast.FileID, *source.Interner) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.em", []byte(src))
	strs := source.NewInterner()
	b := ast.NewBuilder(ast.Hints{})
	bag := diag.NewBag(64)
	lx := lexer.New(fs.Get(id), diag.BagReporter{Bag: bag})

	res := ParseFile(lx, b, strs, Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics parsing %q: %d reported", src, bag.Len())
	}
	if err := testkit.CheckSpanInvariants(b, res.File, fs.Get(id)); err != nil {
		t.Fatalf("span invariants violated: %v", err)
	}
	return b, res.File, strs
}

// parseExpectErrors parses src and returns the number of diagnostics
// reported, for tests exercising recovery.
func parseExpectErrors(t *testing.T, src string) int {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.em", []byte(src))
	strs := source.NewInterner()
	b := ast.NewBuilder(ast.Hints{})
	bag := diag.NewBag(64)
	lx := lexer.New(fs.Get(id), diag.BagReporter{Bag: bag})
	ParseFile(lx, b, strs, Options{Reporter: diag.BagReporter{Bag: bag}})
	return bag.Len()
}

func TestParseFnDef(t *testing.T) {
	b, file, strs := parse(t, `fn add(a: i32, b: i32) -> i32 { return a + b; }`)
	f := b.Files.Get(file)
	if len(f.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(f.Items))
	}
	fn, ok := b.Items.FnDef(f.Items[0])
	if !ok {
		t.Fatalf("expected a function definition")
	}
	if strs.MustLookup(fn.Proto.Name) != "add" {
		t.Fatalf("expected name 'add', got %q", strs.MustLookup(fn.Proto.Name))
	}
	params := b.Items.Params(fn.Proto.ParamsStart, fn.Proto.ParamsCount)
	if len(params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(params))
	}
	body, ok := b.Stmts.Block(fn.Body)
	if !ok || len(body.Stmts) != 1 {
		t.Fatalf("expected a single-statement body")
	}
	ret, ok := b.Stmts.Return(body.Stmts[0])
	if !ok {
		t.Fatalf("expected a return statement")
	}
	bin, ok := b.Exprs.Binary(ret.Value)
	if !ok || bin.Op != ast.BinAdd {
		t.Fatalf("expected 'a + b' in the return value")
	}
}

func TestParseFnProtoHasNoBody(t *testing.T) {
	b, file, _ := parse(t, `fn puts(s: &const u8) -> i32;`)
	f := b.Files.Get(file)
	proto, ok := b.Items.FnProto(f.Items[0])
	if !ok {
		t.Fatalf("expected a function prototype")
	}
	params := b.Items.Params(proto.ParamsStart, proto.ParamsCount)
	ptr, ok := b.Types.Pointer(params[0].Type)
	if !ok || !ptr.Const {
		t.Fatalf("expected a const pointer parameter type")
	}
}

func TestParseStructAndEnum(t *testing.T) {
	b, file, strs := parse(t, `
		struct Point { x: i32, y: i32 }
		enum Shape { Circle(i32), Square(i32), Empty }
	`)
	f := b.Files.Get(file)
	if len(f.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(f.Items))
	}
	st, ok := b.Items.Struct(f.Items[0])
	if !ok {
		t.Fatalf("expected a struct item")
	}
	fields := b.Items.Fields(st.FieldsStart, st.FieldsCount)
	if len(fields) != 2 {
		t.Fatalf("expected struct with 2 fields")
	}
	en, ok := b.Items.Enum(f.Items[1])
	if !ok {
		t.Fatalf("expected an enum item")
	}
	variants := b.Items.Variants(en.VariantsStart, en.VariantsCount)
	if len(variants) != 3 {
		t.Fatalf("expected enum with 3 variants")
	}
	if strs.MustLookup(variants[2].Name) != "Empty" || variants[2].Payload.IsValid() {
		t.Fatalf("expected last variant 'Empty' with no payload")
	}
}

func TestParseLetWithCastAndStructLit(t *testing.T) {
	b, file, _ := parse(t, `
		fn make() -> i32 {
			let p: Point = Point{ x: 1, y: 2 };
			let n = p.x as i64;
			return n as i32;
		}
	`)
	f := b.Files.Get(file)
	fn, _ := b.Items.FnDef(f.Items[0])
	body, _ := b.Stmts.Block(fn.Body)
	if len(body.Stmts) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(body.Stmts))
	}
	letStmt, ok := b.Stmts.Let(body.Stmts[0])
	if !ok {
		t.Fatalf("expected a let statement")
	}
	lit, ok := b.Exprs.StructLit(letStmt.Value)
	if !ok || len(lit.Fields) != 2 {
		t.Fatalf("expected a struct literal with 2 fields")
	}
}

func TestParseIfWhileForSwitch(t *testing.T) {
	b, file, _ := parse(t, `
		fn run(xs: []const i32) -> i32 {
			let mut total = 0;
			for x, i in xs {
				if (x > 0) {
					total = total + x;
				} else {
					total = total - x;
				}
			}
			while (total > 100) {
				total = total / 2;
			}
			switch (total) {
				0: return 0;
				else: return total;
			}
		}
	`)
	f := b.Files.Get(file)
	fn, _ := b.Items.FnDef(f.Items[0])
	body, _ := b.Stmts.Block(fn.Body)
	if len(body.Stmts) != 4 {
		t.Fatalf("expected 4 statements in body, got %d", len(body.Stmts))
	}
	forStmt, ok := b.Stmts.For(body.Stmts[1])
	if !ok {
		t.Fatalf("expected a for statement")
	}
	if forStmt.IndexName == source.NoStringID {
		t.Fatalf("expected the for loop to bind an index name")
	}
	sw, ok := b.Stmts.Switch(body.Stmts[3])
	if !ok || len(sw.Cases) != 1 || !sw.ElseBody.IsValid() {
		t.Fatalf("expected a switch with one case and an else prong")
	}
}

func TestParseSwitchWithoutElseReportsNotExhaustive(t *testing.T) {
	n := parseExpectErrors(t, `
		fn run(x: i32) -> i32 {
			switch (x) {
				0: return 0;
			}
		}
	`)
	if n == 0 {
		t.Fatalf("expected a diagnostic for a non-exhaustive switch")
	}
}

func TestParseBuiltinCalls(t *testing.T) {
	b, file, _ := parse(t, `
		fn run() -> i32 {
			let n = @sizeof(i32);
			let m = @max_value(u8);
			return @typeof(n);
		}
	`)
	f := b.Files.Get(file)
	fn, _ := b.Items.FnDef(f.Items[0])
	body, _ := b.Stmts.Block(fn.Body)
	firstLet, _ := b.Stmts.Let(body.Stmts[0])
	call, ok := b.Exprs.BuiltinCall(firstLet.Value)
	if !ok || call.Builtin != ast.BuiltinSizeof || len(call.TypeArgs) != 1 {
		t.Fatalf("expected a sizeof builtin call with one type argument")
	}
}

func TestParseErrorDeclAndImport(t *testing.T) {
	b, file, strs := parse(t, `
		import "std/io.em" as io;
		error NotFound, PermissionDenied;
	`)
	f := b.Files.Get(file)
	imp, ok := b.Items.Import(f.Items[0])
	if !ok || strs.MustLookup(imp.Alias) != "io" {
		t.Fatalf("expected import aliased to 'io'")
	}
	decl, ok := b.Items.ErrorDecl(f.Items[1])
	if !ok || len(decl.Names) != 2 {
		t.Fatalf("expected an error declaration with 2 names")
	}
}

func TestParseCImportBlock(t *testing.T) {
	b, file, _ := parse(t, `
		@c_import {
			@c_include("stdio.h");
		}
	`)
	f := b.Files.Get(file)
	ci, ok := b.Items.CImport(f.Items[0])
	if !ok {
		t.Fatalf("expected a c_import item")
	}
	body, ok := b.Stmts.Block(ci.Body)
	if !ok || len(body.Stmts) != 1 {
		t.Fatalf("expected one statement in the c_import body")
	}
}

func TestParseLabelAndGoto(t *testing.T) {
	b, file, _ := parse(t, `
		fn run() -> i32 {
			goto done;
			done:
			return 0;
		}
	`)
	f := b.Files.Get(file)
	fn, _ := b.Items.FnDef(f.Items[0])
	body, _ := b.Stmts.Block(fn.Body)
	if _, ok := b.Stmts.Goto(body.Stmts[0]); !ok {
		t.Fatalf("expected a goto statement")
	}
	if _, ok := b.Stmts.Label(body.Stmts[1]); !ok {
		t.Fatalf("expected a label statement")
	}
}

func TestParseRecoversFromMissingSemicolon(t *testing.T) {
	n := parseExpectErrors(t, `
		fn run() -> i32 {
			let x = 1
			return x;
		}
	`)
	if n == 0 {
		t.Fatalf("expected at least one diagnostic for the missing ';'")
	}
}

func TestParseSliceExpr(t *testing.T) {
	b, file, _ := parse(t, `
		fn run(xs: []i32) -> []i32 {
			let head = xs[0..2];
			let tail = xs[const 2..];
			return xs[1..2];
		}
	`)
	f := b.Files.Get(file)
	fn, _ := b.Items.FnDef(f.Items[0])
	body, _ := b.Stmts.Block(fn.Body)
	if len(body.Stmts) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(body.Stmts))
	}

	head, ok := b.Stmts.Let(body.Stmts[0])
	if !ok {
		t.Fatalf("expected a let statement")
	}
	headSlice, ok := b.Exprs.Slice(head.Value)
	if !ok {
		t.Fatalf("expected a slice expression")
	}
	if headSlice.Const {
		t.Fatalf("expected a non-const slice")
	}
	if !headSlice.Start.IsValid() || !headSlice.End.IsValid() {
		t.Fatalf("expected both bounds to be present")
	}

	tail, ok := b.Stmts.Let(body.Stmts[1])
	if !ok {
		t.Fatalf("expected a let statement")
	}
	tailSlice, ok := b.Exprs.Slice(tail.Value)
	if !ok {
		t.Fatalf("expected a slice expression")
	}
	if !tailSlice.Const {
		t.Fatalf("expected 'const' to mark the slice const")
	}
	if tailSlice.End.IsValid() {
		t.Fatalf("expected an absent end bound")
	}
}

func TestParseIndexStillWorksAlongsideSlice(t *testing.T) {
	b, file, _ := parse(t, `
		fn run(xs: []i32) -> i32 {
			return xs[0];
		}
	`)
	f := b.Files.Get(file)
	fn, _ := b.Items.FnDef(f.Items[0])
	body, _ := b.Stmts.Block(fn.Body)
	ret, _ := b.Stmts.Return(body.Stmts[0])
	if _, ok := b.Exprs.Index(ret.Value); !ok {
		t.Fatalf("expected a plain index expression")
	}
}
