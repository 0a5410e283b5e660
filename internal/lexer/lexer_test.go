package lexer

import (
	"testing"

	"ember/internal/diag"
	"ember/internal/source"
	"ember/internal/token"
)

type reporterFunc func()

func (f reporterFunc) Report(diag.Code, diag.Severity, source.Span, string, []diag.Note, []diag.Fix) {
	f()
}

func lexAll(t *testing.T, src string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.em", []byte(src))
	lx := New(fs.Get(id), nil)
	return lx.All()
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestLexKeywordsAndIdent(t *testing.T) {
	toks := lexAll(t, "fn main let x")
	got := kinds(toks)
	want := []token.Kind{token.KwFn, token.Ident, token.KwLet, token.Ident, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
	if toks[1].Text != "main" {
		t.Fatalf("expected ident text 'main', got %q", toks[1].Text)
	}
}

func TestLexNumbers(t *testing.T) {
	toks := lexAll(t, "42 0x1F 3.14 1e10")
	if toks[0].Kind != token.IntLit || toks[0].Text != "42" {
		t.Fatalf("want int 42, got %+v", toks[0])
	}
	if toks[1].Kind != token.IntLit || toks[1].Text != "0x1F" {
		t.Fatalf("want hex 0x1F, got %+v", toks[1])
	}
	if toks[2].Kind != token.FloatLit || toks[2].Text != "3.14" {
		t.Fatalf("want float 3.14, got %+v", toks[2])
	}
	if toks[3].Kind != token.FloatLit || toks[3].Text != "1e10" {
		t.Fatalf("want float 1e10, got %+v", toks[3])
	}
}

func TestLexStrings(t *testing.T) {
	toks := lexAll(t, `"hi\n" c"bye"`)
	if toks[0].Kind != token.StringLit || toks[0].Text != "hi\n" {
		t.Fatalf("want string 'hi\\n', got %+v", toks[0])
	}
	if toks[1].Kind != token.CStringLit || toks[1].Text != "bye" {
		t.Fatalf("want c-string 'bye', got %+v", toks[1])
	}
}

func TestLexOperators(t *testing.T) {
	toks := lexAll(t, "<<= >>= ..= == != <= >= << >> -> :: .. ++")
	want := []token.Kind{
		token.ShlAssign, token.ShrAssign, token.DotDotEq,
		token.EqEq, token.BangEq, token.LtEq, token.GtEq,
		token.Shl, token.Shr, token.Arrow, token.ColonColon, token.DotDot,
		token.Concat, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexCommentsSkipped(t *testing.T) {
	toks := lexAll(t, "// line comment\nfn /* block */ x")
	got := kinds(toks)
	want := []token.Kind{token.KwFn, token.Ident, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestLexLogicalKeywords(t *testing.T) {
	toks := lexAll(t, "a and b or c")
	got := kinds(toks)
	want := []token.Kind{token.Ident, token.KwAnd, token.Ident, token.KwOr, token.Ident, token.EOF}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexUnknownCharReportsDiagnostic(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.em", []byte("$"))
	var reported bool
	lx := New(fs.Get(id), reporterFunc(func() { reported = true }))
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Fatalf("expected invalid token, got %v", tok.Kind)
	}
	if !reported {
		t.Fatalf("expected a diagnostic to be reported")
	}
}
