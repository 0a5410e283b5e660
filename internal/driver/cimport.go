package driver

import (
	"strings"

	"ember/internal/ast"
	"ember/internal/cimport"
	"ember/internal/diag"
)

// cImporter is the Importer this driver hands every `@c_import` block to.
// internal/cimport currently ships only Unavailable, which always fails;
// the call site is kept separate from the rest of analysis so a future
// libclang-backed Importer only needs to change this one assignment.
var cImporter cimport.Importer = cimport.Unavailable{}

// processCImports walks unit's top-level `@c_import { ... }` items,
// synthesizes a minimal C translation unit from their c_include/c_define
// /c_undef calls, and hands it to the C-header importer. A failure is
// reported as diag.CImportFailed carrying the importer's error as a note,
// per the "C-import failure (carries inner notes)" diagnostic case.
//
// internal/cimport ships only Unavailable, which always returns an
// error. On success the importer's warnings are reported and nothing
// else: the returned AST is discarded, and its declarations are not
// merged into unit's scope.
func processCImports(p *Program, unit *FileUnit) {
	file := p.Builder.Files.Get(unit.FileID)
	if file == nil {
		return
	}
	for _, itemID := range file.Items {
		item := p.Builder.Items.Get(itemID)
		if item == nil || item.Kind != ast.ItemCImport {
			continue
		}
		decl, ok := p.Builder.Items.CImport(itemID)
		if !ok {
			continue
		}
		buffer, includePaths := buildCTranslationUnit(p, decl.Body)

		_, _, warnings, err := cImporter.Import(buffer, includePaths, true)
		if err != nil {
			diag.ReportError(p.Reporter, diag.CImportFailed, decl.Span, "C import failed").
				WithNote(decl.Span, err.Error()).
				Emit()
			continue
		}
		for _, w := range warnings {
			diag.ReportWarning(p.Reporter, diag.CImportFailed, w.Primary, w.Message).Emit()
		}
	}
}

// buildCTranslationUnit renders a @c_import block's c_include/c_define/
// c_undef builtin calls into literal C preprocessor directives, the
// buffer internal/cimport.Importer.Import expects.
func buildCTranslationUnit(p *Program, body ast.StmtID) ([]byte, []string) {
	var buf strings.Builder
	var includePaths []string

	block, ok := p.Builder.Stmts.Block(body)
	if !ok {
		return nil, nil
	}
	for _, stmtID := range block.Stmts {
		stmt := p.Builder.Stmts.Get(stmtID)
		if stmt == nil || stmt.Kind != ast.StmtExpr {
			continue
		}
		exprStmt, ok := p.Builder.Stmts.Expr(stmtID)
		if !ok {
			continue
		}
		call, ok := p.Builder.Exprs.BuiltinCall(exprStmt.Expr)
		if !ok || len(call.Args) == 0 {
			continue
		}
		arg, ok := p.Builder.Exprs.Literal(call.Args[0])
		if !ok {
			continue
		}
		text := p.Strings.MustLookup(arg.Value)
		switch call.Builtin {
		case ast.BuiltinCInclude:
			buf.WriteString("#include \"" + text + "\"\n")
			includePaths = append(includePaths, text)
		case ast.BuiltinCDefine:
			value := ""
			if len(call.Args) > 1 {
				if v, ok := p.Builder.Exprs.Literal(call.Args[1]); ok {
					value = p.Strings.MustLookup(v.Value)
				}
			}
			buf.WriteString("#define " + text + " " + value + "\n")
		case ast.BuiltinCUndef:
			buf.WriteString("#undef " + text + "\n")
		}
	}
	return []byte(buf.String()), includePaths
}
