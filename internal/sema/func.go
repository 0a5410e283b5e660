package sema

import (
	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/scope"
	"ember/internal/types"
)

// AnalyzeFunction is the per-declaration driver: it
// builds the function's scope (parameters bound directly into a
// KindFunction scope, matching lookup_local's function-boundary rule),
// pre-declares every label in the body so a goto may target a label
// declared later in source order, walks the body, and finally reports
// any label that was never the target of a goto.
func (a *Analyzer) AnalyzeFunction(fileScope scope.ScopeID, item ast.ItemID) {
	def, ok := a.b.Items.FnDef(item)
	if !ok {
		return
	}
	proto := def.Proto

	fnScope := a.table.NewScope(scope.KindFunction, fileScope, scope.NoScopeID, proto.Span)
	var paramTypes []types.TypeID
	for _, p := range a.b.Items.Params(proto.ParamsStart, proto.ParamsCount) {
		pt := a.tr.Resolve(fileScope, p.Type)
		paramTypes = append(paramTypes, pt)
		scope.AddVariable(a.table, a.strs, a.reg, a.r, fnScope, p.Name, pt, false, false, ast.NoItemID, p.Span)
	}

	retType := a.reg.Builtins().Void
	if proto.ReturnType.IsValid() {
		retType = a.tr.Resolve(fileScope, proto.ReturnType)
	}
	a.fnReturnTypes[fnScope] = retType
	a.sigs[item] = FnSignature{Params: paramTypes, Return: retType}

	a.declareLabels(fnScope, def.Body)
	a.AnalyzeStmt(fnScope, def.Body)

	for _, l := range a.table.UnusedLabels(fnScope) {
		diag.ReportWarning(a.r, diag.SemaLabelUnused, l.Span,
			"label '"+a.name(l.Name)+"' is never used").Emit()
	}
}

// declareLabels walks body for StmtLabel nodes and registers each one in
// fnScope's flat label table before any goto is analyzed, since a goto
// may appear lexically before the label it targets.
func (a *Analyzer) declareLabels(fnScope scope.ScopeID, id ast.StmtID) {
	stmt := a.b.Stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtLabel:
		data, _ := a.b.Stmts.Label(id)
		a.table.DeclareLabel(fnScope, data.Name, stmt.Span)
	case ast.StmtBlock:
		data, _ := a.b.Stmts.Block(id)
		for _, s := range data.Stmts {
			a.declareLabels(fnScope, s)
		}
	case ast.StmtIf:
		data, _ := a.b.Stmts.If(id)
		a.declareLabels(fnScope, data.Then)
		if data.Else.IsValid() {
			a.declareLabels(fnScope, data.Else)
		}
	case ast.StmtWhile:
		data, _ := a.b.Stmts.While(id)
		a.declareLabels(fnScope, data.Body)
	case ast.StmtFor:
		data, _ := a.b.Stmts.For(id)
		a.declareLabels(fnScope, data.Body)
	case ast.StmtSwitch:
		data, _ := a.b.Stmts.Switch(id)
		for _, c := range data.Cases {
			a.declareLabels(fnScope, c.Body)
		}
		if data.ElseBody.IsValid() {
			a.declareLabels(fnScope, data.ElseBody)
		}
	}
}

// AnalyzeProgram runs the Binder then the Analyzer over every item in
// dependency order: resolve dependencies, then analyze. fileScope must
// already contain the prelude's primitive-type bindings.
func AnalyzeProgram(a *Analyzer, bd *Binder, fileScope scope.ScopeID, order []ast.ItemID) {
	bd.BindAll(order)
	for _, item := range order {
		if it := a.b.Items.Get(item); it != nil && it.Kind == ast.ItemFnDef {
			a.AnalyzeFunction(fileScope, item)
		}
	}
}
