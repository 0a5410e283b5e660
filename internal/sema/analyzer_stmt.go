package sema

import (
	"fmt"

	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/scope"
	"ember/internal/source"
	"ember/internal/types"
)

// AnalyzeStmt implements the statement-level half of expression analysis: it
// returns the statement's type, which is `unreachable` for
// return/break/continue/goto and for a while-true loop with no break,
// and the last statement's type for a block.
func (a *Analyzer) AnalyzeStmt(sc scope.ScopeID, id ast.StmtID) types.TypeID {
	stmt := a.b.Stmts.Get(id)
	if stmt == nil {
		return types.NoTypeID
	}
	switch stmt.Kind {
	case ast.StmtExpr:
		data, _ := a.b.Stmts.Expr(id)
		a.Analyze(sc, types.NoTypeID, data.Expr)
		return a.reg.Builtins().Void
	case ast.StmtLet:
		return a.analyzeLet(sc, id)
	case ast.StmtReturn:
		data, _ := a.b.Stmts.Return(id)
		if data.Value.IsValid() {
			a.Analyze(sc, a.currentReturnType(sc), data.Value)
		}
		return a.reg.Builtins().Unreachable
	case ast.StmtBreak:
		if _, ok := a.enclosingLoop(sc); !ok {
			diag.ReportError(a.r, diag.SemaBreakContinueOutsideLoop, stmt.Span, "'break' outside a loop").Emit()
		}
		return a.reg.Builtins().Unreachable
	case ast.StmtContinue:
		if _, ok := a.enclosingLoop(sc); !ok {
			diag.ReportError(a.r, diag.SemaBreakContinueOutsideLoop, stmt.Span, "'continue' outside a loop").Emit()
		}
		return a.reg.Builtins().Unreachable
	case ast.StmtGoto:
		data, _ := a.b.Stmts.Goto(id)
		fn := a.table.Get(sc).FuncScope
		if _, ok := a.table.ResolveLabel(fn, data.Label); !ok {
			diag.ReportError(a.r, diag.SemaUndeclaredLabel, stmt.Span,
				fmt.Sprintf("undeclared label '%s'", a.name(data.Label))).Emit()
		}
		return a.reg.Builtins().Unreachable
	case ast.StmtLabel:
		return a.reg.Builtins().Void
	case ast.StmtIf:
		return a.analyzeIf(sc, id)
	case ast.StmtWhile:
		return a.analyzeWhile(sc, id)
	case ast.StmtFor:
		return a.analyzeFor(sc, id)
	case ast.StmtSwitch:
		return a.analyzeSwitch(sc, id)
	case ast.StmtBlock:
		return a.analyzeBlock(sc, id)
	default:
		Bug("unhandled stmt kind %v", stmt.Kind)
		return types.NoTypeID
	}
}

func (a *Analyzer) analyzeLet(sc scope.ScopeID, id ast.StmtID) types.TypeID {
	stmt := a.b.Stmts.Get(id)
	data, _ := a.b.Stmts.Let(id)

	declType := types.NoTypeID
	if data.Type.IsValid() {
		declType = a.tr.Resolve(sc, data.Type)
	}
	if data.Value.IsValid() {
		valType := a.Analyze(sc, declType, data.Value)
		if !declType.IsValid() {
			declType = valType
		}
	}
	scope.AddVariable(a.table, a.strs, a.reg, a.r, sc, data.Name, declType, data.Mutable, false, ast.NoItemID, stmt.Span)
	return a.reg.Builtins().Void
}

func (a *Analyzer) analyzeIf(sc scope.ScopeID, id ast.StmtID) types.TypeID {
	stmt := a.b.Stmts.Get(id)
	data, _ := a.b.Stmts.If(id)

	thenScope := sc
	if data.BindName != 0 {
		condType := a.Analyze(sc, types.NoTypeID, data.Cond)
		payload := types.NoTypeID
		if condType.IsValid() {
			switch a.reg.KindOf(condType) {
			case types.KindOptional, types.KindErrorUnion:
				payload = a.reg.MustLookup(condType).Elem
			default:
				diag.ReportError(a.r, diag.SemaTypeMismatch, stmt.Span,
					"'if-var' condition must be optional or error-union typed").Emit()
			}
		}
		thenScope = a.table.NewScope(scope.KindBlock, sc, a.table.Get(sc).FuncScope, stmt.Span)
		scope.AddVariable(a.table, a.strs, a.reg, a.r, thenScope, data.BindName, payload, false, false, ast.NoItemID, stmt.Span)
	} else {
		a.Analyze(sc, a.reg.Builtins().Bool, data.Cond)
	}

	thenType := a.AnalyzeStmt(thenScope, data.Then)
	if !data.Else.IsValid() {
		return a.reg.Builtins().Void
	}
	elseType := a.AnalyzeStmt(sc, data.Else)
	peer, ok := UnifyPeers(a.reg, a.ptrBits, thenType, elseType)
	if !ok {
		return a.reg.Builtins().Void
	}
	return peer
}

func (a *Analyzer) analyzeWhile(sc scope.ScopeID, id ast.StmtID) types.TypeID {
	stmt := a.b.Stmts.Get(id)
	data, _ := a.b.Stmts.While(id)
	a.Analyze(sc, a.reg.Builtins().Bool, data.Cond)

	bodyScope := a.table.NewScope(scope.KindBlock, sc, a.table.Get(sc).FuncScope, stmt.Span)
	a.setEnclosingLoop(bodyScope, id)
	a.AnalyzeStmt(bodyScope, data.Body)

	condVal := a.Ann.Get(data.Cond).Value
	if condVal.Ok && condVal.Kind == ValBool && condVal.Bool && !a.bodyHasBreak(data.Body) {
		return a.reg.Builtins().Unreachable
	}
	return a.reg.Builtins().Void
}

func (a *Analyzer) analyzeFor(sc scope.ScopeID, id ast.StmtID) types.TypeID {
	stmt := a.b.Stmts.Get(id)
	data, _ := a.b.Stmts.For(id)
	iterType := a.Analyze(sc, types.NoTypeID, data.Iterable)

	elemType := types.NoTypeID
	if iterType.IsValid() {
		switch a.reg.KindOf(iterType) {
		case types.KindArray, types.KindSlice:
			elemType = a.reg.MustLookup(iterType).Elem
		default:
			diag.ReportError(a.r, diag.SemaNotIterable, stmt.Span,
				fmt.Sprintf("iteration over non array type '%s'", a.typeName(iterType))).Emit()
		}
	}

	bodyScope := a.table.NewScope(scope.KindBlock, sc, a.table.Get(sc).FuncScope, stmt.Span)
	a.setEnclosingLoop(bodyScope, id)
	scope.AddVariable(a.table, a.strs, a.reg, a.r, bodyScope, data.ElemName, elemType, false, false, ast.NoItemID, stmt.Span)
	if data.IndexName != 0 {
		isize := a.reg.IntType(true, types.WidthPtr)
		scope.AddVariable(a.table, a.strs, a.reg, a.r, bodyScope, data.IndexName, isize, false, false, ast.NoItemID, stmt.Span)
	}
	a.AnalyzeStmt(bodyScope, data.Body)
	return a.reg.Builtins().Void
}

// analyzeSwitch implements the exhaustive-else switch: prong
// values must be constants lying in the scrutinee type.
func (a *Analyzer) analyzeSwitch(sc scope.ScopeID, id ast.StmtID) types.TypeID {
	stmt := a.b.Stmts.Get(id)
	data, _ := a.b.Stmts.Switch(id)
	scrutType := a.Analyze(sc, types.NoTypeID, data.Scrutinee)

	var caseTypes []types.TypeID
	for _, c := range data.Cases {
		a.Analyze(sc, scrutType, c.Value)
		val := a.Ann.Get(c.Value).Value
		if !val.Ok {
			diag.ReportError(a.r, diag.SemaNonConstantInConstantContext, stmt.Span, "switch prong value must be a constant").Emit()
		}
		caseTypes = append(caseTypes, a.AnalyzeStmt(sc, c.Body))
	}
	if !data.ElseBody.IsValid() {
		diag.ReportError(a.r, diag.SemaSwitchNotExhaustive, stmt.Span, "switch requires an exhaustive 'else' prong").Emit()
		return a.reg.Builtins().Void
	}
	caseTypes = append(caseTypes, a.AnalyzeStmt(sc, data.ElseBody))

	result := types.TypeID(0)
	ok := true
	for i, t := range caseTypes {
		if i == 0 {
			result = t
			continue
		}
		result, ok = UnifyPeers(a.reg, a.ptrBits, result, t)
		if !ok {
			break
		}
	}
	if !ok {
		return a.reg.Builtins().Void
	}
	return result
}

// analyzeBlock implements the block-typing rule: the block's
// type is its last statement's type; any statement after one typed
// `unreachable` is dead code, except explicitly-void statements.
func (a *Analyzer) analyzeBlock(sc scope.ScopeID, id ast.StmtID) types.TypeID {
	stmt := a.b.Stmts.Get(id)
	data, _ := a.b.Stmts.Block(id)

	blockScope := sc
	if a.table.Get(sc).Kind != scope.KindBlock || !a.sameSpan(sc, stmt.Span) {
		blockScope = a.table.NewScope(scope.KindBlock, sc, a.table.Get(sc).FuncScope, stmt.Span)
	}

	result := a.reg.Builtins().Void
	seenUnreachable := false
	for i, s := range data.Stmts {
		t := a.AnalyzeStmt(blockScope, s)
		if seenUnreachable && t != a.reg.Builtins().Void {
			diag.ReportWarning(a.r, diag.SemaUnreachableCode, a.b.Stmts.Get(s).Span, "unreachable code").Emit()
		}
		if t == a.reg.Builtins().Unreachable {
			seenUnreachable = true
		}
		if i == len(data.Stmts)-1 {
			result = t
		}
	}
	return result
}

func (a *Analyzer) sameSpan(sc scope.ScopeID, span source.Span) bool {
	s := a.table.Get(sc)
	return s != nil && s.Span == span
}

func (a *Analyzer) enclosingLoop(sc scope.ScopeID) (ast.StmtID, bool) {
	for cur := sc; cur != scope.NoScopeID; {
		s := a.table.Get(cur)
		if s == nil {
			break
		}
		if s.EnclosingLoop.IsValid() {
			return s.EnclosingLoop, true
		}
		cur = s.Parent
	}
	return ast.NoStmtID, false
}

func (a *Analyzer) setEnclosingLoop(sc scope.ScopeID, loop ast.StmtID) {
	if s := a.table.Get(sc); s != nil {
		s.EnclosingLoop = loop
	}
}

// bodyHasBreak scans body's direct and nested-block statements for a
// break that targets this loop (it does not descend into nested loops,
// whose own breaks target themselves).
func (a *Analyzer) bodyHasBreak(body ast.StmtID) bool {
	stmt := a.b.Stmts.Get(body)
	if stmt == nil {
		return false
	}
	switch stmt.Kind {
	case ast.StmtBreak:
		return true
	case ast.StmtBlock:
		data, _ := a.b.Stmts.Block(body)
		for _, s := range data.Stmts {
			if a.bodyHasBreak(s) {
				return true
			}
		}
		return false
	case ast.StmtIf:
		data, _ := a.b.Stmts.If(body)
		if a.bodyHasBreak(data.Then) {
			return true
		}
		return data.Else.IsValid() && a.bodyHasBreak(data.Else)
	case ast.StmtWhile, ast.StmtFor:
		return false
	default:
		return false
	}
}

// currentReturnType returns the return type AnalyzeFunction recorded for
// sc's enclosing function scope; see func.go.
func (a *Analyzer) currentReturnType(sc scope.ScopeID) types.TypeID {
	return a.fnReturnTypes[a.table.Get(sc).FuncScope]
}
