package sema

import (
	"fmt"

	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/scope"
	"ember/internal/types"
)

func (a *Analyzer) analyzeBinary(sc scope.ScopeID, id ast.ExprID) types.TypeID {
	data, _ := a.b.Exprs.Binary(id)

	if data.Op.IsAssignment() {
		return a.analyzeAssign(sc, id, data)
	}
	if data.Op == ast.BinConcat {
		return a.analyzeConcat(sc, id, data)
	}
	if data.Op == ast.BinLogicalAnd || data.Op == ast.BinLogicalOr {
		return a.analyzeLogical(sc, id, data)
	}

	lt := a.Analyze(sc, types.NoTypeID, data.Left)
	rt := a.Analyze(sc, types.NoTypeID, data.Right)
	if !lt.IsValid() || !rt.IsValid() {
		return a.invalid(id)
	}

	isCompare := data.Op == ast.BinEq || data.Op == ast.BinNotEq || data.Op == ast.BinLess ||
		data.Op == ast.BinLessEq || data.Op == ast.BinGreater || data.Op == ast.BinGreaterEq

	peer, ok := UnifyPeers(a.reg, a.ptrBits, lt, rt)
	if !ok {
		diag.ReportError(a.r, diag.SemaIncompatiblePeerTypes, a.spanOf(id),
			fmt.Sprintf("incompatible types '%s' and '%s'", a.typeName(lt), a.typeName(rt))).Emit()
		return a.invalid(id)
	}

	lt = a.Analyze(sc, peer, data.Left)
	rt = a.Analyze(sc, peer, data.Right)

	lv, rv := a.Ann.Get(data.Left).Value, a.Ann.Get(data.Right).Value

	if isCompare {
		result := a.reg.Builtins().Bool
		a.Ann.Set(id, result, FoldBinary(a.reg, a.ptrBits, data.Op, peer, lv, rv))
		return result
	}

	folded := FoldBinary(a.reg, a.ptrBits, data.Op, peer, lv, rv)
	if lv.Ok && rv.Ok && !folded.Ok {
		switch data.Op {
		case ast.BinDiv, ast.BinMod:
			diag.ReportError(a.r, diag.SemaOutOfRangeLiteral, a.spanOf(id), "division or modulo by zero").Emit()
		case ast.BinShl, ast.BinShr:
			diag.ReportError(a.r, diag.SemaOutOfRangeLiteral, a.spanOf(id), "shift amount out of range").Emit()
		}
	}
	if folded.Ok && folded.Kind == ValInt && a.reg.IsInteger(peer) {
		if !FitsInt(folded.Int, a.reg.IsSigned(peer), a.reg.BitWidth(peer, a.ptrBits)) {
			diag.ReportError(a.r, diag.SemaOutOfRangeLiteral, a.spanOf(id),
				fmt.Sprintf("result %s does not fit in '%s'", folded.Int.String(), a.typeName(peer))).Emit()
			folded = Unknown
		}
	}
	a.Ann.Set(id, peer, folded)
	return peer
}

func (a *Analyzer) analyzeConcat(sc scope.ScopeID, id ast.ExprID, data *ast.ExprBinaryData) types.TypeID {
	lt := a.Analyze(sc, types.NoTypeID, data.Left)
	rt := a.Analyze(sc, types.NoTypeID, data.Right)
	if !lt.IsValid() || !rt.IsValid() || a.reg.KindOf(lt) != types.KindSlice || lt != rt {
		diag.ReportError(a.r, diag.SemaTypeMismatch, a.spanOf(id), "'++' requires two constant string slices of the same type").Emit()
		return a.invalid(id)
	}
	lv, rv := a.Ann.Get(data.Left).Value, a.Ann.Get(data.Right).Value
	a.Ann.Set(id, lt, FoldConcat(lv, rv))
	return lt
}

func (a *Analyzer) analyzeLogical(sc scope.ScopeID, id ast.ExprID, data *ast.ExprBinaryData) types.TypeID {
	boolT := a.reg.Builtins().Bool
	a.Analyze(sc, boolT, data.Left)
	a.Analyze(sc, boolT, data.Right)
	lv, rv := a.Ann.Get(data.Left).Value, a.Ann.Get(data.Right).Value
	a.Ann.Set(id, boolT, FoldBinary(a.reg, a.ptrBits, data.Op, boolT, lv, rv))
	return boolT
}

// analyzeAssign implements the assignment rule: LHS must be an
// l-value (a mutable variable, an access chain rooted at one, or a
// dereference); compound assignment legality follows the underlying
// type (e.g. bit-shift only on integers).
func (a *Analyzer) analyzeAssign(sc scope.ScopeID, id ast.ExprID, data *ast.ExprBinaryData) types.TypeID {
	// Analyzed before the l-value check so targetIsPointerOrSlice sees
	// every sub-node's annotation already populated bottom-up.
	lt := a.analyzeNode(sc, types.NoTypeID, data.Left)
	if !a.isLValue(sc, data.Left) {
		diag.ReportError(a.r, diag.SemaInvalidLValue, a.spanOf(id), "expression is not assignable").Emit()
	}
	if !lt.IsValid() {
		a.Analyze(sc, types.NoTypeID, data.Right)
		return a.invalid(id)
	}
	if data.Op != ast.BinAssign {
		switch data.Op {
		case ast.BinShlAssign, ast.BinShrAssign, ast.BinBitAndAssign, ast.BinBitOrAssign, ast.BinBitXorAssign:
			if !a.reg.IsInteger(lt) {
				diag.ReportError(a.r, diag.SemaTypeMismatch, a.spanOf(id),
					fmt.Sprintf("operator requires an integer operand, got '%s'", a.typeName(lt))).Emit()
			}
		}
	}
	a.Analyze(sc, lt, data.Right)
	a.Ann.Set(id, lt, Unknown)
	return lt
}

// isLValue reports whether id names a mutable variable, an access chain
// rooted at one, or a pointer dereference.
func (a *Analyzer) isLValue(sc scope.ScopeID, id ast.ExprID) bool {
	expr := a.b.Exprs.Get(id)
	if expr == nil {
		return false
	}
	switch expr.Kind {
	case ast.ExprIdent:
		data, _ := a.b.Exprs.Ident(id)
		b, ok := a.table.Lookup(sc, data.Name)
		return ok && b.Kind == scope.BindVariable && b.Mutable
	case ast.ExprUnary:
		data, _ := a.b.Exprs.Unary(id)
		return data.Op == ast.UnDeref
	case ast.ExprIndex:
		data, _ := a.b.Exprs.Index(id)
		return a.isLValue(sc, data.Target) || a.targetIsPointerOrSlice(sc, data.Target)
	case ast.ExprMember:
		data, _ := a.b.Exprs.Member(id)
		return a.isLValue(sc, data.Target) || a.targetIsPointerOrSlice(sc, data.Target)
	default:
		return false
	}
}

// targetIsPointerOrSlice covers "p[i] = x" / "p.f = x" through a pointer
// or slice receiver, which is assignable through indirection even though
// the pointer/slice value itself is not an l-value.
func (a *Analyzer) targetIsPointerOrSlice(sc scope.ScopeID, id ast.ExprID) bool {
	ann := a.Ann.Get(id)
	if !ann.Type.IsValid() {
		return false
	}
	k := a.reg.KindOf(ann.Type)
	return k == types.KindPointer || k == types.KindSlice
}

func (a *Analyzer) analyzeUnary(sc scope.ScopeID, id ast.ExprID) types.TypeID {
	data, _ := a.b.Exprs.Unary(id)

	switch data.Op {
	case ast.UnAddrOf:
		if !a.isLValue(sc, data.Operand) {
			diag.ReportError(a.r, diag.SemaInvalidAddressofTarget, a.spanOf(id), "cannot take the address of this expression").Emit()
		}
		ot := a.Analyze(sc, types.NoTypeID, data.Operand)
		if !ot.IsValid() {
			return a.invalid(id)
		}
		result := a.reg.PointerTo(ot, false)
		a.Ann.Set(id, result, Unknown)
		return result
	case ast.UnDeref:
		ot := a.Analyze(sc, types.NoTypeID, data.Operand)
		if !ot.IsValid() || a.reg.KindOf(ot) != types.KindPointer {
			if ot.IsValid() {
				diag.ReportError(a.r, diag.SemaTypeMismatch, a.spanOf(id),
					fmt.Sprintf("cannot dereference non-pointer type '%s'", a.typeName(ot))).Emit()
			}
			return a.invalid(id)
		}
		child := a.reg.MustLookup(ot).Elem
		a.Ann.Set(id, child, Unknown)
		return child
	case ast.UnNeg:
		ot := a.Analyze(sc, types.NoTypeID, data.Operand)
		if !ot.IsValid() || !a.reg.IsNumeric(ot) {
			if ot.IsValid() {
				diag.ReportError(a.r, diag.SemaTypeMismatch, a.spanOf(id), "unary '-' requires a numeric operand").Emit()
			}
			return a.invalid(id)
		}
		val := a.Ann.Get(data.Operand).Value
		folded := Unknown
		if val.Ok {
			switch val.Kind {
			case ValInt:
				folded = IntValue(negInt(val.Int))
			case ValFloat:
				folded = FloatValue(negFloat(val.Float))
			}
		}
		a.Ann.Set(id, ot, folded)
		return ot
	case ast.UnNot:
		boolT := a.reg.Builtins().Bool
		a.Analyze(sc, boolT, data.Operand)
		val := a.Ann.Get(data.Operand).Value
		folded := Unknown
		if val.Ok && val.Kind == ValBool {
			folded = BoolValue(!val.Bool)
		}
		a.Ann.Set(id, boolT, folded)
		return boolT
	case ast.UnBitNot:
		ot := a.Analyze(sc, types.NoTypeID, data.Operand)
		if !ot.IsValid() || !a.reg.IsInteger(ot) {
			if ot.IsValid() {
				diag.ReportError(a.r, diag.SemaTypeMismatch, a.spanOf(id), "unary '^' requires an integer operand").Emit()
			}
			return a.invalid(id)
		}
		val := a.Ann.Get(data.Operand).Value
		folded := Unknown
		if val.Ok && val.Kind == ValInt {
			folded = IntValue(notInt(val.Int, a.reg.IsSigned(ot), a.reg.BitWidth(ot, a.ptrBits)))
		}
		a.Ann.Set(id, ot, folded)
		return ot
	default:
		Bug("unhandled unary op %v", data.Op)
		return a.invalid(id)
	}
}

func (a *Analyzer) analyzeCast(sc scope.ScopeID, id ast.ExprID) types.TypeID {
	data, _ := a.b.Exprs.Cast(id)
	to := a.tr.Resolve(sc, data.Type)
	from := a.Analyze(sc, types.NoTypeID, data.Target)
	if !to.IsValid() || !from.IsValid() {
		return a.invalid(id)
	}
	val := a.Ann.Get(data.Target).Value
	kind, ok := ClassifyExplicitCast(a.reg, a.ptrBits, from, to, val)
	if !ok {
		diag.ReportError(a.r, diag.SemaInvalidCast, a.spanOf(id),
			fmt.Sprintf("invalid cast from '%s' to '%s'", a.typeName(from), a.typeName(to))).Emit()
		return a.invalid(id)
	}
	a.Ann.Set(id, to, FoldCast(a.reg, a.ptrBits, kind, to, val))
	a.Ann.SetCoercion(id, from, kind)
	return to
}
