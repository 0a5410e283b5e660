package sema

import (
	"fmt"
	"math/big"

	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/scope"
	"ember/internal/types"
)

// analyzeBuiltinCall dispatches over the fixed-arity builtin list.
// Each builtin has its own argument shape, so there is no shared
// call-argument machinery with analyzeCall/analyzeArgs.
func (a *Analyzer) analyzeBuiltinCall(sc scope.ScopeID, id ast.ExprID) types.TypeID {
	data, _ := a.b.Exprs.BuiltinCall(id)
	switch data.Builtin {
	case ast.BuiltinSizeof:
		return a.builtinSizeof(sc, id, data)
	case ast.BuiltinMinValue:
		return a.builtinValueLimit(sc, id, data, false)
	case ast.BuiltinMaxValue:
		return a.builtinValueLimit(sc, id, data, true)
	case ast.BuiltinMemberCount:
		return a.builtinMemberCount(sc, id, data)
	case ast.BuiltinTypeof:
		return a.builtinTypeof(sc, id, data)
	case ast.BuiltinAddWithOverflow, ast.BuiltinSubWithOverflow, ast.BuiltinMulWithOverflow:
		return a.builtinWithOverflow(sc, id, data)
	case ast.BuiltinMemcpy:
		return a.builtinMemcpy(sc, id, data)
	case ast.BuiltinMemset:
		return a.builtinMemset(sc, id, data)
	case ast.BuiltinCInclude, ast.BuiltinCDefine, ast.BuiltinCUndef:
		return a.builtinCDirective(sc, id, data)
	default:
		Bug("unhandled builtin kind %v", data.Builtin)
		return a.invalid(id)
	}
}

func (a *Analyzer) builtinArgType(sc scope.ScopeID, data *ast.ExprBuiltinCallData) types.TypeID {
	if len(data.TypeArgs) == 0 {
		return types.NoTypeID
	}
	return a.tr.Resolve(sc, data.TypeArgs[0])
}

func (a *Analyzer) builtinSizeof(sc scope.ScopeID, id ast.ExprID, data *ast.ExprBuiltinCallData) types.TypeID {
	t := a.builtinArgType(sc, data)
	usize := a.reg.IntType(false, types.WidthPtr)
	if !t.IsValid() {
		return a.invalid(id)
	}
	size, err := a.layout.SizeOf(t)
	if err != nil {
		diag.ReportError(a.r, diag.SemaInfiniteSizeAggregate, a.spanOf(id),
			fmt.Sprintf("sizeof('%s'): %s", a.typeName(t), err)).Emit()
		return a.invalid(id)
	}
	a.Ann.Set(id, usize, IntValue(big.NewInt(int64(size))))
	return usize
}

// builtinValueLimit implements min_value(T)/max_value(T): T must be an
// integer type, and the result is a T-typed constant at its extreme.
func (a *Analyzer) builtinValueLimit(sc scope.ScopeID, id ast.ExprID, data *ast.ExprBuiltinCallData, max bool) types.TypeID {
	t := a.builtinArgType(sc, data)
	if !t.IsValid() || !a.reg.IsInteger(t) {
		diag.ReportError(a.r, diag.SemaTypeMismatch, a.spanOf(id), "min_value/max_value requires an integer type").Emit()
		return a.invalid(id)
	}
	bits := a.reg.BitWidth(t, a.ptrBits)
	signed := a.reg.IsSigned(t)
	limit := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	var v *big.Int
	switch {
	case !signed && !max:
		v = big.NewInt(0)
	case !signed && max:
		v = new(big.Int).Sub(limit, big.NewInt(1))
	case signed && !max:
		v = new(big.Int).Neg(new(big.Int).Rsh(limit, 1))
	default:
		v = new(big.Int).Sub(new(big.Int).Rsh(limit, 1), big.NewInt(1))
	}
	a.Ann.Set(id, t, IntValue(v))
	return t
}

func (a *Analyzer) builtinMemberCount(sc scope.ScopeID, id ast.ExprID, data *ast.ExprBuiltinCallData) types.TypeID {
	t := a.builtinArgType(sc, data)
	usize := a.reg.IntType(false, types.WidthPtr)
	info, ok := a.reg.EnumInfo(t)
	if !t.IsValid() || !ok {
		diag.ReportError(a.r, diag.SemaTypeMismatch, a.spanOf(id), "member_count requires an enum type").Emit()
		return a.invalid(id)
	}
	a.Ann.Set(id, usize, IntValue(bigFromUint32(uint32(len(info.Variants)))))
	return usize
}

// builtinTypeof yields the Meta-typed constant naming expr's own natural
// type; expr is analyzed only to discover its type; its value is not
// otherwise used, matching typeof's "this is a type-level query" status.
func (a *Analyzer) builtinTypeof(sc scope.ScopeID, id ast.ExprID, data *ast.ExprBuiltinCallData) types.TypeID {
	if len(data.Args) != 1 {
		diag.ReportError(a.r, diag.SemaWrongArgumentCount, a.spanOf(id), "typeof takes exactly one argument").Emit()
		return a.invalid(id)
	}
	exprType := a.Analyze(sc, types.NoTypeID, data.Args[0])
	meta := a.reg.Builtins().Meta
	a.Ann.Set(id, meta, Value{Kind: ValTypeRef, Ok: true, TypeRef: exprType})
	return meta
}

// builtinWithOverflow implements add_with_overflow/sub_with_overflow/
// mul_with_overflow(T, a, b, &result) -> bool: T must be integer, and
// result's pointee alignment must match T's.
func (a *Analyzer) builtinWithOverflow(sc scope.ScopeID, id ast.ExprID, data *ast.ExprBuiltinCallData) types.TypeID {
	boolType := a.reg.Builtins().Bool
	t := a.builtinArgType(sc, data)
	if !t.IsValid() || !a.reg.IsInteger(t) {
		diag.ReportError(a.r, diag.SemaTypeMismatch, a.spanOf(id), "*_with_overflow requires an integer type").Emit()
		return a.invalid(id)
	}
	if len(data.Args) != 3 {
		diag.ReportError(a.r, diag.SemaWrongArgumentCount, a.spanOf(id), "*_with_overflow takes two operands and a result pointer").Emit()
		return a.invalid(id)
	}
	a.Analyze(sc, t, data.Args[0])
	a.Analyze(sc, t, data.Args[1])

	resultType := a.Analyze(sc, types.NoTypeID, data.Args[2])
	if resultType.IsValid() {
		if a.reg.KindOf(resultType) != types.KindPointer {
			diag.ReportError(a.r, diag.SemaTypeMismatch, a.spanOf(id), "*_with_overflow's last argument must be a pointer").Emit()
		} else if pointee := a.reg.MustLookup(resultType).Elem; pointee != t {
			diag.ReportError(a.r, diag.SemaMisalignedOverflowPointer, a.spanOf(id),
				fmt.Sprintf("result pointer's pointee type '%s' does not match '%s'", a.typeName(pointee), a.typeName(t))).Emit()
		}
	}
	a.Ann.Set(id, boolType, Unknown)
	return boolType
}

func (a *Analyzer) builtinMemcpy(sc scope.ScopeID, id ast.ExprID, data *ast.ExprBuiltinCallData) types.TypeID {
	if len(data.Args) != 3 {
		diag.ReportError(a.r, diag.SemaWrongArgumentCount, a.spanOf(id), "memcpy takes (dst, src, len)").Emit()
		return a.invalid(id)
	}
	a.Analyze(sc, types.NoTypeID, data.Args[0])
	a.Analyze(sc, types.NoTypeID, data.Args[1])
	usize := a.reg.IntType(false, types.WidthPtr)
	a.Analyze(sc, usize, data.Args[2])
	void := a.reg.Builtins().Void
	a.Ann.Set(id, void, Unknown)
	return void
}

func (a *Analyzer) builtinMemset(sc scope.ScopeID, id ast.ExprID, data *ast.ExprBuiltinCallData) types.TypeID {
	if len(data.Args) != 3 {
		diag.ReportError(a.r, diag.SemaWrongArgumentCount, a.spanOf(id), "memset takes (dst, byte, len)").Emit()
		return a.invalid(id)
	}
	a.Analyze(sc, types.NoTypeID, data.Args[0])
	a.Analyze(sc, a.reg.IntType(false, types.Width8), data.Args[1])
	usize := a.reg.IntType(false, types.WidthPtr)
	a.Analyze(sc, usize, data.Args[2])
	void := a.reg.Builtins().Void
	a.Ann.Set(id, void, Unknown)
	return void
}

// builtinCDirective implements c_include/c_define/c_undef: legal only
// while the C-import context is on (see SetCImportContext). Nothing in
// this repository turns it on, since the driver reads @c_import blocks'
// directives itself (driver/cimport.go), so the analyzer reports these
// builtins wherever it meets them.
func (a *Analyzer) builtinCDirective(sc scope.ScopeID, id ast.ExprID, data *ast.ExprBuiltinCallData) types.TypeID {
	if !a.inCImportContext {
		diag.ReportError(a.r, diag.SemaCImportBuiltinOutsideContext, a.spanOf(id),
			"c_include/c_define/c_undef may only appear inside a C-import block").Emit()
		return a.invalid(id)
	}
	for _, arg := range data.Args {
		a.Analyze(sc, types.NoTypeID, arg)
	}
	void := a.reg.Builtins().Void
	a.Ann.Set(id, void, Unknown)
	return void
}

// SetCImportContext toggles whether c_include/c_define/c_undef are
// currently legal. It has no caller in this repository; the context is
// off by default.
func (a *Analyzer) SetCImportContext(on bool) { a.inCImportContext = on }
