package sema

import (
	"fmt"

	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/scope"
	"ember/internal/types"
)

// analyzeCall handles a call expression: the callee is either a
// type-valued expression (a cast written as call syntax), or an ordinary
// function symbol. Builtins are parsed into their own ExprBuiltinCall
// node and never reach here.
func (a *Analyzer) analyzeCall(sc scope.ScopeID, id ast.ExprID) types.TypeID {
	data, _ := a.b.Exprs.Call(id)
	targetType := a.analyzeNode(sc, types.NoTypeID, data.Target)
	targetAnn := a.Ann.Get(data.Target)

	if targetAnn.Value.Kind == ValTypeRef {
		to := targetAnn.Value.TypeRef
		if len(data.Args) != 1 {
			diag.ReportError(a.r, diag.SemaWrongArgumentCount, a.spanOf(id), "cast requires exactly one argument").Emit()
			return a.invalid(id)
		}
		from := a.Analyze(sc, types.NoTypeID, data.Args[0].Value)
		if !from.IsValid() || !to.IsValid() {
			return a.invalid(id)
		}
		val := a.Ann.Get(data.Args[0].Value).Value
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

	if !targetType.IsValid() {
		return a.invalid(id)
	}
	if a.reg.KindOf(targetType) != types.KindFunction {
		diag.ReportError(a.r, diag.SemaTypeMismatch, a.spanOf(id), "expression is not callable").Emit()
		return a.invalid(id)
	}
	fn, _ := a.reg.FnInfo(targetType)
	return a.analyzeArgs(sc, id, fn, data.Args, 0)
}

// analyzeArgs type-checks a call's argument list against fn's
// parameters, skipping the first skip parameters (used by method calls,
// whose receiver already filled parameter 0).
func (a *Analyzer) analyzeArgs(sc scope.ScopeID, id ast.ExprID, fn *types.FnInfo, args []ast.CallArg, skip int) types.TypeID {
	params := fn.Params[skip:]
	if len(args) < len(params) || (!fn.Variadic && len(args) > len(params)) {
		diag.ReportError(a.r, diag.SemaWrongArgumentCount, a.spanOf(id),
			fmt.Sprintf("expected %d argument(s), got %d", len(params), len(args))).Emit()
	}
	for i, arg := range args {
		expected := types.NoTypeID
		if i < len(params) {
			expected = params[i]
		}
		a.Analyze(sc, expected, arg.Value)
	}
	a.Ann.Set(id, fn.Return, Unknown)
	return fn.Return
}

// analyzeMethodCall implements "x.f(args)" as uniform call syntax: f is
// looked up as an ordinary function whose first parameter accepts x's
// (possibly auto-dereferenced) type, and x becomes that first argument.
func (a *Analyzer) analyzeMethodCall(sc scope.ScopeID, id ast.ExprID) types.TypeID {
	data, _ := a.b.Exprs.MethodCall(id)
	recvType := a.Analyze(sc, types.NoTypeID, data.Receiver)
	if !recvType.IsValid() {
		return a.invalid(id)
	}

	b, ok := a.table.Lookup(sc, data.Method)
	if !ok || b.Kind != scope.BindFunction {
		diag.ReportError(a.r, diag.SemaUndeclaredIdentifier, a.spanOf(id),
			fmt.Sprintf("use of undeclared identifier '%s'", a.name(data.Method))).Emit()
		return a.invalid(id)
	}
	fn, _ := a.reg.FnInfo(b.Type)
	if fn == nil || len(fn.Params) == 0 {
		diag.ReportError(a.r, diag.SemaWrongArgumentCount, a.spanOf(id),
			fmt.Sprintf("'%s' takes no receiver argument", a.name(data.Method))).Emit()
		return a.invalid(id)
	}
	recvExpected := fn.Params[0]
	recvAnn := a.Ann.Get(data.Receiver)
	kind, fits := LegalImplicitCoercion(a.reg, a.ptrBits, recvType, recvExpected, recvAnn.Value)
	if !fits {
		diag.ReportError(a.r, diag.SemaTypeMismatch, a.spanOf(id),
			fmt.Sprintf("cannot use '%s' as receiver of type '%s'", a.typeName(recvType), a.typeName(recvExpected))).Emit()
	} else if kind != CastNoop {
		a.Ann.SetCoercion(data.Receiver, recvType, kind)
	}
	return a.analyzeArgs(sc, id, fn, data.Args, 1)
}

// analyzeIndex implements array/pointer/slice subscript: the index
// must coerce to isize, and the
// result is the element type.
func (a *Analyzer) analyzeIndex(sc scope.ScopeID, id ast.ExprID) types.TypeID {
	data, _ := a.b.Exprs.Index(id)
	targetType := a.Analyze(sc, types.NoTypeID, data.Target)
	isize := a.reg.IntType(true, types.WidthPtr)
	a.Analyze(sc, isize, data.Index)

	if !targetType.IsValid() {
		return a.invalid(id)
	}
	switch a.reg.KindOf(targetType) {
	case types.KindArray, types.KindPointer, types.KindSlice:
		child := a.reg.MustLookup(targetType).Elem
		a.Ann.Set(id, child, Unknown)
		return child
	default:
		diag.ReportError(a.r, diag.SemaTypeMismatch, a.spanOf(id),
			fmt.Sprintf("type '%s' does not support indexing", a.typeName(targetType))).Emit()
		return a.invalid(id)
	}
}

// analyzeSlice implements "a[start..end]": start must coerce to isize,
// end (when present) must too, and the result is a slice of the
// target's element type, const per the syntax. A missing end defaults
// to the source's length, resolved by the backend rather than here.
func (a *Analyzer) analyzeSlice(sc scope.ScopeID, id ast.ExprID) types.TypeID {
	data, _ := a.b.Exprs.Slice(id)
	targetType := a.Analyze(sc, types.NoTypeID, data.Target)
	isize := a.reg.IntType(true, types.WidthPtr)
	a.Analyze(sc, isize, data.Start)
	if data.End.IsValid() {
		a.Analyze(sc, isize, data.End)
	}

	if !targetType.IsValid() {
		return a.invalid(id)
	}

	var elem types.TypeID
	switch a.reg.KindOf(targetType) {
	case types.KindArray, types.KindPointer, types.KindSlice:
		elem = a.reg.MustLookup(targetType).Elem
	default:
		diag.ReportError(a.r, diag.SemaTypeMismatch, a.spanOf(id),
			fmt.Sprintf("slice of non array type '%s'", a.typeName(targetType))).Emit()
		return a.invalid(id)
	}

	result := a.reg.SliceOf(elem, data.Const)
	a.Ann.Set(id, result, Unknown)
	return result
}

// analyzeMember implements "x.f" field access: struct
// field lookup with one level of pointer auto-dereference, the array
// synthetic len/ptr fields, slice len/ptr, and enum variant access
// through a type-valued target.
func (a *Analyzer) analyzeMember(sc scope.ScopeID, id ast.ExprID) types.TypeID {
	data, _ := a.b.Exprs.Member(id)
	targetType := a.Analyze(sc, types.NoTypeID, data.Target)
	fieldName := a.name(data.Field)

	if !targetType.IsValid() {
		return a.invalid(id)
	}

	targetAnn := a.Ann.Get(data.Target)
	if targetAnn.Value.Kind == ValTypeRef {
		return a.analyzeEnumVariant(id, targetAnn.Value.TypeRef, fieldName)
	}

	kind := a.reg.KindOf(targetType)
	structType := targetType
	if kind == types.KindPointer {
		structType = a.reg.MustLookup(targetType).Elem
		kind = a.reg.KindOf(structType)
	}

	switch kind {
	case types.KindStruct:
		info, _ := a.reg.StructInfo(structType)
		if info != nil {
			for _, f := range info.Fields {
				if f.Name == fieldName {
					a.Ann.Set(id, f.Type, Unknown)
					return f.Type
				}
			}
		}
		diag.ReportError(a.r, diag.SemaMissingStructField, a.spanOf(id),
			fmt.Sprintf("no field '%s' on '%s'", fieldName, a.typeName(structType))).Emit()
		return a.invalid(id)
	case types.KindArray:
		if fieldName == "len" {
			isize := a.reg.IntType(true, types.WidthPtr)
			a.Ann.Set(id, isize, IntValue(bigFromUint32(a.reg.MustLookup(structType).Count)))
			return isize
		}
		if fieldName == "ptr" {
			ptr := a.reg.PointerTo(a.reg.MustLookup(structType).Elem, false)
			a.Ann.Set(id, ptr, Unknown)
			return ptr
		}
	case types.KindSlice:
		if fieldName == "len" {
			isize := a.reg.IntType(true, types.WidthPtr)
			a.Ann.Set(id, isize, Unknown)
			return isize
		}
		if fieldName == "ptr" {
			t := a.reg.MustLookup(structType)
			ptr := a.reg.PointerTo(t.Elem, t.Const)
			a.Ann.Set(id, ptr, Unknown)
			return ptr
		}
	}
	diag.ReportError(a.r, diag.SemaMissingStructField, a.spanOf(id),
		fmt.Sprintf("no field '%s' on '%s'", fieldName, a.typeName(targetType))).Emit()
	return a.invalid(id)
}

func (a *Analyzer) analyzeEnumVariant(id ast.ExprID, enumType types.TypeID, fieldName string) types.TypeID {
	info, ok := a.reg.EnumInfo(enumType)
	if !ok {
		diag.ReportError(a.r, diag.SemaTypeMismatch, a.spanOf(id), "not an enum type").Emit()
		return a.invalid(id)
	}
	for idx, v := range info.Variants {
		if v.Name == fieldName {
			if v.Payload.IsValid() {
				// A payload-carrying variant requires a call to fully
				// construct; here we yield the enum type itself so a
				// wrapping ExprCall can still type-check, without a
				// constant value (the payload isn't known yet).
				a.Ann.Set(id, enumType, Unknown)
				return enumType
			}
			a.Ann.Set(id, enumType, IntValue(bigFromUint32(uint32(idx))))
			return enumType
		}
	}
	diag.ReportError(a.r, diag.SemaMissingStructField, a.spanOf(id),
		fmt.Sprintf("enum '%s' has no variant '%s'", a.typeName(enumType), fieldName)).Emit()
	return a.invalid(id)
}

// analyzeStructLit handles the struct-literal case: exactly one value
// per field, each coerced to the field
// type; missing or duplicate fields are errors.
func (a *Analyzer) analyzeStructLit(sc scope.ScopeID, id ast.ExprID) types.TypeID {
	data, _ := a.b.Exprs.StructLit(id)
	typ := a.tr.Resolve(sc, data.Type)
	if !typ.IsValid() {
		for _, f := range data.Fields {
			a.Analyze(sc, types.NoTypeID, f.Value)
		}
		return a.invalid(id)
	}
	info, ok := a.reg.StructInfo(typ)
	if !ok {
		diag.ReportError(a.r, diag.SemaTypeMismatch, a.spanOf(id),
			fmt.Sprintf("'%s' is not a struct type", a.typeName(typ))).Emit()
		return a.invalid(id)
	}

	seen := make(map[string]bool, len(data.Fields))
	elems := make([]Value, len(info.Fields))
	allConst := true
	for _, lf := range data.Fields {
		name := a.name(lf.Name)
		var fieldType types.TypeID
		fieldIdx := -1
		for i, f := range info.Fields {
			if f.Name == name {
				fieldType = f.Type
				fieldIdx = i
				break
			}
		}
		if fieldIdx < 0 {
			diag.ReportError(a.r, diag.SemaMissingStructField, a.spanOf(id),
				fmt.Sprintf("'%s' has no field named '%s'", a.typeName(typ), name)).Emit()
			a.Analyze(sc, types.NoTypeID, lf.Value)
			continue
		}
		if seen[name] {
			diag.ReportError(a.r, diag.SemaDuplicateStructField, a.spanOf(id),
				fmt.Sprintf("duplicate field '%s'", name)).Emit()
		}
		seen[name] = true
		a.Analyze(sc, fieldType, lf.Value)
		v := a.Ann.Get(lf.Value).Value
		if !v.Ok {
			allConst = false
		}
		elems[fieldIdx] = v
	}
	for _, f := range info.Fields {
		if !seen[f.Name] {
			diag.ReportError(a.r, diag.SemaMissingStructField, a.spanOf(id),
				fmt.Sprintf("missing field '%s'", f.Name)).Emit()
			allConst = false
		}
	}

	val := Unknown
	if allConst {
		val = FoldAggregate(elems)
	}
	a.Ann.Set(id, typ, val)
	return typ
}

// analyzeArrayLit handles the array-literal case: elements
// coerce to a common child type and the literal's type becomes
// [N]child. expected, if an array type, pins the child type up front.
func (a *Analyzer) analyzeArrayLit(sc scope.ScopeID, expected types.TypeID, id ast.ExprID) types.TypeID {
	data, _ := a.b.Exprs.ArrayLit(id)

	childExpected := types.NoTypeID
	if expected.IsValid() && a.reg.KindOf(expected) == types.KindArray {
		childExpected = a.reg.MustLookup(expected).Elem
	}

	if len(data.Elements) == 0 {
		if childExpected.IsValid() {
			arr := a.reg.ArrayOf(childExpected, 0)
			a.Ann.Set(id, arr, FoldAggregate(nil))
			return arr
		}
		diag.ReportError(a.r, diag.SemaTypeMismatch, a.spanOf(id), "cannot infer element type of empty array literal").Emit()
		return a.invalid(id)
	}

	child := childExpected
	if !child.IsValid() {
		child = a.Analyze(sc, types.NoTypeID, data.Elements[0])
	} else {
		a.Analyze(sc, child, data.Elements[0])
	}
	if !child.IsValid() {
		for _, e := range data.Elements[1:] {
			a.Analyze(sc, types.NoTypeID, e)
		}
		return a.invalid(id)
	}

	elems := make([]Value, len(data.Elements))
	elems[0] = a.Ann.Get(data.Elements[0]).Value
	allConst := elems[0].Ok
	for i, e := range data.Elements[1:] {
		a.Analyze(sc, child, e)
		v := a.Ann.Get(e).Value
		elems[i+1] = v
		if !v.Ok {
			allConst = false
		}
	}

	arr := a.reg.ArrayOf(child, uint32(len(data.Elements)))
	val := Unknown
	if allConst {
		val = FoldAggregate(elems)
	}
	a.Ann.Set(id, arr, val)
	return arr
}
