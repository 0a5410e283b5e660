package sema

import (
	"fmt"

	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/layout"
	"ember/internal/scope"
	"ember/internal/source"
	"ember/internal/types"
)

// Analyzer is the expression analyzer: it walks one
// declaration's AST at a time in the order internal/depres produces,
// assigning every expression a resolved type and annotating it via
// Annotations. It is single-threaded and holds no state across
// declarations other than the shared scope table, type registry and
// annotation store, all of which it receives from its caller.
type Analyzer struct {
	b      *ast.Builder
	strs   Strings
	reg    *types.Interner
	table  *scope.Table
	tr     *TypeResolver
	Ann    *Annotations
	r      diag.Reporter
	layout *layout.LayoutEngine

	ptrBits uint8

	fnReturnTypes     map[scope.ScopeID]types.TypeID
	inCImportContext  bool

	sigs map[ast.ItemID]FnSignature
}

// FnSignature is a function item's resolved parameter and return types,
// recorded once per definition so a backend can emit a declaration or
// header without re-running type resolution itself.
type FnSignature struct {
	Params []types.TypeID
	Return types.TypeID
}

// NewAnalyzer wires an Analyzer for one compilation unit. layoutEngine
// may be nil (sizeof/alignof then report an "unknown at this target"
// zero layout instead of panicking, per layout.LayoutEngine.LayoutOf's
// own nil receiver handling).
func NewAnalyzer(b *ast.Builder, strs Strings, reg *types.Interner, table *scope.Table, r diag.Reporter, layoutEngine *layout.LayoutEngine, ptrBits uint8) *Analyzer {
	return &Analyzer{
		b:      b,
		strs:   strs,
		reg:    reg,
		table:  table,
		tr:     NewTypeResolver(b, strs, reg, table, r),
		Ann:    NewAnnotations(1 << 8),
		r:      r,
		layout: layoutEngine,

		ptrBits: ptrBits,

		fnReturnTypes: make(map[scope.ScopeID]types.TypeID),
		sigs:          make(map[ast.ItemID]FnSignature),
	}
}

// Result bundles what a backend needs once analysis of a compilation
// unit finishes: the type registry every TypeID in the annotation store
// resolves through, and the annotation store itself. A backend reads
// both; neither is mutated past this point.
type Result struct {
	Types *types.Interner
	Ann   *Annotations
	Sigs  map[ast.ItemID]FnSignature
}

// Result snapshots the analyzer's type registry, annotation store and
// resolved function signatures for a backend to consume. Safe to call
// once AnalyzeProgram has run.
func (a *Analyzer) Result() *Result {
	return &Result{Types: a.reg, Ann: a.Ann, Sigs: a.sigs}
}

func (a *Analyzer) name(id source.StringID) string { return a.strs.MustLookup(id) }

func (a *Analyzer) typeName(id types.TypeID) string {
	return a.reg.Name(id)
}

func (a *Analyzer) invalid(id ast.ExprID) types.TypeID {
	a.Ann.Set(id, types.NoTypeID, Unknown)
	return types.NoTypeID
}

// Analyze implements `analyze(scope, expected_type, node)`: it resolves
// node's own type, folds its constant value when possible, records both
// on the annotation slot, then — if expected is valid and differs from
// the node's natural type — asks the Coercion Classifier whether an
// implicit coercion applies, recording it on the same slot rather than
// splicing a synthetic cast node into the tree (see annotations.go).
func (a *Analyzer) Analyze(sc scope.ScopeID, expected types.TypeID, id ast.ExprID) types.TypeID {
	natural := a.analyzeNode(sc, expected, id)
	if !natural.IsValid() || !expected.IsValid() || natural == expected {
		return natural
	}

	ann := a.Ann.Get(id)
	kind, ok := LegalImplicitCoercion(a.reg, a.ptrBits, natural, expected, ann.Value)
	if !ok {
		diag.ReportError(a.r, diag.SemaTypeMismatch, a.spanOf(id),
			fmt.Sprintf("cannot implicitly convert '%s' to '%s'", a.typeName(natural), a.typeName(expected))).Emit()
		a.Ann.Set(id, types.NoTypeID, Unknown)
		return types.NoTypeID
	}
	val := ann.Value
	if kind != CastNoop && ann.Value.Ok {
		val = FoldCast(a.reg, a.ptrBits, kind, expected, ann.Value)
	}
	a.Ann.Set(id, expected, val)
	if kind != CastNoop {
		a.Ann.SetCoercion(id, natural, kind)
	}
	return expected
}

func (a *Analyzer) spanOf(id ast.ExprID) source.Span {
	if e := a.b.Exprs.Get(id); e != nil {
		return e.Span
	}
	return source.Span{}
}

func (a *Analyzer) analyzeNode(sc scope.ScopeID, expected types.TypeID, id ast.ExprID) types.TypeID {
	expr := a.b.Exprs.Get(id)
	if expr == nil {
		return types.NoTypeID
	}
	switch expr.Kind {
	case ast.ExprIdent:
		return a.analyzeIdent(sc, id)
	case ast.ExprLit:
		return a.analyzeLiteral(sc, expected, id)
	case ast.ExprBinary:
		return a.analyzeBinary(sc, id)
	case ast.ExprUnary:
		return a.analyzeUnary(sc, id)
	case ast.ExprCast:
		return a.analyzeCast(sc, id)
	case ast.ExprCall:
		return a.analyzeCall(sc, id)
	case ast.ExprMethodCall:
		return a.analyzeMethodCall(sc, id)
	case ast.ExprBuiltinCall:
		return a.analyzeBuiltinCall(sc, id)
	case ast.ExprIndex:
		return a.analyzeIndex(sc, id)
	case ast.ExprSlice:
		return a.analyzeSlice(sc, id)
	case ast.ExprMember:
		return a.analyzeMember(sc, id)
	case ast.ExprStructLit:
		return a.analyzeStructLit(sc, id)
	case ast.ExprArrayLit:
		return a.analyzeArrayLit(sc, expected, id)
	default:
		Bug("unhandled expr kind %v", expr.Kind)
		return types.NoTypeID
	}
}

// --- Symbol resolution ---

func (a *Analyzer) analyzeIdent(sc scope.ScopeID, id ast.ExprID) types.TypeID {
	data, _ := a.b.Exprs.Ident(id)
	b, ok := a.table.Lookup(sc, data.Name)
	if !ok {
		diag.ReportError(a.r, diag.SemaUndeclaredIdentifier, a.spanOf(id),
			fmt.Sprintf("use of undeclared identifier '%s'", a.name(data.Name))).Emit()
		return a.invalid(id)
	}
	switch b.Kind {
	case scope.BindVariable, scope.BindFunction:
		a.Ann.Set(id, b.Type, Unknown)
		return b.Type
	case scope.BindType:
		a.Ann.Set(id, a.reg.Builtins().Meta, Value{Kind: ValTypeRef, Ok: true, TypeRef: b.Type})
		return a.reg.Builtins().Meta
	case scope.BindError:
		pe := a.reg.PureError()
		a.Ann.Set(id, pe, Value{Kind: ValErrorTag, Ok: true, ErrName: data.Name})
		return pe
	default:
		diag.ReportError(a.r, diag.SemaUndeclaredIdentifier, a.spanOf(id),
			fmt.Sprintf("use of undeclared identifier '%s'", a.name(data.Name))).Emit()
		return a.invalid(id)
	}
}

// --- Literals ---

func (a *Analyzer) analyzeLiteral(sc scope.ScopeID, expected types.TypeID, id ast.ExprID) types.TypeID {
	data, _ := a.b.Exprs.Literal(id)
	text := a.name(data.Value)

	switch data.Kind {
	case ast.LitInt:
		n, ok := ParseIntLiteral(text)
		if !ok {
			diag.ReportError(a.r, diag.SemaOutOfRangeLiteral, a.spanOf(id),
				fmt.Sprintf("invalid integer literal '%s'", text)).Emit()
			return a.invalid(id)
		}
		val := IntValue(n)
		if expected.IsValid() && a.reg.IsInteger(expected) {
			if !FitsInt(n, a.reg.IsSigned(expected), a.reg.BitWidth(expected, a.ptrBits)) {
				diag.ReportError(a.r, diag.SemaOutOfRangeLiteral, a.spanOf(id),
					fmt.Sprintf("integer value %s cannot be implicitly casted to type '%s'", n.String(), a.typeName(expected))).Emit()
				return a.invalid(id)
			}
			a.Ann.Set(id, expected, val)
			return expected
		}
		if expected.IsValid() && a.reg.IsFloat(expected) {
			a.Ann.Set(id, expected, FloatValue(asFloat(val)))
			return expected
		}
		lit := a.reg.NumericLiteralInt()
		a.Ann.Set(id, lit, val)
		return lit
	case ast.LitFloat:
		f, ok := ParseFloatLiteral(text)
		if !ok {
			diag.ReportError(a.r, diag.SemaOutOfRangeLiteral, a.spanOf(id),
				fmt.Sprintf("invalid float literal '%s'", text)).Emit()
			return a.invalid(id)
		}
		if expected.IsValid() && a.reg.IsFloat(expected) {
			a.Ann.Set(id, expected, FloatValue(f))
			return expected
		}
		lit := a.reg.NumericLiteralFloat()
		a.Ann.Set(id, lit, FloatValue(f))
		return lit
	case ast.LitString:
		elem := a.reg.IntType(false, types.Width8)
		arr := a.reg.ArrayOf(elem, uint32(len(text)))
		a.Ann.Set(id, arr, Value{Kind: ValBytes, Ok: true, Bytes: []byte(text)})
		return arr
	case ast.LitCString:
		elem := a.reg.IntType(false, types.Width8)
		ptr := a.reg.PointerTo(elem, true)
		a.Ann.Set(id, ptr, Value{Kind: ValBytes, Ok: true, Bytes: append([]byte(text), 0)})
		return ptr
	case ast.LitBool:
		a.Ann.Set(id, a.reg.Builtins().Bool, BoolValue(text == "true"))
		return a.reg.Builtins().Bool
	case ast.LitUndefined:
		if expected.IsValid() {
			a.Ann.Set(id, expected, UndefinedValue())
			return expected
		}
		u := a.reg.UndefinedLiteral()
		a.Ann.Set(id, u, UndefinedValue())
		return u
	default:
		Bug("unhandled literal kind %v", data.Kind)
		return a.invalid(id)
	}
}
