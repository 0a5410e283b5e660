package sema

import (
	"math/big"

	"ember/internal/ast"
	"ember/internal/source"
	"ember/internal/types"
)

// ValueKind discriminates the constant-value lattice:
// arbitrary-precision numbers, bools, aggregates, pointers into constant
// memory, function references, type references, optional/error
// wrappers, and the undefined literal.
type ValueKind uint8

const (
	ValInvalid ValueKind = iota
	ValBool
	ValInt
	ValFloat
	ValBytes     // a string literal's backing bytes (zig-string or C-string)
	ValAggregate // struct or array literal
	ValPointer   // address of a byte within another constant's backing store
	ValFuncRef
	ValTypeRef
	ValOptionalSome
	ValOptionalNone
	ValErrorTag // a pure-error value, naming the declared error
	ValErrorOK  // the non-error side of an error-union constant
	ValUndefined
)

// Value is one constant-value-lattice entry. Ok reports whether the
// value is known at analysis time; Undef additionally marks the
// explicit undefined literal (Ok is still true for it, per spec's "ok is
// also true, but the backend is permitted to emit a poison value").
type Value struct {
	Kind ValueKind
	Ok   bool
	Undef bool

	Bool  bool
	Int   *big.Int
	Float *big.Float
	Bytes []byte

	Elems []Value // ValAggregate

	PointerTo *Value // ValPointer: the constant this value's address refers to
	PointerOff int

	FuncRef ast.ItemID
	TypeRef types.TypeID
	ErrName source.StringID

	Inner *Value // ValOptionalSome / ValErrorOK payload
}

// Unknown is the non-constant sentinel: Ok is false, every other field is
// zero. It is never itself an error; §4.7 "non-constant operands leave the
// result with ok=false; this is never an error by itself."
var Unknown = Value{}

func BoolValue(b bool) Value { return Value{Kind: ValBool, Ok: true, Bool: b} }

func IntValue(n *big.Int) Value { return Value{Kind: ValInt, Ok: true, Int: n} }

func FloatValue(f *big.Float) Value { return Value{Kind: ValFloat, Ok: true, Float: f} }

func UndefinedValue() Value { return Value{Kind: ValUndefined, Ok: true, Undef: true} }

// FitsInt reports whether v (an integer constant) fits an integer type of
// the given width and signedness, for the out-of-range literal check.
func FitsInt(v *big.Int, signed bool, bits uint8) bool {
	if v == nil {
		return false
	}
	if !signed && v.Sign() < 0 {
		return false
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	if signed {
		half := new(big.Int).Rsh(limit, 1)
		neg := new(big.Int).Neg(half)
		return v.Cmp(neg) >= 0 && v.Cmp(half) < 0
	}
	return v.Cmp(limit) < 0
}
