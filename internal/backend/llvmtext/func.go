package llvmtext

import (
	"fmt"

	"ember/internal/ast"
	"ember/internal/sema"
	"ember/internal/source"
	"ember/internal/types"
)

// ssaValue is a lowered expression's current register and resolved type.
type ssaValue struct {
	reg string
	ty  types.TypeID
}

// funcEmitter lowers one function body in a straight line: it tracks a
// temporary-register counter and the current binding of each local name
// to its last-computed SSA value. Control-flow statements are not
// lowered (see lowerStmt) since the shipped backend's scope stops at
// straight-line integer/float arithmetic and ret.
type funcEmitter struct {
	e      *Emitter
	b      *ast.Builder
	result *sema.Result
	env    map[source.StringID]ssaValue
	tmp    int
}

func (fe *funcEmitter) next() string {
	fe.tmp++
	return fmt.Sprintf("%%t%d", fe.tmp)
}

// lowerStmt lowers id and reports whether it ended in a terminator
// instruction (a ret), so the caller knows not to emit its own default
// one. Statement kinds outside the supported subset are noted in the
// output and treated as non-terminating no-ops.
func (fe *funcEmitter) lowerStmt(id ast.StmtID) (terminated bool, err error) {
	stmt := fe.b.Stmts.Get(id)
	if stmt == nil {
		return false, nil
	}
	switch stmt.Kind {
	case ast.StmtBlock:
		data, _ := fe.b.Stmts.Block(id)
		for _, s := range data.Stmts {
			terminated, err = fe.lowerStmt(s)
			if err != nil {
				return false, err
			}
			if terminated {
				return true, nil
			}
		}
		return false, nil

	case ast.StmtLet:
		data, _ := fe.b.Stmts.Let(id)
		if !data.Value.IsValid() {
			return false, nil
		}
		v, err := fe.lowerExpr(data.Value)
		if err != nil {
			return false, err
		}
		fe.env[data.Name] = v
		return false, nil

	case ast.StmtReturn:
		data, _ := fe.b.Stmts.Return(id)
		if !data.Value.IsValid() {
			fe.e.buf.WriteString("  ret void\n")
			return true, nil
		}
		v, err := fe.lowerExpr(data.Value)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(&fe.e.buf, "  ret %s %s\n", fe.e.llvmType(fe.result.Types, v.ty), v.reg)
		return true, nil

	case ast.StmtExpr:
		data, _ := fe.b.Stmts.Expr(id)
		if _, err := fe.lowerExpr(data.Expr); err != nil {
			return false, err
		}
		return false, nil

	default:
		fmt.Fprintf(&fe.e.buf, "  ; statement kind %d not lowered by this backend\n", stmt.Kind)
		return false, nil
	}
}

// emitDefaultReturn emits a zero-valued return of ret, guaranteeing a
// function body this emitter could not fully lower still closes as
// valid LLVM-IR.
func (fe *funcEmitter) emitDefaultReturn(ret types.TypeID, reg *types.Interner) {
	if reg.KindOf(ret) == types.KindVoid {
		fe.e.buf.WriteString("  ret void\n")
		return
	}
	zero := "0"
	if reg.IsFloat(ret) {
		zero = "0.0"
	}
	fmt.Fprintf(&fe.e.buf, "  ret %s %s\n", fe.e.llvmType(fe.result.Types, ret), zero)
}

// lowerExpr lowers the supported expression subset (identifiers,
// int/float/bool literals, unary and binary arithmetic, and integer/
// float casts) to a value already materialized in a register. Anything
// else yields the type's zero value rather than failing the whole
// module, since this backend's job is proving the interface boundary,
// not full code generation.
func (fe *funcEmitter) lowerExpr(id ast.ExprID) (ssaValue, error) {
	expr := fe.b.Exprs.Get(id)
	if expr == nil {
		return ssaValue{}, fmt.Errorf("llvmtext: invalid expression %d", id)
	}
	ty := fe.result.Ann.TypeOf(id)

	switch expr.Kind {
	case ast.ExprIdent:
		data, _ := fe.b.Exprs.Ident(id)
		if v, ok := fe.env[data.Name]; ok {
			return v, nil
		}
		return fe.zero(ty), nil

	case ast.ExprLit:
		data, _ := fe.b.Exprs.Literal(id)
		return fe.lowerLiteral(data, ty)

	case ast.ExprUnary:
		data, _ := fe.b.Exprs.Unary(id)
		return fe.lowerUnary(data, ty)

	case ast.ExprBinary:
		data, _ := fe.b.Exprs.Binary(id)
		return fe.lowerBinary(data, ty)

	case ast.ExprCast:
		data, _ := fe.b.Exprs.Cast(id)
		return fe.lowerCast(data, ty)

	default:
		return fe.zero(ty), nil
	}
}

func (fe *funcEmitter) zero(ty types.TypeID) ssaValue {
	v := "0"
	if fe.result.Types.IsFloat(ty) {
		v = "0.0"
	}
	return ssaValue{reg: v, ty: ty}
}

func (fe *funcEmitter) lowerLiteral(data *ast.ExprLiteralData, ty types.TypeID) (ssaValue, error) {
	switch data.Kind {
	case ast.LitInt, ast.LitFloat:
		return ssaValue{reg: fe.e.name(data.Value), ty: ty}, nil
	case ast.LitBool:
		if fe.e.name(data.Value) == "true" {
			return ssaValue{reg: "1", ty: ty}, nil
		}
		return ssaValue{reg: "0", ty: ty}, nil
	default:
		return fe.zero(ty), nil
	}
}

func (fe *funcEmitter) lowerUnary(data *ast.ExprUnaryData, ty types.TypeID) (ssaValue, error) {
	operand, err := fe.lowerExpr(data.Operand)
	if err != nil {
		return ssaValue{}, err
	}
	llty := fe.e.llvmType(fe.result.Types, ty)
	dst := fe.next()
	switch data.Op {
	case ast.UnNeg:
		if fe.result.Types.IsFloat(ty) {
			fmt.Fprintf(&fe.e.buf, "  %s = fneg %s %s\n", dst, llty, operand.reg)
		} else {
			fmt.Fprintf(&fe.e.buf, "  %s = sub %s 0, %s\n", dst, llty, operand.reg)
		}
	case ast.UnBitNot:
		fmt.Fprintf(&fe.e.buf, "  %s = xor %s %s, -1\n", dst, llty, operand.reg)
	case ast.UnNot:
		fmt.Fprintf(&fe.e.buf, "  %s = xor %s %s, 1\n", dst, llty, operand.reg)
	default:
		return fe.zero(ty), nil
	}
	return ssaValue{reg: dst, ty: ty}, nil
}

func (fe *funcEmitter) lowerBinary(data *ast.ExprBinaryData, ty types.TypeID) (ssaValue, error) {
	left, err := fe.lowerExpr(data.Left)
	if err != nil {
		return ssaValue{}, err
	}
	right, err := fe.lowerExpr(data.Right)
	if err != nil {
		return ssaValue{}, err
	}
	llty := fe.e.llvmType(fe.result.Types, ty)
	isFloat := fe.result.Types.IsFloat(ty)
	isSigned := fe.result.Types.IsSigned(ty)

	op, isCompare := binaryOpcode(data.Op, isFloat, isSigned)
	if op == "" {
		return fe.zero(ty), nil
	}
	dst := fe.next()
	if isCompare {
		fmt.Fprintf(&fe.e.buf, "  %s = %s %s %s, %s\n", dst, op, fe.e.llvmType(fe.result.Types, fe.result.Ann.TypeOf(data.Left)), left.reg, right.reg)
		return ssaValue{reg: dst, ty: ty}, nil
	}
	fmt.Fprintf(&fe.e.buf, "  %s = %s %s %s, %s\n", dst, op, llty, left.reg, right.reg)
	return ssaValue{reg: dst, ty: ty}, nil
}

// binaryOpcode maps a binary operator to its LLVM-IR mnemonic, reporting
// whether it is an icmp/fcmp comparison (whose operand type differs from
// the result type, which is always i1).
func binaryOpcode(op ast.ExprBinaryOp, isFloat, isSigned bool) (string, bool) {
	switch op {
	case ast.BinAdd:
		if isFloat {
			return "fadd", false
		}
		return "add", false
	case ast.BinSub:
		if isFloat {
			return "fsub", false
		}
		return "sub", false
	case ast.BinMul:
		if isFloat {
			return "fmul", false
		}
		return "mul", false
	case ast.BinDiv:
		if isFloat {
			return "fdiv", false
		}
		if isSigned {
			return "sdiv", false
		}
		return "udiv", false
	case ast.BinMod:
		if isFloat {
			return "frem", false
		}
		if isSigned {
			return "srem", false
		}
		return "urem", false
	case ast.BinBitAnd:
		return "and", false
	case ast.BinBitOr:
		return "or", false
	case ast.BinBitXor:
		return "xor", false
	case ast.BinShl:
		return "shl", false
	case ast.BinShr:
		if isSigned {
			return "ashr", false
		}
		return "lshr", false
	case ast.BinEq:
		if isFloat {
			return "fcmp oeq", true
		}
		return "icmp eq", true
	case ast.BinNotEq:
		if isFloat {
			return "fcmp one", true
		}
		return "icmp ne", true
	case ast.BinLess:
		if isFloat {
			return "fcmp olt", true
		}
		if isSigned {
			return "icmp slt", true
		}
		return "icmp ult", true
	case ast.BinGreater:
		if isFloat {
			return "fcmp ogt", true
		}
		if isSigned {
			return "icmp sgt", true
		}
		return "icmp ugt", true
	default:
		return "", false
	}
}

func (fe *funcEmitter) lowerCast(data *ast.ExprCastData, ty types.TypeID) (ssaValue, error) {
	src, err := fe.lowerExpr(data.Target)
	if err != nil {
		return ssaValue{}, err
	}
	fromTy := fe.result.Ann.TypeOf(data.Target)
	fromLL := fe.e.llvmType(fe.result.Types, fromTy)
	toLL := fe.e.llvmType(fe.result.Types, ty)
	if fromLL == toLL {
		return ssaValue{reg: src.reg, ty: ty}, nil
	}

	fromFloat, toFloat := fe.result.Types.IsFloat(fromTy), fe.result.Types.IsFloat(ty)
	fromWidth, toWidth := fe.result.Types.BitWidth(fromTy, fe.e.ptrBits()), fe.result.Types.BitWidth(ty, fe.e.ptrBits())
	dst := fe.next()

	switch {
	case fromFloat && toFloat:
		if toWidth > fromWidth {
			fmt.Fprintf(&fe.e.buf, "  %s = fpext %s %s to %s\n", dst, fromLL, src.reg, toLL)
		} else {
			fmt.Fprintf(&fe.e.buf, "  %s = fptrunc %s %s to %s\n", dst, fromLL, src.reg, toLL)
		}
	case fromFloat && !toFloat:
		if fe.result.Types.IsSigned(ty) {
			fmt.Fprintf(&fe.e.buf, "  %s = fptosi %s %s to %s\n", dst, fromLL, src.reg, toLL)
		} else {
			fmt.Fprintf(&fe.e.buf, "  %s = fptoui %s %s to %s\n", dst, fromLL, src.reg, toLL)
		}
	case !fromFloat && toFloat:
		if fe.result.Types.IsSigned(fromTy) {
			fmt.Fprintf(&fe.e.buf, "  %s = sitofp %s %s to %s\n", dst, fromLL, src.reg, toLL)
		} else {
			fmt.Fprintf(&fe.e.buf, "  %s = uitofp %s %s to %s\n", dst, fromLL, src.reg, toLL)
		}
	case toWidth > fromWidth:
		if fe.result.Types.IsSigned(fromTy) {
			fmt.Fprintf(&fe.e.buf, "  %s = sext %s %s to %s\n", dst, fromLL, src.reg, toLL)
		} else {
			fmt.Fprintf(&fe.e.buf, "  %s = zext %s %s to %s\n", dst, fromLL, src.reg, toLL)
		}
	case toWidth < fromWidth:
		fmt.Fprintf(&fe.e.buf, "  %s = trunc %s %s to %s\n", dst, fromLL, src.reg, toLL)
	default:
		fmt.Fprintf(&fe.e.buf, "  %s = bitcast %s %s to %s\n", dst, fromLL, src.reg, toLL)
	}
	return ssaValue{reg: dst, ty: ty}, nil
}
