package diagfmt

import (
	"fmt"
	"strings"

	"ember/internal/ast"
	"ember/internal/source"
)

const exprInlineMaxDepth = 32

// formatExprSummary produces a compact diagnostic summary for exprID, e.g.
// "expr#7: (a + b)". An invalid ID renders as "<none>".
func formatExprSummary(b *ast.Builder, strs *source.Interner, exprID ast.ExprID) string {
	if !exprID.IsValid() {
		return "<none>"
	}
	inline := formatExprInlineDepth(b, strs, exprID, 0)
	if inline == "" {
		inline = "<invalid>"
	}
	return fmt.Sprintf("expr#%d: %s", uint32(exprID), inline)
}

// formatExprInline renders exprID as a compact, human-readable expression.
func formatExprInline(b *ast.Builder, strs *source.Interner, exprID ast.ExprID) string {
	return formatExprInlineDepth(b, strs, exprID, 0)
}

func formatExprInlineDepth(b *ast.Builder, strs *source.Interner, exprID ast.ExprID, depth int) string {
	if !exprID.IsValid() {
		return "<none>"
	}
	if b == nil || b.Exprs == nil {
		return "<invalid>"
	}
	if depth >= exprInlineMaxDepth {
		return "..."
	}

	expr := b.Exprs.Get(exprID)
	if expr == nil {
		return "<invalid>"
	}

	switch expr.Kind {
	case ast.ExprIdent:
		data, ok := b.Exprs.Ident(exprID)
		if !ok {
			return "<invalid-ident>"
		}
		return lookupStringOr(strs, data.Name, "<ident>")

	case ast.ExprLit:
		data, ok := b.Exprs.Literal(exprID)
		if !ok {
			return "<invalid-literal>"
		}
		switch data.Kind {
		case ast.LitUndefined:
			return "undefined"
		default:
			return lookupStringOr(strs, data.Value, "<literal>")
		}

	case ast.ExprUnary:
		data, ok := b.Exprs.Unary(exprID)
		if !ok {
			return "<invalid-unary>"
		}
		operand := wrapExprIfNeeded(b, data.Operand, formatExprInlineDepth(b, strs, data.Operand, depth+1))
		return data.Op.String() + operand

	case ast.ExprBinary:
		data, ok := b.Exprs.Binary(exprID)
		if !ok {
			return "<invalid-binary>"
		}
		left := wrapExprIfNeeded(b, data.Left, formatExprInlineDepth(b, strs, data.Left, depth+1))
		right := wrapExprIfNeeded(b, data.Right, formatExprInlineDepth(b, strs, data.Right, depth+1))
		return fmt.Sprintf("(%s %s %s)", left, data.Op.String(), right)

	case ast.ExprCast:
		data, ok := b.Exprs.Cast(exprID)
		if !ok {
			return "<invalid-cast>"
		}
		target := wrapExprIfNeeded(b, data.Target, formatExprInlineDepth(b, strs, data.Target, depth+1))
		return fmt.Sprintf("%s(%s)", formatTypeExprInline(b, strs, data.Type), target)

	case ast.ExprCall:
		data, ok := b.Exprs.Call(exprID)
		if !ok {
			return "<invalid-call>"
		}
		target := wrapExprIfNeeded(b, data.Target, formatExprInlineDepth(b, strs, data.Target, depth+1))
		args := make([]string, 0, len(data.Args))
		for _, a := range data.Args {
			args = append(args, formatExprInlineDepth(b, strs, a.Value, depth+1))
		}
		return fmt.Sprintf("%s(%s)", target, strings.Join(args, ", "))

	case ast.ExprMethodCall:
		data, ok := b.Exprs.MethodCall(exprID)
		if !ok {
			return "<invalid-method-call>"
		}
		receiver := wrapExprIfNeeded(b, data.Receiver, formatExprInlineDepth(b, strs, data.Receiver, depth+1))
		method := lookupStringOr(strs, data.Method, "<method>")
		args := make([]string, 0, len(data.Args))
		for _, a := range data.Args {
			args = append(args, formatExprInlineDepth(b, strs, a.Value, depth+1))
		}
		return fmt.Sprintf("%s.%s(%s)", receiver, method, strings.Join(args, ", "))

	case ast.ExprBuiltinCall:
		data, ok := b.Exprs.BuiltinCall(exprID)
		if !ok {
			return "<invalid-builtin-call>"
		}
		name := builtinName(data.Builtin)
		parts := make([]string, 0, len(data.TypeArgs)+len(data.Args))
		for _, t := range data.TypeArgs {
			parts = append(parts, formatTypeExprInline(b, strs, t))
		}
		for _, a := range data.Args {
			parts = append(parts, formatExprInlineDepth(b, strs, a, depth+1))
		}
		return fmt.Sprintf("@%s(%s)", name, strings.Join(parts, ", "))

	case ast.ExprIndex:
		data, ok := b.Exprs.Index(exprID)
		if !ok {
			return "<invalid-index>"
		}
		target := wrapExprIfNeeded(b, data.Target, formatExprInlineDepth(b, strs, data.Target, depth+1))
		index := formatExprInlineDepth(b, strs, data.Index, depth+1)
		return fmt.Sprintf("%s[%s]", target, index)

	case ast.ExprSlice:
		data, ok := b.Exprs.Slice(exprID)
		if !ok {
			return "<invalid-slice>"
		}
		target := wrapExprIfNeeded(b, data.Target, formatExprInlineDepth(b, strs, data.Target, depth+1))
		start := ""
		if data.Start.IsValid() {
			start = formatExprInlineDepth(b, strs, data.Start, depth+1)
		}
		end := ""
		if data.End.IsValid() {
			end = formatExprInlineDepth(b, strs, data.End, depth+1)
		}
		constPrefix := ""
		if data.Const {
			constPrefix = "const "
		}
		return fmt.Sprintf("%s[%s%s..%s]", target, constPrefix, start, end)

	case ast.ExprMember:
		data, ok := b.Exprs.Member(exprID)
		if !ok {
			return "<invalid-member>"
		}
		target := wrapExprIfNeeded(b, data.Target, formatExprInlineDepth(b, strs, data.Target, depth+1))
		field := lookupStringOr(strs, data.Field, "<field>")
		return fmt.Sprintf("%s.%s", target, field)

	case ast.ExprStructLit:
		data, ok := b.Exprs.StructLit(exprID)
		if !ok {
			return "<invalid-struct-lit>"
		}
		fields := make([]string, 0, len(data.Fields))
		for _, f := range data.Fields {
			name := lookupStringOr(strs, f.Name, "<field>")
			fields = append(fields, fmt.Sprintf("%s: %s", name, formatExprInlineDepth(b, strs, f.Value, depth+1)))
		}
		return fmt.Sprintf("%s{%s}", formatTypeExprInline(b, strs, data.Type), strings.Join(fields, ", "))

	case ast.ExprArrayLit:
		data, ok := b.Exprs.ArrayLit(exprID)
		if !ok {
			return "<invalid-array-lit>"
		}
		elems := make([]string, 0, len(data.Elements))
		for _, e := range data.Elements {
			elems = append(elems, formatExprInlineDepth(b, strs, e, depth+1))
		}
		return fmt.Sprintf("[%s]", strings.Join(elems, ", "))

	default:
		return fmt.Sprintf("<%s>", formatExprKind(expr.Kind))
	}
}

// wrapExprIfNeeded parenthesizes exprID's rendering when it is a binary or
// cast expression, to disambiguate precedence in the surrounding context.
func wrapExprIfNeeded(b *ast.Builder, exprID ast.ExprID, rendered string) string {
	if !exprID.IsValid() || b == nil || b.Exprs == nil {
		return rendered
	}
	expr := b.Exprs.Get(exprID)
	if expr == nil {
		return rendered
	}
	switch expr.Kind {
	case ast.ExprBinary, ast.ExprCast:
		return "(" + rendered + ")"
	default:
		return rendered
	}
}

func formatExprKind(kind ast.ExprKind) string {
	switch kind {
	case ast.ExprIdent:
		return "Ident"
	case ast.ExprLit:
		return "Literal"
	case ast.ExprBinary:
		return "Binary"
	case ast.ExprUnary:
		return "Unary"
	case ast.ExprCast:
		return "Cast"
	case ast.ExprCall:
		return "Call"
	case ast.ExprMethodCall:
		return "MethodCall"
	case ast.ExprBuiltinCall:
		return "BuiltinCall"
	case ast.ExprIndex:
		return "Index"
	case ast.ExprSlice:
		return "Slice"
	case ast.ExprMember:
		return "Member"
	case ast.ExprStructLit:
		return "StructLit"
	case ast.ExprArrayLit:
		return "ArrayLit"
	default:
		return fmt.Sprintf("ExprKind(%d)", kind)
	}
}

func builtinName(kind ast.BuiltinKind) string {
	switch kind {
	case ast.BuiltinSizeof:
		return "sizeof"
	case ast.BuiltinMinValue:
		return "min_value"
	case ast.BuiltinMaxValue:
		return "max_value"
	case ast.BuiltinMemberCount:
		return "member_count"
	case ast.BuiltinTypeof:
		return "typeof"
	case ast.BuiltinAddWithOverflow:
		return "add_with_overflow"
	case ast.BuiltinSubWithOverflow:
		return "sub_with_overflow"
	case ast.BuiltinMulWithOverflow:
		return "mul_with_overflow"
	case ast.BuiltinMemcpy:
		return "memcpy"
	case ast.BuiltinMemset:
		return "memset"
	case ast.BuiltinCInclude:
		return "c_include"
	case ast.BuiltinCDefine:
		return "c_define"
	case ast.BuiltinCUndef:
		return "c_undef"
	default:
		return fmt.Sprintf("builtin(%d)", kind)
	}
}
