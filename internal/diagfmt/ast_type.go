package diagfmt

import (
	"fmt"

	"ember/internal/ast"
	"ember/internal/source"
)

// formatTypeExprInline renders the syntactic type expression identified by
// typeID as it would appear in source: "&T", "[]T", "[N]T", "?T", "!T",
// "fn(A, B) T". An invalid ID (the common "type is to be inferred" case)
// renders as "<inferred>".
func formatTypeExprInline(b *ast.Builder, strs *source.Interner, typeID ast.TypeID) string {
	if !typeID.IsValid() {
		return "<inferred>"
	}
	if b == nil || b.Types == nil {
		return "<invalid>"
	}
	n := b.Types.Get(typeID)
	if n == nil {
		return "<invalid>"
	}

	switch n.Kind {
	case ast.TypeExprPath:
		data, ok := b.Types.Path(typeID)
		if !ok {
			return "<invalid-path>"
		}
		return lookupStringOr(strs, data.Name, "<type>")
	case ast.TypeExprPointer:
		data, ok := b.Types.Pointer(typeID)
		if !ok {
			return "<invalid-pointer>"
		}
		child := formatTypeExprInline(b, strs, data.Child)
		if data.Const {
			return "&const " + child
		}
		return "&" + child
	case ast.TypeExprArray:
		data, ok := b.Types.Array(typeID)
		if !ok {
			return "<invalid-array>"
		}
		child := formatTypeExprInline(b, strs, data.Child)
		length := ""
		if data.Length.IsValid() {
			length = formatExprInline(b, strs, data.Length)
		}
		return fmt.Sprintf("[%s]%s", length, child)
	case ast.TypeExprSlice:
		data, ok := b.Types.Slice(typeID)
		if !ok {
			return "<invalid-slice>"
		}
		child := formatTypeExprInline(b, strs, data.Child)
		if data.Const {
			return "[]const " + child
		}
		return "[]" + child
	case ast.TypeExprOptional:
		data, ok := b.Types.Optional(typeID)
		if !ok {
			return "<invalid-optional>"
		}
		return "?" + formatTypeExprInline(b, strs, data.Child)
	case ast.TypeExprErrorUnion:
		data, ok := b.Types.ErrorUnion(typeID)
		if !ok {
			return "<invalid-error-union>"
		}
		return "!" + formatTypeExprInline(b, strs, data.Child)
	case ast.TypeExprFn:
		data, ok := b.Types.Fn(typeID)
		if !ok {
			return "<invalid-fn>"
		}
		params := ""
		for i, p := range data.Params {
			if i > 0 {
				params += ", "
			}
			params += formatTypeExprInline(b, strs, p)
		}
		return fmt.Sprintf("fn(%s) %s", params, formatTypeExprInline(b, strs, data.Ret))
	default:
		return "<unknown-type>"
	}
}
