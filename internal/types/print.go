package types

import "fmt"

// Name renders a human-readable, stable name for id, used in diagnostic
// messages ("integer value 300 cannot be implicitly casted to type 'u8'").
func (in *Interner) Name(id TypeID) string {
	t, ok := in.Lookup(id)
	if !ok {
		return "invalid"
	}
	switch t.Kind {
	case KindVoid, KindBool, KindUnreachable, KindMeta, KindPureError,
		KindNumericLiteralInt, KindNumericLiteralFloat, KindUndefinedLiteral:
		return t.Kind.String()
	case KindInt:
		return "i" + t.Width.String()
	case KindUint:
		return "u" + t.Width.String()
	case KindFloat:
		return "f" + t.Width.String()
	case KindPointer:
		if t.Const {
			return "&const " + in.Name(t.Elem)
		}
		return "&" + in.Name(t.Elem)
	case KindArray:
		return fmt.Sprintf("[%d]%s", t.Count, in.Name(t.Elem))
	case KindSlice:
		if t.Const {
			return "[]const " + in.Name(t.Elem)
		}
		return "[]" + in.Name(t.Elem)
	case KindOptional:
		return "?" + in.Name(t.Elem)
	case KindErrorUnion:
		return "!" + in.Name(t.Elem)
	case KindStruct:
		if info, ok := in.StructInfo(id); ok {
			return info.Name
		}
		return "struct"
	case KindEnum:
		if info, ok := in.EnumInfo(id); ok {
			return info.Name
		}
		return "enum"
	case KindFunction:
		if info, ok := in.FnInfo(id); ok {
			return "fn " + info.Name
		}
		return "fn"
	default:
		return "invalid"
	}
}
