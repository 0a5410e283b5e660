package layout

import "ember/internal/types"

func (e *LayoutEngine) ptrLayout() TypeLayout {
	return TypeLayout{Size: e.Target.PtrSize, Align: e.Target.PtrAlign}
}

func scalarLayoutBytes(n int) TypeLayout {
	if n <= 0 {
		return TypeLayout{Size: 0, Align: 1}
	}
	return TypeLayout{Size: n, Align: n}
}

func alignUp(n, align int) int {
	if align <= 1 {
		return n
	}
	return (n + align - 1) / align * align
}

func (e *LayoutEngine) computeLayout(id types.TypeID, state *layoutState) (TypeLayout, *LayoutError) {
	if id == types.NoTypeID {
		return TypeLayout{Size: 0, Align: 1}, nil
	}
	tt, ok := e.Types.Lookup(id)
	if !ok {
		return TypeLayout{Size: 0, Align: 1}, nil
	}

	switch tt.Kind {
	case types.KindVoid, types.KindUnreachable, types.KindMeta,
		types.KindNumericLiteralInt, types.KindNumericLiteralFloat, types.KindUndefinedLiteral:
		return TypeLayout{Size: 0, Align: 1}, nil

	case types.KindBool:
		return scalarLayoutBytes(1), nil

	case types.KindInt, types.KindUint, types.KindFloat:
		if tt.Width == types.WidthPtr {
			return e.ptrLayout(), nil
		}
		return scalarLayoutBytes(int(tt.Width) / 8), nil

	case types.KindPointer:
		return e.ptrLayout(), nil

	case types.KindArray:
		child, err := e.layoutOf(tt.Elem, state)
		if err != nil {
			return TypeLayout{Size: 0, Align: 1}, err
		}
		return TypeLayout{Size: child.Size * int(tt.Count), Align: max(child.Align, 1)}, nil

	case types.KindSlice:
		// { ptr: &[const] child, len: isize }
		ptrSize, ptrAlign := e.Target.PtrSize, e.Target.PtrAlign
		return TypeLayout{
			Size:         alignUp(ptrSize, ptrAlign) + ptrSize,
			Align:        ptrAlign,
			FieldOffsets: []int{0, ptrSize},
		}, nil

	case types.KindOptional:
		// { value: child, present: bool }
		child, err := e.layoutOf(tt.Elem, state)
		if err != nil {
			return TypeLayout{Size: 0, Align: 1}, err
		}
		presentOff := alignUp(child.Size, 1)
		align := max(child.Align, 1)
		return TypeLayout{
			Size:         alignUp(presentOff+1, align),
			Align:        align,
			FieldOffsets: []int{0, presentOff},
		}, nil

	case types.KindErrorUnion:
		child, err := e.layoutOf(tt.Elem, state)
		if err != nil {
			return TypeLayout{Size: 0, Align: 1}, err
		}
		if child.Size == 0 {
			// Collapses to the pure-error tag alone.
			return scalarLayoutBytes(1), nil
		}
		tagOff := alignUp(1, child.Align)
		valOff := alignUp(tagOff+1, child.Align)
		return TypeLayout{
			Size:         alignUp(valOff+child.Size, child.Align),
			Align:        child.Align,
			FieldOffsets: []int{tagOff, valOff},
		}, nil

	case types.KindPureError:
		return scalarLayoutBytes(1), nil

	case types.KindEnum:
		info, ok := e.Types.EnumInfo(id)
		if !ok || info.TagType == types.NoTypeID {
			return scalarLayoutBytes(4), nil
		}
		return e.layoutOf(info.TagType, state)

	case types.KindStruct:
		info, ok := e.Types.StructInfo(id)
		if !ok || len(info.Fields) == 0 {
			return TypeLayout{Size: 0, Align: 1}, nil
		}
		offsets := make([]int, len(info.Fields))
		size, align := 0, 1
		for i, f := range info.Fields {
			fl, err := e.layoutOf(f.Type, state)
			if err != nil {
				return TypeLayout{Size: 0, Align: 1}, err
			}
			falign := max(fl.Align, 1)
			size = alignUp(size, falign)
			offsets[i] = size
			size += fl.Size
			align = max(align, falign)
		}
		return TypeLayout{Size: alignUp(size, align), Align: align, FieldOffsets: offsets}, nil

	case types.KindFunction:
		return e.ptrLayout(), nil

	default:
		return TypeLayout{Size: 0, Align: 1}, nil
	}
}
