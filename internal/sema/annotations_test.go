package sema

import (
	"testing"

	"ember/internal/ast"
	"ember/internal/types"
)

func TestAnnotationsSetThenGet(t *testing.T) {
	reg := types.NewInterner()
	i32 := reg.IntType(true, types.Width32)
	ann := NewAnnotations(8)

	id := ast.ExprID(1)
	ann.Set(id, i32, Unknown)

	got := ann.Get(id)
	if got.Type != i32 {
		t.Fatalf("Get after Set returned type %d, want %d", got.Type, i32)
	}
}

func TestAnnotationsSetCoercionSurvivesAfterSet(t *testing.T) {
	// Regression test: the coercion classifier must record the final
	// resolved type via Set before recording the Coercion, since Set
	// overwrites the whole slot.
	reg := types.NewInterner()
	i8 := reg.IntType(true, types.Width8)
	i32 := reg.IntType(true, types.Width32)
	ann := NewAnnotations(8)

	id := ast.ExprID(1)
	ann.Set(id, i32, IntValue(nil))
	ann.SetCoercion(id, i8, CastIntWidenOrShorten)

	got := ann.Get(id)
	if got.Type != i32 {
		t.Fatalf("Get().Type = %d, want %d", got.Type, i32)
	}
	if got.Coercion == nil {
		t.Fatalf("Get().Coercion is nil, want a recorded coercion")
	}
	if got.Coercion.Kind != CastIntWidenOrShorten || got.Coercion.From != i8 {
		t.Fatalf("Get().Coercion = %+v, want {Kind: CastIntWidenOrShorten, From: %d}", got.Coercion, i8)
	}
}

func TestAnnotationsSetAfterSetCoercionWouldEraseIt(t *testing.T) {
	// Documents why the call order matters: Set always replaces the
	// whole slot, so a subsequent Set wipes out any Coercion already
	// recorded on it. Callers must call SetCoercion last.
	reg := types.NewInterner()
	i8 := reg.IntType(true, types.Width8)
	i32 := reg.IntType(true, types.Width32)
	ann := NewAnnotations(8)

	id := ast.ExprID(1)
	ann.Set(id, i8, Unknown)
	ann.SetCoercion(id, i8, CastIntWidenOrShorten)
	ann.Set(id, i32, Unknown)

	if got := ann.Get(id); got.Coercion != nil {
		t.Fatalf("Set after SetCoercion should erase the coercion, got %+v", got.Coercion)
	}
}

func TestAnnotationsGetOnUnsetSlotIsZeroValue(t *testing.T) {
	ann := NewAnnotations(4)
	got := ann.Get(ast.ExprID(99))
	if got.Type.IsValid() || got.Value.Ok || got.Coercion != nil {
		t.Fatalf("Get on a never-set id should return the zero Annotation, got %+v", got)
	}
}

func TestAnnotationsInvalidIDIsNoop(t *testing.T) {
	ann := NewAnnotations(4)
	ann.Set(ast.NoExprID, types.NoTypeID, Unknown)
	ann.SetCoercion(ast.NoExprID, types.NoTypeID, CastNoop)
	// Should not panic, and NoExprID's slot (index 0) stays the zero value.
	got := ann.Get(ast.NoExprID)
	if got.Type.IsValid() {
		t.Fatalf("Set/SetCoercion on NoExprID must be a no-op")
	}
}
