package sema

import (
	"testing"

	"ember/internal/types"
)

func TestUnifyPeersWidensToWiderInt(t *testing.T) {
	reg := types.NewInterner()
	i16 := reg.IntType(true, types.Width16)
	i32 := reg.IntType(true, types.Width32)

	got, ok := UnifyPeers(reg, 64, i16, i32)
	if !ok || got != i32 {
		t.Fatalf("UnifyPeers(i16, i32) = (%d, %v), want (%d, true)", got, ok, i32)
	}

	got, ok = UnifyPeers(reg, 64, i32, i16)
	if !ok || got != i32 {
		t.Fatalf("UnifyPeers(i32, i16) = (%d, %v), want (%d, true)", got, ok, i32)
	}
}

func TestUnifyPeersSignedUnsignedIncompatible(t *testing.T) {
	reg := types.NewInterner()
	i32 := reg.IntType(true, types.Width32)
	u32 := reg.IntType(false, types.Width32)

	if _, ok := UnifyPeers(reg, 64, i32, u32); ok {
		t.Fatalf("signed and unsigned integers of the same width must not unify")
	}
}

func TestUnifyPeersNumericLiteralDefersToConcrete(t *testing.T) {
	reg := types.NewInterner()
	lit := reg.NumericLiteralInt()
	i64 := reg.IntType(true, types.Width64)

	got, ok := UnifyPeers(reg, 64, lit, i64)
	if !ok || got != i64 {
		t.Fatalf("UnifyPeers(literal, i64) = (%d, %v), want (%d, true)", got, ok, i64)
	}
	got, ok = UnifyPeers(reg, 64, i64, lit)
	if !ok || got != i64 {
		t.Fatalf("UnifyPeers(i64, literal) = (%d, %v), want (%d, true)", got, ok, i64)
	}
}

func TestUnifyPeersUnreachableAbsorbed(t *testing.T) {
	reg := types.NewInterner()
	unreachable := reg.Builtins().Unreachable
	boolT := reg.Builtins().Bool

	got, ok := UnifyPeers(reg, 64, unreachable, boolT)
	if !ok || got != boolT {
		t.Fatalf("UnifyPeers(unreachable, bool) = (%d, %v), want (%d, true)", got, ok, boolT)
	}
}

func TestUnifyPeersInvalidSilentlyAbsorbs(t *testing.T) {
	reg := types.NewInterner()
	boolT := reg.Builtins().Bool

	got, ok := UnifyPeers(reg, 64, types.NoTypeID, boolT)
	if !ok {
		t.Fatalf("an invalid peer must never produce an incompatible-types error")
	}
	if got.IsValid() {
		t.Fatalf("UnifyPeers with an invalid peer must return NoTypeID, got %d", got)
	}
}

func TestUnifyPeersErrorUnionWithPayload(t *testing.T) {
	reg := types.NewInterner()
	i32 := reg.IntType(true, types.Width32)
	eu := reg.ErrorUnionOf(i32)

	got, ok := UnifyPeers(reg, 64, eu, i32)
	if !ok || got != eu {
		t.Fatalf("UnifyPeers(i32!E, i32) = (%d, %v), want (%d, true)", got, ok, eu)
	}
}

func TestUnifyPeersIncompatibleStructs(t *testing.T) {
	reg := types.NewInterner()
	s1 := reg.NewStruct("A")
	s2 := reg.NewStruct("B")

	if _, ok := UnifyPeers(reg, 64, s1, s2); ok {
		t.Fatalf("two unrelated struct types must not unify")
	}
}

func TestUnifyPeersSingleArgIdentity(t *testing.T) {
	reg := types.NewInterner()
	boolT := reg.Builtins().Bool
	got, ok := UnifyPeers(reg, 64, boolT)
	if !ok || got != boolT {
		t.Fatalf("UnifyPeers of a single peer must return it unchanged")
	}
}
