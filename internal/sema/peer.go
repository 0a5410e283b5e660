package sema

import "ember/internal/types"

// UnifyPeers computes, given N peer types, a common type every one of
// them can coerce to, preferring the most informative.
// ptrBits resolves WidthPtr-width integers against the compilation
// target. ok is false only for the "incompatible types" case; an invalid
// peer always yields (NoTypeID, true) since invalid silently absorbs
// through the error-propagation invariant.
func UnifyPeers(reg *types.Interner, ptrBits uint8, peers ...types.TypeID) (types.TypeID, bool) {
	if len(peers) == 0 {
		return types.NoTypeID, true
	}
	for _, p := range peers {
		if types.IsInvalidID(p) {
			return types.NoTypeID, true
		}
	}

	result := peers[0]
	for _, next := range peers[1:] {
		unified, ok := unifyPair(reg, ptrBits, result, next)
		if !ok {
			return types.NoTypeID, false
		}
		result = unified
	}
	return result, true
}

func unifyPair(reg *types.Interner, ptrBits uint8, a, b types.TypeID) (types.TypeID, bool) {
	ka, kb := reg.KindOf(a), reg.KindOf(b)

	// unreachable (a "return"/"panic" branch's type) is absorbed by any peer.
	if ka == types.KindUnreachable {
		return b, true
	}
	if kb == types.KindUnreachable {
		return a, true
	}

	if ka == types.KindInt && kb == types.KindInt {
		return widerInt(reg, ptrBits, a, b), true
	}
	if ka == types.KindUint && kb == types.KindUint {
		return widerInt(reg, ptrBits, a, b), true
	}
	if ka == types.KindFloat && kb == types.KindFloat {
		if reg.BitWidth(a, ptrBits) >= reg.BitWidth(b, ptrBits) {
			return a, true
		}
		return b, true
	}

	if eu, other, ok := pickErrorUnionPeer(a, ka, b, kb); ok {
		if reg.MustLookup(eu).Elem == other {
			return eu, true
		}
	}

	if isNumericLiteral(ka) && isConcreteNumeric(kb) {
		return b, true
	}
	if isNumericLiteral(kb) && isConcreteNumeric(ka) {
		return a, true
	}

	if a == b {
		return a, true
	}
	return types.NoTypeID, false
}

func widerInt(reg *types.Interner, ptrBits uint8, a, b types.TypeID) types.TypeID {
	if reg.BitWidth(a, ptrBits) >= reg.BitWidth(b, ptrBits) {
		return a
	}
	return b
}

// pickErrorUnionPeer returns which side (if either) is an error union and
// the other side's type, so the caller can check the union's payload
// type against its non-union peer (e.g. `T!E` unified with `T`).
func pickErrorUnionPeer(a types.TypeID, ka types.Kind, b types.TypeID, kb types.Kind) (eu, other types.TypeID, ok bool) {
	if ka == types.KindErrorUnion && kb != types.KindErrorUnion {
		return a, b, true
	}
	if kb == types.KindErrorUnion && ka != types.KindErrorUnion {
		return b, a, true
	}
	return types.NoTypeID, types.NoTypeID, false
}

func isNumericLiteral(k types.Kind) bool {
	return k == types.KindNumericLiteralInt || k == types.KindNumericLiteralFloat
}

func isConcreteNumeric(k types.Kind) bool {
	return k == types.KindInt || k == types.KindUint || k == types.KindFloat
}
