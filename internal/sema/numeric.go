package sema

import (
	"fmt"
	"math/big"
	"strings"
)

// ParseIntLiteral parses a lexed integer literal's text (which may carry
// 0x/0o/0b radix prefixes and _ digit separators) into an arbitrary
// precision integer.
func ParseIntLiteral(text string) (*big.Int, bool) {
	clean := strings.ReplaceAll(text, "_", "")
	n := new(big.Int)
	_, ok := n.SetString(clean, 0)
	return n, ok
}

// ParseFloatLiteral parses a lexed float literal's text into an
// arbitrary-precision float.
func ParseFloatLiteral(text string) (*big.Float, bool) {
	clean := strings.ReplaceAll(text, "_", "")
	f, ok := new(big.Float).SetPrec(256).SetString(clean)
	return f, ok
}

func bigFromUint32(n uint32) *big.Int { return new(big.Int).SetUint64(uint64(n)) }

func negInt(v *big.Int) *big.Int { return new(big.Int).Neg(v) }

func negFloat(v *big.Float) *big.Float { return new(big.Float).SetPrec(256).Neg(v) }

// notInt computes bitwise complement within bits, respecting signedness,
// matching the wrap-around semantics FoldCast's wrapInt already uses.
func notInt(v *big.Int, signed bool, bits uint8) *big.Int {
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(bits)), big.NewInt(1))
	out := new(big.Int).Xor(v, mask)
	out.And(out, mask)
	if signed {
		half := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
		if out.Cmp(half) >= 0 {
			full := new(big.Int).Lsh(big.NewInt(1), uint(bits))
			out.Sub(out, full)
		}
	}
	return out
}

func parseDecimal(text string) (uint32, error) {
	n, ok := ParseIntLiteral(text)
	if !ok || n.Sign() < 0 || !n.IsUint64() {
		return 0, fmt.Errorf("sema: invalid array length literal %q", text)
	}
	v := n.Uint64()
	if v > 0xFFFFFFFF {
		return 0, fmt.Errorf("sema: array length literal %q overflows uint32", text)
	}
	return uint32(v), nil
}
