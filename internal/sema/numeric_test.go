package sema

import (
	"math/big"
	"testing"
)

func TestParseIntLiteralRadixAndSeparators(t *testing.T) {
	cases := []struct {
		text string
		want int64
	}{
		{"42", 42},
		{"1_000", 1000},
		{"0x2A", 42},
		{"0b101010", 42},
		{"0o52", 42},
	}
	for _, c := range cases {
		n, ok := ParseIntLiteral(c.text)
		if !ok {
			t.Errorf("ParseIntLiteral(%q) failed to parse", c.text)
			continue
		}
		if n.Cmp(big.NewInt(c.want)) != 0 {
			t.Errorf("ParseIntLiteral(%q) = %v, want %d", c.text, n, c.want)
		}
	}
}

func TestParseIntLiteralRejectsGarbage(t *testing.T) {
	if _, ok := ParseIntLiteral("not-a-number"); ok {
		t.Fatalf("ParseIntLiteral should reject non-numeric text")
	}
}

func TestParseFloatLiteral(t *testing.T) {
	f, ok := ParseFloatLiteral("3.5")
	if !ok {
		t.Fatalf("ParseFloatLiteral(3.5) failed to parse")
	}
	want := new(big.Float).SetPrec(256).SetFloat64(3.5)
	if f.Cmp(want) != 0 {
		t.Fatalf("ParseFloatLiteral(3.5) = %v, want 3.5", f)
	}
}

func TestNotIntRespectsSignedness(t *testing.T) {
	got := notInt(big.NewInt(0), false, 8)
	if got.Cmp(big.NewInt(255)) != 0 {
		t.Fatalf("^0 as u8 = %v, want 255", got)
	}
	got = notInt(big.NewInt(0), true, 8)
	if got.Cmp(big.NewInt(-1)) != 0 {
		t.Fatalf("^0 as i8 = %v, want -1", got)
	}
}

func TestFitsIntBoundaries(t *testing.T) {
	if !FitsInt(big.NewInt(127), true, 8) {
		t.Fatalf("127 should fit in i8")
	}
	if FitsInt(big.NewInt(128), true, 8) {
		t.Fatalf("128 should not fit in i8")
	}
	if !FitsInt(big.NewInt(-128), true, 8) {
		t.Fatalf("-128 should fit in i8")
	}
	if FitsInt(big.NewInt(-129), true, 8) {
		t.Fatalf("-129 should not fit in i8")
	}
	if !FitsInt(big.NewInt(255), false, 8) {
		t.Fatalf("255 should fit in u8")
	}
	if FitsInt(big.NewInt(-1), false, 8) {
		t.Fatalf("-1 should not fit in u8")
	}
}
