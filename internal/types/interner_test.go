package types

import "testing"

func TestInterningIdentity(t *testing.T) {
	in := NewInterner()

	i32 := in.IntType(true, Width32)
	if again := in.IntType(true, Width32); again != i32 {
		t.Fatalf("IntType(true, 32) not stable: %d != %d", i32, again)
	}

	p1 := in.PointerTo(i32, false)
	p2 := in.PointerTo(i32, false)
	if p1 != p2 {
		t.Fatalf("PointerTo not interned: %d != %d", p1, p2)
	}

	pConst := in.PointerTo(i32, true)
	if pConst == p1 {
		t.Fatalf("const and non-const pointers must be distinct types")
	}

	a1 := in.ArrayOf(i32, 4)
	a2 := in.ArrayOf(i32, 4)
	if a1 != a2 {
		t.Fatalf("ArrayOf not interned: %d != %d", a1, a2)
	}
	a3 := in.ArrayOf(i32, 5)
	if a3 == a1 {
		t.Fatalf("arrays of different length must be distinct types")
	}
}

func TestNominalTypesAreNeverCollapsed(t *testing.T) {
	in := NewInterner()
	s1 := in.NewStruct("Point")
	s2 := in.NewStruct("Point")
	if s1 == s2 {
		t.Fatalf("two struct declarations with the same name must get distinct identity")
	}
}

func TestSmallestUintFor(t *testing.T) {
	in := NewInterner()
	cases := []struct {
		n     uint64
		width Width
	}{
		{0, Width8},
		{255, Width8},
		{256, Width16},
		{65535, Width16},
		{65536, Width32},
		{1 << 40, Width64},
	}
	for _, c := range cases {
		id := in.SmallestUintFor(c.n)
		tt := in.MustLookup(id)
		if tt.Width != c.width {
			t.Errorf("SmallestUintFor(%d) = width %s, want %s", c.n, tt.Width, c.width)
		}
	}
}

func TestStructCycleGuard(t *testing.T) {
	in := NewInterner()
	s := in.NewStruct("S")
	if !in.BeginEmbed(s) {
		t.Fatalf("first BeginEmbed should succeed")
	}
	if in.BeginEmbed(s) {
		t.Fatalf("re-entrant BeginEmbed on the same struct must fail")
	}
	if !in.ReportInfiniteOnce(s) {
		t.Fatalf("first ReportInfiniteOnce should report")
	}
	if in.ReportInfiniteOnce(s) {
		t.Fatalf("ReportInfiniteOnce must only fire once per struct")
	}
	if !in.IsInvalid(s) {
		t.Fatalf("struct should be marked invalid after infinite-size report")
	}
	in.EndEmbed(s)
	if !in.BeginEmbed(s) {
		t.Fatalf("BeginEmbed should succeed again once the flag is cleared")
	}
}
