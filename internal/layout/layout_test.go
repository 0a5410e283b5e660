package layout

import (
	"testing"

	"ember/internal/types"
)

func TestPrimitiveLayouts(t *testing.T) {
	in := types.NewInterner()
	eng := New(X86_64LinuxGNU(), in)

	cases := []struct {
		name       string
		id         types.TypeID
		size, align int
	}{
		{"bool", in.Builtins().Bool, 1, 1},
		{"i8", in.Builtins().I8, 1, 1},
		{"i32", in.Builtins().I32, 4, 4},
		{"i64", in.Builtins().I64, 8, 8},
		{"isize", in.Builtins().Isize, 8, 8},
		{"f64", in.Builtins().F64, 8, 8},
	}
	for _, c := range cases {
		l, err := eng.LayoutOf(c.id)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if l.Size != c.size || l.Align != c.align {
			t.Errorf("%s: got size=%d align=%d, want size=%d align=%d", c.name, l.Size, l.Align, c.size, c.align)
		}
	}
}

func TestStructLayoutAndCycleDetection(t *testing.T) {
	in := types.NewInterner()
	eng := New(X86_64LinuxGNU(), in)

	point := in.NewStruct("Point")
	in.SetStructFields(point, []types.Field{
		{Name: "x", Type: in.Builtins().I32},
		{Name: "y", Type: in.Builtins().I32},
	})
	l, err := eng.LayoutOf(point)
	if err != nil {
		t.Fatalf("Point: %v", err)
	}
	if l.Size != 8 || l.Align != 4 {
		t.Errorf("Point: got size=%d align=%d, want size=8 align=4", l.Size, l.Align)
	}

	// struct S { next: S } — by-value self-embedding never resolves a
	// finite size; LayoutOf must report a cycle rather than loop forever.
	selfRef := in.NewStruct("S")
	in.SetStructFields(selfRef, []types.Field{{Name: "next", Type: selfRef}})
	if _, err := eng.LayoutOf(selfRef); err == nil {
		t.Fatalf("expected a LayoutError for a self-embedding struct")
	}
}

func TestSliceLayout(t *testing.T) {
	in := types.NewInterner()
	eng := New(X86_64LinuxGNU(), in)

	s := in.SliceOf(in.Builtins().I32, false)
	l, err := eng.LayoutOf(s)
	if err != nil {
		t.Fatalf("slice: %v", err)
	}
	if l.Size != 16 || l.Align != 8 {
		t.Errorf("slice: got size=%d align=%d, want size=16 align=8", l.Size, l.Align)
	}
}
