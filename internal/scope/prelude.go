package scope

import (
	"ember/internal/source"
	"ember/internal/types"
)

// Prelude populates root with the primitive-type table. Symbol resolution
// consults this table second, after parser overrides. strs interns the
// primitive names so later lookups by
// source.StringID succeed regardless of declaration order in the file.
func Prelude(t *Table, strs *source.Interner, reg *types.Interner, root ScopeID) {
	b := reg.Builtins()
	prim := []struct {
		name string
		id   types.TypeID
	}{
		{"void", b.Void},
		{"bool", b.Bool},
		{"i8", b.I8}, {"i16", b.I16}, {"i32", b.I32}, {"i64", b.I64}, {"isize", b.Isize},
		{"u8", b.U8}, {"u16", b.U16}, {"u32", b.U32}, {"u64", b.U64}, {"usize", b.Usize},
		{"f32", b.F32}, {"f64", b.F64},
	}
	for _, p := range prim {
		t.Bind(root, Binding{Kind: BindType, Name: strs.Intern(p.name), Type: p.id})
	}
}
