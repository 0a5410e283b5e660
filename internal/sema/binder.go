package sema

import (
	"fmt"

	"ember/internal/ast"
	"ember/internal/depres"
	"ember/internal/diag"
	"ember/internal/scope"
	"ember/internal/types"
)

// Binder performs the declaration-binding pass that must run before any
// function body is analyzed: it interns every struct/enum's type (with
// the infinite-size cycle guard), binds every top-level name
// into the file scope, and resolves function signatures and global
// variable types. internal/depres.Resolver.Order gives the order this
// must run in.
type Binder struct {
	b     *ast.Builder
	strs  Strings
	reg   *types.Interner
	table *scope.Table
	tr    *TypeResolver
	r     diag.Reporter

	fileScope scope.ScopeID
	typeIDs   map[ast.ItemID]types.TypeID
}

func NewBinder(b *ast.Builder, strs Strings, reg *types.Interner, table *scope.Table, r diag.Reporter, fileScope scope.ScopeID) *Binder {
	return &Binder{
		b:         b,
		strs:      strs,
		reg:       reg,
		table:     table,
		tr:        NewTypeResolver(b, strs, reg, table, r),
		r:         r,
		fileScope: fileScope,
		typeIDs:   make(map[ast.ItemID]types.TypeID),
	}
}

// BindAll binds every item in order (as internal/depres.Resolver.Order
// produces it) into the file scope.
func (bd *Binder) BindAll(items []ast.ItemID) {
	// Structs and enums reserve their TypeID up front so mutually
	// recursive pointer fields can resolve to a name bound before its
	// own fields are analyzed.
	for _, id := range items {
		bd.reserve(id)
	}
	for _, id := range items {
		bd.bind(id)
	}
}

func (bd *Binder) reserve(id ast.ItemID) {
	item := bd.b.Items.Get(id)
	if item == nil {
		return
	}
	switch item.Kind {
	case ast.ItemStruct:
		decl, _ := bd.b.Items.Struct(id)
		t := bd.reg.NewStruct(bd.strs.MustLookup(decl.Name))
		bd.typeIDs[id] = t
		scope.AddType(bd.table, bd.strs, bd.r, bd.fileScope, decl.Name, t, id, decl.Span)
	case ast.ItemEnum:
		decl, _ := bd.b.Items.Enum(id)
		t := bd.reg.NewEnum(bd.strs.MustLookup(decl.Name))
		bd.typeIDs[id] = t
		scope.AddType(bd.table, bd.strs, bd.r, bd.fileScope, decl.Name, t, id, decl.Span)
	}
}

func (bd *Binder) bind(id ast.ItemID) {
	item := bd.b.Items.Get(id)
	if item == nil {
		return
	}
	switch item.Kind {
	case ast.ItemStruct:
		bd.bindStruct(id)
	case ast.ItemEnum:
		bd.bindEnum(id)
	case ast.ItemFnProto:
		bd.bindFnProto(id)
	case ast.ItemFnDef:
		bd.bindFnDef(id)
	case ast.ItemVar:
		bd.bindVar(id)
	case ast.ItemErrorDecl:
		bd.bindErrorDecl(id)
	case ast.ItemImport, ast.ItemCImport:
		// File-graph wiring (propagating pub declarations between
		// importer/importee scopes) is the driver's responsibility once
		// multiple files are linked together; a single file binds nothing
		// extra for these kinds.
	}
}

func (bd *Binder) bindStruct(id ast.ItemID) {
	decl, _ := bd.b.Items.Struct(id)
	t := bd.typeIDs[id]
	fields := bd.b.Items.Fields(decl.FieldsStart, decl.FieldsCount)

	if !bd.reg.BeginEmbed(t) {
		if bd.reg.ReportInfiniteOnce(t) {
			diag.ReportError(bd.r, diag.SemaInfiniteSizeAggregate, decl.Span,
				fmt.Sprintf("struct '%s' has infinite size", bd.strs.MustLookup(decl.Name))).Emit()
		}
		return
	}
	defer bd.reg.EndEmbed(t)

	out := make([]types.Field, 0, len(fields))
	for _, f := range fields {
		ft := bd.tr.Resolve(bd.fileScope, f.Type)
		out = append(out, types.Field{Name: bd.strs.MustLookup(f.Name), Type: ft})
	}
	bd.reg.SetStructFields(t, out)
}

func (bd *Binder) bindEnum(id ast.ItemID) {
	decl, _ := bd.b.Items.Enum(id)
	t := bd.typeIDs[id]
	variants := bd.b.Items.Variants(decl.VariantsStart, decl.VariantsCount)

	if !bd.reg.BeginEmbed(t) {
		if bd.reg.ReportInfiniteOnce(t) {
			diag.ReportError(bd.r, diag.SemaInfiniteSizeAggregate, decl.Span,
				fmt.Sprintf("enum '%s' has infinite size", bd.strs.MustLookup(decl.Name))).Emit()
		}
		return
	}
	defer bd.reg.EndEmbed(t)

	out := make([]types.Variant, 0, len(variants))
	for _, v := range variants {
		payload := types.NoTypeID
		if v.Payload.IsValid() {
			payload = bd.tr.Resolve(bd.fileScope, v.Payload)
		}
		out = append(out, types.Variant{Name: bd.strs.MustLookup(v.Name), Payload: payload})
	}
	bd.reg.SetEnumVariants(t, out)
}

func (bd *Binder) fnSignature(proto *ast.FnProto) types.TypeID {
	params := bd.b.Items.Params(proto.ParamsStart, proto.ParamsCount)
	paramTypes := make([]types.TypeID, 0, len(params))
	for _, p := range params {
		paramTypes = append(paramTypes, bd.tr.Resolve(bd.fileScope, p.Type))
	}
	ret := types.NoTypeID
	if proto.ReturnType.IsValid() {
		ret = bd.tr.Resolve(bd.fileScope, proto.ReturnType)
	} else {
		ret = bd.reg.Builtins().Void
	}
	return bd.reg.NewFunction(bd.strs.MustLookup(proto.Name), paramTypes, false, ret)
}

func (bd *Binder) bindFnProto(id ast.ItemID) {
	proto, _ := bd.b.Items.FnProto(id)
	t := bd.fnSignature(proto)
	scope.AddFunction(bd.table, bd.strs, bd.r, bd.fileScope, proto.Name, t, id, proto.Span)
}

func (bd *Binder) bindFnDef(id ast.ItemID) {
	def, _ := bd.b.Items.FnDef(id)
	t := bd.fnSignature(&def.Proto)
	scope.AddFunction(bd.table, bd.strs, bd.r, bd.fileScope, def.Proto.Name, t, id, def.Proto.Span)
}

func (bd *Binder) bindVar(id ast.ItemID) {
	decl, _ := bd.b.Items.Var(id)
	declType := types.NoTypeID
	if decl.Type.IsValid() {
		declType = bd.tr.Resolve(bd.fileScope, decl.Type)
	}
	scope.AddVariable(bd.table, bd.strs, bd.reg, bd.r, bd.fileScope, decl.Name, declType, decl.Mutable, decl.IsConst, id, decl.Span)
}

func (bd *Binder) bindErrorDecl(id ast.ItemID) {
	decl, _ := bd.b.Items.ErrorDecl(id)
	for _, name := range decl.Names {
		scope.AddError(bd.table, bd.strs, bd.r, bd.fileScope, name, id, decl.Span)
	}
}

// TypeOf returns the TypeID reserved for a struct/enum item, for callers
// that need it before BindAll's second pass (e.g. wiring internal/depres'
// Decl.Item back to its bound type).
func (bd *Binder) TypeOf(id ast.ItemID) (types.TypeID, bool) {
	t, ok := bd.typeIDs[id]
	return t, ok
}

// BindOrder is a small convenience wrapping internal/depres so callers
// don't need to import it just to feed BindAll.
func BindOrder(r *depres.Resolver) []ast.ItemID { return r.Order() }
