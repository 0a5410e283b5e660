package ast

import "ember/internal/source"

// ImportDecl brings another Ember source file into scope, optionally under
// an alias.
type ImportDecl struct {
	Path  source.StringID
	Alias source.StringID // NoStringID if unaliased
	Span  source.Span
}

func (i *Items) Import(id ItemID) (*ImportDecl, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemImport {
		return nil, false
	}
	return i.Imports.Get(uint32(item.Payload)), true
}

func (i *Items) NewImport(path, alias source.StringID, span source.Span) ItemID {
	payload := i.Imports.Allocate(ImportDecl{Path: path, Alias: alias, Span: span})
	return i.new(ItemImport, span, PayloadID(payload))
}

// CImportDecl is a `@c_import { ... }` block: a sequence of statements
// (c_include/c_define/c_undef builtin calls) whose constant-string arguments
// the analyzer hands to the C-header importer.
type CImportDecl struct {
	Body StmtID
	Span source.Span
}

func (i *Items) CImport(id ItemID) (*CImportDecl, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemCImport {
		return nil, false
	}
	return i.CImports.Get(uint32(item.Payload)), true
}

func (i *Items) NewCImport(body StmtID, span source.Span) ItemID {
	payload := i.CImports.Allocate(CImportDecl{Body: body, Span: span})
	return i.new(ItemCImport, span, PayloadID(payload))
}
