package scope

import (
	"fmt"

	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/source"
	"ember/internal/types"
)

// Strings resolves StringIDs to their text for diagnostic messages.
type Strings interface {
	MustLookup(id source.StringID) string
}

// AddVariable implements the variable-adding rule: if a same-name
// binding already exists within the current function (lookup_local), or
// the name collides with a primitive type or a visible struct/enum, the
// variable is still bound but with types.NoTypeID so that later uses of
// the name fail silently via the absorbing "invalid" type.
func AddVariable(t *Table, strs Strings, reg *types.Interner, r diag.Reporter, scopeID ScopeID, name source.StringID, declType types.TypeID, mutable, isConst bool, item ast.ItemID, span source.Span) types.TypeID {
	if prev, ok := t.LookupLocal(scopeID, name); ok {
		diag.ReportError(r, diag.SemaRedeclaration, span,
			fmt.Sprintf("redeclaration of '%s'", strs.MustLookup(name))).
			WithNote(prev.Span, "previous declaration is here").
			Emit()
		declType = types.NoTypeID
	} else if shadowed, ok := t.Lookup(scopeID, name); ok && shadowed.Kind == BindType {
		diag.ReportError(r, diag.SemaShadowing, span,
			fmt.Sprintf("declaration of '%s' shadows a visible type", strs.MustLookup(name))).
			WithNote(shadowed.Span, "type is declared here").
			Emit()
		declType = types.NoTypeID
	}
	t.Bind(scopeID, Binding{
		Kind:    BindVariable,
		Name:    name,
		Type:    declType,
		Item:    item,
		Mutable: mutable,
		IsConst: isConst,
		Span:    span,
	})
	return declType
}

// AddType binds a struct/enum/function type name into scopeID, reporting
// redeclaration the same way AddVariable does.
func AddType(t *Table, strs Strings, r diag.Reporter, scopeID ScopeID, name source.StringID, id types.TypeID, item ast.ItemID, span source.Span) {
	if prev, ok := t.LookupLocal(scopeID, name); ok {
		diag.ReportError(r, diag.SemaRedeclaration, span,
			fmt.Sprintf("redeclaration of '%s'", strs.MustLookup(name))).
			WithNote(prev.Span, "previous declaration is here").
			Emit()
	}
	t.Bind(scopeID, Binding{Kind: BindType, Name: name, Type: id, Item: item, Span: span})
}

// AddError binds an error-value name declared by an `error` item.
func AddError(t *Table, strs Strings, r diag.Reporter, scopeID ScopeID, name source.StringID, item ast.ItemID, span source.Span) {
	if prev, ok := t.LookupLocal(scopeID, name); ok {
		diag.ReportError(r, diag.SemaRedeclaration, span,
			fmt.Sprintf("redeclaration of '%s'", strs.MustLookup(name))).
			WithNote(prev.Span, "previous declaration is here").
			Emit()
	}
	t.Bind(scopeID, Binding{Kind: BindError, Name: name, Item: item, Span: span})
}

// AddFunction binds a function name at file/module scope.
func AddFunction(t *Table, strs Strings, r diag.Reporter, scopeID ScopeID, name source.StringID, fnType types.TypeID, item ast.ItemID, span source.Span) {
	if prev, ok := t.LookupLocal(scopeID, name); ok {
		diag.ReportError(r, diag.SemaRedeclaration, span,
			fmt.Sprintf("redeclaration of '%s'", strs.MustLookup(name))).
			WithNote(prev.Span, "previous declaration is here").
			Emit()
	}
	t.Bind(scopeID, Binding{Kind: BindFunction, Name: name, Type: fnType, Item: item, Span: span})
}

// BindImported propagates one binding from a public declaration's owning
// file into an importer's scope. If the importer already has
// name bound, "import of X overrides existing definition" is reported and
// the existing binding is left untouched.
func BindImported(t *Table, strs Strings, r diag.Reporter, importerScope ScopeID, b Binding) {
	if existing, ok := t.Lookup(importerScope, b.Name); ok {
		diag.ReportError(r, diag.SemaImportOverridesExisting, b.Span,
			fmt.Sprintf("import of '%s' overrides existing definition", strs.MustLookup(b.Name))).
			WithNote(existing.Span, "existing definition is here").
			Emit()
		return
	}
	t.Bind(importerScope, b)
}
