package depres

import (
	"ember/internal/ast"
	"ember/internal/source"
)

var primitiveNames = map[string]struct{}{
	"void": {}, "bool": {},
	"i8": {}, "i16": {}, "i32": {}, "i64": {}, "isize": {},
	"u8": {}, "u16": {}, "u32": {}, "u64": {}, "usize": {},
	"f32": {}, "f64": {},
}

// extractDeps walks item's type expressions and, for a function
// definition, its body, collecting every referenced identifier that is
// not a primitive-type name and not bound locally within the
// declaration itself (a parameter, let-binding, for/if-var binding). The
// result lands in deps, which the caller has already primed with an
// empty map.
func extractDeps(b *ast.Builder, id ast.ItemID, deps map[source.StringID]struct{}, strs *source.Interner) {
	w := &walker{b: b, deps: deps, locals: make(map[source.StringID]int), strs: strs}
	w.item(id)
}

type walker struct {
	b      *ast.Builder
	strs   *source.Interner
	deps   map[source.StringID]struct{}
	locals map[source.StringID]int // name -> nesting depth still shadowing it
}

func (w *walker) bindLocal(name source.StringID) {
	if name == source.NoStringID {
		return
	}
	w.locals[name]++
}

func (w *walker) unbindLocal(name source.StringID) {
	if name == source.NoStringID {
		return
	}
	w.locals[name]--
	if w.locals[name] <= 0 {
		delete(w.locals, name)
	}
}

// refName records a plain identifier reference as a dependency.
func (w *walker) refName(name source.StringID) {
	if name == source.NoStringID {
		return
	}
	if _, shadowed := w.locals[name]; shadowed {
		return
	}
	w.deps[name] = struct{}{}
}

func (w *walker) item(id ast.ItemID) {
	item := w.b.Items.Get(id)
	if item == nil {
		return
	}
	switch item.Kind {
	case ast.ItemFnProto:
		p, _ := w.b.Items.FnProto(id)
		w.fnProto(*p)
	case ast.ItemFnDef:
		d, _ := w.b.Items.FnDef(id)
		w.fnProto(d.Proto)
		for _, param := range w.b.Items.Params(d.Proto.ParamsStart, d.Proto.ParamsCount) {
			w.bindLocal(param.Name)
		}
		w.stmt(d.Body)
		for _, param := range w.b.Items.Params(d.Proto.ParamsStart, d.Proto.ParamsCount) {
			w.unbindLocal(param.Name)
		}
	case ast.ItemStruct:
		s, _ := w.b.Items.Struct(id)
		for _, f := range w.b.Items.Fields(s.FieldsStart, s.FieldsCount) {
			w.typeExpr(f.Type)
		}
	case ast.ItemEnum:
		e, _ := w.b.Items.Enum(id)
		for _, v := range w.b.Items.Variants(e.VariantsStart, e.VariantsCount) {
			if v.Payload.IsValid() {
				w.typeExpr(v.Payload)
			}
		}
	case ast.ItemVar:
		v, _ := w.b.Items.Var(id)
		if v.Type.IsValid() {
			w.typeExpr(v.Type)
		}
		if v.Value.IsValid() {
			w.expr(v.Value)
		}
	}
}

func (w *walker) fnProto(p ast.FnProto) {
	for _, param := range w.b.Items.Params(p.ParamsStart, p.ParamsCount) {
		w.typeExpr(param.Type)
	}
	if p.ReturnType.IsValid() {
		w.typeExpr(p.ReturnType)
	}
}

func (w *walker) typeExpr(id ast.TypeID) {
	if !id.IsValid() {
		return
	}
	n := w.b.Types.Get(id)
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.TypeExprPath:
		data, _ := w.b.Types.Path(id)
		w.refFiltered(data.Name)
	case ast.TypeExprPointer:
		data, _ := w.b.Types.Pointer(id)
		w.typeExpr(data.Child)
	case ast.TypeExprArray:
		data, _ := w.b.Types.Array(id)
		w.typeExpr(data.Child)
		if data.Length.IsValid() {
			w.expr(data.Length)
		}
	case ast.TypeExprSlice:
		data, _ := w.b.Types.Slice(id)
		w.typeExpr(data.Child)
	case ast.TypeExprOptional:
		data, _ := w.b.Types.Optional(id)
		w.typeExpr(data.Child)
	case ast.TypeExprErrorUnion:
		data, _ := w.b.Types.ErrorUnion(id)
		w.typeExpr(data.Child)
	case ast.TypeExprFn:
		data, _ := w.b.Types.Fn(id)
		for _, p := range data.Params {
			w.typeExpr(p)
		}
		w.typeExpr(data.Ret)
	}
}

// refFiltered drops primitive-type names; used for type-position
// identifiers, which are the only place primitives appear.
func (w *walker) refFiltered(name source.StringID) {
	if w.strs != nil {
		if text, ok := w.strs.Lookup(name); ok {
			if _, prim := primitiveNames[text]; prim {
				return
			}
		}
	}
	w.refName(name)
}

func (w *walker) stmt(id ast.StmtID) {
	if !id.IsValid() {
		return
	}
	n := w.b.Stmts.Get(id)
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.StmtExpr:
		d, _ := w.b.Stmts.Expr(id)
		w.expr(d.Expr)
	case ast.StmtLet:
		d, _ := w.b.Stmts.Let(id)
		if d.Type.IsValid() {
			w.typeExpr(d.Type)
		}
		if d.Value.IsValid() {
			w.expr(d.Value)
		}
		w.bindLocal(d.Name)
	case ast.StmtReturn:
		d, _ := w.b.Stmts.Return(id)
		if d.Value.IsValid() {
			w.expr(d.Value)
		}
	case ast.StmtIf:
		d, _ := w.b.Stmts.If(id)
		w.expr(d.Cond)
		if d.BindName != source.NoStringID {
			w.bindLocal(d.BindName)
		}
		w.stmt(d.Then)
		if d.BindName != source.NoStringID {
			w.unbindLocal(d.BindName)
		}
		w.stmt(d.Else)
	case ast.StmtWhile:
		d, _ := w.b.Stmts.While(id)
		w.expr(d.Cond)
		w.stmt(d.Body)
	case ast.StmtFor:
		d, _ := w.b.Stmts.For(id)
		w.expr(d.Iterable)
		w.bindLocal(d.ElemName)
		w.bindLocal(d.IndexName)
		w.stmt(d.Body)
		w.unbindLocal(d.ElemName)
		w.unbindLocal(d.IndexName)
	case ast.StmtSwitch:
		d, _ := w.b.Stmts.Switch(id)
		w.expr(d.Scrutinee)
		for _, c := range d.Cases {
			w.expr(c.Value)
			w.stmt(c.Body)
		}
		w.stmt(d.ElseBody)
	case ast.StmtBlock:
		d, _ := w.b.Stmts.Block(id)
		var bound []source.StringID
		for _, s := range d.Stmts {
			w.stmt(s)
			if let, ok := w.b.Stmts.Let(s); ok {
				bound = append(bound, let.Name)
			}
		}
		for _, name := range bound {
			w.unbindLocal(name)
		}
	}
}

func (w *walker) expr(id ast.ExprID) {
	if !id.IsValid() {
		return
	}
	n := w.b.Exprs.Get(id)
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.ExprIdent:
		d, _ := w.b.Exprs.Ident(id)
		w.refName(d.Name)
	case ast.ExprBinary:
		d, _ := w.b.Exprs.Binary(id)
		w.expr(d.Left)
		w.expr(d.Right)
	case ast.ExprUnary:
		d, _ := w.b.Exprs.Unary(id)
		w.expr(d.Operand)
	case ast.ExprCast:
		d, _ := w.b.Exprs.Cast(id)
		w.expr(d.Target)
		w.typeExpr(d.Type)
	case ast.ExprCall:
		d, _ := w.b.Exprs.Call(id)
		w.expr(d.Target)
		for _, a := range d.Args {
			w.expr(a.Value)
		}
	case ast.ExprMethodCall:
		d, _ := w.b.Exprs.MethodCall(id)
		w.expr(d.Receiver)
		for _, a := range d.Args {
			w.expr(a.Value)
		}
	case ast.ExprBuiltinCall:
		d, _ := w.b.Exprs.BuiltinCall(id)
		for _, t := range d.TypeArgs {
			w.typeExpr(t)
		}
		for _, a := range d.Args {
			w.expr(a)
		}
	case ast.ExprIndex:
		d, _ := w.b.Exprs.Index(id)
		w.expr(d.Target)
		w.expr(d.Index)
	case ast.ExprSlice:
		d, _ := w.b.Exprs.Slice(id)
		w.expr(d.Target)
		w.expr(d.Start)
		w.expr(d.End)
	case ast.ExprMember:
		d, _ := w.b.Exprs.Member(id)
		w.expr(d.Target)
	case ast.ExprStructLit:
		d, _ := w.b.Exprs.StructLit(id)
		w.typeExpr(d.Type)
		for _, f := range d.Fields {
			w.expr(f.Value)
		}
	case ast.ExprArrayLit:
		d, _ := w.b.Exprs.ArrayLit(id)
		for _, e := range d.Elements {
			w.expr(e)
		}
	}
}
