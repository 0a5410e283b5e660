package ast

import (
	"ember/internal/source"
)

type StmtKind uint8

const (
	StmtExpr StmtKind = iota
	StmtLet
	StmtReturn
	StmtBreak
	StmtContinue
	StmtGoto
	StmtLabel
	StmtIf
	StmtWhile
	StmtFor
	StmtSwitch
	StmtBlock
)

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type StmtExprData struct{ Expr ExprID }

// StmtLetData is a local variable declaration inside a function body.
type StmtLetData struct {
	Name    source.StringID
	Type    TypeID // NoTypeID if inferred
	Value   ExprID // NoExprID if uninitialized
	Mutable bool
}

type StmtReturnData struct{ Value ExprID } // NoExprID for a bare "return;"

// StmtIfData covers both "if cond" and "if-var pattern = expr": when
// BindName is valid, Cond is the optional/error-union-valued expression and
// BindName names the payload bound inside Then.
type StmtIfData struct {
	Cond     ExprID
	BindName source.StringID
	Then     StmtID
	Else     StmtID // NoStmtID if there is no else branch
}

type StmtWhileData struct {
	Cond ExprID
	Body StmtID
}

// StmtForData iterates an array or slice, binding ElemName to each element
// and, if valid, IndexName to its isize index.
type StmtForData struct {
	ElemName  source.StringID
	IndexName source.StringID
	Iterable  ExprID
	Body      StmtID
}

type SwitchCase struct {
	Value ExprID
	Body  StmtID
}

// StmtSwitchData requires an exhaustive else prong per the language's switch
// semantics; ElseBody is never NoStmtID for a well-formed switch.
type StmtSwitchData struct {
	Scrutinee ExprID
	Cases     []SwitchCase
	ElseBody  StmtID
}

type StmtGotoData struct{ Label source.StringID }

type StmtLabelData struct{ Name source.StringID }

type StmtBlockData struct{ Stmts []StmtID }

type Stmts struct {
	Arena   *Arena[Stmt]
	Exprs   *Arena[StmtExprData]
	Lets    *Arena[StmtLetData]
	Returns *Arena[StmtReturnData]
	Ifs     *Arena[StmtIfData]
	Whiles  *Arena[StmtWhileData]
	Fors    *Arena[StmtForData]
	Switchs *Arena[StmtSwitchData]
	Gotos   *Arena[StmtGotoData]
	Labels  *Arena[StmtLabelData]
	Blocks  *Arena[StmtBlockData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:   NewArena[Stmt](capHint),
		Exprs:   NewArena[StmtExprData](capHint),
		Lets:    NewArena[StmtLetData](capHint),
		Returns: NewArena[StmtReturnData](capHint),
		Ifs:     NewArena[StmtIfData](capHint),
		Whiles:  NewArena[StmtWhileData](capHint),
		Fors:    NewArena[StmtForData](capHint),
		Switchs: NewArena[StmtSwitchData](capHint),
		Gotos:   NewArena[StmtGotoData](capHint),
		Labels:  NewArena[StmtLabelData](capHint),
		Blocks:  NewArena[StmtBlockData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: kind, Span: span, Payload: payload}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	p := s.Exprs.Allocate(StmtExprData{Expr: expr})
	return s.new(StmtExpr, span, PayloadID(p))
}

func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	n := s.Get(id)
	if n == nil || n.Kind != StmtExpr {
		return nil, false
	}
	return s.Exprs.Get(uint32(n.Payload)), true
}

func (s *Stmts) NewLet(span source.Span, data StmtLetData) StmtID {
	p := s.Lets.Allocate(data)
	return s.new(StmtLet, span, PayloadID(p))
}

func (s *Stmts) Let(id StmtID) (*StmtLetData, bool) {
	n := s.Get(id)
	if n == nil || n.Kind != StmtLet {
		return nil, false
	}
	return s.Lets.Get(uint32(n.Payload)), true
}

func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	p := s.Returns.Allocate(StmtReturnData{Value: value})
	return s.new(StmtReturn, span, PayloadID(p))
}

func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	n := s.Get(id)
	if n == nil || n.Kind != StmtReturn {
		return nil, false
	}
	return s.Returns.Get(uint32(n.Payload)), true
}

func (s *Stmts) NewBreak(span source.Span) StmtID { return s.new(StmtBreak, span, NoPayloadID) }

func (s *Stmts) NewContinue(span source.Span) StmtID { return s.new(StmtContinue, span, NoPayloadID) }

func (s *Stmts) NewGoto(span source.Span, label source.StringID) StmtID {
	p := s.Gotos.Allocate(StmtGotoData{Label: label})
	return s.new(StmtGoto, span, PayloadID(p))
}

func (s *Stmts) Goto(id StmtID) (*StmtGotoData, bool) {
	n := s.Get(id)
	if n == nil || n.Kind != StmtGoto {
		return nil, false
	}
	return s.Gotos.Get(uint32(n.Payload)), true
}

func (s *Stmts) NewLabel(span source.Span, name source.StringID) StmtID {
	p := s.Labels.Allocate(StmtLabelData{Name: name})
	return s.new(StmtLabel, span, PayloadID(p))
}

func (s *Stmts) Label(id StmtID) (*StmtLabelData, bool) {
	n := s.Get(id)
	if n == nil || n.Kind != StmtLabel {
		return nil, false
	}
	return s.Labels.Get(uint32(n.Payload)), true
}

func (s *Stmts) NewIf(span source.Span, data StmtIfData) StmtID {
	p := s.Ifs.Allocate(data)
	return s.new(StmtIf, span, PayloadID(p))
}

func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	n := s.Get(id)
	if n == nil || n.Kind != StmtIf {
		return nil, false
	}
	return s.Ifs.Get(uint32(n.Payload)), true
}

func (s *Stmts) NewWhile(span source.Span, cond ExprID, body StmtID) StmtID {
	p := s.Whiles.Allocate(StmtWhileData{Cond: cond, Body: body})
	return s.new(StmtWhile, span, PayloadID(p))
}

func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	n := s.Get(id)
	if n == nil || n.Kind != StmtWhile {
		return nil, false
	}
	return s.Whiles.Get(uint32(n.Payload)), true
}

func (s *Stmts) NewFor(span source.Span, data StmtForData) StmtID {
	p := s.Fors.Allocate(data)
	return s.new(StmtFor, span, PayloadID(p))
}

func (s *Stmts) For(id StmtID) (*StmtForData, bool) {
	n := s.Get(id)
	if n == nil || n.Kind != StmtFor {
		return nil, false
	}
	return s.Fors.Get(uint32(n.Payload)), true
}

func (s *Stmts) NewSwitch(span source.Span, scrutinee ExprID, cases []SwitchCase, elseBody StmtID) StmtID {
	p := s.Switchs.Allocate(StmtSwitchData{
		Scrutinee: scrutinee,
		Cases:     append([]SwitchCase(nil), cases...),
		ElseBody:  elseBody,
	})
	return s.new(StmtSwitch, span, PayloadID(p))
}

func (s *Stmts) Switch(id StmtID) (*StmtSwitchData, bool) {
	n := s.Get(id)
	if n == nil || n.Kind != StmtSwitch {
		return nil, false
	}
	return s.Switchs.Get(uint32(n.Payload)), true
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	p := s.Blocks.Allocate(StmtBlockData{Stmts: append([]StmtID(nil), stmts...)})
	return s.new(StmtBlock, span, PayloadID(p))
}

func (s *Stmts) Block(id StmtID) (*StmtBlockData, bool) {
	n := s.Get(id)
	if n == nil || n.Kind != StmtBlock {
		return nil, false
	}
	return s.Blocks.Get(uint32(n.Payload)), true
}
