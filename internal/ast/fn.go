package ast

import "ember/internal/source"

// FnParam is one formal parameter of a function prototype or definition.
type FnParam struct {
	Name source.StringID
	Type TypeID
	Span source.Span
}

// FnProto is the signature shared by a standalone prototype and a
// definition's own header.
type FnProto struct {
	Name        source.StringID
	Visibility  Visibility
	ParamsStart FnParamID
	ParamsCount uint32
	ReturnType  TypeID
	Span        source.Span
}

// FnDef pairs a prototype with its analyzed body.
type FnDef struct {
	Proto FnProto
	Body  StmtID
}

func (i *Items) allocateParams(params []FnParam) (start FnParamID, count uint32) {
	if len(params) == 0 {
		return NoFnParamID, 0
	}
	for idx, p := range params {
		id := FnParamID(i.FnParams.Allocate(p))
		if idx == 0 {
			start = id
		}
	}
	return start, uint32(len(params))
}

func (i *Items) Params(start FnParamID, count uint32) []FnParam {
	if count == 0 || !start.IsValid() {
		return nil
	}
	out := make([]FnParam, 0, count)
	base := uint32(start)
	for off := range count {
		p := i.FnParams.Get(base + off)
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

func (i *Items) FnProto(id ItemID) (*FnProto, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemFnProto {
		return nil, false
	}
	return i.FnProtos.Get(uint32(item.Payload)), true
}

func (i *Items) NewFnProto(name source.StringID, visibility Visibility, params []FnParam, returnType TypeID, span source.Span) ItemID {
	start, count := i.allocateParams(params)
	payload := i.FnProtos.Allocate(FnProto{
		Name:        name,
		Visibility:  visibility,
		ParamsStart: start,
		ParamsCount: count,
		ReturnType:  returnType,
		Span:        span,
	})
	return i.new(ItemFnProto, span, PayloadID(payload))
}

func (i *Items) FnDef(id ItemID) (*FnDef, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemFnDef {
		return nil, false
	}
	return i.FnDefs.Get(uint32(item.Payload)), true
}

func (i *Items) NewFnDef(name source.StringID, visibility Visibility, params []FnParam, returnType TypeID, body StmtID, span source.Span) ItemID {
	start, count := i.allocateParams(params)
	payload := i.FnDefs.Allocate(FnDef{
		Proto: FnProto{
			Name:        name,
			Visibility:  visibility,
			ParamsStart: start,
			ParamsCount: count,
			ReturnType:  returnType,
			Span:        span,
		},
		Body: body,
	})
	return i.new(ItemFnDef, span, PayloadID(payload))
}
