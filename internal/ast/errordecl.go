package ast

import "ember/internal/source"

// ErrorDecl declares one or more named pure-error values, e.g.
// "error NotFound, PermissionDenied;".
type ErrorDecl struct {
	Names      []source.StringID
	Visibility Visibility
	Span       source.Span
}

func (i *Items) ErrorDecl(id ItemID) (*ErrorDecl, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemErrorDecl {
		return nil, false
	}
	return i.ErrorDecls.Get(uint32(item.Payload)), true
}

func (i *Items) NewErrorDecl(names []source.StringID, visibility Visibility, span source.Span) ItemID {
	payload := i.ErrorDecls.Allocate(ErrorDecl{
		Names:      append([]source.StringID(nil), names...),
		Visibility: visibility,
		Span:       span,
	})
	return i.new(ItemErrorDecl, span, PayloadID(payload))
}
