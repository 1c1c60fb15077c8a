package ast

import (
	"guardc/internal/source"
)

// Exprs owns every expression of a file. Expr nodes live in one arena and
// point at their kind-specific payload through Expr.Payload.
type Exprs struct {
	Arena    *Arena[Expr]
	Idents   *Arena[ExprIdentData]
	Literals *Arena[ExprLiteralData]
	Binaries *Arena[ExprBinaryData]
	Unaries  *Arena[ExprUnaryData]
	Groups   *Arena[ExprGroupData]
	Calls    *Arena[ExprCallData]
}

// NewExprs preallocates capHint slots (256 when 0); rare kinds get a quarter.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 256
	}
	rare := capHint / 4
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Idents:   NewArena[ExprIdentData](capHint),
		Literals: NewArena[ExprLiteralData](capHint),
		Binaries: NewArena[ExprBinaryData](capHint),
		Unaries:  NewArena[ExprUnaryData](rare),
		Groups:   NewArena[ExprGroupData](rare),
		Calls:    NewArena[ExprCallData](rare),
	}
}

func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// add stores payload in arena and links a new Expr of kind to it.
func add[T any](e *Exprs, arena *Arena[T], kind ExprKind, span source.Span, payload T) ExprID {
	ref := PayloadID(arena.Allocate(payload))
	return ExprID(e.Arena.Allocate(Expr{Kind: kind, Span: span, Payload: ref}))
}

// payloadOf returns the payload of id if it is an expression of kind.
func payloadOf[T any](e *Exprs, arena *Arena[T], kind ExprKind, id ExprID) (*T, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return nil, false
	}
	data := arena.Get(uint32(expr.Payload))
	return data, data != nil
}

func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	return add(e, e.Idents, ExprIdent, span, ExprIdentData{Name: name})
}

// NewIntLiteral: valid=false, если текст не влез в int64.
func (e *Exprs) NewIntLiteral(span source.Span, raw source.StringID, value int64, valid bool) ExprID {
	return add(e, e.Literals, ExprLit, span, ExprLiteralData{Kind: ExprLitInt, Raw: raw, Value: value, Valid: valid})
}

// NewBoolLiteral stores true as 1 and false as 0.
func (e *Exprs) NewBoolLiteral(span source.Span, raw source.StringID, value bool) ExprID {
	data := ExprLiteralData{Kind: ExprLitFalse, Raw: raw, Valid: true}
	if value {
		data.Kind, data.Value = ExprLitTrue, 1
	}
	return add(e, e.Literals, ExprLit, span, data)
}

func (e *Exprs) NewBinary(span source.Span, op ExprBinaryOp, left, right ExprID) ExprID {
	return add(e, e.Binaries, ExprBinary, span, ExprBinaryData{Op: op, Left: left, Right: right})
}

func (e *Exprs) NewUnary(span source.Span, op ExprUnaryOp, operand ExprID) ExprID {
	return add(e, e.Unaries, ExprUnary, span, ExprUnaryData{Op: op, Operand: operand})
}

func (e *Exprs) NewGroup(span source.Span, inner ExprID) ExprID {
	return add(e, e.Groups, ExprGroup, span, ExprGroupData{Inner: inner})
}

// NewCall copies args.
func (e *Exprs) NewCall(span source.Span, target ExprID, args []ExprID) ExprID {
	return add(e, e.Calls, ExprCall, span, ExprCallData{Target: target, Args: append([]ExprID(nil), args...)})
}

func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	return payloadOf(e, e.Idents, ExprIdent, id)
}

func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	return payloadOf(e, e.Literals, ExprLit, id)
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	return payloadOf(e, e.Binaries, ExprBinary, id)
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	return payloadOf(e, e.Unaries, ExprUnary, id)
}

func (e *Exprs) Group(id ExprID) (*ExprGroupData, bool) {
	return payloadOf(e, e.Groups, ExprGroup, id)
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	return payloadOf(e, e.Calls, ExprCall, id)
}
