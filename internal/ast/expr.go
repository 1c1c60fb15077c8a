package ast

import (
	"guardc/internal/source"
)

// ExprKind selects which payload arena an Expr points into.
type ExprKind uint8

const (
	ExprIdent  ExprKind = iota
	ExprLit             // int, true, false
	ExprBinary          // арифметика, сравнения, && и ||
	ExprUnary           // ! и унарный минус
	ExprGroup           // (...)
	ExprCall            // f(a, b) - анализом не интерпретируется
)

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// ExprBinaryOp enumerates binary operator kinds.
type ExprBinaryOp uint8

const (
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
	ExprBinaryMod

	// Логические
	ExprBinaryLogicalAnd
	ExprBinaryLogicalOr

	// Сравнения
	ExprBinaryEq
	ExprBinaryNotEq
	ExprBinaryLess
	ExprBinaryLessEq
	ExprBinaryGreater
	ExprBinaryGreaterEq
)

var binaryOpText = [...]string{
	ExprBinaryAdd: "+", ExprBinarySub: "-", ExprBinaryMul: "*", ExprBinaryDiv: "/", ExprBinaryMod: "%",
	ExprBinaryLogicalAnd: "&&", ExprBinaryLogicalOr: "||",
	ExprBinaryEq: "==", ExprBinaryNotEq: "!=",
	ExprBinaryLess: "<", ExprBinaryLessEq: "<=", ExprBinaryGreater: ">", ExprBinaryGreaterEq: ">=",
}

func (op ExprBinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

// IsComparison reports whether op yields a boolean from two operands.
func (op ExprBinaryOp) IsComparison() bool {
	return op >= ExprBinaryEq && op <= ExprBinaryGreaterEq
}

type ExprUnaryOp uint8

const (
	ExprUnaryNot ExprUnaryOp = iota
	ExprUnaryMinus
)

func (op ExprUnaryOp) String() string {
	if op == ExprUnaryMinus {
		return "-"
	}
	return "!"
}

// ExprLitKind distinguishes literal flavours.
type ExprLitKind uint8

const (
	ExprLitInt ExprLitKind = iota
	ExprLitTrue
	ExprLitFalse
)

// Payloads, one arena per kind.

type ExprIdentData struct{ Name source.StringID }

// ExprLiteralData keeps the raw text together with the decoded value.
// Valid is false for integer literals that do not fit in int64.
type ExprLiteralData struct {
	Kind  ExprLitKind
	Raw   source.StringID
	Value int64
	Valid bool
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type ExprGroupData struct{ Inner ExprID }

type ExprCallData struct {
	Target ExprID
	Args   []ExprID
}
