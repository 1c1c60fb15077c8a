package parser

import (
	"guardc/internal/ast"
	"guardc/internal/token"
)

// binaryInfo: приоритет (больше - связывает сильнее) и узел AST.
// Все бинарные операторы левоассоциативны.
type binaryInfo struct {
	prec int
	op   ast.ExprBinaryOp
}

var binaryOps = map[token.Kind]binaryInfo{
	token.OrOr:    {1, ast.ExprBinaryLogicalOr},
	token.AndAnd:  {2, ast.ExprBinaryLogicalAnd},
	token.EqEq:    {3, ast.ExprBinaryEq},
	token.BangEq:  {3, ast.ExprBinaryNotEq},
	token.Lt:      {4, ast.ExprBinaryLess},
	token.LtEq:    {4, ast.ExprBinaryLessEq},
	token.Gt:      {4, ast.ExprBinaryGreater},
	token.GtEq:    {4, ast.ExprBinaryGreaterEq},
	token.Plus:    {5, ast.ExprBinaryAdd},
	token.Minus:   {5, ast.ExprBinarySub},
	token.Star:    {6, ast.ExprBinaryMul},
	token.Slash:   {6, ast.ExprBinaryDiv},
	token.Percent: {6, ast.ExprBinaryMod},
}

// binaryPrec returns -1 for tokens that are not binary operators.
func binaryPrec(kind token.Kind) int {
	if info, ok := binaryOps[kind]; ok {
		return info.prec
	}
	return -1
}

func binaryOp(kind token.Kind) ast.ExprBinaryOp {
	info, ok := binaryOps[kind]
	if !ok {
		panic("parser: not a binary operator: " + kind.String())
	}
	return info.op
}

func unaryOp(kind token.Kind) (ast.ExprUnaryOp, bool) {
	switch kind {
	case token.Bang:
		return ast.ExprUnaryNot, true
	case token.Minus:
		return ast.ExprUnaryMinus, true
	}
	return 0, false
}
