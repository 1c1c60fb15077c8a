package ast

import (
	"strconv"
	"strings"
)

// FormatExpr renders a guard expression back to source-like text.
// Groups keep their parentheses; nothing else is inserted.
func (b *Builder) FormatExpr(id ExprID) string {
	var sb strings.Builder
	b.writeExpr(&sb, id)
	return sb.String()
}

func (b *Builder) writeExpr(sb *strings.Builder, id ExprID) {
	expr := b.Exprs.Get(id)
	if expr == nil {
		sb.WriteString("<invalid>")
		return
	}
	switch expr.Kind {
	case ExprIdent:
		data, _ := b.Exprs.Ident(id)
		if data == nil {
			sb.WriteString("<invalid>")
			return
		}
		sb.WriteString(b.Name(data.Name))
	case ExprLit:
		data, _ := b.Exprs.Literal(id)
		switch {
		case data == nil:
			sb.WriteString("<invalid>")
		case data.Kind == ExprLitTrue:
			sb.WriteString("true")
		case data.Kind == ExprLitFalse:
			sb.WriteString("false")
		case data.Valid:
			sb.WriteString(strconv.FormatInt(data.Value, 10))
		default:
			sb.WriteString(b.Name(data.Raw))
		}
	case ExprBinary:
		data, _ := b.Exprs.Binary(id)
		if data == nil {
			sb.WriteString("<invalid>")
			return
		}
		b.writeExpr(sb, data.Left)
		sb.WriteByte(' ')
		sb.WriteString(data.Op.String())
		sb.WriteByte(' ')
		b.writeExpr(sb, data.Right)
	case ExprUnary:
		data, _ := b.Exprs.Unary(id)
		if data == nil {
			sb.WriteString("<invalid>")
			return
		}
		sb.WriteString(data.Op.String())
		b.writeExpr(sb, data.Operand)
	case ExprGroup:
		data, _ := b.Exprs.Group(id)
		if data == nil {
			sb.WriteString("<invalid>")
			return
		}
		sb.WriteByte('(')
		b.writeExpr(sb, data.Inner)
		sb.WriteByte(')')
	case ExprCall:
		data, _ := b.Exprs.Call(id)
		if data == nil {
			sb.WriteString("<invalid>")
			return
		}
		b.writeExpr(sb, data.Target)
		sb.WriteByte('(')
		for i, arg := range data.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			b.writeExpr(sb, arg)
		}
		sb.WriteByte(')')
	default:
		sb.WriteString("<invalid>")
	}
}
