package interval

// Op is a comparison operator whose right operand is a literal.
type Op uint8

const (
	OpGT Op = iota + 1 // >
	OpGE               // >=
	OpLT               // <
	OpLE               // <=
	OpEQ               // ==
)

func (op Op) String() string {
	switch op {
	case OpGT:
		return ">"
	case OpGE:
		return ">="
	case OpLT:
		return "<"
	case OpLE:
		return "<="
	case OpEQ:
		return "=="
	default:
		return "?"
	}
}

// Valid reports whether op is one of the supported comparisons.
func (op Op) Valid() bool {
	return op >= OpGT && op <= OpEQ
}
