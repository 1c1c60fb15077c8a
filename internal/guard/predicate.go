package guard

import (
	"fmt"
	"strings"

	"guardc/internal/ast"
	"guardc/internal/interval"
)

// PredicateType classifies the guard of one overload.
type PredicateType uint8

const (
	// PredicateBase: no guard on any parameter.
	PredicateBase PredicateType = iota
	// PredicateAnalyzable: a conjunction of literal comparisons on one parameter.
	PredicateAnalyzable
	// PredicateUnknown: everything else.
	PredicateUnknown
)

func (t PredicateType) String() string {
	switch t {
	case PredicateBase:
		return "base"
	case PredicateAnalyzable:
		return "analyzable"
	case PredicateUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("PredicateType(%d)", t)
	}
}

// Atom is a single comparison `param op literal`.
type Atom struct {
	Param   int    // position of the referenced parameter
	Var     string // its name, for display
	Op      interval.Op
	Literal int64 // booleans are stored as 1 (true) and 0 (false)
	IsBool  bool
}

func (a Atom) String() string {
	lit := fmt.Sprint(a.Literal)
	if a.IsBool {
		lit = fmt.Sprint(a.Literal != 0)
	}
	return a.Var + " " + a.Op.String() + " " + lit
}

// Descriptor is the normalized form of a guard. Atoms is empty unless
// Type is PredicateAnalyzable.
type Descriptor struct {
	Type  PredicateType
	Atoms []Atom
}

func (d Descriptor) String() string {
	switch d.Type {
	case PredicateAnalyzable:
		parts := make([]string, len(d.Atoms))
		for i, a := range d.Atoms {
			parts[i] = a.String()
		}
		return strings.Join(parts, " && ")
	case PredicateBase:
		return "always"
	default:
		return "opaque"
	}
}

// Param returns the parameter position every atom refers to, or -1 when the
// atoms are empty or span several parameters.
func (d Descriptor) Param() int {
	if len(d.Atoms) == 0 {
		return -1
	}
	p := d.Atoms[0].Param
	for _, a := range d.Atoms[1:] {
		if a.Param != p {
			return -1
		}
	}
	return p
}

// DeriveInterval folds the atoms into one interval. ok is false when the
// atoms do not constrain exactly one parameter.
func DeriveInterval(atoms []Atom) (iv interval.Interval, ok bool) {
	if len(atoms) == 0 {
		return interval.Full(), false
	}
	iv = interval.Full()
	param := atoms[0].Param
	for _, a := range atoms {
		if a.Param != param || !a.Op.Valid() {
			return interval.Full(), false
		}
		iv = interval.Intersect(iv, interval.FromAtom(a.Op, a.Literal))
	}
	return iv, true
}

// Normalizer classifies overload guards against the expressions of one builder.
type Normalizer struct {
	b *ast.Builder
}

func NewNormalizer(b *ast.Builder) *Normalizer {
	return &Normalizer{b: b}
}

// Classify returns the descriptor of ov. Guards of all parameters are
// conjoined; the result is Analyzable only when every leaf compares the same
// parameter with a literal.
func (n *Normalizer) Classify(ov *Overload) Descriptor {
	if !ov.HasGuard() {
		return Descriptor{Type: PredicateBase}
	}
	var leaves []ast.ExprID
	for _, p := range ov.Params {
		if p.Guard.IsValid() {
			leaves = n.flattenAnd(p.Guard, leaves)
		}
	}
	atoms := make([]Atom, 0, len(leaves))
	for _, leaf := range leaves {
		atom, ok := n.atom(ov, leaf)
		if !ok {
			return Descriptor{Type: PredicateUnknown}
		}
		if len(atoms) > 0 && atoms[0].Param != atom.Param {
			return Descriptor{Type: PredicateUnknown}
		}
		atoms = append(atoms, atom)
	}
	if len(atoms) == 0 {
		return Descriptor{Type: PredicateUnknown}
	}
	return Descriptor{Type: PredicateAnalyzable, Atoms: atoms}
}

// flattenAnd appends the operands of nested && nodes to out. Parentheses are
// transparent.
func (n *Normalizer) flattenAnd(id ast.ExprID, out []ast.ExprID) []ast.ExprID {
	id = n.unwrap(id)
	if bin, ok := n.b.Exprs.Binary(id); ok && bin.Op == ast.ExprBinaryLogicalAnd {
		out = n.flattenAnd(bin.Left, out)
		return n.flattenAnd(bin.Right, out)
	}
	return append(out, id)
}

func (n *Normalizer) unwrap(id ast.ExprID) ast.ExprID {
	for {
		g, ok := n.b.Exprs.Group(id)
		if !ok {
			return id
		}
		id = g.Inner
	}
}

// atom converts one leaf. Anything that is not `param op literal` fails.
func (n *Normalizer) atom(ov *Overload, id ast.ExprID) (Atom, bool) {
	expr := n.b.Exprs.Get(id)
	if expr == nil {
		return Atom{}, false
	}
	switch expr.Kind {
	case ast.ExprBinary:
		bin, ok := n.b.Exprs.Binary(id)
		if !ok {
			return Atom{}, false
		}
		op, ok := comparisonOp(bin.Op)
		if !ok {
			return Atom{}, false
		}
		param, name, ok := n.paramRef(ov, bin.Left)
		if !ok {
			return Atom{}, false
		}
		value, isBool, ok := n.literal(bin.Right)
		if !ok {
			return Atom{}, false
		}
		return Atom{Param: param, Var: name, Op: op, Literal: value, IsBool: isBool}, true
	case ast.ExprIdent, ast.ExprLit, ast.ExprUnary, ast.ExprGroup, ast.ExprCall:
		return Atom{}, false
	default:
		return Atom{}, false
	}
}

func comparisonOp(op ast.ExprBinaryOp) (interval.Op, bool) {
	switch op {
	case ast.ExprBinaryGreater:
		return interval.OpGT, true
	case ast.ExprBinaryGreaterEq:
		return interval.OpGE, true
	case ast.ExprBinaryLess:
		return interval.OpLT, true
	case ast.ExprBinaryLessEq:
		return interval.OpLE, true
	case ast.ExprBinaryEq:
		return interval.OpEQ, true
	default:
		// != has no single-interval form
		return 0, false
	}
}

func (n *Normalizer) paramRef(ov *Overload, id ast.ExprID) (int, string, bool) {
	ident, ok := n.b.Exprs.Ident(n.unwrap(id))
	if !ok {
		return 0, "", false
	}
	name := n.b.Name(ident.Name)
	for i, p := range ov.Params {
		if p.Name == name {
			return i, name, true
		}
	}
	return 0, "", false
}

// literal decodes an int or bool literal. A unary minus over an int literal
// is accepted as a negative literal.
func (n *Normalizer) literal(id ast.ExprID) (value int64, isBool, ok bool) {
	id = n.unwrap(id)
	if un, isUnary := n.b.Exprs.Unary(id); isUnary {
		if un.Op != ast.ExprUnaryMinus {
			return 0, false, false
		}
		lit, isLit := n.b.Exprs.Literal(n.unwrap(un.Operand))
		if !isLit || lit.Kind != ast.ExprLitInt || !lit.Valid {
			return 0, false, false
		}
		return -lit.Value, false, true
	}
	lit, isLit := n.b.Exprs.Literal(id)
	if !isLit {
		return 0, false, false
	}
	switch lit.Kind {
	case ast.ExprLitInt:
		return lit.Value, false, lit.Valid
	case ast.ExprLitTrue:
		return 1, true, true
	case ast.ExprLitFalse:
		return 0, true, true
	default:
		return 0, false, false
	}
}
