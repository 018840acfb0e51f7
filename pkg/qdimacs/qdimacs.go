// Package qdimacs implements the extended QDIMACS format: the standard
// quantified-CNF interchange format (problem line, quantifier blocks,
// clauses) plus integer-assumption directives.
package qdimacs

// Quantifier is the kind of a quantifier block.
type Quantifier byte

const (
	// Exists marks an existentially quantified block ("e" lines).
	Exists Quantifier = iota
	// Forall marks a universally quantified block ("a" lines).
	Forall
)

func (q Quantifier) String() string {
	switch q {
	case Exists:
		return "e"
	case Forall:
		return "a"
	default:
		panic("invalid quantifier")
	}
}

// Block is one quantifier scope: its kind and the variables it binds,
// in file order. Block order in the prefix is the dependency order.
type Block struct {
	Kind Quantifier
	Vars []int
}

// Clause is a disjunction of signed literals; a negative literal negates
// its variable. A zero-length Clause is the empty clause and denotes
// unsatisfiability.
type Clause []int

// CmpOp is the comparison operator of an assumption constraint.
type CmpOp byte

const (
	CmpLess CmpOp = iota
	CmpGreater
	CmpEquals
)

func (op CmpOp) String() string {
	switch op {
	case CmpLess:
		return "<"
	case CmpGreater:
		return ">"
	case CmpEquals:
		return "="
	default:
		panic("invalid comparison operator")
	}
}

// IntConstraint is one comparison inside an assumption directive: an
// optional operand variable list, an operator, and a right-hand side
// that is either a signed integer or one or more bit patterns
// (most-significant bit first). Patterns == nil means Value applies.
type IntConstraint struct {
	Vars     []int
	Op       CmpOp
	Value    int
	Patterns [][]uint8
}

// Assumption is one "cs int"/"s int" directive line: one or more
// constraints chained with ";". Directives are carried as opaque
// structured metadata; splitting never interprets them.
type Assumption struct {
	Constraints []IntConstraint
}

// Header is the declared problem size from the "p cnf" line. The
// declared counts are validation bounds, not necessarily exact.
type Header struct {
	Vars    int
	Clauses int
}

// Formula is a parsed extended-QDIMACS document. It is built once by
// Parse and must be treated as immutable afterwards; derived formulas
// are fully materialized copies (see Clone).
type Formula struct {
	Header      Header
	Prefix      []Block
	Matrix      []Clause
	Assumptions []Assumption
}

// PrefixVars returns the quantifier prefix flattened to variable order:
// the concatenation of all block variable lists, in block order.
func (f *Formula) PrefixVars() []int {
	var vars []int
	for _, b := range f.Prefix {
		vars = append(vars, b.Vars...)
	}
	return vars
}

// QuantifierOf returns the kind of the block binding v, or false if v
// is not quantified.
func (f *Formula) QuantifierOf(v int) (Quantifier, bool) {
	for _, b := range f.Prefix {
		for _, bv := range b.Vars {
			if bv == v {
				return b.Kind, true
			}
		}
	}
	return 0, false
}

// MaxVar returns the largest variable id referenced by the prefix or
// the matrix, or 0 if neither references any variable.
func (f *Formula) MaxVar() int {
	max := 0
	for _, b := range f.Prefix {
		for _, v := range b.Vars {
			if v > max {
				max = v
			}
		}
	}
	for _, c := range f.Matrix {
		for _, lit := range c {
			v := lit
			if v < 0 {
				v = -v
			}
			if v > max {
				max = v
			}
		}
	}
	return max
}

// Clone returns a deep copy sharing no memory with the receiver.
// Nil and empty slices are preserved as such, so a clone is
// structurally identical to the original.
func (f *Formula) Clone() *Formula {
	out := &Formula{Header: f.Header}
	if f.Prefix != nil {
		out.Prefix = make([]Block, len(f.Prefix))
		for i, b := range f.Prefix {
			out.Prefix[i] = Block{Kind: b.Kind, Vars: append([]int(nil), b.Vars...)}
		}
	}
	if f.Matrix != nil {
		out.Matrix = make([]Clause, len(f.Matrix))
		for i, c := range f.Matrix {
			out.Matrix[i] = append(make(Clause, 0, len(c)), c...)
		}
	}
	if f.Assumptions != nil {
		out.Assumptions = make([]Assumption, len(f.Assumptions))
		for i, a := range f.Assumptions {
			cs := make([]IntConstraint, len(a.Constraints))
			for j, c := range a.Constraints {
				nc := IntConstraint{
					Vars:  append([]int(nil), c.Vars...),
					Op:    c.Op,
					Value: c.Value,
				}
				if c.Patterns != nil {
					nc.Patterns = make([][]uint8, len(c.Patterns))
					for k, p := range c.Patterns {
						nc.Patterns[k] = append([]uint8(nil), p...)
					}
				}
				cs[j] = nc
			}
			out.Assumptions[i] = Assumption{Constraints: cs}
		}
	}
	return out
}
