// Package splitter derives families of sub-formulas from a quantified
// formula by case-splitting over a leading run of its quantifier
// prefix, and builds the selector-based merge formula that ties the
// branches back together.
package splitter

// Assignment fixes a contiguous leading run of the quantifier prefix
// to Boolean values. Insertion order is prefix order.
type Assignment struct {
	order  []int
	values map[int]bool
}

// NewAssignment returns an empty assignment.
func NewAssignment() *Assignment {
	return &Assignment{values: make(map[int]bool)}
}

// Fix binds v to val. Fixing the same variable twice panics; the
// splitter enumerates each prefix variable exactly once.
func (a *Assignment) Fix(v int, val bool) {
	if _, ok := a.values[v]; ok {
		panic("variable fixed twice in assignment")
	}
	a.order = append(a.order, v)
	a.values[v] = val
}

// Value reports the value bound to v and whether v is in the domain.
func (a *Assignment) Value(v int) (bool, bool) {
	val, ok := a.values[v]
	return val, ok
}

// Vars returns the assigned variables in prefix order. The returned
// slice is owned by the assignment and must not be modified.
func (a *Assignment) Vars() []int {
	return a.order
}

// Len returns the number of assigned variables.
func (a *Assignment) Len() int {
	return len(a.order)
}

// Label renders the assignment as one character per variable in prefix
// order: 't' for true, 'f' for false. Used to name branch outputs.
func (a *Assignment) Label() string {
	out := make([]byte, len(a.order))
	for i, v := range a.order {
		if a.values[v] {
			out[i] = 't'
		} else {
			out[i] = 'f'
		}
	}
	return string(out)
}

// clone returns an independent copy, used while enumerating branches.
func (a *Assignment) clone() *Assignment {
	out := &Assignment{
		order:  append([]int(nil), a.order...),
		values: make(map[int]bool, len(a.values)),
	}
	for v, val := range a.values {
		out.values[v] = val
	}
	return out
}
