package splitter

import (
	"errors"
	"fmt"

	"github.com/qbftools/qsplit/pkg/qdimacs"
)

// ErrNoBranches is returned when a merge is requested over an empty
// branch list.
var ErrNoBranches = errors.New("cannot build a merge formula from zero branches")

// UniversalSplitError reports a merge over branches that fix a
// universally quantified variable. Universal branches recombine by
// conjunction and never need a selector.
type UniversalSplitError struct {
	Var int
}

func (e *UniversalSplitError) Error() string {
	return fmt.Sprintf("variable %d is universally quantified; merge formulas only recombine existential branches", e.Var)
}

// BuildMerge constructs the selector formula over a complete family of
// existential branches of orig. One fresh selector variable per branch
// is allocated above orig's variable range; each branch clause C
// becomes the implication (-sel_i OR C), and a final clause requires at
// least one selector. Selecting branch i therefore reduces the merge
// formula to exactly that branch, so the merge is satisfiable iff some
// branch is, and the selector recovers the fixed assignment.
func BuildMerge(orig *qdimacs.Formula, results []SplitResult) (*qdimacs.Formula, error) {
	if len(results) == 0 {
		return nil, ErrNoBranches
	}
	for _, v := range results[0].Assignment.Vars() {
		if kind, ok := orig.QuantifierOf(v); ok && kind == qdimacs.Forall {
			return nil, &UniversalSplitError{Var: v}
		}
	}
	depth := results[0].Assignment.Len()
	for _, r := range results {
		if r.Assignment.Len() != depth {
			return nil, fmt.Errorf("branch %d has split depth %d, want %d", r.Index, r.Assignment.Len(), depth)
		}
	}

	selBase := orig.MaxVar() + 1
	sels := make([]int, len(results))
	for i := range results {
		sels[i] = selBase + i
	}

	merged := &qdimacs.Formula{}

	// Selectors lead the prefix existentially; the non-split suffix
	// prefix is identical across branches at equal depth and keeps its
	// quantifier kinds.
	merged.Prefix = append(merged.Prefix, qdimacs.Block{Kind: qdimacs.Exists, Vars: sels})
	for _, b := range results[0].Formula.Prefix {
		merged.Prefix = append(merged.Prefix, qdimacs.Block{
			Kind: b.Kind,
			Vars: append([]int(nil), b.Vars...),
		})
	}

	for i, r := range results {
		for _, c := range r.Formula.Matrix {
			guarded := make(qdimacs.Clause, 0, len(c)+1)
			guarded = append(guarded, -sels[i])
			guarded = append(guarded, c...)
			merged.Matrix = append(merged.Matrix, guarded)
		}
	}
	merged.Matrix = append(merged.Matrix, qdimacs.Clause(append([]int(nil), sels...)))

	// assumption directives pass through from the original
	merged.Assumptions = orig.Clone().Assumptions

	merged.Header = qdimacs.Header{Vars: merged.MaxVar(), Clauses: len(merged.Matrix)}
	return merged, nil
}
