package splitter

import "github.com/qbftools/qsplit/pkg/qdimacs"

// SimplifyMatrix rewrites clauses under a partial assignment: clauses
// with a true literal are dropped, false literals are removed from
// surviving clauses, and a clause emptied by removal is kept as the
// explicit empty clause. Clauses over unassigned variables pass
// through untouched, literal order preserved. The input is never
// mutated; every returned clause is freshly allocated.
func SimplifyMatrix(matrix []qdimacs.Clause, a *Assignment) []qdimacs.Clause {
	out := make([]qdimacs.Clause, 0, len(matrix))
	for _, c := range matrix {
		sc, satisfied := simplifyClause(c, a)
		if satisfied {
			continue
		}
		out = append(out, sc)
	}
	return out
}

func simplifyClause(c qdimacs.Clause, a *Assignment) (qdimacs.Clause, bool) {
	out := make(qdimacs.Clause, 0, len(c))
	for _, lit := range c {
		v := lit
		if v < 0 {
			v = -v
		}
		val, ok := a.Value(v)
		if !ok {
			out = append(out, lit)
			continue
		}
		if val == (lit > 0) {
			return nil, true
		}
		// literal false under the assignment, dropped
	}
	return out, false
}
