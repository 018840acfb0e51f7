package splitter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qbftools/qsplit/pkg/qdimacs"
)

func assignment(pairs ...interface{}) *Assignment {
	a := NewAssignment()
	for i := 0; i < len(pairs); i += 2 {
		a.Fix(pairs[i].(int), pairs[i+1].(bool))
	}
	return a
}

func TestSimplifyMatrix(t *testing.T) {
	type tc struct {
		Name       string
		Matrix     []qdimacs.Clause
		Assignment *Assignment
		Expected   []qdimacs.Clause
	}

	for _, tt := range []tc{
		{
			Name:       "satisfied clause is dropped",
			Matrix:     []qdimacs.Clause{{1, 2}, {3}},
			Assignment: assignment(1, true),
			Expected:   []qdimacs.Clause{{3}},
		},
		{
			Name:       "negated literal satisfies under false",
			Matrix:     []qdimacs.Clause{{-1, 3}},
			Assignment: assignment(1, false),
			Expected:   []qdimacs.Clause{},
		},
		{
			Name:       "false literal is removed from surviving clause",
			Matrix:     []qdimacs.Clause{{1, 2}},
			Assignment: assignment(1, false),
			Expected:   []qdimacs.Clause{{2}},
		},
		{
			Name:       "emptied clause is kept as the empty clause",
			Matrix:     []qdimacs.Clause{{1}},
			Assignment: assignment(1, false),
			Expected:   []qdimacs.Clause{{}},
		},
		{
			Name:       "clause over unassigned variables passes through",
			Matrix:     []qdimacs.Clause{{2, -3}},
			Assignment: assignment(1, true),
			Expected:   []qdimacs.Clause{{2, -3}},
		},
		{
			Name:       "literal order is preserved",
			Matrix:     []qdimacs.Clause{{4, 1, -3, 2}},
			Assignment: assignment(1, false),
			Expected:   []qdimacs.Clause{{4, -3, 2}},
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.Expected, SimplifyMatrix(tt.Matrix, tt.Assignment))
		})
	}
}

func TestSimplifyMatrixDoesNotMutateInput(t *testing.T) {
	matrix := []qdimacs.Clause{{1, 2}, {-1, 3}}
	SimplifyMatrix(matrix, assignment(1, false))
	assert.Equal(t, []qdimacs.Clause{{1, 2}, {-1, 3}}, matrix)
}
