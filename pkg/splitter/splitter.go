package splitter

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/qbftools/qsplit/pkg/qdimacs"
)

// DepthOutOfRangeError reports a requested split depth beyond the
// number of variables in the quantifier prefix.
type DepthOutOfRangeError struct {
	Depth     int
	PrefixLen int
}

func (e *DepthOutOfRangeError) Error() string {
	return fmt.Sprintf("split depth %d out of range for a quantifier prefix of %d variables", e.Depth, e.PrefixLen)
}

// SplitResult is one branch of a split: the assignment that fixes the
// branch, the simplified formula, and a stable index in [0, 2^depth).
// The index reads the assignment as a binary number with the earliest
// split variable as the most significant bit, false = 0.
type SplitResult struct {
	Index      int
	Assignment *Assignment
	Formula    *qdimacs.Formula
}

// Splitter enumerates branch formulas. Branches are independent values
// with no aliasing, so the splitter computes them on parallel workers;
// results are always delivered in index order regardless of execution
// order.
type Splitter struct {
	jobs int
}

// Option configures a Splitter.
type Option func(*Splitter) error

// WithJobs sets the number of parallel branch workers.
func WithJobs(n int) Option {
	return func(s *Splitter) error {
		if n < 1 {
			return fmt.Errorf("jobs must be at least 1, got %d", n)
		}
		s.jobs = n
		return nil
	}
}

var defaults = []Option{
	func(s *Splitter) error {
		if s.jobs == 0 {
			s.jobs = runtime.NumCPU()
		}
		return nil
	},
}

// New returns a Splitter configured by the given options.
func New(options ...Option) (*Splitter, error) {
	s := &Splitter{}
	for _, option := range append(options, defaults...) {
		if err := option(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Split returns all 2^depth branches of f, in index order. Depth 0 is
// the identity split: a single branch structurally equal to f.
func (s *Splitter) Split(f *qdimacs.Formula, depth int) ([]SplitResult, error) {
	var results []SplitResult
	if depth >= 0 && depth < 63 {
		results = make([]SplitResult, 0, 1<<depth)
	}
	err := s.Stream(f, depth, func(r SplitResult) error {
		results = append(results, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Stream computes the 2^depth branches of f and hands each to sink in
// index order. At most a window of jobs branches is materialized at a
// time, so the full family never resides in memory at once. Stream
// stops at the first sink error.
func (s *Splitter) Stream(f *qdimacs.Formula, depth int, sink func(SplitResult) error) error {
	prefix := f.PrefixVars()
	if depth < 0 || depth > len(prefix) {
		return &DepthOutOfRangeError{Depth: depth, PrefixLen: len(prefix)}
	}
	if depth == 0 {
		return sink(SplitResult{Index: 0, Assignment: NewAssignment(), Formula: f.Clone()})
	}

	vars := prefix[:depth]
	n := 1 << depth
	for base := 0; base < n; base += s.jobs {
		end := min(base+s.jobs, n)
		window := make([]SplitResult, end-base)
		g := new(errgroup.Group)
		for k := base; k < end; k++ {
			k := k
			g.Go(func() error {
				window[k-base] = branch(f, vars, k, depth)
				return nil
			})
		}
		_ = g.Wait() // branch computation cannot fail
		for i := range window {
			if err := sink(window[i]); err != nil {
				return err
			}
			window[i] = SplitResult{}
		}
	}
	return nil
}

// branch materializes the split branch with the given index: fixes the
// split variables per the index bits, simplifies the matrix, and
// rewrites the prefix. Universal and existential variables split
// identically; the quantifier kind only matters for how branches are
// recombined downstream.
func branch(f *qdimacs.Formula, vars []int, index, depth int) SplitResult {
	a := NewAssignment()
	for i, v := range vars {
		a.Fix(v, (index>>(depth-1-i))&1 == 1)
	}

	out := f.Clone()
	out.Prefix = RewritePrefix(f.Prefix, a)
	out.Matrix = SimplifyMatrix(f.Matrix, a)
	out.Header = qdimacs.Header{Vars: out.MaxVar(), Clauses: len(out.Matrix)}

	return SplitResult{Index: index, Assignment: a, Formula: out}
}
