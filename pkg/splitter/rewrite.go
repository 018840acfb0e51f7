package splitter

import "github.com/qbftools/qsplit/pkg/qdimacs"

// RewritePrefix removes every assigned variable from the quantifier
// block that binds it. Blocks emptied by removal are dropped; the
// relative order of surviving blocks and of variables within a block
// is preserved. A fixed variable is a constant and is never quantified
// in the output, under either kind. The input is never mutated.
func RewritePrefix(prefix []qdimacs.Block, a *Assignment) []qdimacs.Block {
	out := make([]qdimacs.Block, 0, len(prefix))
	for _, b := range prefix {
		vars := make([]int, 0, len(b.Vars))
		for _, v := range b.Vars {
			if _, fixed := a.Value(v); fixed {
				continue
			}
			vars = append(vars, v)
		}
		if len(vars) == 0 {
			continue
		}
		out = append(out, qdimacs.Block{Kind: b.Kind, Vars: vars})
	}
	return out
}
