package solve

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/spf13/cobra"

	"github.com/qbftools/qsplit/pkg/qdimacs"
)

func NewSolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "solve <path>",
		Short: "Solves a purely existential branch formula as a SAT instance",
		Long: `Solves a QDIMACS formula whose quantifier prefix is purely existential
by treating its matrix as a plain CNF instance. This is a debugging aid
for inspecting individual split branches; formulas with universal blocks
are rejected.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return solve(args[0])
		},
	}
}

const (
	satisfiable   = 1
	unsatisfiable = -1
)

func solve(path string) error {
	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening qdimacs file (%s): %w", path, err)
	}
	defer in.Close()

	f, err := qdimacs.Parse(in)
	if err != nil {
		return fmt.Errorf("error parsing qdimacs file (%s): %w", path, err)
	}
	for _, b := range f.Prefix {
		if b.Kind == qdimacs.Forall {
			return fmt.Errorf("formula has a universal block over %v; only purely existential formulas can be solved as SAT", b.Vars)
		}
	}

	g := gini.New()
	for _, c := range f.Matrix {
		for _, lit := range c {
			g.Add(z.Dimacs2Lit(lit))
		}
		g.Add(z.LitNull)
	}

	switch g.Solve() {
	case satisfiable:
		fmt.Println("s SATISFIABLE")
		for v := 1; v <= f.MaxVar(); v++ {
			lit := z.Dimacs2Lit(v)
			if g.Value(lit) {
				fmt.Printf("v %d\n", v)
			} else {
				fmt.Printf("v %d\n", -v)
			}
		}
	case unsatisfiable:
		fmt.Println("s UNSATISFIABLE")
	default:
		return fmt.Errorf("solver returned without a verdict")
	}

	return nil
}
