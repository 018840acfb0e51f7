package root

import (
	"github.com/spf13/cobra"

	"github.com/qbftools/qsplit/cmd/merge"
	"github.com/qbftools/qsplit/cmd/solve"
	"github.com/qbftools/qsplit/cmd/split"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "qsplit",
		Short: "qsplit case-splits QDIMACS formulas to aid encoding debugging",
		Long: `qsplit derives a family of smaller QBF formulas from a QDIMACS input by
enumerating all assignments to a leading run of the quantifier prefix,
simplifying the clause matrix under each assignment. It can also build a
single selector formula that recombines the existential branches.`,
	}

	// add sub-commands
	rootCmd.AddCommand(split.NewSplitCommand())
	rootCmd.AddCommand(merge.NewMergeCommand())
	rootCmd.AddCommand(solve.NewSolveCommand())

	return rootCmd
}
