package merge

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/qbftools/qsplit/pkg/qdimacs"
	"github.com/qbftools/qsplit/pkg/splitter"
)

func NewMergeCommand() *cobra.Command {
	var (
		depth int
		out   string
	)

	cmd := &cobra.Command{
		Use:   "merge <path>",
		Short: "Builds the selector formula over all branches of a split",
		Long: `Splits a QDIMACS formula at the given depth and builds one merged
formula with a fresh existential selector variable per branch: selecting a
branch reduces the merged formula to exactly that branch, so a satisfying
assignment of the merge identifies a satisfiable branch and with it an
assignment of the split variables of the original formula. Only
existential branches can be merged; universal branches recombine by
conjunction and need no selector.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], depth, out)
		},
	}

	cmd.Flags().IntVarP(&depth, "depth", "d", 4, "number of leading prefix variables to fix")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: stdout)")

	return cmd
}

func run(path string, depth int, out string) error {
	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening qdimacs file (%s): %w", path, err)
	}
	defer in.Close()

	f, err := qdimacs.Parse(in)
	if err != nil {
		return fmt.Errorf("error parsing qdimacs file (%s): %w", path, err)
	}

	s, err := splitter.New()
	if err != nil {
		return err
	}
	results, err := s.Split(f, depth)
	if err != nil {
		return err
	}

	merged, err := splitter.BuildMerge(f, results)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"branches":  len(results),
		"selectors": len(results),
		"clauses":   len(merged.Matrix),
	}).Info("built merge formula")

	if out == "" {
		return qdimacs.Write(os.Stdout, merged)
	}
	target, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("error creating output file (%s): %w", out, err)
	}
	if err := qdimacs.Write(target, merged); err != nil {
		target.Close()
		return fmt.Errorf("error writing merge formula to %s: %w", out, err)
	}
	return target.Close()
}
