package split

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/qbftools/qsplit/pkg/qdimacs"
	"github.com/qbftools/qsplit/pkg/splitter"
)

func NewSplitCommand() *cobra.Command {
	var (
		depth  int
		outDir string
		jobs   int
		clamp  bool
	)

	cmd := &cobra.Command{
		Use:   "split <path>",
		Short: "Splits a QDIMACS formula into 2^depth simplified branch formulas",
		Long: `Splits a QDIMACS formula by fixing the first --depth variables of its
quantifier prefix to every possible combination of values. Each branch is
simplified (satisfied clauses dropped, false literals removed) and written
to its own file named after the fixed values, e.g. in-tfft.qdimacs for
branch "tfft".`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], depth, outDir, jobs, clamp)
		},
	}

	cmd.Flags().IntVarP(&depth, "depth", "d", 4, "number of leading prefix variables to fix")
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", ".", "directory to write branch files into")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "parallel branch workers (0 = number of CPUs)")
	cmd.Flags().BoolVar(&clamp, "clamp", false, "clamp depth to the prefix length instead of failing")

	return cmd
}

func run(path string, depth int, outDir string, jobs int, clamp bool) error {
	f, err := parseFile(path)
	if err != nil {
		return err
	}

	if clamp {
		if n := len(f.PrefixVars()); depth > n {
			depth = n
		}
	}

	var options []splitter.Option
	if jobs > 0 {
		options = append(options, splitter.WithJobs(jobs))
	}
	s, err := splitter.New(options...)
	if err != nil {
		return err
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	written := 0
	err = s.Stream(f, depth, func(r splitter.SplitResult) error {
		name := branchFileName(stem, r)
		target := filepath.Join(outDir, name)
		if err := writeFormula(target, r.Formula); err != nil {
			return fmt.Errorf("error writing branch %d to %s: %w", r.Index, target, err)
		}
		log.WithFields(log.Fields{
			"branch":  r.Index,
			"file":    target,
			"clauses": len(r.Formula.Matrix),
		}).Info("wrote branch formula")
		written++
		return nil
	})
	if err != nil {
		return err
	}

	log.WithField("branches", written).Info("split complete")
	return nil
}

// branchFileName encodes the branch assignment into the file name, one
// 't'/'f' per fixed variable. The depth-0 identity split has an empty
// label and gets a plain "-split" suffix instead.
func branchFileName(stem string, r splitter.SplitResult) string {
	label := r.Assignment.Label()
	if label == "" {
		return stem + "-split.qdimacs"
	}
	return stem + "-" + label + ".qdimacs"
}

func parseFile(path string) (*qdimacs.Formula, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening qdimacs file (%s): %w", path, err)
	}
	defer in.Close()

	f, err := qdimacs.Parse(in)
	if err != nil {
		return nil, fmt.Errorf("error parsing qdimacs file (%s): %w", path, err)
	}
	return f, nil
}

func writeFormula(path string, f *qdimacs.Formula) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := qdimacs.Write(out, f); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
