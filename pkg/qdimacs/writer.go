package qdimacs

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Write serializes f into the extended textual format. The emitted
// header counts are recomputed from the formula body: the variable
// count is the largest referenced variable id and the clause count is
// the exact number of emitted clauses, so re-parsing the output yields
// an equivalent formula (round-trip, modulo the declared counts).
func Write(w io.Writer, f *Formula) error {
	bw := bufio.NewWriter(w)

	for _, a := range f.Assumptions {
		if err := writeAssumption(bw, a); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(bw, "p cnf %d %d\n", f.MaxVar(), len(f.Matrix)); err != nil {
		return err
	}

	for _, b := range f.Prefix {
		if _, err := fmt.Fprintf(bw, "%s", b.Kind); err != nil {
			return err
		}
		for _, v := range b.Vars {
			if _, err := fmt.Fprintf(bw, " %d", v); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(" 0\n"); err != nil {
			return err
		}
	}

	for _, c := range f.Matrix {
		for _, lit := range c {
			if _, err := fmt.Fprintf(bw, "%d ", lit); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString("0\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Format returns f serialized to a string.
func Format(f *Formula) string {
	var sb strings.Builder
	// strings.Builder writes cannot fail
	_ = Write(&sb, f)
	return sb.String()
}

func writeAssumption(w *bufio.Writer, a Assumption) error {
	if _, err := w.WriteString("cs int"); err != nil {
		return err
	}
	for i, c := range a.Constraints {
		if i > 0 {
			if _, err := w.WriteString(" ;"); err != nil {
				return err
			}
		}
		if len(c.Vars) > 0 {
			if _, err := w.WriteString(" ["); err != nil {
				return err
			}
			for j, v := range c.Vars {
				if j > 0 {
					if err := w.WriteByte(' '); err != nil {
						return err
					}
				}
				if _, err := fmt.Fprintf(w, "%d", v); err != nil {
					return err
				}
			}
			if err := w.WriteByte(']'); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, " %s", c.Op); err != nil {
			return err
		}
		if c.Patterns == nil {
			if _, err := fmt.Fprintf(w, " %d", c.Value); err != nil {
				return err
			}
			continue
		}
		for _, pat := range c.Patterns {
			if _, err := w.WriteString(" {"); err != nil {
				return err
			}
			for _, bit := range pat {
				if err := w.WriteByte('0' + bit); err != nil {
					return err
				}
			}
			if err := w.WriteByte('}'); err != nil {
				return err
			}
		}
	}
	return w.WriteByte('\n')
}
