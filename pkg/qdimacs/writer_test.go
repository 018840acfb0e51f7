package qdimacs_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/qbftools/qsplit/pkg/qdimacs"
)

var _ = Describe("Format", func() {
	It("should serialize header, blocks and clauses in order", func() {
		f, err := qdimacs.ParseString("p cnf 4 2\ne 1 2 0\na 3 4 0\n1 -3 0\n-2 4 0\n")
		Expect(err).ToNot(HaveOccurred())
		Expect(qdimacs.Format(f)).To(Equal("p cnf 4 2\ne 1 2 0\na 3 4 0\n1 -3 0\n-2 4 0\n"))
	})

	It("should recompute the header from the emitted body", func() {
		f := &qdimacs.Formula{
			Header: qdimacs.Header{Vars: 99, Clauses: 42},
			Prefix: []qdimacs.Block{{Kind: qdimacs.Exists, Vars: []int{2, 3}}},
			Matrix: []qdimacs.Clause{{2, -3}},
		}
		Expect(qdimacs.Format(f)).To(Equal("p cnf 3 1\ne 2 3 0\n2 -3 0\n"))
	})

	It("should emit the empty clause as a bare terminator", func() {
		f := &qdimacs.Formula{
			Matrix: []qdimacs.Clause{{1}, {}},
		}
		Expect(qdimacs.Format(f)).To(Equal("p cnf 1 2\n1 0\n0\n"))
	})

	It("should emit assumption directives before the problem line", func() {
		in := "cs int [1 2] = {101} ; < 5\np cnf 2 1\n1 2 0\n"
		f, err := qdimacs.ParseString(in)
		Expect(err).ToNot(HaveOccurred())
		Expect(qdimacs.Format(f)).To(Equal(in))
	})

	It("should round-trip a full document modulo the declared counts", func() {
		in := "c provenance comment\n" +
			"s int [3] > -12\n" +
			"p cnf 9 3\n" +
			"e 1 2 0\n" +
			"a 3 0\n" +
			"e 4 0\n" +
			"1 -3 4 0\n" +
			"-2 3 0\n" +
			"0\n"
		f, err := qdimacs.ParseString(in)
		Expect(err).ToNot(HaveOccurred())

		again, err := qdimacs.ParseString(qdimacs.Format(f))
		Expect(err).ToNot(HaveOccurred())
		Expect(again.Prefix).To(Equal(f.Prefix))
		Expect(again.Matrix).To(Equal(f.Matrix))
		Expect(again.Assumptions).To(Equal(f.Assumptions))
		// counts reflect the actual body, not the original header
		Expect(again.Header).To(Equal(qdimacs.Header{Vars: 4, Clauses: 3}))
	})
})
