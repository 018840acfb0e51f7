package merge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qbftools/qsplit/pkg/qdimacs"
)

func TestRunWritesMergeFormula(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "example.qdimacs")
	require.NoError(t, os.WriteFile(in, []byte("p cnf 3 2\ne 1 2 3 0\n1 2 0\n-1 3 0\n"), 0o644))
	out := filepath.Join(dir, "merged.qdimacs")

	require.NoError(t, run(in, 1, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	merged, err := qdimacs.ParseString(string(data))
	require.NoError(t, err)

	assert.Equal(t, []qdimacs.Block{
		{Kind: qdimacs.Exists, Vars: []int{4, 5}},
		{Kind: qdimacs.Exists, Vars: []int{2, 3}},
	}, merged.Prefix)
	assert.Equal(t, []qdimacs.Clause{
		{-4, 2},
		{-5, 3},
		{4, 5},
	}, merged.Matrix)
}

func TestRunRejectsUniversalSplit(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "universal.qdimacs")
	require.NoError(t, os.WriteFile(in, []byte("p cnf 2 2\na 1 0\ne 2 0\n1 2 0\n-1 2 0\n"), 0o644))

	err := run(in, 1, filepath.Join(dir, "merged.qdimacs"))
	assert.Error(t, err)
}
