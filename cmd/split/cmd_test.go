package split

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qbftools/qsplit/pkg/qdimacs"
	"github.com/qbftools/qsplit/pkg/splitter"
)

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func parseOutput(t *testing.T, path string) *qdimacs.Formula {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	f, err := qdimacs.ParseString(string(data))
	require.NoError(t, err)
	return f
}

func TestRunWritesOneFilePerBranch(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "example.qdimacs", "p cnf 3 2\ne 1 2 3 0\n1 2 0\n-1 3 0\n")

	require.NoError(t, run(in, 1, dir, 1, false))

	fBranch := parseOutput(t, filepath.Join(dir, "example-f.qdimacs"))
	assert.Equal(t, []qdimacs.Clause{{2}}, fBranch.Matrix)
	assert.Equal(t, []qdimacs.Block{{Kind: qdimacs.Exists, Vars: []int{2, 3}}}, fBranch.Prefix)

	tBranch := parseOutput(t, filepath.Join(dir, "example-t.qdimacs"))
	assert.Equal(t, []qdimacs.Clause{{3}}, tBranch.Matrix)
}

func TestRunDepthBeyondPrefix(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "tiny.qdimacs", "p cnf 2 1\ne 1 2 0\n1 2 0\n")

	err := run(in, 10, dir, 1, false)
	var derr *splitter.DepthOutOfRangeError
	require.True(t, errors.As(err, &derr))

	// --clamp falls back to the full prefix instead
	require.NoError(t, run(in, 10, dir, 1, true))
	entries, err := filepath.Glob(filepath.Join(dir, "tiny-*.qdimacs"))
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestBranchFileName(t *testing.T) {
	type tc struct {
		Name     string
		Result   splitter.SplitResult
		Expected string
	}

	withLabel := func(label string) splitter.SplitResult {
		a := splitter.NewAssignment()
		for i, c := range label {
			a.Fix(i+1, c == 't')
		}
		return splitter.SplitResult{Assignment: a}
	}

	for _, tt := range []tc{
		{
			Name:     "identity split",
			Result:   withLabel(""),
			Expected: "in-split.qdimacs",
		},
		{
			Name:     "single branch",
			Result:   withLabel("t"),
			Expected: "in-t.qdimacs",
		},
		{
			Name:     "deep branch",
			Result:   withLabel("tfft"),
			Expected: "in-tfft.qdimacs",
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.Expected, branchFileName("in", tt.Result))
		})
	}
}
