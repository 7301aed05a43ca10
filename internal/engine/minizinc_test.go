package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutput_SingleSolution(t *testing.T) {
	out := `{"s": [[0, 3], [3, 6]], "w": 12}
----------
==========
`
	b, err := parseOutput(out)
	require.NoError(t, err)

	w, err := b.Int("w")
	require.NoError(t, err)
	assert.Equal(t, 12, w)
}

func TestParseOutput_LastSolutionWins(t *testing.T) {
	out := `{"w": 30}
----------
{"w": 12}
----------
==========
`
	b, err := parseOutput(out)
	require.NoError(t, err)

	w, err := b.Int("w")
	require.NoError(t, err)
	assert.Equal(t, 12, w)
}

func TestParseOutput_SkipsCommentLines(t *testing.T) {
	out := `% warning: model inconsistency
{"w": 7}
----------
`
	b, err := parseOutput(out)
	require.NoError(t, err)

	w, err := b.Int("w")
	require.NoError(t, err)
	assert.Equal(t, 7, w)
}

func TestParseOutput_Unsatisfiable(t *testing.T) {
	_, err := parseOutput("=====UNSATISFIABLE=====\n")
	require.ErrorIs(t, err, ErrInfeasible)
}

func TestParseOutput_UnknownWithinBudget(t *testing.T) {
	_, err := parseOutput("=====UNKNOWN=====\n")
	require.ErrorIs(t, err, ErrInfeasible)
}

func TestParseOutput_MalformedOutput(t *testing.T) {
	_, err := parseOutput("not a solution at all\n")
	require.Error(t, err)

	var engErr *Error
	require.ErrorAs(t, err, &engErr)
	assert.NotErrorIs(t, err, ErrInfeasible)
}

func TestBindings_Int2D_Nested(t *testing.T) {
	b := mustBindings(t, `{"s": [[0, 3], [3, 6]]}`)

	mat, err := b.Int2D("s", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 3}, {3, 6}}, mat)
}

func TestBindings_Int2D_Flat(t *testing.T) {
	b := mustBindings(t, `{"s": [0, 3, 3, 6]}`)

	mat, err := b.Int2D("s", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 3}, {3, 6}}, mat)
}

func TestBindings_Int2D_ShapeViolation(t *testing.T) {
	b := mustBindings(t, `{"s": [[0, 3], [3]]}`)

	_, err := b.Int2D("s", 2, 2)
	require.Error(t, err)

	var engErr *Error
	require.ErrorAs(t, err, &engErr)
	assert.Contains(t, engErr.Error(), "[2][2]")
}

func TestBindings_MissingVariable(t *testing.T) {
	b := mustBindings(t, `{"s": [[0]]}`)

	_, err := b.Int("w")
	require.Error(t, err)

	var engErr *Error
	require.ErrorAs(t, err, &engErr)
	assert.Contains(t, engErr.Error(), "w")
}

func mustBindings(t *testing.T, payload string) Bindings {
	t.Helper()
	b, ok := decodeBlock(payload)
	require.True(t, ok)
	return b
}
