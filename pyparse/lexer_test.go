package pyparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataapis/protogen/pyast"
)

func TestLexBracketsSuppressNewlines(t *testing.T) {
	src := `def concat(
    arrays: tuple[array, ...],
    /,
    *,
    axis: int = 0,
) -> array: ...
`
	m, err := Parse("manipulation_functions", []byte(src))
	require.NoError(t, err)

	fn, ok := m.Body[0].(*pyast.FunctionDef)
	require.True(t, ok, "multi-line signature parsed as %T", m.Body[0])
	assert.Equal(t, "concat", fn.Name)
	require.Len(t, fn.Args.PosOnly, 1)
	assert.Equal(t, "tuple[array, ...]", pyast.Unparse(fn.Args.PosOnly[0].Annotation))
}

func TestLexCommentsAndBlankLines(t *testing.T) {
	src := `# module header comment

e = 2.718281828459045  # Euler

# trailing comment
`
	m, err := Parse("constants", []byte(src))
	require.NoError(t, err)
	require.Len(t, m.Body, 1)
	assert.IsType(t, &pyast.Assign{}, m.Body[0])
}

func TestLexBackslashContinuation(t *testing.T) {
	src := "x = 1 + \\\n    2\n"
	m, err := Parse("m", []byte(src))
	require.NoError(t, err)
	require.Len(t, m.Body, 1)
	assign := m.Body[0].(*pyast.Assign)
	assert.Equal(t, "1 + 2", pyast.Unparse(assign.Value))
}

func TestLexStringVariants(t *testing.T) {
	src := `a = 'single'
b = "double"
c = """triple
line"""
d = r'raw\n'
`
	m, err := Parse("m", []byte(src))
	require.NoError(t, err)
	require.Len(t, m.Body, 4)

	get := func(i int) string {
		c := m.Body[i].(*pyast.Assign).Value.(*pyast.Constant)
		require.Equal(t, pyast.ConstString, c.Kind)
		return c.Str
	}
	assert.Equal(t, "single", get(0))
	assert.Equal(t, "double", get(1))
	assert.Equal(t, "triple\nline", get(2))
	assert.Equal(t, `raw\n`, get(3))
}

func TestLexAdjacentStringConcat(t *testing.T) {
	src := "msg = 'one ' 'two'\n"
	m, err := Parse("m", []byte(src))
	require.NoError(t, err)
	c := m.Body[0].(*pyast.Assign).Value.(*pyast.Constant)
	assert.Equal(t, "one two", c.Str)
}

func TestLexBadIndentation(t *testing.T) {
	// A dedent to a level never seen before is a lexical error.
	src := "def f():\n        x = 1\n    y = 2\n"
	_, err := Parse("m", []byte(src))
	require.Error(t, err)
}
