package pyparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataapis/protogen/pyast"
)

func TestParseFunctionDef(t *testing.T) {
	src := `def add(x1: array, x2: array, /) -> array:
    """
    Calculates the sum for each element.
    """
    ...
`
	m, err := Parse("elementwise_functions", []byte(src))
	require.NoError(t, err)
	require.Len(t, m.Body, 1)

	fn, ok := m.Body[0].(*pyast.FunctionDef)
	require.True(t, ok, "expected FunctionDef, got %T", m.Body[0])
	assert.Equal(t, "add", fn.Name)
	require.Len(t, fn.Args.PosOnly, 2)
	assert.Empty(t, fn.Args.Args)
	assert.Equal(t, "x1", fn.Args.PosOnly[0].Name)
	assert.Equal(t, "array", pyast.Unparse(fn.Args.PosOnly[0].Annotation))
	assert.Equal(t, "array", pyast.Unparse(fn.Returns))

	doc, ok := pyast.Docstring(fn.Body)
	require.True(t, ok)
	assert.Contains(t, doc, "Calculates the sum")
}

func TestParseDefaultsAndKeywordOnly(t *testing.T) {
	src := `def astype(x: array, dtype: dtype, /, *, copy: bool = True, device: device | None = None) -> array: ...
`
	m, err := Parse("data_type_functions", []byte(src))
	require.NoError(t, err)

	fn := m.Body[0].(*pyast.FunctionDef)
	require.Len(t, fn.Args.PosOnly, 2)
	require.Len(t, fn.Args.KwOnly, 2)
	require.Len(t, fn.Args.KwDefaults, 2)
	assert.Equal(t, "True", pyast.Unparse(fn.Args.KwDefaults[0]))
	assert.Equal(t, "device | None", pyast.Unparse(fn.Args.KwOnly[1].Annotation))
	assert.Equal(t, "None", pyast.Unparse(fn.Args.KwDefaults[1]))
	require.Len(t, fn.Body, 1)
	assert.True(t, pyast.IsEllipsisStmt(fn.Body[0]))
}

func TestParseClassDef(t *testing.T) {
	src := `class array:
    def __init__(self: array) -> None: ...

    @property
    def dtype(self: array) -> dtype: ...

    def __add__(self: array, other: int | float | array, /) -> array:
        ...
`
	m, err := Parse("array_object", []byte(src))
	require.NoError(t, err)

	cls, ok := m.Body[0].(*pyast.ClassDef)
	require.True(t, ok)
	assert.Equal(t, "array", cls.Name)
	require.Len(t, cls.Body, 3)

	prop := cls.Body[1].(*pyast.FunctionDef)
	assert.Equal(t, "dtype", prop.Name)
	require.Len(t, prop.Decorators, 1)
	assert.Equal(t, "property", pyast.Unparse(prop.Decorators[0]))
}

func TestParseTypeParams(t *testing.T) {
	src := `class Info[device, dtype](Protocol):
    def devices(self, /) -> list[device]: ...
`
	m, err := Parse("info", []byte(src))
	require.NoError(t, err)

	cls := m.Body[0].(*pyast.ClassDef)
	require.Len(t, cls.TypeParams, 2)
	assert.Equal(t, "device", cls.TypeParams[0].Name)
	assert.Nil(t, cls.TypeParams[0].Bound)
	require.Len(t, cls.Bases, 1)
	assert.Equal(t, "Protocol", pyast.Unparse(cls.Bases[0]))
}

func TestParseAssignments(t *testing.T) {
	src := `from __future__ import annotations

__all__ = ['e', 'inf']

e = 2.718281828459045
"""
IEEE 754 floating-point representation of Euler's constant.
"""

array = TypeVar('array', bound='_array')
`
	m, err := Parse("constants", []byte(src))
	require.NoError(t, err)
	require.Len(t, m.Body, 5)

	imp := m.Body[0].(*pyast.ImportFrom)
	assert.Equal(t, "__future__", imp.Module)

	all := m.Body[1].(*pyast.Assign)
	assert.Equal(t, "__all__", all.Targets[0].(*pyast.Name).ID)

	e := m.Body[2].(*pyast.Assign)
	assert.Equal(t, "2.718281828459045", pyast.Unparse(e.Value))

	doc, ok := pyast.StringConst(m.Body[3])
	require.True(t, ok)
	assert.Contains(t, doc, "Euler's constant")

	tv := m.Body[4].(*pyast.Assign)
	call := tv.Value.(*pyast.Call)
	assert.Equal(t, "TypeVar", call.Func.(*pyast.Name).ID)
}

func TestParseUnsupportedStatementBecomesBad(t *testing.T) {
	src := `if TYPE_CHECKING:
    from ._types import array

def ones(shape: int) -> array: ...
`
	m, err := Parse("creation_functions", []byte(src))
	require.NoError(t, err)
	require.Len(t, m.Body, 2)

	bad, ok := m.Body[0].(*pyast.BadStmt)
	require.True(t, ok, "expected BadStmt, got %T", m.Body[0])
	assert.Equal(t, 1, bad.Line)
	assert.Contains(t, bad.Text, "TYPE_CHECKING")

	fn, ok := m.Body[1].(*pyast.FunctionDef)
	require.True(t, ok, "recovery lost the following statement")
	assert.Equal(t, "ones", fn.Name)
}

func TestParseRenderFixedPoint(t *testing.T) {
	src := `"""Stub docstring."""
from collections.abc import Sequence

def mean(x: array, /, *, axis: int | tuple[int, ...] | None = None, keepdims: bool = False) -> array:
    """
    Calculates the arithmetic mean.
    """
    ...

class finfo_object:
    bits: int
    eps: float
`
	m, err := Parse("statistical_functions", []byte(src))
	require.NoError(t, err)

	first := pyast.Render(m)
	m2, err := Parse("statistical_functions", []byte(first))
	require.NoError(t, err)
	assert.Equal(t, first, pyast.Render(m2), "rendered form should be a parse/render fixed point")
}
