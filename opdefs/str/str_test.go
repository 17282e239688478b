package str

import (
	"testing"

	"tabula/engine/ast"
	"tabula/engine/functions"
	"tabula/engine/interpreter"
	"tabula/lib/table"
	"tabula/lib/value"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringFunctions(t *testing.T) {
	t.Parallel()
	c, err := table.ColumnOf("Borough",
		value.String("Brooklyn"), value.String(" queens "), value.Nil, value.String("Montréal"))
	require.NoError(t, err)
	tbl, err := table.New(c)
	require.NoError(t, err)

	scenarios := []struct {
		name     string
		expected []value.Value
	}{
		{"upper", []value.Value{value.String("BROOKLYN"), value.String(" QUEENS "), value.Nil, value.String("MONTRÉAL")}},
		{"lower", []value.Value{value.String("brooklyn"), value.String(" queens "), value.Nil, value.String("montréal")}},
		{"strip", []value.Value{value.String("Brooklyn"), value.String("queens"), value.Nil, value.String("Montréal")}},
		{"len", []value.Value{value.Int(8), value.Int(8), value.Nil, value.Int(8)}},
	}
	for _, scenario := range scenarios {
		expr, err := functions.Call("str", scenario.name, ast.C("Borough"))
		require.NoError(t, err)
		ret, err := interpreter.Evaluate(expr, tbl)
		require.NoError(t, err, scenario.name)
		assert.Equal(t, scenario.expected, ret.Values(), scenario.name)
	}
}

func TestStringFunctionsRejectNumbers(t *testing.T) {
	c, err := table.ColumnOf("n", value.Int(1))
	require.NoError(t, err)
	tbl, err := table.New(c)
	require.NoError(t, err)
	expr, err := functions.Call("str", "upper", ast.C("n"))
	require.NoError(t, err)
	_, err = interpreter.Evaluate(expr, tbl)
	assert.ErrorIs(t, err, value.ErrType)
}
