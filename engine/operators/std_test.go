package operators

import (
	"math"
	"testing"

	"tabula/engine/ast"
	"tabula/lib/table"
	"tabula/lib/value"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func column(t *testing.T, name string, vals ...value.Value) *table.Column {
	c, err := table.ColumnOf(name, vals...)
	require.NoError(t, err)
	return c
}

func newTable(t *testing.T, columns ...*table.Column) *table.Table {
	tbl, err := table.New(columns...)
	require.NoError(t, err)
	return tbl
}

func strs(vals ...string) []value.Value {
	ret := make([]value.Value, len(vals))
	for i, v := range vals {
		ret[i] = value.String(v)
	}
	return ret
}

func complaints(t *testing.T) *table.Table {
	return newTable(t,
		column(t, "Complaint Type", strs("Noise - Street/Sidewalk", "Illegal Parking", "Noise - Street/Sidewalk", "Noise - Commercial", "Blocked Driveway")...),
		column(t, "Borough", value.String("BROOKLYN"), value.String("QUEENS"), value.String("BROOKLYN"), value.Nil, value.String("QUEENS")),
		column(t, "Hours", value.Int(3), value.Int(1), value.Nil, value.Int(7), value.Int(2)),
	)
}

// texts renders values so NaN can be compared with assert.Equal.
func texts(c *table.Column) []string {
	ret := make([]string, c.Len())
	for i, v := range c.Values() {
		ret[i] = v.String()
	}
	return ret
}

func isNoise() ast.Ast {
	return ast.Eq(ast.C("Complaint Type"), ast.L(value.String("Noise - Street/Sidewalk")))
}

func TestSelect(t *testing.T) {
	tbl := complaints(t)
	ret, err := Select(tbl, "Hours", "Borough")
	require.NoError(t, err)
	assert.Equal(t, []string{"Hours", "Borough"}, ret.Names())
	assert.Equal(t, tbl.NumRows(), ret.NumRows())

	_, err = Select(tbl, "Hours", "borough")
	assert.ErrorIs(t, err, value.ErrName)

	_, err = Select(tbl, "Hours", "Hours")
	assert.ErrorIs(t, err, value.ErrSchema)

	_, err = Select(tbl)
	assert.ErrorIs(t, err, value.ErrSchema)
}

func TestFilter(t *testing.T) {
	tbl := complaints(t)
	ret, err := Filter(tbl, isNoise())
	require.NoError(t, err)
	assert.Equal(t, 2, ret.NumRows())
	assert.Equal(t, tbl.Names(), ret.Names())
	assert.Equal(t, tbl.Row(0), ret.Row(0))
	assert.Equal(t, tbl.Row(2), ret.Row(1))

	// null mask entries drop the row
	ret, err = Filter(tbl, ast.Gt(ast.C("Hours"), ast.L(value.Int(1))))
	require.NoError(t, err)
	assert.Equal(t, 3, ret.NumRows())
	hours, _ := ret.Column("Hours")
	assert.Equal(t, []value.Value{value.Int(3), value.Int(7), value.Int(2)}, hours.Values())

	ret, err = Filter(tbl, ast.L(value.Bool(false)))
	require.NoError(t, err)
	assert.Equal(t, 0, ret.NumRows())
	assert.Equal(t, tbl.Schema(), ret.Schema())

	_, err = Filter(tbl, ast.C("Hours"))
	assert.ErrorIs(t, err, value.ErrType)
	_, err = Filter(tbl, ast.Eq(ast.C("Missing"), ast.L(value.Int(1))))
	assert.ErrorIs(t, err, value.ErrName)
}

func TestWithColumns(t *testing.T) {
	tbl := complaints(t)
	ret, err := WithColumns(tbl,
		ast.Alias(ast.Mul(ast.C("Hours"), ast.L(value.Int(60))), "Minutes"),
		ast.Alias(ast.Gt(ast.C("Minutes"), ast.L(value.Int(100))), "Long"),
		ast.Alias(ast.L(value.Int(0)), "Hours"),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"Complaint Type", "Borough", "Hours", "Minutes", "Long"}, ret.Names())
	assert.Equal(t, tbl.NumRows(), ret.NumRows())

	minutes, _ := ret.Column("Minutes")
	assert.Equal(t, []value.Value{value.Int(180), value.Int(60), value.Nil, value.Int(420), value.Int(120)}, minutes.Values())
	long, _ := ret.Column("Long")
	assert.Equal(t, []value.Value{value.Bool(true), value.Bool(false), value.Nil, value.Bool(true), value.Bool(true)}, long.Values())
	hours, _ := ret.Column("Hours")
	assert.Equal(t, value.Int(0), hours.At(2))

	// the input table is untouched
	hours, _ = tbl.Column("Hours")
	assert.Equal(t, value.Int(3), hours.At(0))
	assert.False(t, tbl.Has("Minutes"))

	_, err = WithColumns(tbl, ast.Alias(ast.Add(ast.C("Hours"), ast.C("Borough")), "x"))
	assert.ErrorIs(t, err, value.ErrType)
}

func TestRename(t *testing.T) {
	tbl := complaints(t)
	ret, err := Rename(tbl, map[string]string{"Hours": "h", "Borough": "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Complaint Type", "b", "h"}, ret.Names())

	_, err = Rename(tbl, map[string]string{"hours": "h"})
	assert.ErrorIs(t, err, value.ErrName)
	_, err = Rename(tbl, map[string]string{"Hours": "Borough"})
	assert.ErrorIs(t, err, value.ErrSchema)
}

func TestHead(t *testing.T) {
	tbl := complaints(t)
	assert.Equal(t, 2, Head(tbl, 2).NumRows())
	assert.Equal(t, tbl.Row(1), Head(tbl, 2).Row(1))
	assert.True(t, tbl.Equal(Head(tbl, 100)))
	assert.Equal(t, 0, Head(tbl, -1).NumRows())
}

func TestSortBy(t *testing.T) {
	tbl := complaints(t)
	ret, err := SortBy(tbl, "Hours", false)
	require.NoError(t, err)
	hours, _ := ret.Column("Hours")
	assert.Equal(t, []value.Value{value.Int(1), value.Int(2), value.Int(3), value.Int(7), value.Nil}, hours.Values())

	ret, err = SortBy(tbl, "Hours", true)
	require.NoError(t, err)
	hours, _ = ret.Column("Hours")
	assert.Equal(t, []value.Value{value.Int(7), value.Int(3), value.Int(2), value.Int(1), value.Nil}, hours.Values())

	// stable: equal boroughs keep their input order
	ret, err = SortBy(tbl, "Borough", false)
	require.NoError(t, err)
	ct, _ := ret.Column("Complaint Type")
	assert.Equal(t, strs("Noise - Street/Sidewalk", "Noise - Street/Sidewalk", "Illegal Parking", "Blocked Driveway", "Noise - Commercial"), ct.Values())

	_, err = SortBy(tbl, "Missing", false)
	assert.ErrorIs(t, err, value.ErrName)
}

func TestFilterNaN(t *testing.T) {
	tbl := newTable(t, column(t, "x", value.Double(math.NaN()), value.Double(5), value.Double(7)))
	scenarios := []struct {
		predicate ast.Ast
		expected  []string
	}{
		{ast.Eq(ast.C("x"), ast.L(value.Int(5))), []string{"5"}},
		{ast.Gte(ast.C("x"), ast.L(value.Int(6))), []string{"NaN", "7"}},
		{ast.Lte(ast.C("x"), ast.L(value.Int(0))), []string{}},
		{ast.Lt(ast.C("x"), ast.L(value.Double(math.Inf(1)))), []string{"5", "7"}},
		{ast.Eq(ast.C("x"), ast.C("x")), []string{"NaN", "5", "7"}},
	}
	for _, scenario := range scenarios {
		ret, err := Filter(tbl, scenario.predicate)
		require.NoError(t, err)
		x, _ := ret.Column("x")
		assert.Equal(t, scenario.expected, texts(x), ast.String(scenario.predicate))
	}
}

func TestSortByNaN(t *testing.T) {
	tbl := newTable(t, column(t, "v",
		value.Double(3), value.Double(math.NaN()), value.Nil, value.Double(1), value.Double(2)))
	ret, err := SortBy(tbl, "v", false)
	require.NoError(t, err)
	v, _ := ret.Column("v")
	assert.Equal(t, []string{"1", "2", "3", "NaN", "null"}, texts(v))

	ret, err = SortBy(tbl, "v", true)
	require.NoError(t, err)
	v, _ = ret.Column("v")
	assert.Equal(t, []string{"NaN", "3", "2", "1", "null"}, texts(v))
}
