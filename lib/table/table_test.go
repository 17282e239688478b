package table

import (
	"math"
	"testing"

	"tabula/lib/value"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boroughs(t *testing.T) *Table {
	ct, err := ColumnOf("Complaint Type",
		value.String("Noise - Street/Sidewalk"), value.String("Illegal Parking"), value.String("Noise - Street/Sidewalk"))
	require.NoError(t, err)
	b, err := ColumnOf("Borough", value.String("BROOKLYN"), value.String("QUEENS"), value.String("BROOKLYN"))
	require.NoError(t, err)
	n, err := ColumnOf("n", value.Int(1), value.Nil, value.Int(3))
	require.NoError(t, err)
	tbl, err := New(ct, b, n)
	require.NoError(t, err)
	return tbl
}

func TestNewColumn(t *testing.T) {
	c, err := NewColumn("x", value.Types.Int64, []value.Value{value.Int(1), value.Nil, value.Int(2)})
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 1, c.NullCount())
	assert.Equal(t, value.Types.Int64, c.Type())

	_, err = NewColumn("x", value.Types.Int64, []value.Value{value.Int(1), value.Double(2)})
	assert.ErrorIs(t, err, value.ErrType)

	c, err = ColumnOf("empty", value.Nil, value.Nil)
	require.NoError(t, err)
	assert.Equal(t, value.Types.Null, c.Type())
}

func TestColumnIsImmutable(t *testing.T) {
	src := []value.Value{value.Int(1), value.Int(2)}
	c, err := NewColumn("x", value.Types.Int64, src)
	require.NoError(t, err)
	src[0] = value.Int(100)
	assert.Equal(t, value.Int(1), c.At(0))

	vals := c.Values()
	vals[1] = value.Int(200)
	assert.Equal(t, value.Int(2), c.At(1))
}

func TestConstantAndTake(t *testing.T) {
	c := Constant("k", value.String("a"), 3)
	assert.Equal(t, value.Types.Utf8, c.Type())
	assert.Equal(t, 3, c.Len())

	taken := c.Take([]int{2, -1, 0})
	assert.Equal(t, []value.Value{value.String("a"), value.Nil, value.String("a")}, taken.Values())
}

func TestNewTable(t *testing.T) {
	tbl := boroughs(t)
	assert.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, 3, tbl.NumCols())
	assert.Equal(t, []string{"Complaint Type", "Borough", "n"}, tbl.Names())
	assert.Equal(t, []value.Value{value.String("Illegal Parking"), value.String("QUEENS"), value.Nil}, tbl.Row(1))

	short, err := ColumnOf("short", value.Int(1))
	require.NoError(t, err)
	_, err = New(tbl.ColumnAt(0), short)
	assert.ErrorIs(t, err, value.ErrShape)

	_, err = New(tbl.ColumnAt(0), tbl.ColumnAt(0))
	assert.ErrorIs(t, err, value.ErrSchema)
}

func TestLookupIsCaseSensitive(t *testing.T) {
	tbl := boroughs(t)
	_, err := tbl.Column("Borough")
	assert.NoError(t, err)
	_, err = tbl.Column("borough")
	assert.ErrorIs(t, err, value.ErrName)
	assert.False(t, tbl.Has("borough"))
}

func TestWith(t *testing.T) {
	tbl := boroughs(t)
	replaced, err := tbl.With(Constant("n", value.Int(0), 3))
	require.NoError(t, err)
	assert.Equal(t, tbl.Names(), replaced.Names())
	c, _ := replaced.Column("n")
	assert.Equal(t, value.Int(0), c.At(1))

	// the original is untouched
	c, _ = tbl.Column("n")
	assert.Equal(t, value.Nil, c.At(1))

	appended, err := tbl.With(Constant("m", value.Int(0), 3))
	require.NoError(t, err)
	assert.Equal(t, []string{"Complaint Type", "Borough", "n", "m"}, appended.Names())

	_, err = tbl.With(Constant("m", value.Int(0), 2))
	assert.ErrorIs(t, err, value.ErrShape)
}

func TestFlatAccessors(t *testing.T) {
	tbl := boroughs(t)
	fs, err := tbl.Float64s("n")
	require.NoError(t, err)
	assert.Equal(t, 1.0, fs[0])
	assert.True(t, math.IsNaN(fs[1]))

	_, err = tbl.Float64s("Borough")
	assert.ErrorIs(t, err, value.ErrType)

	ss, err := tbl.Strings("n")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "", "3"}, ss)
}

func TestEqualAndTake(t *testing.T) {
	tbl := boroughs(t)
	assert.True(t, tbl.Equal(boroughs(t)))
	sub := tbl.Take([]int{0, 2})
	assert.Equal(t, 2, sub.NumRows())
	assert.False(t, tbl.Equal(sub))
	assert.Equal(t, tbl.Names(), sub.Names())
}
