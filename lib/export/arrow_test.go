package export

import (
	"testing"

	"tabula/lib/table"
	"tabula/lib/value"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRecord(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	weekday, err := table.ColumnOf("weekday", value.String("Monday"), value.String("Tuesday"), value.Nil)
	require.NoError(t, err)
	cyclists, err := table.ColumnOf("Berri 1", value.Int(35), value.Nil, value.Int(135))
	require.NoError(t, err)
	share, err := table.ColumnOf("share", value.Double(0.5), value.Double(0.25), value.Nil)
	require.NoError(t, err)
	busy, err := table.ColumnOf("busy", value.Bool(false), value.Bool(true), value.Nil)
	require.NoError(t, err)
	day, err := table.ColumnOf("Date", value.NewDate(2012, 1, 2), value.Nil, value.NewDate(1970, 1, 1))
	require.NoError(t, err)
	empty, err := table.ColumnOf("empty", value.Nil, value.Nil, value.Nil)
	require.NoError(t, err)
	tbl, err := table.New(weekday, cyclists, share, busy, day, empty)
	require.NoError(t, err)

	rec, err := ToRecord(tbl, mem)
	require.NoError(t, err)
	defer rec.Release()

	assert.Equal(t, int64(3), rec.NumRows())
	assert.Equal(t, int64(6), rec.NumCols())
	assert.Equal(t, "Berri 1", rec.ColumnName(1))

	names := rec.Column(0).(*array.String)
	assert.Equal(t, "Tuesday", names.Value(1))
	assert.True(t, names.IsNull(2))

	ints := rec.Column(1).(*array.Int64)
	assert.Equal(t, int64(135), ints.Value(2))
	assert.True(t, ints.IsNull(1))

	floats := rec.Column(2).(*array.Float64)
	assert.Equal(t, 0.25, floats.Value(1))

	bools := rec.Column(3).(*array.Boolean)
	assert.True(t, bools.Value(1))

	dates := rec.Column(4).(*array.Date32)
	assert.Equal(t, arrow.Date32(value.NewDate(2012, 1, 2)), dates.Value(0))
	assert.Equal(t, arrow.Date32(0), dates.Value(2))

	assert.Equal(t, 3, rec.Column(5).NullN())
}

func TestDataType(t *testing.T) {
	dt, err := DataType(value.Types.Date)
	require.NoError(t, err)
	assert.Equal(t, arrow.DATE32, dt.ID())
	_, err = DataType(value.Type(99))
	assert.ErrorIs(t, err, value.ErrType)
}
