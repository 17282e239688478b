package engine

import (
	"context"
	"testing"
	"time"

	"tabula/engine/ast"
	"tabula/engine/operators"
	"tabula/lib/table"
	"tabula/lib/timer"
	"tabula/lib/value"

	"github.com/raulk/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func complaints(t *testing.T) *table.Table {
	ct, err := table.ColumnOf("Complaint Type",
		value.String("Noise - Street/Sidewalk"), value.String("Illegal Parking"),
		value.String("Noise - Street/Sidewalk"), value.String("Noise - Street/Sidewalk"))
	require.NoError(t, err)
	b, err := table.ColumnOf("Borough",
		value.String("BROOKLYN"), value.String("QUEENS"), value.String("BROOKLYN"), value.String("QUEENS"))
	require.NoError(t, err)
	tbl, err := table.New(ct, b)
	require.NoError(t, err)
	return tbl
}

func TestChain(t *testing.T) {
	ck := clock.NewMock()
	ctx := timer.WithTracing(context.Background(), ck)
	tbl := complaints(t)

	total := From(ctx, tbl).GroupBy("Borough").Count()
	ck.Add(time.Millisecond)
	ret, err := From(ctx, tbl).
		Filter(ast.Eq(ast.C("Complaint Type"), ast.L(value.String("Noise - Street/Sidewalk")))).
		GroupBy("Borough").Count().
		Join(total, "Borough", operators.Inner).
		WithColumns(ast.Alias(ast.Div(ast.C("count_left"), ast.C("count_right")), "ratio")).
		SortBy("ratio", true).
		Select("Borough", "ratio").
		Collect()
	require.NoError(t, err)
	assert.Equal(t, []value.Value{value.String("BROOKLYN"), value.Double(1)}, ret.Row(0))
	assert.Equal(t, []value.Value{value.String("QUEENS"), value.Double(0.5)}, ret.Row(1))

	names := make([]string, 0)
	for _, e := range timer.Events(ctx) {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{
		"group_by.partition", "group_by.reduce", "group_by",
		"filter", "group_by.partition", "group_by.reduce", "group_by",
		"join", "with_columns", "sort", "select",
	}, names)
}

func TestChainKeepsFirstError(t *testing.T) {
	tbl := complaints(t)
	_, err := From(context.Background(), tbl).
		Select("borough").
		Filter(ast.C("Borough")).
		Collect()
	assert.ErrorIs(t, err, value.ErrName)
	assert.Contains(t, err.Error(), "select")

	bad := From(context.Background(), tbl).Filter(ast.C("Borough"))
	_, err = From(context.Background(), tbl).Join(bad, "Borough", operators.Inner).Collect()
	assert.ErrorIs(t, err, value.ErrType)

	ret, err := From(context.Background(), tbl).Head(1).Rename(map[string]string{"Borough": "b"}).Collect()
	require.NoError(t, err)
	assert.Equal(t, []string{"Complaint Type", "b"}, ret.Names())
	assert.Equal(t, 1, ret.NumRows())
}
