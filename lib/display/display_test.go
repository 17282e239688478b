package display

import (
	"fmt"
	"strings"
	"testing"

	"tabula/lib/table"
	"tabula/lib/value"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boroughs(t *testing.T, n int) *table.Table {
	names := make([]value.Value, n)
	counts := make([]value.Value, n)
	for i := 0; i < n; i++ {
		names[i] = value.String(fmt.Sprintf("borough-%d", i))
		counts[i] = value.Int(i * 1000)
	}
	counts[0] = value.Nil
	b, err := table.ColumnOf("Borough", names...)
	require.NoError(t, err)
	c, err := table.NewColumn("count", value.Types.Int64, counts)
	require.NoError(t, err)
	tbl, err := table.New(b, c)
	require.NoError(t, err)
	return tbl
}

func TestWindow(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2}, window(3, 10))
	assert.Equal(t, []int{0, 1, 2}, window(3, 0))
	assert.Equal(t, []int{0, 1, -1, 8, 9}, window(10, 4))
	assert.Equal(t, []int{0, 1, 2, -1, 8, 9}, window(10, 5))
	assert.Equal(t, []int{}, window(0, 4))
}

func TestFormat(t *testing.T) {
	out := Format(boroughs(t, 3), DefaultConfig())
	assert.True(t, strings.HasPrefix(out, "shape: (3, 2)\n"))
	for _, s := range []string{"Borough", "count", "str", "i64", `"borough-1"`, "2000", "null"} {
		assert.Contains(t, out, s)
	}
	assert.NotContains(t, out, ellipsis)
}

func TestFormatElides(t *testing.T) {
	out := Format(boroughs(t, 2500), Config{MaxRows: 4, MaxCols: 1, MaxWidth: 6})
	assert.True(t, strings.HasPrefix(out, "shape: (2,500, 2)\n"))
	assert.Contains(t, out, ellipsis)
	assert.Contains(t, out, `"boro…`)
	// only the first column fits and its name is truncated
	assert.Contains(t, out, "Borou…")
	assert.NotContains(t, out, "count")
}
