package display

import (
	"fmt"
	"strings"

	"tabula/lib/table"
	"tabula/lib/value"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// Config bounds how much of a table is printed. Non-positive limits disable
// the corresponding bound.
type Config struct {
	MaxRows  int `arg:"--max-rows,env:TABULA_MAX_ROWS" default:"10" help:"rows printed per table"`
	MaxCols  int `arg:"--max-cols,env:TABULA_MAX_COLS" default:"8" help:"columns printed per table"`
	MaxWidth int `arg:"--max-width,env:TABULA_MAX_WIDTH" default:"32" help:"characters printed per cell"`
}

func DefaultConfig() Config {
	return Config{MaxRows: 10, MaxCols: 8, MaxWidth: 32}
}

// window picks which of n positions to show when at most limit fit, keeping
// the head and tail. A -1 marks the elided middle.
func window(n, limit int) []int {
	if limit <= 0 || n <= limit {
		ret := make([]int, n)
		for i := range ret {
			ret[i] = i
		}
		return ret
	}
	head := (limit + 1) / 2
	tail := limit - head
	ret := make([]int, 0, limit+1)
	for i := 0; i < head; i++ {
		ret = append(ret, i)
	}
	ret = append(ret, -1)
	for i := n - tail; i < n; i++ {
		ret = append(ret, i)
	}
	return ret
}

func (c Config) cell(s string) string {
	if c.MaxWidth > 0 && runewidth.StringWidth(s) > c.MaxWidth {
		return runewidth.Truncate(s, c.MaxWidth, ellipsis)
	}
	return s
}

func render(v value.Value) string {
	if s, ok := v.(value.String); ok {
		return fmt.Sprintf("%q", string(s))
	}
	return v.String()
}

// Format renders a shape line followed by a bordered grid whose header shows
// every column's name and type.
func Format(t *table.Table, c Config) string {
	rows := window(t.NumRows(), c.MaxRows)
	cols := window(t.NumCols(), c.MaxCols)

	headers := make([]string, len(cols))
	for i, ci := range cols {
		if ci < 0 {
			headers[i] = ellipsis + "\n---\n"
			continue
		}
		col := t.ColumnAt(ci)
		headers[i] = fmt.Sprintf("%s\n---\n%s", c.cell(col.Name()), col.Type())
	}
	grid := lgtable.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
	for _, ri := range rows {
		row := make([]string, len(cols))
		for i, ci := range cols {
			if ri < 0 || ci < 0 {
				row[i] = ellipsis
				continue
			}
			row[i] = c.cell(render(t.ColumnAt(ci).At(ri)))
		}
		grid = grid.Row(row...)
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("shape: (%s, %s)\n", humanize.Comma(int64(t.NumRows())), humanize.Comma(int64(t.NumCols()))))
	sb.WriteString(grid.String())
	return sb.String()
}
