package table

import (
	"fmt"
	"math"
	"strings"

	"tabula/lib/value"
)

// Field names a column and its declared type.
type Field struct {
	Name string
	Type value.Type
}

// Table is an immutable ordered set of equally long, uniquely named columns.
type Table struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// New assembles columns into a table. Columns of different lengths fail with
// ErrShape and repeated names fail with ErrSchema.
func New(columns ...*Column) (*Table, error) {
	t := &Table{
		columns: make([]*Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		if i == 0 {
			t.rows = c.Len()
		} else if c.Len() != t.rows {
			return nil, fmt.Errorf("%w: column '%s' has %d rows but table has %d", value.ErrShape, c.Name(), c.Len(), t.rows)
		}
		if _, ok := t.index[c.Name()]; ok {
			return nil, fmt.Errorf("%w: duplicate column name '%s'", value.ErrSchema, c.Name())
		}
		t.index[c.Name()] = len(t.columns)
		t.columns = append(t.columns, c)
	}
	return t, nil
}

func (t *Table) NumRows() int {
	return t.rows
}

func (t *Table) NumCols() int {
	return len(t.columns)
}

func (t *Table) Names() []string {
	ret := make([]string, len(t.columns))
	for i, c := range t.columns {
		ret[i] = c.Name()
	}
	return ret
}

func (t *Table) Schema() []Field {
	ret := make([]Field, len(t.columns))
	for i, c := range t.columns {
		ret[i] = Field{Name: c.Name(), Type: c.Type()}
	}
	return ret
}

func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column looks a column up by exact, case-sensitive name.
func (t *Table) Column(name string) (*Column, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: column '%s' not found, table has %v", value.ErrName, name, t.Names())
	}
	return t.columns[i], nil
}

func (t *Table) ColumnAt(i int) *Column {
	return t.columns[i]
}

func (t *Table) Columns() []*Column {
	ret := make([]*Column, len(t.columns))
	copy(ret, t.columns)
	return ret
}

func (t *Table) Row(i int) []value.Value {
	ret := make([]value.Value, len(t.columns))
	for j, c := range t.columns {
		ret[j] = c.At(i)
	}
	return ret
}

// With returns a table where c replaces the column of the same name, or is
// appended after the existing columns when there is none.
func (t *Table) With(c *Column) (*Table, error) {
	columns := t.Columns()
	if i, ok := t.index[c.Name()]; ok {
		columns[i] = c
	} else {
		columns = append(columns, c)
	}
	if len(t.columns) > 0 && c.Len() != t.rows {
		return nil, fmt.Errorf("%w: column '%s' has %d rows but table has %d", value.ErrShape, c.Name(), c.Len(), t.rows)
	}
	return New(columns...)
}

// Take gathers rows by index into a new table.
func (t *Table) Take(indices []int) *Table {
	columns := make([]*Column, len(t.columns))
	for i, c := range t.columns {
		columns[i] = c.Take(indices)
	}
	return &Table{columns: columns, index: t.index, rows: len(indices)}
}

// Float64s returns a numeric column as a flat slice for charting. Nulls become
// NaN.
func (t *Table) Float64s(name string) ([]float64, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if !c.Type().IsNumeric() && c.Type() != value.Types.Null {
		return nil, fmt.Errorf("%w: column '%s' of type '%s' is not numeric", value.ErrType, name, c.Type())
	}
	ret := make([]float64, c.Len())
	for i := range ret {
		f, ok := value.AsFloat(c.At(i))
		if !ok {
			f = math.NaN()
		}
		ret[i] = f
	}
	return ret, nil
}

// Strings renders a column as strings. Nulls become empty strings.
func (t *Table) Strings(name string) ([]string, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	ret := make([]string, c.Len())
	for i := range ret {
		v := c.At(i)
		if !value.IsNil(v) {
			ret[i] = v.String()
		}
	}
	return ret, nil
}

func (t *Table) Equal(other *Table) bool {
	if t.rows != other.rows || len(t.columns) != len(other.columns) {
		return false
	}
	for i := range t.columns {
		if !t.columns[i].Equal(other.columns[i]) {
			return false
		}
	}
	return true
}

func (t *Table) String() string {
	var sb strings.Builder
	sb.WriteString("table(")
	for i, c := range t.columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.String())
	}
	sb.WriteRune(')')
	return sb.String()
}
