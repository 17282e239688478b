package table

import (
	"fmt"
	"strings"

	"tabula/lib/value"
)

// Column is an immutable, named, homogeneously typed sequence of values.
// The backing slice is never handed out for writing, so a Column may be
// shared by any number of Tables.
type Column struct {
	name   string
	typ    value.Type
	values []value.Value
}

// NewColumn copies values into a new column after checking that every value is
// either Nil or of type typ.
func NewColumn(name string, typ value.Type, values []value.Value) (*Column, error) {
	b := NewBuilder(name, typ, len(values))
	for _, v := range values {
		if err := b.Append(v); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// ColumnOf builds a column whose type is taken from the first non-null value.
// A column of only nulls has type Null.
func ColumnOf(name string, values ...value.Value) (*Column, error) {
	typ := value.Types.Null
	for _, v := range values {
		if !value.IsNil(v) {
			typ = v.Type()
			break
		}
	}
	return NewColumn(name, typ, values)
}

// Constant returns a column of n copies of v.
func Constant(name string, v value.Value, n int) *Column {
	if v == nil {
		v = value.Nil
	}
	values := make([]value.Value, n)
	for i := range values {
		values[i] = v
	}
	return &Column{name: name, typ: v.Type(), values: values}
}

func (c *Column) Name() string {
	return c.name
}

func (c *Column) Type() value.Type {
	return c.typ
}

func (c *Column) Len() int {
	return len(c.values)
}

func (c *Column) At(i int) value.Value {
	return c.values[i]
}

// Values returns a copy of the column's values.
func (c *Column) Values() []value.Value {
	ret := make([]value.Value, len(c.values))
	copy(ret, c.values)
	return ret
}

func (c *Column) NullCount() int {
	n := 0
	for _, v := range c.values {
		if value.IsNil(v) {
			n++
		}
	}
	return n
}

// Rename returns the same values under a new name. Storage is shared.
func (c *Column) Rename(name string) *Column {
	return &Column{name: name, typ: c.typ, values: c.values}
}

// Take gathers the rows at the given indices. A negative index produces Nil,
// which is how unmatched rows of an outer join are filled.
func (c *Column) Take(indices []int) *Column {
	values := make([]value.Value, len(indices))
	for i, idx := range indices {
		if idx < 0 {
			values[i] = value.Nil
		} else {
			values[i] = c.values[idx]
		}
	}
	return &Column{name: c.name, typ: c.typ, values: values}
}

func (c *Column) Equal(other *Column) bool {
	if c.name != other.name || c.typ != other.typ || len(c.values) != len(other.values) {
		return false
	}
	for i := range c.values {
		if !c.values[i].Equal(other.values[i]) {
			return false
		}
	}
	return true
}

func (c *Column) String() string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("%s[%s](", c.name, c.typ))
	for i, v := range c.values {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.String())
	}
	sb.WriteString(")")
	return sb.String()
}

// Builder accumulates values for a single column. Build hands the accumulated
// slice over to the column, after which the builder must not be reused.
type Builder struct {
	name   string
	typ    value.Type
	values []value.Value
}

func NewBuilder(name string, typ value.Type, capacity int) *Builder {
	return &Builder{name: name, typ: typ, values: make([]value.Value, 0, capacity)}
}

func (b *Builder) Append(v value.Value) error {
	if v == nil {
		v = value.Nil
	}
	if !b.typ.Accepts(v) {
		return fmt.Errorf("%w: column '%s' of type '%s' can not hold value '%s' of type '%s'", value.ErrType, b.name, b.typ, v, v.Type())
	}
	b.values = append(b.values, v)
	return nil
}

func (b *Builder) Len() int {
	return len(b.values)
}

func (b *Builder) Build() *Column {
	c := &Column{name: b.name, typ: b.typ, values: b.values}
	b.values = nil
	return c
}
