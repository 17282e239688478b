package export

import (
	"fmt"

	"tabula/lib/table"
	"tabula/lib/value"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// DataType maps a column type to its Arrow equivalent.
func DataType(t value.Type) (arrow.DataType, error) {
	switch t {
	case value.Types.Int64:
		return arrow.PrimitiveTypes.Int64, nil
	case value.Types.Float64:
		return arrow.PrimitiveTypes.Float64, nil
	case value.Types.Utf8:
		return arrow.BinaryTypes.String, nil
	case value.Types.Bool:
		return arrow.FixedWidthTypes.Boolean, nil
	case value.Types.Date:
		return arrow.FixedWidthTypes.Date32, nil
	case value.Types.Null:
		return arrow.Null, nil
	}
	return nil, fmt.Errorf("%w: no arrow type for '%s'", value.ErrType, t)
}

// ToRecord copies a table into an Arrow record batch. The caller releases it.
func ToRecord(t *table.Table, mem memory.Allocator) (arrow.RecordBatch, error) {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	fields := make([]arrow.Field, t.NumCols())
	columns := make([]arrow.Array, 0, t.NumCols())
	defer func() {
		for _, c := range columns {
			c.Release()
		}
	}()
	for i, c := range t.Columns() {
		dt, err := DataType(c.Type())
		if err != nil {
			return nil, err
		}
		fields[i] = arrow.Field{Name: c.Name(), Type: dt, Nullable: true}
		arr, err := toArray(c, mem)
		if err != nil {
			return nil, err
		}
		columns = append(columns, arr)
	}
	schema := arrow.NewSchema(fields, nil)
	return array.NewRecordBatch(schema, columns, int64(t.NumRows())), nil
}

func toArray(c *table.Column, mem memory.Allocator) (arrow.Array, error) {
	switch c.Type() {
	case value.Types.Int64:
		b := array.NewInt64Builder(mem)
		defer b.Release()
		for i := 0; i < c.Len(); i++ {
			if v, ok := c.At(i).(value.Int); ok {
				b.Append(int64(v))
			} else {
				b.AppendNull()
			}
		}
		return b.NewArray(), nil
	case value.Types.Float64:
		b := array.NewFloat64Builder(mem)
		defer b.Release()
		for i := 0; i < c.Len(); i++ {
			if v, ok := c.At(i).(value.Double); ok {
				b.Append(float64(v))
			} else {
				b.AppendNull()
			}
		}
		return b.NewArray(), nil
	case value.Types.Utf8:
		b := array.NewStringBuilder(mem)
		defer b.Release()
		for i := 0; i < c.Len(); i++ {
			if v, ok := c.At(i).(value.String); ok {
				b.Append(string(v))
			} else {
				b.AppendNull()
			}
		}
		return b.NewArray(), nil
	case value.Types.Bool:
		b := array.NewBooleanBuilder(mem)
		defer b.Release()
		for i := 0; i < c.Len(); i++ {
			if v, ok := c.At(i).(value.Bool); ok {
				b.Append(bool(v))
			} else {
				b.AppendNull()
			}
		}
		return b.NewArray(), nil
	case value.Types.Date:
		b := array.NewDate32Builder(mem)
		defer b.Release()
		for i := 0; i < c.Len(); i++ {
			if v, ok := c.At(i).(value.Date); ok {
				b.Append(arrow.Date32(v))
			} else {
				b.AppendNull()
			}
		}
		return b.NewArray(), nil
	case value.Types.Null:
		return array.NewNull(c.Len()), nil
	}
	return nil, fmt.Errorf("%w: can not export column '%s' of type '%s'", value.ErrType, c.Name(), c.Type())
}
