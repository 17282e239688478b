package operators

import (
	"fmt"
	"sort"

	"tabula/engine/ast"
	"tabula/engine/interpreter"
	"tabula/lib/table"
	"tabula/lib/timer"
	"tabula/lib/value"

	"github.com/samber/lo"
)

// Select keeps the named columns in the given order. Naming a column twice
// fails with ErrSchema since a table can not hold two columns of one name, and
// so does naming none, which could not keep the row count.
func Select(tbl *table.Table, names ...string) (*table.Table, error) {
	defer timer.Start("operators.select").Stop()
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: select needs at least one column", value.ErrSchema)
	}
	if dups := lo.FindDuplicates(names); len(dups) > 0 {
		return nil, fmt.Errorf("%w: columns %v selected more than once", value.ErrSchema, dups)
	}
	columns := make([]*table.Column, len(names))
	for i, name := range names {
		c, err := tbl.Column(name)
		if err != nil {
			return nil, err
		}
		columns[i] = c
	}
	return table.New(columns...)
}

// Filter keeps, in order, the rows for which predicate evaluates to true.
// Null and false both drop the row.
func Filter(tbl *table.Table, predicate ast.Ast) (*table.Table, error) {
	defer timer.Start("operators.filter").Stop()
	mask, err := interpreter.Evaluate(predicate, tbl)
	if err != nil {
		return nil, err
	}
	if mask.Type() != value.Types.Bool && mask.Type() != value.Types.Null {
		return nil, fmt.Errorf("%w: filter predicate '%s' must be boolean. Got '%s'", value.ErrType, ast.String(predicate), mask.Type())
	}
	keep := make([]int, 0, mask.Len())
	for i := 0; i < mask.Len(); i++ {
		if b, ok := mask.At(i).(value.Bool); ok && bool(b) {
			keep = append(keep, i)
		}
	}
	return tbl.Take(keep), nil
}

// WithColumns evaluates each expression against the table as extended by the
// expressions before it, then appends or replaces the named column.
func WithColumns(tbl *table.Table, named ...ast.Named) (*table.Table, error) {
	defer timer.Start("operators.with_columns").Stop()
	ret := tbl
	for _, n := range named {
		c, err := interpreter.Evaluate(n.Expr, ret)
		if err != nil {
			return nil, err
		}
		if c.Len() != ret.NumRows() {
			return nil, fmt.Errorf("%w: expression for '%s' produced %d rows but table has %d", value.ErrShape, n.Name, c.Len(), ret.NumRows())
		}
		if ret, err = ret.With(c.Rename(n.Name)); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// Rename changes column names in place. Every old name must exist and the
// result must not contain duplicate names.
func Rename(tbl *table.Table, names map[string]string) (*table.Table, error) {
	for old := range names {
		if !tbl.Has(old) {
			return nil, fmt.Errorf("%w: can not rename missing column '%s'", value.ErrName, old)
		}
	}
	columns := lo.Map(tbl.Columns(), func(c *table.Column, _ int) *table.Column {
		if name, ok := names[c.Name()]; ok {
			return c.Rename(name)
		}
		return c
	})
	return table.New(columns...)
}

// Head returns the first n rows, or all rows when there are fewer.
func Head(tbl *table.Table, n int) *table.Table {
	if n < 0 {
		n = 0
	}
	if n > tbl.NumRows() {
		n = tbl.NumRows()
	}
	return tbl.Take(lo.Range(n))
}

// SortBy orders rows by one column. The sort is stable and nulls always come
// last, whichever the direction.
func SortBy(tbl *table.Table, name string, descending bool) (*table.Table, error) {
	defer timer.Start("operators.sort").Stop()
	c, err := tbl.Column(name)
	if err != nil {
		return nil, err
	}
	if !c.Type().Orderable() && c.Type() != value.Types.Null {
		return nil, fmt.Errorf("%w: can not sort by column '%s' of type '%s'", value.ErrType, name, c.Type())
	}
	order := lo.Range(tbl.NumRows())
	var cmpErr error
	sort.SliceStable(order, func(i, j int) bool {
		l, r := c.At(order[i]), c.At(order[j])
		switch {
		case value.IsNil(l):
			return false
		case value.IsNil(r):
			return true
		}
		cmp, err := value.Compare(l, r)
		if err != nil {
			cmpErr = err
			return false
		}
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})
	if cmpErr != nil {
		return nil, cmpErr
	}
	return tbl.Take(order), nil
}
