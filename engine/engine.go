package engine

import (
	"context"
	"fmt"

	"tabula/engine/ast"
	"tabula/engine/operators"
	"tabula/lib/table"
	"tabula/lib/timer"
)

// Frame chains operators over a table. The first failing step is kept and
// every later step is skipped, so a chain is checked once at the end.
type Frame struct {
	ctx context.Context
	tbl *table.Table
	err error
}

func From(ctx context.Context, tbl *table.Table) Frame {
	return Frame{ctx: ctx, tbl: tbl}
}

func (f Frame) step(name string, op func(*table.Table) (*table.Table, error)) Frame {
	if f.err != nil {
		return f
	}
	tbl, err := op(f.tbl)
	if err != nil {
		return Frame{ctx: f.ctx, err: fmt.Errorf("%s: %w", name, err)}
	}
	timer.Record(f.ctx, name)
	return Frame{ctx: f.ctx, tbl: tbl}
}

func (f Frame) Select(names ...string) Frame {
	return f.step("select", func(t *table.Table) (*table.Table, error) {
		return operators.Select(t, names...)
	})
}

func (f Frame) Filter(predicate ast.Ast) Frame {
	return f.step("filter", func(t *table.Table) (*table.Table, error) {
		return operators.Filter(t, predicate)
	})
}

func (f Frame) WithColumns(named ...ast.Named) Frame {
	return f.step("with_columns", func(t *table.Table) (*table.Table, error) {
		return operators.WithColumns(t, named...)
	})
}

func (f Frame) Rename(names map[string]string) Frame {
	return f.step("rename", func(t *table.Table) (*table.Table, error) {
		return operators.Rename(t, names)
	})
}

func (f Frame) SortBy(name string, descending bool) Frame {
	return f.step("sort", func(t *table.Table) (*table.Table, error) {
		return operators.SortBy(t, name, descending)
	})
}

func (f Frame) Head(n int) Frame {
	return f.step("head", func(t *table.Table) (*table.Table, error) {
		return operators.Head(t, n), nil
	})
}

// Join joins the frame, as the left side, with another frame.
func (f Frame) Join(right Frame, on string, how operators.How) Frame {
	if right.err != nil && f.err == nil {
		return Frame{ctx: f.ctx, err: fmt.Errorf("join: right side: %w", right.err)}
	}
	return f.step("join", func(t *table.Table) (*table.Table, error) {
		return operators.Join(t, right.tbl, on, how)
	})
}

func (f Frame) GroupBy(keys ...string) GroupedFrame {
	return GroupedFrame{frame: f, keys: keys}
}

// Collect returns the resulting table or the first error of the chain.
func (f Frame) Collect() (*table.Table, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tbl, nil
}

type GroupedFrame struct {
	frame Frame
	keys  []string
}

func (g GroupedFrame) Agg(aggs ...operators.Aggregation) Frame {
	return g.frame.step("group_by", func(t *table.Table) (*table.Table, error) {
		return operators.GroupBy(t, g.keys...).AggContext(g.frame.ctx, aggs...)
	})
}

func (g GroupedFrame) Count() Frame {
	return g.Agg(operators.Count())
}
