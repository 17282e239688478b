package operators

import (
	"context"
	"fmt"

	"tabula/lib/table"
	"tabula/lib/timer"
	"tabula/lib/utils/parallel"
	"tabula/lib/value"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// groups smaller than this are reduced on the calling goroutine
const parallelGroups = 4096

// Aggregation reduces Source within every group into a column called Name.
// Without a Source only "count" is valid and it counts rows.
type Aggregation struct {
	Source  mo.Option[string]
	Reducer string
	Name    string
}

// Agg names the aggregate after its source column.
func Agg(reducer, source string) Aggregation {
	return Aggregation{Source: mo.Some(source), Reducer: reducer, Name: source}
}

func Count() Aggregation {
	return Aggregation{Source: mo.None[string](), Reducer: "count", Name: "count"}
}

func Sum(source string) Aggregation  { return Agg("sum", source) }
func Mean(source string) Aggregation { return Agg("mean", source) }
func Min(source string) Aggregation  { return Agg("min", source) }
func Max(source string) Aggregation  { return Agg("max", source) }

func (a Aggregation) Alias(name string) Aggregation {
	a.Name = name
	return a
}

func (a Aggregation) String() string {
	return fmt.Sprintf("%s(%s) as %s", a.Reducer, a.Source.OrElse("*"), a.Name)
}

type group struct {
	key  []value.Value
	rows []int
}

// Grouped is a table partitioned by key columns, waiting for aggregations.
type Grouped struct {
	tbl  *table.Table
	keys []string
}

func GroupBy(tbl *table.Table, keys ...string) *Grouped {
	return &Grouped{tbl: tbl, keys: keys}
}

// Count is shorthand for Agg(Count()).
func (g *Grouped) Count() (*table.Table, error) {
	return g.Agg(Count())
}

func (g *Grouped) Agg(aggs ...Aggregation) (*table.Table, error) {
	return g.AggContext(context.Background(), aggs...)
}

// AggContext emits one row per distinct key tuple in first-occurrence order:
// key columns first, then one column per aggregation. Null is a key like any
// other.
func (g *Grouped) AggContext(ctx context.Context, aggs ...Aggregation) (*table.Table, error) {
	defer timer.Start("operators.group_by").Stop()
	keys, err := g.keyColumns()
	if err != nil {
		return nil, err
	}
	sources, outputs, err := g.plan(keys, aggs)
	if err != nil {
		return nil, err
	}
	groups := partition(g.tbl.NumRows(), keys)
	timer.Record(ctx, "group_by.partition")

	workers := 1
	if len(groups) >= parallelGroups {
		workers = 0
	}
	rows, err := parallel.Process(ctx, workers, groups, func(grp group) ([]value.Value, error) {
		return reduce(grp, aggs, sources)
	})
	if err != nil {
		return nil, err
	}
	timer.Record(ctx, "group_by.reduce")

	columns := make([]*table.Column, 0, len(keys)+len(aggs))
	for i, k := range keys {
		b := table.NewBuilder(k.Name(), k.Type(), len(groups))
		for _, grp := range groups {
			if err := b.Append(grp.key[i]); err != nil {
				return nil, err
			}
		}
		columns = append(columns, b.Build())
	}
	for j, out := range outputs {
		b := table.NewBuilder(aggs[j].Name, out, len(groups))
		for _, row := range rows {
			if err := b.Append(row[j]); err != nil {
				return nil, err
			}
		}
		columns = append(columns, b.Build())
	}
	return table.New(columns...)
}

func (g *Grouped) keyColumns() ([]*table.Column, error) {
	if len(g.keys) == 0 {
		return nil, fmt.Errorf("%w: group_by needs at least one key column", value.ErrSchema)
	}
	if dups := lo.FindDuplicates(g.keys); len(dups) > 0 {
		return nil, fmt.Errorf("%w: group_by keys %v repeated", value.ErrSchema, dups)
	}
	keys := make([]*table.Column, len(g.keys))
	for i, name := range g.keys {
		c, err := g.tbl.Column(name)
		if err != nil {
			return nil, err
		}
		keys[i] = c
	}
	return keys, nil
}

// plan resolves every aggregation before any group is reduced, so type errors
// surface even on an empty table.
func (g *Grouped) plan(keys []*table.Column, aggs []Aggregation) ([]*table.Column, []value.Type, error) {
	names := lo.Map(keys, func(c *table.Column, _ int) string { return c.Name() })
	sources := make([]*table.Column, len(aggs))
	outputs := make([]value.Type, len(aggs))
	for i, agg := range aggs {
		r, err := Locate(agg.Reducer)
		if err != nil {
			return nil, nil, err
		}
		srcType := value.Types.Null
		if name, ok := agg.Source.Get(); ok {
			c, err := g.tbl.Column(name)
			if err != nil {
				return nil, nil, err
			}
			sources[i] = c
			srcType = c.Type()
		} else if r.Name() != "count" {
			return nil, nil, fmt.Errorf("%w: reducer '%s' needs a source column", value.ErrSchema, agg.Reducer)
		}
		if outputs[i], err = r.ResultType(srcType); err != nil {
			return nil, nil, fmt.Errorf("aggregation '%s': %w", agg, err)
		}
		names = append(names, agg.Name)
	}
	if dups := lo.FindDuplicates(names); len(dups) > 0 {
		return nil, nil, fmt.Errorf("%w: aggregation output names %v collide", value.ErrSchema, dups)
	}
	return sources, outputs, nil
}

// partition assigns every row to the group of its key tuple. Tuples are
// bucketed by hash and then compared exactly.
func partition(n int, keys []*table.Column) []group {
	groups := make([]group, 0)
	buckets := make(map[uint64][]int)
	for row := 0; row < n; row++ {
		key := make([]value.Value, len(keys))
		for i, k := range keys {
			key[i] = k.At(row)
		}
		h := value.Hash(key...)
		found := -1
		for _, gi := range buckets[h] {
			if value.TupleEqual(groups[gi].key, key) {
				found = gi
				break
			}
		}
		if found < 0 {
			found = len(groups)
			groups = append(groups, group{key: key})
			buckets[h] = append(buckets[h], found)
		}
		groups[found].rows = append(groups[found].rows, row)
	}
	return groups
}

func reduce(grp group, aggs []Aggregation, sources []*table.Column) ([]value.Value, error) {
	ret := make([]value.Value, len(aggs))
	for i, agg := range aggs {
		src := sources[i]
		if src == nil {
			ret[i] = value.Int(len(grp.rows))
			continue
		}
		vals := make([]value.Value, 0, len(grp.rows))
		for _, row := range grp.rows {
			if v := src.At(row); !value.IsNil(v) {
				vals = append(vals, v)
			}
		}
		r, err := Locate(agg.Reducer)
		if err != nil {
			return nil, err
		}
		if ret[i], err = r.Reduce(vals); err != nil {
			return nil, err
		}
	}
	return ret, nil
}
