package operators

import (
	"fmt"

	"tabula/lib/table"
	"tabula/lib/timer"
	"tabula/lib/value"
)

type How string

const (
	Inner How = "inner"
	Left  How = "left"
)

// suffixes given to non-key columns present on both sides
const (
	LeftSuffix  = "_left"
	RightSuffix = "_right"
)

// Join matches rows of left and right whose on column is equal. Output rows
// follow left row order, and right row order within one left row. Null keys
// never match. Columns are the left columns followed by the right non-key
// columns; a name present on both sides gets LeftSuffix and RightSuffix.
func Join(left, right *table.Table, on string, how How) (*table.Table, error) {
	defer timer.Start("operators.join").Stop()
	if how != Inner && how != Left {
		return nil, fmt.Errorf("%w: unsupported join type '%s'", value.ErrSchema, how)
	}
	lkey, err := left.Column(on)
	if err != nil {
		return nil, fmt.Errorf("left side of join: %w", err)
	}
	rkey, err := right.Column(on)
	if err != nil {
		return nil, fmt.Errorf("right side of join: %w", err)
	}
	mixed, err := joinable(lkey.Type(), rkey.Type())
	if err != nil {
		return nil, fmt.Errorf("joining on '%s': %w", on, err)
	}

	index := make(map[uint64][]int, rkey.Len())
	for i := 0; i < rkey.Len(); i++ {
		v := rkey.At(i)
		if value.IsNil(v) {
			continue
		}
		h := value.Hash(keyOf(v, mixed))
		index[h] = append(index[h], i)
	}

	lrows := make([]int, 0, lkey.Len())
	rrows := make([]int, 0, lkey.Len())
	for i := 0; i < lkey.Len(); i++ {
		matched := false
		if v := lkey.At(i); !value.IsNil(v) {
			k := keyOf(v, mixed)
			for _, j := range index[value.Hash(k)] {
				if keyOf(rkey.At(j), mixed).Equal(k) {
					lrows = append(lrows, i)
					rrows = append(rrows, j)
					matched = true
				}
			}
		}
		if !matched && how == Left {
			lrows = append(lrows, i)
			rrows = append(rrows, -1)
		}
	}

	columns := make([]*table.Column, 0, left.NumCols()+right.NumCols()-1)
	for _, c := range left.Columns() {
		name := c.Name()
		if name != on && right.Has(name) {
			name += LeftSuffix
		}
		columns = append(columns, c.Take(lrows).Rename(name))
	}
	for _, c := range right.Columns() {
		name := c.Name()
		if name == on {
			continue
		}
		if left.Has(name) {
			name += RightSuffix
		}
		columns = append(columns, c.Take(rrows).Rename(name))
	}
	return table.New(columns...)
}

// joinable checks key types and reports whether Int64 keys meet Float64 keys.
func joinable(l, r value.Type) (bool, error) {
	switch {
	case l == r, l == value.Types.Null, r == value.Types.Null:
		return false, nil
	case l.IsNumeric() && r.IsNumeric():
		return true, nil
	}
	return false, fmt.Errorf("%w: key types '%s' and '%s' are incompatible", value.ErrType, l, r)
}

// keyOf gives whole doubles the Int form when Int64 meets Float64 keys, so
// mixed keys match exactly without rounding large ints.
func keyOf(v value.Value, mixed bool) value.Value {
	if d, ok := v.(value.Double); ok && mixed {
		if i, ok := value.AsExactInt(d); ok {
			return i
		}
	}
	return v
}
