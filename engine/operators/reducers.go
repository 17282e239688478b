package operators

import (
	"fmt"

	"tabula/lib/value"
)

func init() {
	reducers := []Reducer{counter{}, adder{}, meaner{}, extremum{name: "min", sign: -1}, extremum{name: "max", sign: 1}}
	for _, r := range reducers {
		if err := Register(r); err != nil {
			panic(err)
		}
	}
}

type counter struct{}

func (c counter) Name() string {
	return "count"
}

func (c counter) ResultType(_ value.Type) (value.Type, error) {
	return value.Types.Int64, nil
}

func (c counter) Reduce(vals []value.Value) (value.Value, error) {
	return value.Int(len(vals)), nil
}

type adder struct{}

func (a adder) Name() string {
	return "sum"
}

func (a adder) ResultType(t value.Type) (value.Type, error) {
	if t.IsNumeric() || t == value.Types.Null {
		return t, nil
	}
	return value.Types.Null, fmt.Errorf("%w: sum only supported over numbers. Got '%s'", value.ErrType, t)
}

// Reduce fails with ErrType when an Int64 sum leaves the int64 range.
func (a adder) Reduce(vals []value.Value) (value.Value, error) {
	if len(vals) == 0 {
		return value.Nil, nil
	}
	var sum value.Value = value.Int(0)
	var err error
	for _, v := range vals {
		if acc, ok := sum.(value.Int); ok {
			if n, ok := v.(value.Int); ok {
				next := acc + n
				if (n > 0 && next < acc) || (n < 0 && next > acc) {
					return nil, fmt.Errorf("%w: sum overflows %s", value.ErrType, value.Types.Int64)
				}
				sum = next
				continue
			}
		}
		if sum, err = sum.Op("+", v); err != nil {
			return nil, err
		}
	}
	return sum, nil
}

type meaner struct{}

func (m meaner) Name() string {
	return "mean"
}

func (m meaner) ResultType(t value.Type) (value.Type, error) {
	if t.IsNumeric() || t == value.Types.Null {
		return value.Types.Float64, nil
	}
	return value.Types.Null, fmt.Errorf("%w: mean only supported over numbers. Got '%s'", value.ErrType, t)
}

func (m meaner) Reduce(vals []value.Value) (value.Value, error) {
	if len(vals) == 0 {
		return value.Nil, nil
	}
	sum := 0.0
	for _, v := range vals {
		f, ok := value.AsFloat(v)
		if !ok {
			return nil, fmt.Errorf("%w: mean only supported over numbers. Got '%s'", value.ErrType, v.Type())
		}
		sum += f
	}
	return value.Double(sum / float64(len(vals))), nil
}

// extremum keeps the smallest (sign -1) or largest (sign 1) value. Ties keep
// the first occurrence.
type extremum struct {
	name string
	sign int
}

func (e extremum) Name() string {
	return e.name
}

func (e extremum) ResultType(t value.Type) (value.Type, error) {
	if t.IsNumeric() || t == value.Types.Utf8 || t == value.Types.Date || t == value.Types.Null {
		return t, nil
	}
	return value.Types.Null, fmt.Errorf("%w: %s only supported over numbers, strings or dates. Got '%s'", value.ErrType, e.name, t)
}

func (e extremum) Reduce(vals []value.Value) (value.Value, error) {
	if len(vals) == 0 {
		return value.Nil, nil
	}
	best := vals[0]
	for _, v := range vals[1:] {
		c, err := value.Compare(v, best)
		if err != nil {
			return nil, err
		}
		if c*e.sign > 0 {
			best = v
		}
	}
	return best, nil
}
