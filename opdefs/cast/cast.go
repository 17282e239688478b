package cast

import (
	"fmt"
	"math"

	"tabula/engine/functions"
	"tabula/lib/value"
)

func init() {
	fns := []functions.Function{toDouble{}, toInt{}, toString{}}
	for _, fn := range fns {
		if err := functions.Register(fn); err != nil {
			panic(err)
		}
	}
}

type toDouble struct{}

func (c toDouble) Signature() *functions.Signature {
	return functions.NewSignature("cast", "double").
		Input(value.Types.Int64, value.Types.Float64, value.Types.Bool).
		Output(value.Types.Float64)
}

func (c toDouble) Apply(v value.Value) (value.Value, error) {
	switch v := v.(type) {
	case value.Int:
		return value.Double(v), nil
	case value.Double:
		return v, nil
	case value.Bool:
		if v {
			return value.Double(1), nil
		}
		return value.Double(0), nil
	}
	return nil, fmt.Errorf("%w: can not cast '%s' to double", value.ErrType, v.Type())
}

// toInt truncates doubles towards zero. NaN, infinities and doubles outside
// the int64 range become null.
type toInt struct{}

func (c toInt) Signature() *functions.Signature {
	return functions.NewSignature("cast", "int").
		Input(value.Types.Int64, value.Types.Float64, value.Types.Bool).
		Output(value.Types.Int64)
}

func (c toInt) Apply(v value.Value) (value.Value, error) {
	switch v := v.(type) {
	case value.Int:
		return v, nil
	case value.Double:
		if i, ok := value.AsExactInt(value.Double(math.Trunc(float64(v)))); ok {
			return i, nil
		}
		return value.Nil, nil
	case value.Bool:
		if v {
			return value.Int(1), nil
		}
		return value.Int(0), nil
	}
	return nil, fmt.Errorf("%w: can not cast '%s' to int", value.ErrType, v.Type())
}

type toString struct{}

func (c toString) Signature() *functions.Signature {
	return functions.NewSignature("cast", "str").
		Output(value.Types.Utf8)
}

func (c toString) Apply(v value.Value) (value.Value, error) {
	return value.String(v.String()), nil
}
