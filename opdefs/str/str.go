package str

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"tabula/engine/functions"
	"tabula/lib/value"
)

func init() {
	fns := []functions.Function{
		transform{"upper", strings.ToUpper},
		transform{"lower", strings.ToLower},
		transform{"strip", strings.TrimSpace},
		length{},
	}
	for _, fn := range fns {
		if err := functions.Register(fn); err != nil {
			panic(err)
		}
	}
}

type transform struct {
	name string
	fn   func(string) string
}

func (t transform) Signature() *functions.Signature {
	return functions.NewSignature("str", t.name).
		Input(value.Types.Utf8).
		Output(value.Types.Utf8)
}

func (t transform) Apply(v value.Value) (value.Value, error) {
	s, ok := v.(value.String)
	if !ok {
		return nil, fmt.Errorf("%w: str.%s expects a string. Got '%s'", value.ErrType, t.name, v.Type())
	}
	return value.String(t.fn(string(s))), nil
}

// length counts characters, not bytes.
type length struct{}

func (l length) Signature() *functions.Signature {
	return functions.NewSignature("str", "len").
		Input(value.Types.Utf8).
		Output(value.Types.Int64)
}

func (l length) Apply(v value.Value) (value.Value, error) {
	s, ok := v.(value.String)
	if !ok {
		return nil, fmt.Errorf("%w: str.len expects a string. Got '%s'", value.ErrType, v.Type())
	}
	return value.Int(utf8.RuneCountInString(string(s))), nil
}
