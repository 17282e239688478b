package value

import (
	"fmt"
	"strings"
)

// Type is the declared type of a column.
type Type uint8

type _types struct {
	Null    Type
	Int64   Type
	Float64 Type
	Utf8    Type
	Bool    Type
	Date    Type
}

var Types = _types{
	Null:    0,
	Int64:   1,
	Float64: 2,
	Utf8:    3,
	Bool:    4,
	Date:    5,
}

func (t Type) String() string {
	switch t {
	case Types.Null:
		return "null"
	case Types.Int64:
		return "i64"
	case Types.Float64:
		return "f64"
	case Types.Utf8:
		return "str"
	case Types.Bool:
		return "bool"
	case Types.Date:
		return "date"
	default:
		return "unknown"
	}
}

func (t Type) IsNumeric() bool {
	return t == Types.Int64 || t == Types.Float64
}

// Orderable reports whether values of the type can be ranked by Compare.
func (t Type) Orderable() bool {
	return t.IsNumeric() || t == Types.Utf8 || t == Types.Date || t == Types.Bool
}

// Accepts reports whether v may be stored in a column of type t.
func (t Type) Accepts(v Value) bool {
	return IsNil(v) || v.Type() == t
}

// ParseType maps user facing type names, as used in loader schemas and on the
// command line, to a Type.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "i64", "int", "int64":
		return Types.Int64, nil
	case "f64", "float", "float64", "double":
		return Types.Float64, nil
	case "str", "string", "utf8":
		return Types.Utf8, nil
	case "bool", "boolean":
		return Types.Bool, nil
	case "date":
		return Types.Date, nil
	case "null":
		return Types.Null, nil
	}
	return Types.Null, fmt.Errorf("%w: unknown type name '%s'", ErrType, name)
}
