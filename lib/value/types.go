package value

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Value is a single typed cell of a column.
type Value interface {
	isValue()
	Type() Type
	Equal(v Value) bool
	Op(opt string, other Value) (Value, error)
	String() string
}

var _ Value = Int(0)
var _ Value = Double(0)
var _ Value = Bool(true)
var _ Value = String("")
var _ Value = Date(0)
var _ Value = nil_{}

type Int int64

func (I Int) isValue() {}
func (I Int) Type() Type {
	return Types.Int64
}
func (I Int) Equal(v Value) bool {
	switch v := v.(type) {
	case Int:
		return v == I
	default:
		return false
	}
}
func (I Int) String() string {
	return strconv.FormatInt(int64(I), 10)
}
func (I Int) Op(opt string, other Value) (Value, error) {
	return route(I, opt, other)
}

type Double float64

func (d Double) isValue() {}
func (d Double) Type() Type {
	return Types.Float64
}

// Equal treats NaN as equal to NaN so NaN keys group and sort together.
func (d Double) Equal(v Value) bool {
	switch v := v.(type) {
	case Double:
		return v == d || (d.IsNaN() && v.IsNaN())
	default:
		return false
	}
}
func (d Double) IsNaN() bool {
	return math.IsNaN(float64(d))
}
func (d Double) String() string {
	return strconv.FormatFloat(float64(d), 'g', -1, 64)
}
func (d Double) Op(opt string, other Value) (Value, error) {
	return route(d, opt, other)
}

type Bool bool

func (b Bool) isValue() {}
func (b Bool) Type() Type {
	return Types.Bool
}
func (b Bool) Equal(v Value) bool {
	switch v := v.(type) {
	case Bool:
		return v == b
	default:
		return false
	}
}
func (b Bool) String() string {
	return strconv.FormatBool(bool(b))
}
func (b Bool) Op(opt string, other Value) (Value, error) {
	return route(b, opt, other)
}

type String string

func (s String) isValue() {}
func (s String) Type() Type {
	return Types.Utf8
}
func (s String) Equal(v Value) bool {
	switch v := v.(type) {
	case String:
		return v == s
	default:
		return false
	}
}
func (s String) String() string {
	return string(s)
}
func (s String) Op(opt string, other Value) (Value, error) {
	return route(s, opt, other)
}

// Date is a calendar date stored as days since 1970-01-01.
type Date int32

const secondsPerDay = 24 * 60 * 60

func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf truncates t to its calendar date in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	utc := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return Date(utc.Unix() / secondsPerDay)
}

func (d Date) Time() time.Time {
	return time.Unix(int64(d)*secondsPerDay, 0).UTC()
}

// Weekday returns the ISO weekday: 1 is Monday and 7 is Sunday.
func (d Date) Weekday() int {
	wd := int(d.Time().Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func (d Date) isValue() {}
func (d Date) Type() Type {
	return Types.Date
}
func (d Date) Equal(v Value) bool {
	switch v := v.(type) {
	case Date:
		return v == d
	default:
		return false
	}
}
func (d Date) String() string {
	return d.Time().Format("2006-01-02")
}
func (d Date) Op(opt string, other Value) (Value, error) {
	return route(d, opt, other)
}

type nil_ struct{}

// Nil is the missing-value marker. It is valid in a column of any type.
var Nil = nil_{}

func (n nil_) isValue() {}
func (n nil_) Type() Type {
	return Types.Null
}
func (n nil_) Equal(v Value) bool {
	switch v.(type) {
	case nil_:
		return true
	default:
		return false
	}
}
func (n nil_) String() string {
	return "null"
}
func (n nil_) Op(opt string, other Value) (Value, error) {
	return route(n, opt, other)
}

func IsNil(v Value) bool {
	_, ok := v.(nil_)
	return ok || v == nil
}

// AsFloat returns the numeric value of an Int or Double.
func AsFloat(v Value) (float64, bool) {
	switch v := v.(type) {
	case Int:
		return float64(v), true
	case Double:
		return float64(v), true
	}
	return 0, false
}

// Compare orders two non-null values of compatible types. Numbers follow a
// total order: Ints and Doubles compare exactly by value and NaN equals NaN and
// sorts above every other number. Bools order false before true.
func Compare(left, right Value) (int, error) {
	switch l := left.(type) {
	case Int:
		switch r := right.(type) {
		case Int:
			return cmpInt(int64(l), int64(r)), nil
		case Double:
			return cmpIntDouble(int64(l), float64(r)), nil
		}
	case Double:
		switch r := right.(type) {
		case Int:
			return -cmpIntDouble(int64(r), float64(l)), nil
		case Double:
			return cmpDouble(float64(l), float64(r)), nil
		}
	}
	switch l := left.(type) {
	case String:
		if r, ok := right.(String); ok {
			switch {
			case l < r:
				return -1, nil
			case l > r:
				return 1, nil
			}
			return 0, nil
		}
	case Date:
		if r, ok := right.(Date); ok {
			return int(l) - int(r), nil
		}
	case Bool:
		if r, ok := right.(Bool); ok {
			switch {
			case l == r:
				return 0, nil
			case !bool(l):
				return -1, nil
			}
			return 1, nil
		}
	}
	return 0, fmt.Errorf("%w: can not compare '%s' with '%s'", ErrType, left.Type(), right.Type())
}

func cmpInt(l, r int64) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	}
	return 0
}

func cmpDouble(l, r float64) int {
	switch ln, rn := math.IsNaN(l), math.IsNaN(r); {
	case ln && rn:
		return 0
	case ln:
		return 1
	case rn:
		return -1
	case l < r:
		return -1
	case l > r:
		return 1
	}
	return 0
}

// 2^63 is exactly representable, every int64 lies in [-2^63, 2^63).
const twoTo63 = float64(1 << 63)

// cmpIntDouble compares without rounding i to a double, so integers above 2^53
// keep their identity.
func cmpIntDouble(i int64, f float64) int {
	switch {
	case math.IsNaN(f):
		return -1
	case f >= twoTo63:
		return -1
	case f < -twoTo63:
		return 1
	}
	whole := math.Trunc(f)
	if c := cmpInt(i, int64(whole)); c != 0 {
		return c
	}
	return cmpDouble(whole, f)
}

// AsExactInt returns the Int equal to d when d is a whole number within the
// int64 range.
func AsExactInt(d Double) (Int, bool) {
	f := float64(d)
	if f != math.Trunc(f) || f < -twoTo63 || f >= twoTo63 {
		return 0, false
	}
	return Int(int64(f)), true
}
