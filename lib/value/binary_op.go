package value

import (
	"fmt"
)

func route(l Value, opt string, other Value) (Value, error) {
	switch opt {
	case "and":
		return and(l, other)
	case "or":
		return or(l, other)
	}
	// outside of boolean connectives a missing operand makes the result missing
	if IsNil(l) || IsNil(other) {
		if _, err := ResultType(opt, l.Type(), other.Type()); err != nil {
			return Nil, err
		}
		return Nil, nil
	}
	switch opt {
	case "+":
		return add(l, other)
	case "-":
		return sub(l, other)
	case "*":
		return mul(l, other)
	case "/":
		return div(l, other)
	case "==":
		return eq(l, other)
	case "!=":
		return neq(l, other)
	case ">=":
		return compare(l, other, opt, func(c int) bool { return c >= 0 })
	case ">":
		return compare(l, other, opt, func(c int) bool { return c > 0 })
	case "<=":
		return compare(l, other, opt, func(c int) bool { return c <= 0 })
	case "<":
		return compare(l, other, opt, func(c int) bool { return c < 0 })
	}
	return Nil, fmt.Errorf("%w: unsupported operator '%s'", ErrType, opt)
}

// ResultType decides the type of `left opt right` from the operand types alone.
// Null operands are compatible with everything, so an all-null column still
// type-checks against any other column.
func ResultType(opt string, left, right Type) (Type, error) {
	switch opt {
	case "and", "or":
		if (left == Types.Bool || left == Types.Null) && (right == Types.Bool || right == Types.Null) {
			return Types.Bool, nil
		}
		return Types.Null, fmt.Errorf("%w: '%s' only supported between booleans. Got '%s' and '%s'", ErrType, opt, left, right)
	case "==", "!=":
		if comparable(left, right) {
			return Types.Bool, nil
		}
		return Types.Null, fmt.Errorf("%w: can not compare '%s' with '%s' using '%s'", ErrType, left, right, opt)
	case "<", "<=", ">", ">=":
		if comparable(left, right) && left != Types.Bool && right != Types.Bool {
			return Types.Bool, nil
		}
		return Types.Null, fmt.Errorf("%w: '%s' only supported between numbers, strings or dates. Got '%s' and '%s'", ErrType, opt, left, right)
	case "+", "-", "*", "/":
		if !numericOrNull(left) || !numericOrNull(right) {
			return Types.Null, fmt.Errorf("%w: '%s' only supported between numbers. Got '%s' and '%s'", ErrType, opt, left, right)
		}
		switch {
		case opt == "/":
			return Types.Float64, nil
		case left == Types.Float64 || right == Types.Float64:
			return Types.Float64, nil
		case left == Types.Int64 || right == Types.Int64:
			return Types.Int64, nil
		}
		return Types.Null, nil
	}
	return Types.Null, fmt.Errorf("%w: unsupported operator '%s'", ErrType, opt)
}

func numericOrNull(t Type) bool {
	return t == Types.Null || t.IsNumeric()
}

func comparable(left, right Type) bool {
	if left == Types.Null || right == Types.Null {
		return true
	}
	if left.IsNumeric() && right.IsNumeric() {
		return true
	}
	return left == right
}

func add(left Value, right Value) (Value, error) {
	switch left := left.(type) {
	case Int:
		switch right := right.(type) {
		case Int:
			return Int(int64(left) + int64(right)), nil
		case Double:
			return Double(float64(left) + float64(right)), nil
		}
	case Double:
		switch right := right.(type) {
		case Int:
			return Double(float64(left) + float64(right)), nil
		case Double:
			return Double(float64(left) + float64(right)), nil
		}
	}
	return nil, fmt.Errorf("%w: '+' only supported between numbers. Got '%s' and '%s'", ErrType, left.Type(), right.Type())
}

func sub(left Value, right Value) (Value, error) {
	switch left := left.(type) {
	case Int:
		switch right := right.(type) {
		case Int:
			return Int(int64(left) - int64(right)), nil
		case Double:
			return Double(float64(left) - float64(right)), nil
		}
	case Double:
		switch right := right.(type) {
		case Int:
			return Double(float64(left) - float64(right)), nil
		case Double:
			return Double(float64(left) - float64(right)), nil
		}
	}
	return nil, fmt.Errorf("%w: '-' only supported between numbers. Got '%s' and '%s'", ErrType, left.Type(), right.Type())
}

// div always produces a Double. A zero denominator produces Nil for the row
// instead of failing the whole column.
func div(left Value, right Value) (Value, error) {
	l, lok := AsFloat(left)
	r, rok := AsFloat(right)
	if !lok || !rok {
		return nil, fmt.Errorf("%w: '/' only supported between numbers. Got '%s' and '%s'", ErrType, left.Type(), right.Type())
	}
	if r == 0 {
		return Nil, nil
	}
	return Double(l / r), nil
}

func mul(left Value, right Value) (Value, error) {
	switch left := left.(type) {
	case Int:
		switch right := right.(type) {
		case Int:
			return Int(int64(left) * int64(right)), nil
		case Double:
			return Double(float64(left) * float64(right)), nil
		}
	case Double:
		switch right := right.(type) {
		case Int:
			return Double(float64(left) * float64(right)), nil
		case Double:
			return Double(float64(left) * float64(right)), nil
		}
	}
	return nil, fmt.Errorf("%w: '*' only supported between numbers. Got '%s' and '%s'", ErrType, left.Type(), right.Type())
}

func eq(left Value, right Value) (Value, error) {
	if !comparable(left.Type(), right.Type()) {
		return nil, fmt.Errorf("%w: can not compare '%s' with '%s' using '=='", ErrType, left.Type(), right.Type())
	}
	c, err := Compare(left, right)
	if err != nil {
		return nil, err
	}
	return Bool(c == 0), nil
}

func neq(left Value, right Value) (Value, error) {
	ret, err := eq(left, right)
	if err != nil {
		return nil, err
	}
	return !ret.(Bool), nil
}

func compare(left, right Value, opt string, pred func(int) bool) (Value, error) {
	if _, err := ResultType(opt, left.Type(), right.Type()); err != nil {
		return nil, err
	}
	c, err := Compare(left, right)
	if err != nil {
		return nil, err
	}
	return Bool(pred(c)), nil
}

func asTruth(v Value, opt string) (b bool, known bool, err error) {
	switch v := v.(type) {
	case Bool:
		return bool(v), true, nil
	case nil_:
		return false, false, nil
	}
	return false, false, fmt.Errorf("%w: '%s' only supported between booleans. Got '%s'", ErrType, opt, v.Type())
}

// and follows three-valued logic: false dominates, otherwise a missing operand
// makes the result missing.
func and(left Value, right Value) (Value, error) {
	l, lknown, err := asTruth(left, "and")
	if err != nil {
		return nil, err
	}
	r, rknown, err := asTruth(right, "and")
	if err != nil {
		return nil, err
	}
	switch {
	case lknown && !l, rknown && !r:
		return Bool(false), nil
	case lknown && rknown:
		return Bool(true), nil
	}
	return Nil, nil
}

// or follows three-valued logic: true dominates, otherwise a missing operand
// makes the result missing.
func or(left Value, right Value) (Value, error) {
	l, lknown, err := asTruth(left, "or")
	if err != nil {
		return nil, err
	}
	r, rknown, err := asTruth(right, "or")
	if err != nil {
		return nil, err
	}
	switch {
	case lknown && l, rknown && r:
		return Bool(true), nil
	case lknown && rknown:
		return Bool(false), nil
	}
	return Nil, nil
}
