package interpreter

import (
	"fmt"

	"tabula/engine/ast"
	"tabula/lib/table"
	"tabula/lib/value"
)

// Interpreter evaluates expressions against a single table.
type Interpreter struct {
	tbl *table.Table
}

var _ ast.VisitorColumn = Interpreter{}

func NewInterpreter(tbl *table.Table) Interpreter {
	return Interpreter{tbl: tbl}
}

// Evaluate produces one column with as many rows as tbl. A length-1 operand
// of a binary expression is broadcast against the other side. Literals take the
// name "literal", binary expressions the name of their left operand and
// mapped expressions the name of their source.
func Evaluate(expr ast.Ast, tbl *table.Table) (*table.Column, error) {
	if expr == nil {
		return nil, fmt.Errorf("%w: can not evaluate nil expression", value.ErrType)
	}
	return expr.AcceptColumn(NewInterpreter(tbl))
}

func (i Interpreter) VisitCol(name string) (*table.Column, error) {
	return i.tbl.Column(name)
}

func (i Interpreter) VisitLit(v value.Value) (*table.Column, error) {
	return table.Constant("literal", v, i.tbl.NumRows()), nil
}

func (i Interpreter) VisitBinary(left ast.Ast, op string, right ast.Ast) (*table.Column, error) {
	l, err := left.AcceptColumn(i)
	if err != nil {
		return nil, err
	}
	r, err := right.AcceptColumn(i)
	if err != nil {
		return nil, err
	}
	typ, err := value.ResultType(op, l.Type(), r.Type())
	if err != nil {
		return nil, fmt.Errorf("evaluating '%s': %w", ast.String(&ast.Binary{Left: left, Op: op, Right: right}), err)
	}
	n := l.Len()
	switch {
	case l.Len() == r.Len():
	case l.Len() == 1:
		n = r.Len()
	case r.Len() == 1:
	default:
		return nil, fmt.Errorf("%w: operands of '%s' have %d and %d rows", value.ErrShape, op, l.Len(), r.Len())
	}
	b := table.NewBuilder(l.Name(), typ, n)
	for row := 0; row < n; row++ {
		res, err := l.At(at(l, row)).Op(op, r.At(at(r, row)))
		if err != nil {
			return nil, err
		}
		if err = b.Append(res); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

func (i Interpreter) VisitMap(fn ast.Function, src ast.Ast, resultType value.Type) (*table.Column, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: map over '%s' has no function", value.ErrType, ast.String(src))
	}
	in, err := src.AcceptColumn(i)
	if err != nil {
		return nil, err
	}
	if typed, ok := fn.(ast.TypedFunction); ok && in.Type() != value.Types.Null && !typed.Accepts(in.Type()) {
		return nil, fmt.Errorf("%w: function '%s' does not accept column '%s' of type '%s'", value.ErrType, fn.Name(), in.Name(), in.Type())
	}
	b := table.NewBuilder(in.Name(), resultType, in.Len())
	for row := 0; row < in.Len(); row++ {
		v := in.At(row)
		var out value.Value = value.Nil
		if !value.IsNil(v) || fn.HandlesNull() {
			res, err := fn.Apply(v)
			if err != nil {
				return nil, fmt.Errorf("function '%s' failed on '%s': %w", fn.Name(), v, err)
			}
			if res != nil {
				out = res
			}
		}
		if err = b.Append(out); err != nil {
			return nil, fmt.Errorf("function '%s' declared result '%s': %w", fn.Name(), resultType, err)
		}
	}
	return b.Build(), nil
}

func at(c *table.Column, row int) int {
	if c.Len() == 1 {
		return 0
	}
	return row
}
