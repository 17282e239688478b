package ast

import (
	"fmt"

	"tabula/lib/value"
)

type Printer struct{}

var _ VisitorString = Printer{}

func (p Printer) VisitCol(name string) string {
	return fmt.Sprintf("col(%q)", name)
}

func (p Printer) VisitLit(v value.Value) string {
	if s, ok := v.(value.String); ok {
		return fmt.Sprintf("lit(%q)", string(s))
	}
	return fmt.Sprintf("lit(%s)", v)
}

func (p Printer) VisitBinary(left Ast, op string, right Ast) string {
	return fmt.Sprintf("(%s %s %s)", left.AcceptString(p), op, right.AcceptString(p))
}

func (p Printer) VisitMap(fn Function, src Ast, resultType value.Type) string {
	return fmt.Sprintf("%s.map(%s, %s)", src.AcceptString(p), fn.Name(), resultType)
}

// String renders an expression in the builder notation.
func String(a Ast) string {
	if a == nil {
		return "<nil>"
	}
	return a.AcceptString(Printer{})
}

// columns collects referenced column names in first-mention order.
type columns struct {
	seen  map[string]struct{}
	names []string
}

func (c *columns) VisitCol(name string) string {
	if _, ok := c.seen[name]; !ok {
		c.seen[name] = struct{}{}
		c.names = append(c.names, name)
	}
	return name
}

func (c *columns) VisitLit(_ value.Value) string {
	return ""
}

func (c *columns) VisitBinary(left Ast, _ string, right Ast) string {
	left.AcceptString(c)
	right.AcceptString(c)
	return ""
}

func (c *columns) VisitMap(_ Function, src Ast, _ value.Type) string {
	return src.AcceptString(c)
}

// Columns returns the names of the columns an expression reads.
func Columns(a Ast) []string {
	c := &columns{seen: map[string]struct{}{}}
	a.AcceptString(c)
	return c.names
}
