package ast

import (
	"fmt"

	"tabula/lib/table"
	"tabula/lib/value"
)

type VisitorString interface {
	VisitCol(name string) string
	VisitLit(v value.Value) string
	VisitBinary(left Ast, op string, right Ast) string
	VisitMap(fn Function, src Ast, resultType value.Type) string
}

// VisitorColumn evaluates a node into a column.
type VisitorColumn interface {
	VisitCol(name string) (*table.Column, error)
	VisitLit(v value.Value) (*table.Column, error)
	VisitBinary(left Ast, op string, right Ast) (*table.Column, error)
	VisitMap(fn Function, src Ast, resultType value.Type) (*table.Column, error)
}

// Ast is a pure expression evaluated against a table.
type Ast interface {
	AcceptColumn(v VisitorColumn) (*table.Column, error)
	AcceptString(v VisitorString) string
}

var _ Ast = (*Col)(nil)
var _ Ast = (*Lit)(nil)
var _ Ast = (*Binary)(nil)
var _ Ast = (*MapElements)(nil)

// Col references a column of the input table by name.
type Col struct {
	Name string
}

type Lit struct {
	Value value.Value
}

type Binary struct {
	Left  Ast
	Op    string
	Right Ast
}

// MapElements applies Fn to every value of Source independently.
type MapElements struct {
	Fn         Function
	Source     Ast
	ResultType value.Type
}

func (c *Col) AcceptColumn(v VisitorColumn) (*table.Column, error) {
	return v.VisitCol(c.Name)
}

func (c *Col) AcceptString(v VisitorString) string {
	return v.VisitCol(c.Name)
}

func (l *Lit) AcceptColumn(v VisitorColumn) (*table.Column, error) {
	return v.VisitLit(l.Value)
}

func (l *Lit) AcceptString(v VisitorString) string {
	return v.VisitLit(l.Value)
}

func (b *Binary) AcceptColumn(v VisitorColumn) (*table.Column, error) {
	return v.VisitBinary(b.Left, b.Op, b.Right)
}

func (b *Binary) AcceptString(v VisitorString) string {
	return v.VisitBinary(b.Left, b.Op, b.Right)
}

func (m *MapElements) AcceptColumn(v VisitorColumn) (*table.Column, error) {
	return v.VisitMap(m.Fn, m.Source, m.ResultType)
}

func (m *MapElements) AcceptString(v VisitorString) string {
	return v.VisitMap(m.Fn, m.Source, m.ResultType)
}

// Function is applied per row by MapElements. Unless HandlesNull is true the
// evaluator never calls Apply with Nil and maps Nil to Nil itself.
type Function interface {
	Name() string
	Apply(v value.Value) (value.Value, error)
	HandlesNull() bool
}

// TypedFunction is implemented by functions that only accept some input types.
// The evaluator checks it once per column before applying the function.
type TypedFunction interface {
	Function
	Accepts(t value.Type) bool
}

type lambda struct {
	name string
	fn   func(value.Value) (value.Value, error)
}

func (l lambda) Name() string {
	return l.name
}

func (l lambda) Apply(v value.Value) (value.Value, error) {
	return l.fn(v)
}

func (l lambda) HandlesNull() bool {
	return false
}

// Lambda wraps an ad-hoc Go function for use with MapElements.
func Lambda(name string, fn func(value.Value) (value.Value, error)) Function {
	return lambda{name: name, fn: fn}
}

// Named pairs an output column name with the expression that produces it.
type Named struct {
	Name string
	Expr Ast
}

func (n Named) String() string {
	return fmt.Sprintf("%s.alias(%q)", String(n.Expr), n.Name)
}

func Alias(expr Ast, name string) Named {
	return Named{Name: name, Expr: expr}
}

func C(name string) Ast {
	return &Col{Name: name}
}

func L(v value.Value) Ast {
	return &Lit{Value: v}
}

func Op(left Ast, op string, right Ast) Ast {
	return &Binary{Left: left, Op: op, Right: right}
}

func Eq(left, right Ast) Ast  { return Op(left, "==", right) }
func Neq(left, right Ast) Ast { return Op(left, "!=", right) }
func Lt(left, right Ast) Ast  { return Op(left, "<", right) }
func Lte(left, right Ast) Ast { return Op(left, "<=", right) }
func Gt(left, right Ast) Ast  { return Op(left, ">", right) }
func Gte(left, right Ast) Ast { return Op(left, ">=", right) }
func Add(left, right Ast) Ast { return Op(left, "+", right) }
func Sub(left, right Ast) Ast { return Op(left, "-", right) }
func Mul(left, right Ast) Ast { return Op(left, "*", right) }
func Div(left, right Ast) Ast { return Op(left, "/", right) }
func And(left, right Ast) Ast { return Op(left, "and", right) }
func Or(left, right Ast) Ast  { return Op(left, "or", right) }

func Map(fn Function, src Ast, resultType value.Type) Ast {
	return &MapElements{Fn: fn, Source: src, ResultType: resultType}
}
