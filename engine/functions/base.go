package functions

import (
	"fmt"
	"sort"
	"sync"

	"tabula/engine/ast"
	"tabula/lib/value"
)

type Registry = map[string]map[string]Function

var (
	registry = make(Registry)
	mu       sync.RWMutex
)

// Signature describes an element function: the column types it accepts and the
// type of the column it produces.
type Signature struct {
	Module string
	Name   string
	Help   string
	input  []value.Type
	output value.Type
	nulls  bool
}

func NewSignature(module, name string) *Signature {
	return &Signature{Module: module, Name: name}
}

func (s *Signature) Input(types ...value.Type) *Signature {
	s.input = types
	return s
}

func (s *Signature) Output(t value.Type) *Signature {
	s.output = t
	return s
}

// HandlesNull marks functions that want to see null inputs themselves.
func (s *Signature) HandlesNull() *Signature {
	s.nulls = true
	return s
}

func (s *Signature) WithHelp(help string) *Signature {
	s.Help = help
	return s
}

func (s *Signature) OutputType() value.Type {
	return s.output
}

// Accepts reports whether a column of type t can be passed to the function.
// A signature without inputs accepts every type.
func (s *Signature) Accepts(t value.Type) bool {
	if len(s.input) == 0 {
		return true
	}
	for _, in := range s.input {
		if in == t {
			return true
		}
	}
	return false
}

func (s *Signature) String() string {
	return fmt.Sprintf("%s.%s(%v) -> %s", s.Module, s.Name, s.input, s.output)
}

// Function is an element function that can be looked up by module and name.
type Function interface {
	Signature() *Signature
	Apply(v value.Value) (value.Value, error)
}

// bound adapts a registered Function to the evaluator's ast.TypedFunction.
type bound struct {
	fn  Function
	sig *Signature
}

var _ ast.TypedFunction = bound{}

func (b bound) Name() string {
	return b.sig.Module + "." + b.sig.Name
}

func (b bound) Apply(v value.Value) (value.Value, error) {
	return b.fn.Apply(v)
}

func (b bound) HandlesNull() bool {
	return b.sig.nulls
}

func (b bound) Accepts(t value.Type) bool {
	return b.sig.Accepts(t)
}

func Register(fn Function) error {
	sig := fn.Signature()
	module, name := sig.Module, sig.Name
	mu.Lock()
	defer mu.Unlock()
	if _, ok := registry[module]; !ok {
		registry[module] = make(map[string]Function)
	}
	if _, ok := registry[module][name]; ok {
		return fmt.Errorf("%w: can not register function: module: '%s' & name: '%s' already taken", value.ErrSchema, module, name)
	}
	registry[module][name] = fn
	return nil
}

func Locate(module, name string) (Function, error) {
	mu.RLock()
	defer mu.RUnlock()
	ns, ok := registry[module]
	if !ok {
		return nil, fmt.Errorf("%w: unregistered function module: '%s'", value.ErrName, module)
	}
	ret, ok := ns[name]
	if !ok {
		return nil, fmt.Errorf("%w: unregistered function '%s' in module: '%s'", value.ErrName, name, module)
	}
	return ret, nil
}

// Call builds an expression applying the named function to every value of src.
func Call(module, name string, src ast.Ast) (ast.Ast, error) {
	fn, err := Locate(module, name)
	if err != nil {
		return nil, err
	}
	sig := fn.Signature()
	return ast.Map(bound{fn: fn, sig: sig}, src, sig.OutputType()), nil
}

// List returns the signatures of every registered function ordered by module
// and name.
func List() []*Signature {
	mu.RLock()
	defer mu.RUnlock()
	ret := make([]*Signature, 0)
	for _, ns := range registry {
		for _, fn := range ns {
			ret = append(ret, fn.Signature())
		}
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Module != ret[j].Module {
			return ret[i].Module < ret[j].Module
		}
		return ret[i].Name < ret[j].Name
	})
	return ret
}
