package operators

import (
	"fmt"
	"sort"
	"sync"

	"tabula/lib/value"
)

// Reducer folds the non-null values of one group into a single value.
type Reducer interface {
	Name() string
	// ResultType is the type of the aggregate column built from a source
	// column of type t.
	ResultType(t value.Type) (value.Type, error)
	// Reduce receives the group's values with nulls already removed.
	Reduce(vals []value.Value) (value.Value, error)
}

var (
	registry = make(map[string]Reducer)
	mu       sync.RWMutex
)

func Register(r Reducer) error {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := registry[r.Name()]; ok {
		return fmt.Errorf("%w: can not register reducer: name '%s' already taken", value.ErrSchema, r.Name())
	}
	registry[r.Name()] = r
	return nil
}

func Locate(name string) (Reducer, error) {
	mu.RLock()
	defer mu.RUnlock()
	ret, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: unregistered reducer '%s'", value.ErrName, name)
	}
	return ret, nil
}

// Reducers lists the names of every registered reducer.
func Reducers() []string {
	mu.RLock()
	defer mu.RUnlock()
	ret := make([]string, 0, len(registry))
	for name := range registry {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}
