package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

type item[T any] struct {
	input T
	index int
}

// Process applies f to every input on up to nWorkers goroutines. Outputs are
// returned in input order. The first error cancels the remaining work.
// A non-positive nWorkers means one worker per available CPU.
func Process[S, T any](ctx context.Context, nWorkers int, inputs []S, f func(S) (T, error)) ([]T, error) {
	ret := make([]T, len(inputs))
	if nWorkers <= 0 {
		nWorkers = runtime.GOMAXPROCS(0)
	}
	if nWorkers > len(inputs) {
		nWorkers = len(inputs)
	}
	if nWorkers <= 1 {
		for i := range inputs {
			if err := ctx.Err(); err != nil {
				return ret, err
			}
			var err error
			if ret[i], err = f(inputs[i]); err != nil {
				return ret, err
			}
		}
		return ret, nil
	}
	g, ctx := errgroup.WithContext(ctx)
	itemCh := make(chan item[S])
	g.Go(func() error {
		defer close(itemCh)
		for i := range inputs {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case itemCh <- item[S]{inputs[i], i}:
			}
		}
		return nil
	})
	for i := 0; i < nWorkers; i++ {
		g.Go(func() error {
			for item := range itemCh {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
					var err error
					if ret[item.index], err = f(item.input); err != nil {
						return err
					}
				}
			}
			return nil
		})
	}
	return ret, g.Wait()
}
