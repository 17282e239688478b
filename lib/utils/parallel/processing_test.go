package parallel_test

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"tabula/lib/utils/parallel"

	"github.com/stretchr/testify/assert"
)

func square(x int) (int, error) {
	return x * x, nil
}

func squareSleep(x int) (int, error) {
	time.Sleep(100 * time.Millisecond)
	return x * x, nil
}

func TestParallelProcessing(t *testing.T) {
	inputs := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	expected := []int{1, 4, 9, 16, 25, 36, 49, 64, 81, 100}
	maxWorkers := runtime.GOMAXPROCS(0)
	results, err := parallel.Process(context.Background(), maxWorkers, inputs, square)
	assert.NoError(t, err)
	assert.Equal(t, expected, results)

	start := time.Now()
	results, err = parallel.Process(context.Background(), len(inputs), inputs, squareSleep)
	elapsed := time.Since(start)
	assert.NoError(t, err)
	assert.Equal(t, expected, results)
	// sequentially this takes a second
	assert.Less(t, elapsed, 900*time.Millisecond)
}

func TestSingleWorkerKeepsOrder(t *testing.T) {
	inputs := []int{3, 1, 2}
	results, err := parallel.Process(context.Background(), 1, inputs, square)
	assert.NoError(t, err)
	assert.Equal(t, []int{9, 1, 4}, results)

	results, err = parallel.Process(context.Background(), 0, []int{}, square)
	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestProcessingError(t *testing.T) {
	inputs := make([]int, 1000)
	for i := range inputs {
		inputs[i] = i
	}
	e := errors.New("multiple of 97")
	f := func(x int) (int, error) {
		if x > 0 && x%97 == 0 {
			return 0, e
		}
		return x * x, nil
	}
	_, err := parallel.Process(context.Background(), 4, inputs, f)
	assert.ErrorIs(t, err, e)
	_, err = parallel.Process(context.Background(), 1, inputs, f)
	assert.ErrorIs(t, err, e)
}

func TestProcessingCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := parallel.Process(ctx, 4, []int{1, 2, 3, 4, 5, 6, 7, 8}, square)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = parallel.Process(ctx, 1, []int{1, 2}, square)
	assert.ErrorIs(t, err, context.Canceled)
}
