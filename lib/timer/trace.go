package timer

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/raulk/clock"
	"go.uber.org/zap"
)

type traceKey struct{}

type Event struct {
	Name    string
	Elapsed time.Duration
}

type trace struct {
	lock   sync.Mutex
	clock  clock.Clock
	start  time.Time
	events []Event
}

func (t *trace) record(key string) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.events = append(t.events, Event{
		Name:    key,
		Elapsed: t.clock.Since(t.start),
	})
}

// WithTracing attaches a step trace to ctx. Steps are timed with clk, which is
// a mock clock in tests.
func WithTracing(ctx context.Context, clk clock.Clock) context.Context {
	if clk == nil {
		clk = clock.New()
	}
	return context.WithValue(ctx, traceKey{}, &trace{
		lock:   sync.Mutex{},
		clock:  clk,
		start:  clk.Now(),
		events: make([]Event, 0),
	})
}

// Record notes that a step finished. It is a no-op without WithTracing.
func Record(ctx context.Context, event string) {
	if t, ok := ctx.Value(traceKey{}).(*trace); ok {
		t.record(event)
	}
}

// Events returns the recorded steps ordered by elapsed time.
func Events(ctx context.Context) []Event {
	t, ok := ctx.Value(traceKey{}).(*trace)
	if !ok {
		return nil
	}
	t.lock.Lock()
	defer t.lock.Unlock()
	ret := make([]Event, len(t.events))
	copy(ret, t.events)
	sort.SliceStable(ret, func(i, j int) bool {
		return ret[i].Elapsed < ret[j].Elapsed
	})
	return ret
}

func LogTracingInfo(ctx context.Context, log *zap.Logger) error {
	ctxval := ctx.Value(traceKey{})
	if ctxval == nil {
		return nil
	}
	if _, ok := ctxval.(*trace); !ok {
		return fmt.Errorf("expected trace but got: %v", ctxval)
	}
	sb := strings.Builder{}
	sb.WriteString("====Trace====\n")
	for _, e := range Events(ctx) {
		sb.WriteString(fmt.Sprintf("\t%5dms: %s\n", e.Elapsed.Milliseconds(), e.Name))
	}
	log.Debug(sb.String())
	return nil
}
