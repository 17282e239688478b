package timer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// stepDuration covers the engine's steps, from CSV loads to single operators.
// Most steps take micro to milliseconds, so the tail quantiles matter most.
var stepDuration = promauto.NewSummaryVec(prometheus.SummaryOpts{
	Name: "tabula_step_duration_seconds",
	Help: "Duration of engine steps such as operators.filter or loader.read",
	Objectives: map[float64]float64{
		0.5:   0.05,
		0.9:   0.01,
		0.99:  0.001,
		0.999: 0.0001,
	},
	MaxAge: prometheus.DefMaxAge,
}, []string{"step"})

type Timer struct {
	timer *prometheus.Timer
}

// Stop observes the time since Start.
func (t Timer) Stop() {
	t.timer.ObserveDuration()
}

// Start times one run of step, named as "<package>.<operation>".
func Start(step string) Timer {
	return Timer{
		timer: prometheus.NewTimer(stepDuration.WithLabelValues(step)),
	}
}
