package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	transitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wfh",
		Name:      "transitions_total",
		Help:      "Committed WFH request transitions broken down by target action.",
	}, []string{"transition"})

	transitionRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wfh",
		Name:      "transition_rows_total",
		Help:      "Rows changed by committed transitions broken down by target action.",
	}, []string{"transition"})

	sweepRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wfh",
		Subsystem: "sweep",
		Name:      "runs_total",
		Help:      "Auto-expiry sweep runs broken down by result.",
	}, []string{"result"})

	sweepCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "wfh",
		Subsystem: "sweep",
		Name:      "cancelled_total",
		Help:      "Rows cancelled by the auto-expiry sweep.",
	})
)

// Sweep results.
const (
	SweepOK      = "ok"
	SweepError   = "error"
	SweepSkipped = "skipped"
)

func RecordTransition(transition string, rows int) {
	if transition == "" {
		transition = "other"
	}
	transitions.WithLabelValues(transition).Inc()
	transitionRows.WithLabelValues(transition).Add(float64(rows))
}

func RecordSweep(result string, cancelled int) {
	sweepRuns.WithLabelValues(result).Inc()
	if cancelled > 0 {
		sweepCancelled.Add(float64(cancelled))
	}
}

// Handler serves the default registry.
func Handler() http.Handler { return promhttp.Handler() }
