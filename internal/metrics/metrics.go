// Package metrics holds the Prometheus collectors of the labelling service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// labelsResolvedTotal counts resolved labels.
	// Labels: stage (name, accession, pid, none), policy (gene, generic)
	labelsResolvedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "knetlabel",
		Subsystem: "labels",
		Name:      "resolved_total",
		Help:      "Resolved concept labels by fallback stage and accession policy",
	}, []string{"stage", "policy"})

	labelErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "knetlabel",
		Subsystem: "labels",
		Name:      "errors_total",
		Help:      "Label resolution failures by operation",
	}, []string{"operation"})

	relabelWrittenTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "knetlabel",
		Subsystem: "relabel",
		Name:      "written_total",
		Help:      "Concept labels written back to the graph",
	})

	relabelDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "knetlabel",
		Subsystem: "relabel",
		Name:      "duration_seconds",
		Help:      "Duration of relabel runs",
		Buckets:   []float64{0.1, 0.5, 1, 5, 15, 60, 300, 900},
	}, []string{"type"})
)

func RecordResolution(stage string, gene bool) {
	policy := "generic"
	if gene {
		policy = "gene"
	}
	labelsResolvedTotal.WithLabelValues(stage, policy).Inc()
}

func RecordError(operation string) {
	labelErrorsTotal.WithLabelValues(operation).Inc()
}

func RecordWritten(n int) {
	relabelWrittenTotal.Add(float64(n))
}

// RecordRelabel observes a whole relabel run; typeID is "all" when the run was
// not restricted to a concept type.
func RecordRelabel(typeID string, d time.Duration) {
	if typeID == "" {
		typeID = "all"
	}
	relabelDurationSeconds.WithLabelValues(typeID).Observe(d.Seconds())
}
