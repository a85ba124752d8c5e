// Package metrics provides Prometheus metrics for the logging facility.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "complog",
		Subsystem: "dispatch",
		Name:      "records_total",
		Help:      "Records that passed the level gate and were handed to a sink",
	}, []string{"component", "level"})

	sinkErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "complog",
		Subsystem: "sink",
		Name:      "errors_total",
		Help:      "Sink write failures, reported on standard error",
	}, []string{"sink"})

	emergencyContextTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "complog",
		Subsystem: "thread",
		Name:      "emergency_context_total",
		Help:      "Records rendered through the shared emergency context",
	})

	componentLevel = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "complog",
		Subsystem: "component",
		Name:      "level",
		Help:      "Current threshold of each component",
	}, []string{"component"})

	liveContexts = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "complog",
		Subsystem: "thread",
		Name:      "contexts_live",
		Help:      "Thread contexts currently attached or pooled",
	})

	openFiles = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "complog",
		Subsystem: "sink",
		Name:      "files_open",
		Help:      "Log files held open by in-flight file writes",
	})

	historyRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "complog",
		Subsystem: "history",
		Name:      "records",
		Help:      "Records held in the history ring buffer",
	})

	pinnedComponents = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "complog",
		Subsystem: "component",
		Name:      "pinned",
		Help:      "Components whose level was set from the environment",
	})
)

// RecordDispatched counts one record delivered for a component at a level.
func RecordDispatched(component, level string) {
	recordsTotal.WithLabelValues(component, level).Inc()
}

// SinkError counts one failed sink write.
func SinkError(sink string) {
	sinkErrorsTotal.WithLabelValues(sink).Inc()
}

// EmergencyContextUsed counts one fallback to the emergency context.
func EmergencyContextUsed() {
	emergencyContextTotal.Inc()
}

// SetComponentLevel records the current threshold of a component.
func SetComponentLevel(component string, level int) {
	componentLevel.WithLabelValues(component).Set(float64(level))
}

// FacilityStats is one sample of the facility gauges.
type FacilityStats struct {
	LiveContexts     int64
	OpenFiles        int64
	HistoryRecords   int
	PinnedComponents int
}

// SetFacilityStats publishes a sample of the facility gauges.
func SetFacilityStats(s FacilityStats) {
	liveContexts.Set(float64(s.LiveContexts))
	openFiles.Set(float64(s.OpenFiles))
	historyRecords.Set(float64(s.HistoryRecords))
	pinnedComponents.Set(float64(s.PinnedComponents))
}
