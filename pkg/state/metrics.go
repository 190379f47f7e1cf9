package state

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// engineMetrics are process-wide and shared by every engine instance;
// collectors can only be registered once per registerer.
type engineMetrics struct {
	registeredViews       prometheus.Gauge
	transitionsDispatched prometheus.Counter
	stateChanges          prometheus.Counter
	resolveErrors         *prometheus.CounterVec
}

var (
	metricsOnce sync.Once
	metricsInst *engineMetrics
)

func metrics() *engineMetrics {
	metricsOnce.Do(func() {
		metricsInst = newEngineMetrics(prometheus.DefaultRegisterer)
	})
	return metricsInst
}

func newEngineMetrics(reg prometheus.Registerer) *engineMetrics {
	factory := promauto.With(reg)
	return &engineMetrics{
		registeredViews: factory.NewGauge(prometheus.GaugeOpts{
			Name: "stagekit_registered_views",
			Help: "Number of views currently tracked by the registry.",
		}),
		transitionsDispatched: factory.NewCounter(prometheus.CounterOpts{
			Name: "stagekit_transitions_dispatched_total",
			Help: "Total layer transitions dispatched by the coordinator.",
		}),
		stateChanges: factory.NewCounter(prometheus.CounterOpts{
			Name: "stagekit_state_changes_total",
			Help: "Total state-changed notifications emitted.",
		}),
		resolveErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stagekit_resolve_errors_total",
			Help: "Total path resolution failures by reason.",
		}, []string{"reason"}),
	}
}
