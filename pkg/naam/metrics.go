package naam

import "github.com/prometheus/client_golang/prometheus"

var (
	modelLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "naamd",
			Subsystem: "model",
			Name:      "loads_total",
			Help:      "Total model loads (artifact resolution + deserialization)",
		},
		[]string{"lang"},
	)

	cacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "naamd",
			Subsystem: "model",
			Name:      "cache_hits_total",
			Help:      "Predictions served without reloading the resident model",
		},
	)

	predictionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "naamd",
			Subsystem: "predict",
			Name:      "names_total",
			Help:      "Total names classified",
		},
	)

	predictFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "naamd",
			Subsystem: "predict",
			Name:      "failures_total",
			Help:      "Batches that failed during classifier invocation or decoding",
		},
	)
)

func init() {
	prometheus.MustRegister(modelLoadsTotal, cacheHitsTotal, predictionsTotal, predictFailuresTotal)
}
