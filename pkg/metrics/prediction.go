package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the prediction Create HTTP handler
	PredictionCreateLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "prediction_create_latency_seconds",
		Help:    "Latency of the create prediction handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total prediction requests served, by operation
	PredictionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prediction_requests_total",
			Help: "Total number of prediction requests by operation",
		},
		[]string{"operation"},
	)

	// Times the fallback synthesizer stood in for the inference service
	InferenceFallbackTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "inference_fallback_total",
		Help: "Total number of predictions served by the fallback synthesizer",
	})

	// Times a request was answered from the mock store instead of Postgres
	MockStoreResponsesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mock_store_responses_total",
		Help: "Total number of responses synthesized while the store was unavailable",
	})
)

func Init() {
	prometheus.MustRegister(
		PredictionCreateLatency,
		PredictionRequestsTotal,
		InferenceFallbackTotal,
		MockStoreResponsesTotal,
	)
}
