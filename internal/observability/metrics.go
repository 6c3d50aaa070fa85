// Package observability holds the process-wide prometheus collectors.
package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "compuzone"

var (
	FetchRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_requests_total",
			Help:      "Search fragment fetches by fetcher and outcome",
		},
		[]string{"fetcher", "outcome"},
	)

	FetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Search fragment fetch latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"fetcher"},
	)

	SearchRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_requests_total",
			Help:      "Brand discovery and product searches by outcome",
		},
		[]string{"operation", "outcome"},
	)

	ProductsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "products_returned",
			Help:      "Products per search response",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100},
		},
	)
)

const (
	OperationBrands   = "brands"
	OperationProducts = "products"

	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeEmpty   = "empty"
)

var registerOnce sync.Once

// Register adds the collectors to the default registry. Safe to call more
// than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(FetchRequests, FetchDuration, SearchRequests, ProductsReturned)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveFetch records one fetch that started at start.
func ObserveFetch(fetcher string, start time.Time, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	FetchRequests.WithLabelValues(fetcher, outcome).Inc()
	FetchDuration.WithLabelValues(fetcher).Observe(time.Since(start).Seconds())
}

// ObserveSearch records a search outcome and, for successful product
// searches, the result size.
func ObserveSearch(operation string, results int, err error) {
	outcome := OutcomeSuccess
	switch {
	case err != nil:
		outcome = OutcomeError
	case results == 0:
		outcome = OutcomeEmpty
	}
	SearchRequests.WithLabelValues(operation, outcome).Inc()

	if operation == OperationProducts && err == nil {
		ProductsReturned.Observe(float64(results))
	}
}
