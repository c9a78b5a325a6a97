package metrics

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/stranalyzer/internal/domain"
)

// Analysis Prometheus metrics.
var (
	OperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total analysis operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	RecordsStored = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_stored",
			Help:      "Number of analysis records currently held in memory",
		},
	)
)

var registerOnce sync.Once

// Register registers all stranalyzer collectors on the default registry. Safe to call repeatedly.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequestDuration)
		prometheus.MustRegister(httpRequestsTotal)
		prometheus.MustRegister(OperationsTotal)
		prometheus.MustRegister(RecordsStored)
	})
}

// Observer counts service operations in OperationsTotal.
type Observer struct{}

// ObserveOperation implements usecase/analysis.Observer.
func (Observer) ObserveOperation(op string, err error) {
	OperationsTotal.WithLabelValues(op, Outcome(err)).Inc()
}

// Outcome maps an operation error to a low-cardinality label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrDuplicateInput):
		return "duplicate"
	case errors.Is(err, domain.ErrInvalidFilter):
		return "invalid_filter"
	case errors.Is(err, domain.ErrUnparsableQuery):
		return "unparsable_query"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrNoMatch):
		return "no_match"
	default:
		return "error"
	}
}
