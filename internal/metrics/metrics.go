package metrics

import "github.com/prometheus/client_golang/prometheus"

// Result label values.
const (
	ResultSuccess      = "success"
	ResultInvalidInput = "invalid_input"
	ResultNotFound     = "not_found"
	ResultFailure      = "failure"
)

// Metrics holds the catalog's Prometheus collectors.
type Metrics struct {
	ProductOperations *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ProductOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "catalog",
			Name:      "product_operations_total",
			Help:      "Total number of product operations by operation and result.",
		}, []string{"operation", "result"}),
	}
	reg.MustRegister(m.ProductOperations)
	return m
}

// ObserveProductOperation counts one product operation. A nil Metrics is a no-op.
func (m *Metrics) ObserveProductOperation(operation, result string) {
	if m == nil {
		return
	}
	m.ProductOperations.WithLabelValues(operation, result).Inc()
}
