package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus counters for the requisition service
type Metrics struct {
	RequisitionsSubmitted prometheus.Counter
	RequisitionsDecided   *prometheus.CounterVec
	DocumentsRendered     prometheus.Counter
	AuthFailures          prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		RequisitionsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "requisition_submitted_total",
			Help: "Total number of requisitions submitted",
		}),
		RequisitionsDecided: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "requisition_decided_total",
			Help: "Total number of decisions recorded, by outcome status",
		}, []string{"status"}),
		DocumentsRendered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "requisition_documents_rendered_total",
			Help: "Total number of requisition documents exported as PDF",
		}),
		AuthFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "requisition_auth_failures_total",
			Help: "Total number of failed authentication attempts",
		}),
	}
}
