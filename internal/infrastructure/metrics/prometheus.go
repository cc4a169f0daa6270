// Package metrics expone los contadores del flujo de emisión en formato Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/sistema-facturador/internal/application/billing"
)

const namespace = "facturador"

var _ billing.Metrics = (*Recorder)(nil)

// Recorder implementa billing.Metrics sobre un registry propio.
// Seguro para uso concurrente.
type Recorder struct {
	registry      *prometheus.Registry
	salesIssued   *prometheus.CounterVec
	salesRejected *prometheus.CounterVec
	collaborator  *prometheus.CounterVec
}

// NewRecorder crea el registry con los contadores de negocio y los collectors de proceso y runtime.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		salesIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_issued_total",
			Help:      "Comprobantes emitidos por tipo de documento.",
		}, []string{"tipo"}),
		salesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_rejected_total",
			Help:      "Emisiones rechazadas por motivo.",
		}, []string{"reason"}),
		collaborator: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "collaborator_calls_total",
			Help:      "Llamadas al backend colaborador por operación y resultado.",
		}, []string{"operation", "outcome"}),
	}
	r.registry.MustRegister(
		r.salesIssued,
		r.salesRejected,
		r.collaborator,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) SaleIssued(docType string) {
	r.salesIssued.WithLabelValues(docType).Inc()
}

func (r *Recorder) SaleRejected(reason string) {
	r.salesRejected.WithLabelValues(reason).Inc()
}

func (r *Recorder) CollaboratorCall(operation, outcome string) {
	r.collaborator.WithLabelValues(operation, outcome).Inc()
}

// Handler endpoint de scraping.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
