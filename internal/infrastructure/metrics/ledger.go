package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Ledger contador de decisiones del ledger por operación y resultado
// (accepted, capacity_exceeded, insufficient_balance...).
type Ledger struct {
	registry  *prometheus.Registry
	decisions *prometheus.CounterVec
}

// NewLedger registra los colectores en un registry propio, con las métricas de proceso y runtime de Go.
func NewLedger() *Ledger {
	reg := prometheus.NewRegistry()
	decisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fims",
		Subsystem: "ledger",
		Name:      "decisions_total",
		Help:      "Decisiones del ledger por operación y resultado.",
	}, []string{"operation", "outcome"})
	reg.MustRegister(
		decisions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Ledger{registry: reg, decisions: decisions}
}

// Decision implementa ledger.Recorder.
func (l *Ledger) Decision(operation, outcome string) {
	l.decisions.WithLabelValues(operation, outcome).Inc()
}

// Handler expone el registry en formato Prometheus.
func (l *Ledger) Handler() http.Handler {
	return promhttp.HandlerFor(l.registry, promhttp.HandlerOpts{Registry: l.registry})
}

// Registry para tests y colectores adicionales.
func (l *Ledger) Registry() *prometheus.Registry {
	return l.registry
}
