package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	SubmissionsTotal       prometheus.Counter
	StatusTransitionsTotal *prometheus.CounterVec
	ExportsTotal           prometheus.Counter
	AdminAuthFailures      prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		SubmissionsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hoso_submissions_total",
			Help: "Total number of accepted application submissions",
		}),
		StatusTransitionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "hoso_status_transitions_total",
			Help: "Total number of admin status transitions by target status",
		}, []string{"status"}),
		ExportsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hoso_exports_total",
			Help: "Total number of CSV exports",
		}),
		AdminAuthFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hoso_admin_auth_failures_total",
			Help: "Total number of rejected admin authentication attempts",
		}),
	}
}

func (m *Metrics) IncrementSubmissions() {
	if m != nil {
		m.SubmissionsTotal.Inc()
	}
}

func (m *Metrics) IncrementStatusTransitions(status string) {
	if m != nil {
		m.StatusTransitionsTotal.WithLabelValues(status).Inc()
	}
}

func (m *Metrics) IncrementExports() {
	if m != nil {
		m.ExportsTotal.Inc()
	}
}

func (m *Metrics) IncrementAdminAuthFailures() {
	if m != nil {
		m.AdminAuthFailures.Inc()
	}
}
