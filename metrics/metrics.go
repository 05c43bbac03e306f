package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors exported on /metrics.
type Metrics struct {
	HTTPRequests         *prometheus.CounterVec
	HTTPDuration         *prometheus.HistogramVec
	Transitions          *prometheus.CounterVec
	NotificationsCreated prometheus.Counter
	PublishFailures      prometheus.Counter
	NetSalaryComputed    prometheus.Histogram
	DBQueryDuration      *prometheus.HistogramVec
}

// NewMetrics registers every collector on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "ems_http_requests_total",
			Help: "Total HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ems_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Transitions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "ems_workflow_transitions_total",
			Help: "Status transitions applied, by workflow and resulting status.",
		}, []string{"workflow", "status"}),
		NotificationsCreated: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "ems_notifications_created_total",
			Help: "Total notifications appended to user feeds.",
		}),
		PublishFailures: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "ems_notification_publish_failures_total",
			Help: "Notifications that could not be pushed to the live channel.",
		}),
		NetSalaryComputed: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "ems_net_salary_amount",
			Help:    "Net salary of created monthly records.",
			Buckets: prometheus.ExponentialBuckets(1000, 2, 10),
		}),
		DBQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ems_db_query_duration_seconds",
			Help:    "Duration of database operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query_type"}), // query_type: 'create_monthly_record', 'approve_employee'
	}

	return metrics
}

// ObserveDBQuery records the time elapsed since start under queryType.
func (m *Metrics) ObserveDBQuery(queryType string, start time.Time) {
	m.DBQueryDuration.WithLabelValues(queryType).Observe(time.Since(start).Seconds())
}

func (m *Metrics) Transition(workflow, status string) {
	m.Transitions.WithLabelValues(workflow, status).Inc()
}
