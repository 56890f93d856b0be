package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	UsersRegistered prometheus.Counter
	Logins          *prometheus.CounterVec
	TokenPairs      *prometheus.CounterVec
	RequestLatency  *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "taskdeck_users_registered_total",
			Help: "Total number of identities registered",
		}),
		Logins: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "taskdeck_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		TokenPairs: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "taskdeck_token_pairs_total",
			Help: "Token pairs minted, by trigger (login or refresh)",
		}, []string{"trigger"}),
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "taskdeck_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// IncrementUsersRegistered records a successful registration.
func (m *Metrics) IncrementUsersRegistered() {
	if m != nil {
		m.UsersRegistered.Inc()
	}
}

// IncrementLogin records a login attempt outcome ("success" or "failure").
func (m *Metrics) IncrementLogin(outcome string) {
	if m != nil {
		m.Logins.WithLabelValues(outcome).Inc()
	}
}

// IncrementTokenPairs records a minted pair by trigger ("login" or "refresh").
func (m *Metrics) IncrementTokenPairs(trigger string) {
	if m != nil {
		m.TokenPairs.WithLabelValues(trigger).Inc()
	}
}
