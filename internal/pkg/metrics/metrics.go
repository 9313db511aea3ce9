// Package metrics exposes Prometheus instrumentation for the API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequests counts handled HTTP requests by method, path and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "enroll_http_requests_total",
		Help: "Total number of HTTP requests handled.",
	}, []string{"method", "path", "status"})

	// RegistrationsCompleted counts successfully submitted registrations.
	RegistrationsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "enroll_registrations_completed_total",
		Help: "Total number of completed student registrations.",
	})

	// VerificationCodesSent counts OTP codes issued.
	VerificationCodesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "enroll_verification_codes_sent_total",
		Help: "Total number of phone verification codes sent.",
	})

	// VerificationsCompleted counts phone verifications that reached the
	// verified terminal state.
	VerificationsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "enroll_verifications_completed_total",
		Help: "Total number of completed phone verifications.",
	})
)

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
