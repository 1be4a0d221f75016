// Package metrics defines and registers the custom Prometheus metrics of the
// identity service. It is the single source of truth for metric names,
// labels, and help strings.
//
// All metrics register with the default Prometheus registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// Result label values shared by the counters below.
const (
	ResultSuccess       = "success"
	ResultNotFound      = "not_found"
	ResultBadCredential = "bad_credential"
	ResultDuplicate     = "duplicate"
	ResultInvalid       = "invalid"
	ResultUnavailable   = "unavailable"
	ResultError         = "error"
)

// ── Authentication ────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts authentication attempts.
// Labels:
//   - method: "credentials" or "national_id"
//   - result: success, not_found, bad_credential, unavailable, error
//
// not_found and bad_credential are never surfaced to callers; they only
// exist here.
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by method and result.",
	},
	[]string{"method", "result"},
)

// TokensIssuedTotal counts signed tokens.
// Label:
//   - role: the role claim of the token
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of bearer tokens issued, by role.",
	},
	[]string{"role"},
)

// ── Registration ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts identity creation attempts.
// Labels:
//   - kind: "staff", "customer" or "basic"
//   - result: success, duplicate, invalid, unavailable, error
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of identity registrations, by kind and result.",
	},
	[]string{"kind", "result"},
)

// ── Storage ───────────────────────────────────────────────────────────────────

// StoreOperationDuration measures a single UserStore call.
// Labels:
//   - operation: find_by_email, find_by_national_id, create_staff, ...
//   - result: success, not_found, duplicate, unavailable, error
var StoreOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_operation_duration_seconds",
		Help:      "Duration of identity store operations.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation", "result"},
)

// ── Login throttling ──────────────────────────────────────────────────────────

// LoginThrottledTotal counts login requests rejected by the rate limiter.
var LoginThrottledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_throttled_total",
		Help:      "Total number of login requests rejected by the attempt limiter.",
	},
)
