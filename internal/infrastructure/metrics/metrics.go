// Package metrics defines and registers all custom Prometheus metrics for the
// blog service. It is the single source of truth for metric names, labels and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsDeliveredTotal counts notifications handed to a sink.
// Labels:
//   - kind: "success" or "error"
//   - title: the notification title (e.g. "Blog Created", "Access Denied")
var NotificationsDeliveredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_delivered_total",
		Help:      "Total number of notifications delivered, by kind and title.",
	},
	[]string{"kind", "title"},
)

// NotificationsDroppedTotal counts notifications discarded because the
// responsible worker channel was full or the dispatcher had stopped.
var NotificationsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dropped_total",
		Help:      "Total number of notifications dropped before delivery.",
	},
)

// NotifyQueueDepth tracks the number of notifications waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotifyQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notify_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Content metrics ───────────────────────────────────────────────────────────

// PostOperationsTotal counts content mutations handled by the API.
// Labels:
//   - operation: "create", "update" or "delete"
//   - result: "ok", "not_found", "forbidden", "unauthenticated" or "error"
var PostOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "post_operations_total",
		Help:      "Total number of post mutations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// MarkdownRenderDuration measures how long rendering a post body takes.
var MarkdownRenderDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "markdown_render_duration_seconds",
		Help:      "Duration of markdown to HTML rendering.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Identity metrics ──────────────────────────────────────────────────────────

// AuthAttemptsTotal counts login and registration attempts.
// Labels:
//   - operation: "login" or "register"
//   - result: "ok", "invalid_credentials", "email_in_use" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by operation and result.",
	},
	[]string{"operation", "result"},
)
