// Package metrics defines and registers all custom Prometheus metrics for
// the mentorship API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register themselves with the default Prometheus registry via
// promauto at package init; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mentorship"

// ── Booking metrics ───────────────────────────────────────────────────────────

// BookingsCreatedTotal counts newly created bookings.
// Label:
//   - offering: the offering id the booking was placed against
var BookingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings created, by offering.",
	},
	[]string{"offering"},
)

// PaymentOrdersTotal counts gateway order creation attempts.
// Label:
//   - result: "created" or "gateway_error"
var PaymentOrdersTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_orders_total",
		Help:      "Total number of payment order creation attempts, by result.",
	},
	[]string{"result"},
)

// ── Webhook metrics ───────────────────────────────────────────────────────────

// WebhookEventsTotal counts gateway webhook deliveries after normalization.
// Label:
//   - outcome: "paid", "failed", or "pending"
var WebhookEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_events_total",
		Help:      "Total number of gateway webhook events received, by outcome.",
	},
	[]string{"outcome"},
)

// WebhookDedupTotal counts webhook deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new event, processed)
var WebhookDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_dedup_total",
		Help:      "Total number of webhook deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// WebhookProcessingDuration measures how long a webhook takes from receipt
// to persistence.
// Label:
//   - outcome: "paid", "failed", "pending", "none" (unmatched order), or "error"
var WebhookProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "webhook_processing_duration_seconds",
		Help:      "Duration of webhook processing from receipt to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)

// ── Access control metrics ────────────────────────────────────────────────────

// GateDenialsTotal counts dashboard requests redirected away by the
// authorization gate.
// Label:
//   - role: the effective role of the redirected caller
var GateDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_denials_total",
		Help:      "Total number of dashboard requests redirected by the authorization gate, by effective role.",
	},
	[]string{"role"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsDeliveredTotal counts notifications persisted by the
// dispatcher workers.
// Label:
//   - kind: the notification kind (e.g. "booking_confirmed")
var NotificationsDeliveredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_delivered_total",
		Help:      "Total number of notifications delivered, by kind.",
	},
	[]string{"kind"},
)
