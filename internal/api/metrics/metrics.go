// Package metrics defines and registers all custom Prometheus metrics for
// the storefront backend. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry via
// promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Login metrics ─────────────────────────────────────────────────────────────

// LoginsTotal counts widget login attempts.
// Label:
//   - result: "success", "invalid_signature", "replay", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of Telegram widget login attempts, by result.",
	},
	[]string{"result"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts newly created orders.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created.",
	},
)

// OrderUpdatesTotal counts shallow-merge updates applied to orders.
var OrderUpdatesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_updates_total",
		Help:      "Total number of order update merges applied.",
	},
)

// ── Ticket metrics ────────────────────────────────────────────────────────────

// TicketsOpenedTotal counts new tickets by how they were opened.
// Label:
//   - kind: "user", "broadcast", or "direct"
var TicketsOpenedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tickets_opened_total",
		Help:      "Total number of tickets created, by origin kind.",
	},
	[]string{"kind"},
)

// TicketRepliesTotal counts messages appended to existing tickets.
var TicketRepliesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ticket_replies_total",
		Help:      "Total number of replies appended to tickets.",
	},
)

// ── Store metrics ─────────────────────────────────────────────────────────────

// StoreWriteDuration measures how long one whole-snapshot write takes.
// Label:
//   - driver: "file" or "mongo"
var StoreWriteDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_write_duration_seconds",
		Help:      "Duration of whole-snapshot store writes.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"driver"},
)
