// Package metrics defines all custom Prometheus metrics for the
// EcoSphere API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register themselves with the
// default registry via promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ecosphere"

// --- Action metrics ---

// ActionsLoggedTotal counts eco actions created, by category.
var ActionsLoggedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "actions_logged_total",
		Help:      "Total number of eco actions logged, by category.",
	},
	[]string{"category"},
)

// BadgesAwardedTotal counts badges newly granted, by badge name.
var BadgesAwardedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "badges_awarded_total",
		Help:      "Total number of badges awarded, by badge.",
	},
	[]string{"badge"},
)

// --- Reminder metrics ---

// RemindersDeliveredTotal counts reminders marked delivered by the dispatcher.
var RemindersDeliveredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reminders_delivered_total",
		Help:      "Total number of reminders marked delivered by the dispatcher.",
	},
)

// ReminderNotificationsTotal counts notification outcomes per reminder.
// Label:
//   - result: "sent", "skipped" (no email on file), or "failed"
var ReminderNotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reminder_notifications_total",
		Help:      "Total number of reminder notification attempts, by result.",
	},
	[]string{"result"},
)

// --- Recompute metrics ---

// RecomputeUsersTotal counts users processed by the bulk recompute job.
var RecomputeUsersTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recompute_users_total",
		Help:      "Total number of users processed by the score/badge recompute job.",
	},
)

// RecomputeDuration measures one full recompute run.
var RecomputeDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "recompute_duration_seconds",
		Help:      "Duration of a full score/badge recompute run.",
		Buckets:   prometheus.DefBuckets,
	},
)

// --- Upload metrics ---

// ReceiptUploadsTotal counts receipt uploads.
// Label:
//   - verified: "true" when the total-amount heuristic matched
var ReceiptUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "receipt_uploads_total",
		Help:      "Total number of receipt uploads, by verification outcome.",
	},
	[]string{"verified"},
)
