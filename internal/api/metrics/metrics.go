// Package metrics defines all custom Prometheus metrics for the reimbursement
// system. It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "reimbursement"

// ── Ticket metrics ────────────────────────────────────────────────────────────

// TicketsSubmittedTotal counts successfully submitted tickets.
var TicketsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tickets_submitted_total",
		Help:      "Total number of reimbursement tickets submitted.",
	},
)

// TicketsDecidedTotal counts decided tickets.
// Label:
//   - decision: "approve" or "deny"
var TicketsDecidedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tickets_decided_total",
		Help:      "Total number of tickets decided, by decision.",
	},
	[]string{"decision"},
)

// TicketDecisionConflictsTotal counts process calls rejected because the
// ticket was already decided.
var TicketDecisionConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ticket_decision_conflicts_total",
		Help:      "Total number of process calls rejected on an already-decided ticket.",
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SessionsEstablishedTotal counts successful logins.
var SessionsEstablishedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_established_total",
		Help:      "Total number of sessions established by login.",
	},
)

// AuthFailuresTotal counts rejected authentication attempts.
// Label:
//   - reason: "bad_credentials" or "invalid_payload"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of failed authentication attempts, by reason.",
	},
	[]string{"reason"},
)

// ── Audit trail metrics ───────────────────────────────────────────────────────

// AuditEventsRecordedTotal counts audit events persisted by the dispatcher.
// Label:
//   - result: "ok" or "error"
var AuditEventsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_recorded_total",
		Help:      "Total number of decision audit events written, by result.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks the events waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditWriteDuration measures how long persisting one audit event takes.
var AuditWriteDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_write_duration_seconds",
		Help:      "Duration of a single audit event write.",
		Buckets:   prometheus.DefBuckets,
	},
)
