package domain

import (
	"fmt"
	"strings"
	"time"
)

// TicketStatus represents the lifecycle state of a reimbursement ticket.
type TicketStatus string

const (
	StatusPending  TicketStatus = "pending"
	StatusApproved TicketStatus = "approved"
	StatusDenied   TicketStatus = "denied"
)

// ParseTicketStatus converts a string to a TicketStatus, case-insensitively.
func ParseTicketStatus(s string) (TicketStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(StatusPending):
		return StatusPending, nil
	case string(StatusApproved):
		return StatusApproved, nil
	case string(StatusDenied):
		return StatusDenied, nil
	default:
		return "", fmt.Errorf("%w: %q is not a ticket status", ErrInvalidInput, s)
	}
}

// Decided reports whether the ticket has left the pending state.
// A decided ticket never transitions again.
func (s TicketStatus) Decided() bool {
	return s == StatusApproved || s == StatusDenied
}

// Decision is a manager's verdict on a pending ticket.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionDeny    Decision = "deny"
)

// ParseDecision converts a string to a Decision, case-insensitively.
func ParseDecision(s string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(DecisionApprove):
		return DecisionApprove, nil
	case string(DecisionDeny):
		return DecisionDeny, nil
	default:
		return "", fmt.Errorf("%w: %q is not a decision", ErrInvalidInput, s)
	}
}

// Status returns the ticket status a decision resolves to.
func (d Decision) Status() TicketStatus {
	if d == DecisionApprove {
		return StatusApproved
	}
	return StatusDenied
}

// ReimbursementTicket is the core aggregate: an expense claim submitted by an
// employee, decided at most once by a manager.
type ReimbursementTicket struct {
	ID          int64        `json:"id"`
	OwnerID     int64        `json:"owner_id"`
	Amount      float64      `json:"amount"`
	Description string       `json:"description"`
	Status      TicketStatus `json:"status"`
}

// TicketEvent is the audit record written after a ticket is decided.
type TicketEvent struct {
	TicketID  int64     `json:"ticket_id"`
	ManagerID int64     `json:"manager_id"`
	Decision  Decision  `json:"decision"`
	DecidedAt time.Time `json:"decided_at"`
}
