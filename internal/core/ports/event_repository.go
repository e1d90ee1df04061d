package ports

import (
	"context"

	"github.com/revature/reimbursement-system/internal/core/domain"
)

// DecisionRecorder accepts audit events for decided tickets. Record must not
// block the caller beyond a bounded enqueue; persistence is best-effort and
// happens off the request path.
type DecisionRecorder interface {
	Record(event domain.TicketEvent)
}

// EventRepository persists decision audit records.
type EventRepository interface {
	InsertEvent(ctx context.Context, event *domain.TicketEvent) error
}
