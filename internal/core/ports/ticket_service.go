package ports

import (
	"context"

	"github.com/revature/reimbursement-system/internal/core/domain"
)

// SubmitTicketInput carries the parameters of a reimbursement submission.
type SubmitTicketInput struct {
	Amount      float64
	Description string
}

// ProcessTicketInput carries a manager's decision on a ticket. Decision is the
// raw string from the transport layer; the service validates it.
type ProcessTicketInput struct {
	TicketID int64
	Decision string
}

// TicketService owns ticket creation and the single pending-to-decided
// transition.
type TicketService interface {
	Submit(ctx context.Context, session domain.SessionContext, input SubmitTicketInput) (*domain.ReimbursementTicket, error)
	Process(ctx context.Context, session domain.SessionContext, input ProcessTicketInput) (*domain.ReimbursementTicket, error)
}

// ListTicketsInput carries the optional listing filters. Both are raw strings
// from the transport layer; an unrecognised status degrades to no filter, and
// the username is honoured only for manager callers.
type ListTicketsInput struct {
	Status   string
	Username string
}

// TicketLister computes the ticket listing a caller is entitled to see.
type TicketLister interface {
	List(ctx context.Context, session domain.SessionContext, input ListTicketsInput) ([]domain.ReimbursementTicket, error)
}
