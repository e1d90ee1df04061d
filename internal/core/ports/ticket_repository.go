package ports

import (
	"context"

	"github.com/revature/reimbursement-system/internal/core/domain"
)

// TicketFilter narrows a ticket listing. Nil fields apply no filter.
type TicketFilter struct {
	OwnerID *int64
	Status  *domain.TicketStatus
}

// TicketRepository defines persistence operations for reimbursement tickets.
// Implementations return domain.ErrTicketNotFound for missing lookups.
type TicketRepository interface {
	// Create inserts a new pending ticket and returns it with its assigned id.
	Create(ctx context.Context, ownerID int64, amount float64, description string) (*domain.ReimbursementTicket, error)
	FindByID(ctx context.Context, id int64) (*domain.ReimbursementTicket, error)
	// ConditionalSetStatus sets the ticket's status to next only if its current
	// status equals expected, as one indivisible operation. It returns false
	// when the ticket was not in the expected status (or does not exist).
	ConditionalSetStatus(ctx context.Context, id int64, expected, next domain.TicketStatus) (bool, error)
	// List returns tickets matching the filter, ordered by id ascending.
	List(ctx context.Context, filter TicketFilter) ([]domain.ReimbursementTicket, error)
}
