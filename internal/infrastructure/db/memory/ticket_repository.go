package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/revature/reimbursement-system/internal/core/domain"
	"github.com/revature/reimbursement-system/internal/core/ports"
)

// TicketRepository is an in-memory ticket store. A single mutex covers every
// operation, which makes ConditionalSetStatus trivially indivisible.
type TicketRepository struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]domain.ReimbursementTicket
}

func NewTicketRepository() *TicketRepository {
	return &TicketRepository{byID: make(map[int64]domain.ReimbursementTicket)}
}

func (r *TicketRepository) Create(_ context.Context, ownerID int64, amount float64, description string) (*domain.ReimbursementTicket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	t := domain.ReimbursementTicket{
		ID:          r.nextID,
		OwnerID:     ownerID,
		Amount:      amount,
		Description: description,
		Status:      domain.StatusPending,
	}
	r.byID[t.ID] = t
	return &t, nil
}

func (r *TicketRepository) FindByID(_ context.Context, id int64) (*domain.ReimbursementTicket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTicketNotFound
	}
	return &t, nil
}

func (r *TicketRepository) ConditionalSetStatus(_ context.Context, id int64, expected, next domain.TicketStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byID[id]
	if !ok || t.Status != expected {
		return false, nil
	}
	t.Status = next
	r.byID[id] = t
	return true, nil
}

func (r *TicketRepository) List(_ context.Context, filter ports.TicketFilter) ([]domain.ReimbursementTicket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tickets := make([]domain.ReimbursementTicket, 0, len(r.byID))
	for _, t := range r.byID {
		if filter.OwnerID != nil && t.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		tickets = append(tickets, t)
	}
	sort.Slice(tickets, func(i, j int) bool { return tickets[i].ID < tickets[j].ID })
	return tickets, nil
}
