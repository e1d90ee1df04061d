package service

import (
	"context"
	"errors"
	"sort"

	"github.com/rs/zerolog"

	"github.com/revature/reimbursement-system/internal/core/domain"
	"github.com/revature/reimbursement-system/internal/core/policy"
	"github.com/revature/reimbursement-system/internal/core/ports"
)

// VisibilityService computes the ticket listing a caller is entitled to see.
// Employees only ever see their own tickets; managers see everything, scoped
// by the optional status and username filters.
type VisibilityService struct {
	users   ports.IdentityDirectory
	tickets ports.TicketRepository
	logger  zerolog.Logger
}

func NewVisibilityService(users ports.IdentityDirectory, tickets ports.TicketRepository, logger zerolog.Logger) *VisibilityService {
	return &VisibilityService{users: users, tickets: tickets, logger: logger}
}

// List resolves the caller's filters and returns the permitted tickets.
//
// An unrecognised status value degrades to "no status filter" rather than
// failing. The username filter is honoured only for managers; a username that
// resolves to no user yields an empty listing, not an error.
//
// Ordering is a presentation contract: manager listings are grouped by owning
// user (owners ascending) with ticket ids ascending within each group;
// employee listings are ordered by ticket id ascending.
func (s *VisibilityService) List(ctx context.Context, session domain.SessionContext, input ports.ListTicketsInput) ([]domain.ReimbursementTicket, error) {
	if !policy.Authorize(policy.ListTickets, session) {
		return nil, domain.ErrUnauthorized
	}

	var filter ports.TicketFilter
	if input.Status != "" {
		if status, err := domain.ParseTicketStatus(input.Status); err == nil {
			filter.Status = &status
		} else {
			s.logger.Debug().Str("status", input.Status).Msg("unrecognised status filter ignored")
		}
	}

	if session.Role == domain.RoleManager {
		if input.Username != "" {
			owner, err := s.users.FindByUsername(ctx, input.Username)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return []domain.ReimbursementTicket{}, nil
				}
				return nil, storageErr("resolve username", err)
			}
			filter.OwnerID = &owner.ID
		}
	} else {
		// Employees are always scoped to themselves; the username filter is
		// ignored outright.
		ownerID := session.UserID
		filter.OwnerID = &ownerID
	}

	tickets, err := s.tickets.List(ctx, filter)
	if err != nil {
		return nil, storageErr("list tickets", err)
	}

	if session.Role == domain.RoleManager {
		sort.Slice(tickets, func(i, j int) bool {
			if tickets[i].OwnerID != tickets[j].OwnerID {
				return tickets[i].OwnerID < tickets[j].OwnerID
			}
			return tickets[i].ID < tickets[j].ID
		})
	} else {
		sort.Slice(tickets, func(i, j int) bool { return tickets[i].ID < tickets[j].ID })
	}

	if tickets == nil {
		tickets = []domain.ReimbursementTicket{}
	}
	return tickets, nil
}
