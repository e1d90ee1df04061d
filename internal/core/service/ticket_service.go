package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/revature/reimbursement-system/internal/core/domain"
	"github.com/revature/reimbursement-system/internal/core/policy"
	"github.com/revature/reimbursement-system/internal/core/ports"
)

// TicketService owns ticket creation and the pending-to-decided transition.
type TicketService struct {
	tickets  ports.TicketRepository
	recorder ports.DecisionRecorder
	logger   zerolog.Logger
}

// NewTicketService returns a TicketService. recorder may be nil when no audit
// trail is wired (decisions are then only logged).
func NewTicketService(tickets ports.TicketRepository, recorder ports.DecisionRecorder, logger zerolog.Logger) *TicketService {
	return &TicketService{tickets: tickets, recorder: recorder, logger: logger}
}

// Submit validates and persists a new pending ticket owned by the caller.
// All input violations are reported together in one ValidationError.
func (s *TicketService) Submit(ctx context.Context, session domain.SessionContext, input ports.SubmitTicketInput) (*domain.ReimbursementTicket, error) {
	if !policy.Authorize(policy.SubmitTicket, session) {
		return nil, domain.ErrUnauthorized
	}

	var violations []string
	if input.Amount < 0 {
		violations = append(violations, fmt.Sprintf("amount %.2f must not be negative", input.Amount))
	}
	if strings.TrimSpace(input.Description) == "" {
		violations = append(violations, "description must not be empty or blank")
	}
	if len(violations) > 0 {
		return nil, &domain.ValidationError{Violations: violations}
	}

	ticket, err := s.tickets.Create(ctx, session.UserID, input.Amount, input.Description)
	if err != nil {
		s.logger.Error().Err(err).Int64("owner_id", session.UserID).Msg("failed to create ticket")
		return nil, storageErr("create ticket", err)
	}

	s.logger.Info().
		Int64("ticket_id", ticket.ID).
		Int64("owner_id", ticket.OwnerID).
		Float64("amount", ticket.Amount).
		Msg("ticket submitted")

	return ticket, nil
}

// Process applies a manager's decision to a pending ticket. The status check
// and write happen as one conditional update against the repository, so two
// concurrent decisions on the same ticket cannot both succeed.
func (s *TicketService) Process(ctx context.Context, session domain.SessionContext, input ports.ProcessTicketInput) (*domain.ReimbursementTicket, error) {
	if !policy.Authorize(policy.ProcessTicket, session) {
		return nil, domain.ErrUnauthorized
	}

	decision, err := domain.ParseDecision(input.Decision)
	if err != nil {
		return nil, err
	}

	ticket, err := s.tickets.FindByID(ctx, input.TicketID)
	if err != nil {
		if errors.Is(err, domain.ErrTicketNotFound) {
			return nil, err
		}
		return nil, storageErr("find ticket", err)
	}
	if ticket.Status.Decided() {
		return nil, domain.ErrTicketAlreadyDecided
	}

	updated, err := s.tickets.ConditionalSetStatus(ctx, ticket.ID, domain.StatusPending, decision.Status())
	if err != nil {
		return nil, storageErr("set ticket status", err)
	}
	if !updated {
		// Lost the race: another caller decided the ticket between the read
		// and the conditional write.
		return nil, domain.ErrTicketAlreadyDecided
	}
	ticket.Status = decision.Status()

	if s.recorder != nil {
		s.recorder.Record(domain.TicketEvent{
			TicketID:  ticket.ID,
			ManagerID: session.UserID,
			Decision:  decision,
			DecidedAt: time.Now().UTC(),
		})
	}

	s.logger.Info().
		Int64("ticket_id", ticket.ID).
		Int64("manager_id", session.UserID).
		Str("decision", string(decision)).
		Msg("ticket processed")

	return ticket, nil
}

// storageErr wraps a collaborator failure so callers can match it with
// errors.Is(err, domain.ErrStorageUnavailable).
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStorageUnavailable, op, err)
}
