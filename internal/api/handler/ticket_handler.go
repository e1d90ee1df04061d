package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/revature/reimbursement-system/internal/api/metrics"
	appmw "github.com/revature/reimbursement-system/internal/api/middleware"
	"github.com/revature/reimbursement-system/internal/core/domain"
	"github.com/revature/reimbursement-system/internal/core/ports"
)

// TicketHandler handles ticket submission, processing, and listing.
type TicketHandler struct {
	tickets ports.TicketService
	lister  ports.TicketLister
}

func NewTicketHandler(tickets ports.TicketService, lister ports.TicketLister) *TicketHandler {
	return &TicketHandler{tickets: tickets, lister: lister}
}

type submitTicketRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type processTicketRequest struct {
	Decision string `json:"decision" validate:"required"`
}

type listTicketsResponse struct {
	Tickets []domain.ReimbursementTicket `json:"tickets"`
}

// Submit creates a new pending reimbursement ticket owned by the caller.
//
// @Summary      Submit a reimbursement ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submitTicketRequest  true  "Ticket details"
// @Success      201   {object}  domain.ReimbursementTicket
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /tickets [post]
func (h *TicketHandler) Submit(c echo.Context) error {
	var req submitTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	// Amount/description violations are aggregated by the service.
	ticket, err := h.tickets.Submit(c.Request().Context(), appmw.FromContext(c), ports.SubmitTicketInput{
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	metrics.TicketsSubmittedTotal.Inc()
	return c.JSON(http.StatusCreated, ticket)
}

// Process applies a manager's approve/deny decision to a pending ticket.
//
// @Summary      Process a pending ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Ticket id"
// @Param        body  body      processTicketRequest  true  "Decision: approve or deny"
// @Success      200   {object}  domain.ReimbursementTicket
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /tickets/{id}/process [post]
func (h *TicketHandler) Process(c echo.Context) error {
	ticketID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "ticket id must be an integer")
	}

	var req processTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ticket, err := h.tickets.Process(c.Request().Context(), appmw.FromContext(c), ports.ProcessTicketInput{
		TicketID: ticketID,
		Decision: req.Decision,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTicketAlreadyDecided) {
			metrics.TicketDecisionConflictsTotal.Inc()
		}
		return err
	}

	metrics.TicketsDecidedTotal.WithLabelValues(req.Decision).Inc()
	return c.JSON(http.StatusOK, ticket)
}

// List returns the tickets the caller is entitled to see.
//
// @Summary      List tickets
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "Filter by status (pending/approved/denied)"
// @Param        username  query     string  false  "Filter by owner username (managers only)"
// @Success      200       {object}  listTicketsResponse
// @Failure      401       {object}  map[string]string
// @Router       /tickets [get]
func (h *TicketHandler) List(c echo.Context) error {
	tickets, err := h.lister.List(c.Request().Context(), appmw.FromContext(c), ports.ListTicketsInput{
		Status:   c.QueryParam("status"),
		Username: c.QueryParam("username"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listTicketsResponse{Tickets: tickets})
}
