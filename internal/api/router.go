package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/revature/reimbursement-system/internal/api/handler"
	"github.com/revature/reimbursement-system/internal/api/middleware"
	"github.com/revature/reimbursement-system/internal/core/ports"
)

// Dependencies carries everything the router needs, built by the composition
// root. Pingers is keyed by dependency name and may be empty (in-memory
// backend).
type Dependencies struct {
	Auth     ports.AuthService
	Tickets  ports.TicketService
	Lister   ports.TicketLister
	Roles    ports.RoleService
	Sessions ports.SessionStore
	Pingers  map[string]handler.DependencyPinger
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("reimbursement"))
	e.Use(middleware.Session(deps.Sessions))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	ticketHandler := handler.NewTicketHandler(deps.Tickets, deps.Lister)
	userHandler := handler.NewUserHandler(deps.Roles)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Pingers)

	// --- Auth routes ---
	e.POST("/account/register", authHandler.Register)
	e.POST("/account/login", authHandler.Login)
	e.POST("/account/logout", authHandler.Logout)

	// --- Ticket routes (role checks live in the core services) ---
	e.POST("/tickets", ticketHandler.Submit)
	e.POST("/tickets/:id/process", ticketHandler.Process)
	e.GET("/tickets", ticketHandler.List)

	// --- User directory routes ---
	e.GET("/users", userHandler.List)
	e.PUT("/users/:id/role", userHandler.ChangeRole)

	// --- Probes and metrics (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
