// Package policy is the access decision table: a pure function from
// (action, session) to allow/deny. It never consults storage, so every
// service can check it before touching state.
package policy

import "github.com/revature/reimbursement-system/internal/core/domain"

// Action names an operation guarded by the policy.
type Action string

const (
	SubmitTicket  Action = "submit_ticket"
	ProcessTicket Action = "process_ticket"
	ChangeRole    Action = "change_role"
	ListTickets   Action = "list_tickets"
	ListUsers     Action = "list_users"
)

// Authorize reports whether the session may perform the action. Denial carries
// no detail beyond false.
func Authorize(action Action, session domain.SessionContext) bool {
	if !session.Authenticated() {
		return false
	}

	switch action {
	case SubmitTicket:
		return session.Role == domain.RoleEmployee
	case ProcessTicket, ChangeRole, ListUsers:
		return session.Role == domain.RoleManager
	case ListTickets:
		return session.Role == domain.RoleEmployee || session.Role == domain.RoleManager
	default:
		return false
	}
}
