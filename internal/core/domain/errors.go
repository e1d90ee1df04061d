package domain

import (
	"errors"
	"strings"
)

var (
	// ErrUnauthorized means the caller's session does not permit the action.
	// It carries no further detail on purpose.
	ErrUnauthorized = errors.New("not permitted")

	// ErrInvalidInput marks malformed or missing parameters.
	ErrInvalidInput = errors.New("invalid input")

	ErrTicketNotFound       = errors.New("ticket not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrTicketAlreadyDecided = errors.New("ticket already decided")
	ErrUserExists           = errors.New("username already taken")
	ErrInvalidCredentials   = errors.New("invalid credentials")

	// ErrStorageUnavailable wraps a failed collaborator call. The core never
	// retries; the caller decides.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ValidationError aggregates every input violation found in a single call, so
// a caller sees all problems at once instead of fixing them one by one.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + strings.Join(e.Violations, "; ")
}

// Is makes errors.Is(err, ErrInvalidInput) hold for aggregated violations.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
