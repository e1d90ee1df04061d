package domain

import (
	"fmt"
	"strings"
)

// Role determines which actions a session may perform.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

// ParseRole converts a string to a Role, case-insensitively.
// Anything outside the closed {employee, manager} set is rejected.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleEmployee):
		return RoleEmployee, nil
	case string(RoleManager):
		return RoleManager, nil
	default:
		return "", fmt.Errorf("%w: %q is not a role", ErrInvalidInput, s)
	}
}

// User models a registered account. Role is the only field that changes after
// registration; new accounts always start as employees.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}
