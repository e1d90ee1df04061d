package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/revature/reimbursement-system/internal/core/domain"
)

type stubSessionStore struct {
	mu       sync.Mutex
	nextID   int
	sessions map[string]domain.SessionContext

	establishErr  error
	updateRoleErr error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]domain.SessionContext)}
}

func (s *stubSessionStore) Establish(_ context.Context, userID int64, username string, role domain.Role) (string, error) {
	if s.establishErr != nil {
		return "", s.establishErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	token := fmt.Sprintf("token-%d", s.nextID)
	s.sessions[token] = domain.SessionContext{Token: token, UserID: userID, Username: username, Role: role}
	return token, nil
}

func (s *stubSessionStore) Current(_ context.Context, token string) (domain.SessionContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[token], nil
}

func (s *stubSessionStore) Invalidate(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *stubSessionStore) UpdateRole(_ context.Context, token string, role domain.Role) error {
	if s.updateRoleErr != nil {
		return s.updateRoleErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return nil
	}
	sess.Role = role
	s.sessions[token] = sess
	return nil
}

func (s *stubSessionStore) roleOf(token string) domain.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[token].Role
}

func TestRoleService_ChangeRole_Promote(t *testing.T) {
	users := newStubIdentityDirectory()
	users.seed(domain.User{ID: 1, Username: "alice", Role: domain.RoleManager})
	users.seed(domain.User{ID: 2, Username: "bob", Role: domain.RoleEmployee})
	svc := NewRoleService(users, newStubSessionStore(), discardLogger)

	user, err := svc.ChangeRole(context.Background(), managerSession, 2, "manager")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != domain.RoleManager {
		t.Errorf("returned role = %q, want %q", user.Role, domain.RoleManager)
	}
	if users.byID[2].Role != domain.RoleManager {
		t.Error("role change must be persisted")
	}
}

func TestRoleService_ChangeRole_CaseInsensitiveRole(t *testing.T) {
	users := newStubIdentityDirectory()
	users.seed(domain.User{ID: 2, Username: "bob", Role: domain.RoleEmployee})
	svc := NewRoleService(users, newStubSessionStore(), discardLogger)

	if _, err := svc.ChangeRole(context.Background(), managerSession, 2, "Manager"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if users.byID[2].Role != domain.RoleManager {
		t.Error("role change must be persisted")
	}
}

func TestRoleService_ChangeRole_EmployeeForbidden(t *testing.T) {
	users := newStubIdentityDirectory()
	users.seed(domain.User{ID: 2, Username: "bob", Role: domain.RoleEmployee})
	svc := NewRoleService(users, newStubSessionStore(), discardLogger)

	_, err := svc.ChangeRole(context.Background(), employeeSession, 2, "manager")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("got %v, want ErrUnauthorized", err)
	}
	if users.byID[2].Role != domain.RoleEmployee {
		t.Error("forbidden change must leave the role untouched")
	}
}

func TestRoleService_ChangeRole_InvalidRole(t *testing.T) {
	users := newStubIdentityDirectory()
	users.seed(domain.User{ID: 2, Username: "bob", Role: domain.RoleEmployee})
	svc := NewRoleService(users, newStubSessionStore(), discardLogger)

	_, err := svc.ChangeRole(context.Background(), managerSession, 2, "supervisor")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
}

func TestRoleService_ChangeRole_UnknownUser(t *testing.T) {
	svc := NewRoleService(newStubIdentityDirectory(), newStubSessionStore(), discardLogger)

	_, err := svc.ChangeRole(context.Background(), managerSession, 99, "manager")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("got %v, want ErrUserNotFound", err)
	}
}

// A manager demoting themselves keeps working with the demoted role for the
// rest of the session: the live session is refreshed in place.
func TestRoleService_ChangeRole_SelfDemotionRefreshesSession(t *testing.T) {
	users := newStubIdentityDirectory()
	users.seed(domain.User{ID: 1, Username: "alice", Role: domain.RoleManager})
	sessions := newStubSessionStore()
	token, err := sessions.Establish(context.Background(), 1, "alice", domain.RoleManager)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	svc := NewRoleService(users, sessions, discardLogger)

	self := domain.SessionContext{Token: token, UserID: 1, Username: "alice", Role: domain.RoleManager}
	user, err := svc.ChangeRole(context.Background(), self, 1, "employee")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != domain.RoleEmployee {
		t.Errorf("returned role = %q, want %q", user.Role, domain.RoleEmployee)
	}
	if got := sessions.roleOf(token); got != domain.RoleEmployee {
		t.Errorf("session role = %q, want %q", got, domain.RoleEmployee)
	}
}

// A failed session refresh must not roll back the durable role change.
func TestRoleService_ChangeRole_SessionRefreshFailureIsNonFatal(t *testing.T) {
	users := newStubIdentityDirectory()
	users.seed(domain.User{ID: 1, Username: "alice", Role: domain.RoleManager})
	sessions := newStubSessionStore()
	sessions.updateRoleErr = errors.New("redis unavailable")
	svc := NewRoleService(users, sessions, discardLogger)

	self := domain.SessionContext{Token: "tok-m", UserID: 1, Username: "alice", Role: domain.RoleManager}
	if _, err := svc.ChangeRole(context.Background(), self, 1, "employee"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if users.byID[1].Role != domain.RoleEmployee {
		t.Error("durable role change must survive a session refresh failure")
	}
}

func TestRoleService_ListUsers(t *testing.T) {
	users := newStubIdentityDirectory()
	users.seed(domain.User{ID: 1, Username: "alice", Role: domain.RoleManager})
	users.seed(domain.User{ID: 2, Username: "bob", Role: domain.RoleEmployee})
	users.seed(domain.User{ID: 3, Username: "carol", Role: domain.RoleEmployee})
	svc := NewRoleService(users, newStubSessionStore(), discardLogger)

	all, err := svc.ListUsers(context.Background(), managerSession, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 || all[0].ID != 1 || all[2].ID != 3 {
		t.Errorf("unexpected listing: %+v", all)
	}

	employees, err := svc.ListUsers(context.Background(), managerSession, "employee")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(employees) != 2 {
		t.Errorf("expected 2 employees, got %d", len(employees))
	}
}

func TestRoleService_ListUsers_EmployeeForbidden(t *testing.T) {
	svc := NewRoleService(newStubIdentityDirectory(), newStubSessionStore(), discardLogger)

	_, err := svc.ListUsers(context.Background(), employeeSession, "")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("got %v, want ErrUnauthorized", err)
	}
}

func TestRoleService_ListUsers_InvalidRoleFilter(t *testing.T) {
	svc := NewRoleService(newStubIdentityDirectory(), newStubSessionStore(), discardLogger)

	_, err := svc.ListUsers(context.Background(), managerSession, "intern")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
}
