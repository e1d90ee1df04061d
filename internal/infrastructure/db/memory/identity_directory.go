// Package memory provides mutex-guarded in-memory implementations of the
// storage ports. It is the zero-dependency backend for local runs and tests;
// the composition root picks it over Mongo via configuration.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/revature/reimbursement-system/internal/core/domain"
)

// IdentityDirectory is an in-memory user store.
type IdentityDirectory struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]domain.User
	byName map[string]int64
}

func NewIdentityDirectory() *IdentityDirectory {
	return &IdentityDirectory{
		byID:   make(map[int64]domain.User),
		byName: make(map[string]int64),
	}
}

func (d *IdentityDirectory) FindByID(_ context.Context, id int64) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (d *IdentityDirectory) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id, ok := d.byName[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := d.byID[id]
	return &u, nil
}

func (d *IdentityDirectory) Create(_ context.Context, username, passwordHash string) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, taken := d.byName[username]; taken {
		return nil, domain.ErrUserExists
	}

	d.nextID++
	u := domain.User{
		ID:           d.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         domain.RoleEmployee,
	}
	d.byID[u.ID] = u
	d.byName[username] = u.ID
	return &u, nil
}

func (d *IdentityDirectory) SetRole(_ context.Context, id int64, role domain.Role) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	d.byID[id] = u
	return nil
}

func (d *IdentityDirectory) List(_ context.Context, roleFilter *domain.Role) ([]domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	users := make([]domain.User, 0, len(d.byID))
	for _, u := range d.byID {
		if roleFilter != nil && u.Role != *roleFilter {
			continue
		}
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}
