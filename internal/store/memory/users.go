package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"statement-ledger/internal/models"
	"statement-ledger/internal/store"

	"github.com/google/uuid"
)

// UserDirectory keeps users in a map keyed by id.
type UserDirectory struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewUserDirectory() *UserDirectory {
	return &UserDirectory{
		users: make(map[string]models.User),
	}
}

func (d *UserDirectory) Create(ctx context.Context, user *models.User) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, u := range d.users {
		if strings.EqualFold(u.Email, user.Email) {
			return nil, store.ErrDuplicateEmail
		}
	}

	created := *user
	if created.ID == "" {
		created.ID = uuid.NewString()
	} else if _, taken := d.users[created.ID]; taken {
		return nil, store.ErrDuplicateID
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now
	d.users[created.ID] = created

	return &created, nil
}

func (d *UserDirectory) FindByID(ctx context.Context, id string) (*models.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	u, ok := d.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (d *UserDirectory) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, u := range d.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

var _ store.UserDirectory = (*UserDirectory)(nil)
