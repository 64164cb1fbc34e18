package identity

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Suhanikhatrii/user-data-requisition/internal/domain"
)

// MemoryUserStore implements UserStore with an in-process map. It mirrors the
// PostgreSQL store's semantics (uniqueness, not-found signaling) and backs the
// service tests without a database.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*User
}

// NewMemoryUserStore creates an empty in-memory user store
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users: make(map[uuid.UUID]*User),
	}
}

func (s *MemoryUserStore) Insert(ctx context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.ExternalID == user.ExternalID {
			return domain.NewConflictError("user", user.ExternalID, "user already exists")
		}
		if user.Email != "" && existing.Email == user.Email {
			return domain.NewConflictError("user", user.Email, "user already exists")
		}
	}

	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *MemoryUserStore) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("user", id.String())
	}
	clone := *user
	return &clone, nil
}

func (s *MemoryUserStore) FindByExternalID(ctx context.Context, externalID string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.ExternalID == externalID {
			clone := *user
			return &clone, nil
		}
	}
	return nil, domain.NewNotFoundError("user", externalID)
}

func (s *MemoryUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email != "" && user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, domain.NewNotFoundError("user", email)
}

func (s *MemoryUserStore) List(ctx context.Context) ([]*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*User, 0, len(s.users))
	for _, user := range s.users {
		clone := *user
		users = append(users, &clone)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (s *MemoryUserStore) UpdateCredential(ctx context.Context, id uuid.UUID, newHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return domain.NewNotFoundError("user", id.String())
	}
	user.CredentialHash = newHash
	return nil
}
