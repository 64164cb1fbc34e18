package requisition

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Suhanikhatrii/user-data-requisition/internal/domain"
)

// MemoryStore implements Store with an in-process map. Filter and ordering
// semantics match the PostgreSQL store (case-insensitive substring matches,
// created_at DESC with id tiebreak), so it can stand in for it in tests.
type MemoryStore struct {
	mu           sync.RWMutex
	requisitions map[uuid.UUID]*Requisition
}

// NewMemoryStore creates an empty in-memory requisition store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		requisitions: make(map[uuid.UUID]*Requisition),
	}
}

func (s *MemoryStore) Insert(ctx context.Context, req *Requisition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *req
	s.requisitions[req.ID] = &clone
	return nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id uuid.UUID) (*Requisition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, ok := s.requisitions[id]
	if !ok {
		return nil, domain.NewNotFoundError("requisition", id.String())
	}
	clone := *req
	return &clone, nil
}

func (s *MemoryStore) List(ctx context.Context, filter Filter) ([]*Requisition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]*Requisition, 0)
	for _, req := range s.requisitions {
		if filter.Status != "" && string(req.Status) != filter.Status {
			continue
		}
		if filter.RequestedByUserID != "" && req.RequestedByUserID != filter.RequestedByUserID {
			continue
		}
		if filter.Basin != "" && !containsFold(req.Basin, filter.Basin) {
			continue
		}
		if filter.UserGroup != "" && !containsFold(req.RequesterGroup, filter.UserGroup) {
			continue
		}
		clone := *req
		matches = append(matches, &clone)
	}

	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].CreatedAt.After(matches[j].CreatedAt)
		}
		return matches[i].ID.String() > matches[j].ID.String()
	})

	return matches, nil
}

func (s *MemoryStore) UpdateDecision(ctx context.Context, id uuid.UUID, status Status, decider Decider, decidedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requisitions[id]
	if !ok {
		return domain.NewNotFoundError("requisition", id.String())
	}

	req.Status = status
	req.DecidedByUserID = nullable(decider.UserID)
	req.DecidedByExternalID = nullable(decider.ExternalID)
	req.DecidedByName = nullable(decider.Name)
	at := decidedAt
	req.DecisionAt = &at
	return nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
