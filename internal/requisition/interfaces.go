package requisition

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store defines the interface for requisition storage operations
type Store interface {
	Insert(ctx context.Context, req *Requisition) error
	GetByID(ctx context.Context, id uuid.UUID) (*Requisition, error)
	List(ctx context.Context, filter Filter) ([]*Requisition, error)
	UpdateDecision(ctx context.Context, id uuid.UUID, status Status, decider Decider, decidedAt time.Time) error
}

// Service defines the requisition lifecycle and query operations
type Service interface {
	Submit(ctx context.Context, req *SubmitRequest) (*Requisition, error)
	Decide(ctx context.Context, id uuid.UUID, status Status, decider Decider) error
	Get(ctx context.Context, id uuid.UUID) (*Requisition, error)
	List(ctx context.Context, filter Filter) ([]*Requisition, error)
}
