package requisition

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Suhanikhatrii/user-data-requisition/internal/domain"
)

// Engine implements the Service interface. It governs the requisition
// lifecycle: creation into the pending state and the single decision gate
// that moves a record to a terminal status.
type Engine struct {
	store Store
}

// NewEngine creates a new lifecycle engine over the given store
func NewEngine(store Store) *Engine {
	return &Engine{
		store: store,
	}
}

// mandatoryFields maps the fields every submission must carry to their
// human-readable names used in validation messages
var mandatoryFields = []struct {
	field string
	label string
	value func(*SubmitRequest) string
}{
	{"basin", "Basin", func(r *SubmitRequest) string { return r.Basin }},
	{"requesterCpf", "Requester CPF", func(r *SubmitRequest) string { return r.RequesterCPF }},
	{"requesterMobile", "Requester mobile", func(r *SubmitRequest) string { return r.RequesterMobile }},
	{"requesterGroup", "Requester group", func(r *SubmitRequest) string { return r.RequesterGroup }},
}

// Submit validates the request, assigns an identifier, computes title and
// description defaults, and persists the record in the pending state.
func (e *Engine) Submit(ctx context.Context, req *SubmitRequest) (*Requisition, error) {
	for _, mf := range mandatoryFields {
		if mf.value(req) == "" {
			return nil, domain.NewValidationError(mf.field, mf.label+" is missing")
		}
	}

	title := req.Title
	if title == "" {
		area := req.Area
		if area == "" {
			area = "N/A"
		}
		title = fmt.Sprintf("Requisition for %s - %s", req.Basin, area)
	}

	description := req.Description
	if description == "" {
		description = req.Objective
	}

	requisition := &Requisition{
		ID:          uuid.New(),
		Title:       title,
		Description: description,

		RequisitionDate: req.RequisitionDate,
		Basin:           req.Basin,
		Block:           req.Block,
		Area:            req.Area,
		Dimension:       req.Dimension,
		ReturnDate:      req.ReturnDate,
		DataType:        req.DataType,
		Objective:       req.Objective,
		Remarks:         req.Remarks,

		RequesterName:         req.RequesterName,
		RequesterDesignation:  req.RequesterDesignation,
		RequesterCPF:          req.RequesterCPF,
		RequesterMobile:       req.RequesterMobile,
		RequesterGroup:        req.RequesterGroup,
		RequestedByUserID:     req.RequestedByUserID,
		RequestedByExternalID: req.RequestedByExternalID,

		Status:    StatusPendingLevel2,
		CreatedAt: time.Now(),
	}

	if err := e.store.Insert(ctx, requisition); err != nil {
		return nil, err
	}

	return requisition, nil
}

// Decide records a decision on a requisition. The transition is intentionally
// unconditional on the prior status: deciding an already-decided record
// overwrites the earlier decision, preserving the source system's behavior.
// The caller is responsible for having authorized the decider.
func (e *Engine) Decide(ctx context.Context, id uuid.UUID, status Status, decider Decider) error {
	if status == "" {
		return domain.NewValidationError("status", "New status is required")
	}

	return e.store.UpdateDecision(ctx, id, status, decider, time.Now())
}

// Get retrieves a single requisition
func (e *Engine) Get(ctx context.Context, id uuid.UUID) (*Requisition, error) {
	return e.store.GetByID(ctx, id)
}

// List returns the requisitions matching the filter, newest first
func (e *Engine) List(ctx context.Context, filter Filter) ([]*Requisition, error) {
	return e.store.List(ctx, filter)
}
