package requisition

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/Suhanikhatrii/user-data-requisition/internal/domain"
)

// RequisitionSchema represents the requisitions table schema in PostgreSQL
type RequisitionSchema struct {
	bun.BaseModel `bun:"table:requisitions,alias:r"`

	ID          uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Title       *string   `bun:"title" json:"title,omitempty"`
	Description *string   `bun:"description" json:"description,omitempty"`

	RequisitionDate *string `bun:"requisition_date" json:"requisition_date,omitempty"`
	Basin           *string `bun:"basin" json:"basin,omitempty"`
	Block           *string `bun:"block" json:"block,omitempty"`
	Area            *string `bun:"area" json:"area,omitempty"`
	Dimension       *string `bun:"dimension" json:"dimension,omitempty"`
	ReturnDate      *string `bun:"return_date" json:"return_date,omitempty"`
	DataType        *string `bun:"data_type" json:"data_type,omitempty"`
	Objective       *string `bun:"objective" json:"objective,omitempty"`
	Remarks         *string `bun:"remarks" json:"remarks,omitempty"`

	RequesterName         *string `bun:"requester_name" json:"requester_name,omitempty"`
	RequesterDesignation  *string `bun:"requester_designation" json:"requester_designation,omitempty"`
	RequesterCPF          *string `bun:"requester_cpf" json:"requester_cpf,omitempty"`
	RequesterMobile       *string `bun:"requester_mobile" json:"requester_mobile,omitempty"`
	RequesterGroup        *string `bun:"requester_group" json:"requester_group,omitempty"`
	RequestedByUserID     *string `bun:"requested_by_user_id" json:"requested_by_user_id,omitempty"`
	RequestedByExternalID *string `bun:"requested_by_external_id" json:"requested_by_external_id,omitempty"`

	Status    string    `bun:"status,notnull" json:"status"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`

	DecidedByUserID     *string    `bun:"decided_by_user_id" json:"decided_by_user_id,omitempty"`
	DecidedByExternalID *string    `bun:"decided_by_external_id" json:"decided_by_external_id,omitempty"`
	DecidedByName       *string    `bun:"decided_by_name" json:"decided_by_name,omitempty"`
	DecisionAt          *time.Time `bun:"decision_at,nullzero" json:"decision_at,omitempty"`
}

// PostgresStore implements the Store interface with PostgreSQL storage
type PostgresStore struct {
	db *bun.DB
}

// NewPostgresStore creates a new requisition store instance
func NewPostgresStore(db *bun.DB) *PostgresStore {
	return &PostgresStore{
		db: db,
	}
}

// Insert persists a new requisition as a single statement
func (s *PostgresStore) Insert(ctx context.Context, req *Requisition) error {
	schema := requisitionToSchema(req)

	_, err := s.db.NewInsert().
		Model(&schema).
		Exec(ctx)
	if err != nil {
		return domain.NewStorageError("insert", "requisitions", err)
	}

	return nil
}

// GetByID retrieves a single requisition
func (s *PostgresStore) GetByID(ctx context.Context, id uuid.UUID) (*Requisition, error) {
	var schema RequisitionSchema
	err := s.db.NewSelect().
		Model(&schema).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("requisition", id.String())
		}
		return nil, domain.NewStorageError("select", "requisitions", err)
	}

	return schemaToRequisition(schema), nil
}

// List retrieves requisitions matching the filter, newest first. Ties on
// created_at break by id so the ordering is reproducible.
func (s *PostgresStore) List(ctx context.Context, filter Filter) ([]*Requisition, error) {
	query := s.db.NewSelect().Model((*RequisitionSchema)(nil))

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.RequestedByUserID != "" {
		query = query.Where("requested_by_user_id = ?", filter.RequestedByUserID)
	}
	if filter.Basin != "" {
		query = query.Where("basin ILIKE ?", "%"+filter.Basin+"%")
	}
	if filter.UserGroup != "" {
		query = query.Where("requester_group ILIKE ?", "%"+filter.UserGroup+"%")
	}

	query = query.Order("created_at DESC", "id DESC")

	var schemas []RequisitionSchema
	err := query.Scan(ctx, &schemas)
	if err != nil {
		return nil, domain.NewStorageError("select", "requisitions", err)
	}

	requisitions := make([]*Requisition, len(schemas))
	for i, schema := range schemas {
		requisitions[i] = schemaToRequisition(schema)
	}
	return requisitions, nil
}

// UpdateDecision records a decision in a single atomic statement. The update
// is unconditional on the prior status: a repeat decision overwrites the
// previous one, matching the source system.
func (s *PostgresStore) UpdateDecision(ctx context.Context, id uuid.UUID, status Status, decider Decider, decidedAt time.Time) error {
	result, err := s.db.NewUpdate().
		Model((*RequisitionSchema)(nil)).
		Where("id = ?", id).
		Set("status = ?", string(status)).
		Set("decided_by_user_id = ?", nullable(decider.UserID)).
		Set("decided_by_external_id = ?", nullable(decider.ExternalID)).
		Set("decided_by_name = ?", nullable(decider.Name)).
		Set("decision_at = ?", decidedAt).
		Exec(ctx)
	if err != nil {
		return domain.NewStorageError("update", "requisitions", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.NewStorageError("update", "requisitions", err)
	}
	if rowsAffected == 0 {
		return domain.NewNotFoundError("requisition", id.String())
	}

	return nil
}

// Helper conversion functions

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func requisitionToSchema(req *Requisition) RequisitionSchema {
	return RequisitionSchema{
		ID:          req.ID,
		Title:       nullable(req.Title),
		Description: nullable(req.Description),

		RequisitionDate: nullable(req.RequisitionDate),
		Basin:           nullable(req.Basin),
		Block:           nullable(req.Block),
		Area:            nullable(req.Area),
		Dimension:       nullable(req.Dimension),
		ReturnDate:      nullable(req.ReturnDate),
		DataType:        nullable(req.DataType),
		Objective:       nullable(req.Objective),
		Remarks:         nullable(req.Remarks),

		RequesterName:         nullable(req.RequesterName),
		RequesterDesignation:  nullable(req.RequesterDesignation),
		RequesterCPF:          nullable(req.RequesterCPF),
		RequesterMobile:       nullable(req.RequesterMobile),
		RequesterGroup:        nullable(req.RequesterGroup),
		RequestedByUserID:     nullable(req.RequestedByUserID),
		RequestedByExternalID: nullable(req.RequestedByExternalID),

		Status:    string(req.Status),
		CreatedAt: req.CreatedAt,

		DecidedByUserID:     req.DecidedByUserID,
		DecidedByExternalID: req.DecidedByExternalID,
		DecidedByName:       req.DecidedByName,
		DecisionAt:          req.DecisionAt,
	}
}

func schemaToRequisition(schema RequisitionSchema) *Requisition {
	return &Requisition{
		ID:          schema.ID,
		Title:       deref(schema.Title),
		Description: deref(schema.Description),

		RequisitionDate: deref(schema.RequisitionDate),
		Basin:           deref(schema.Basin),
		Block:           deref(schema.Block),
		Area:            deref(schema.Area),
		Dimension:       deref(schema.Dimension),
		ReturnDate:      deref(schema.ReturnDate),
		DataType:        deref(schema.DataType),
		Objective:       deref(schema.Objective),
		Remarks:         deref(schema.Remarks),

		RequesterName:         deref(schema.RequesterName),
		RequesterDesignation:  deref(schema.RequesterDesignation),
		RequesterCPF:          deref(schema.RequesterCPF),
		RequesterMobile:       deref(schema.RequesterMobile),
		RequesterGroup:        deref(schema.RequesterGroup),
		RequestedByUserID:     deref(schema.RequestedByUserID),
		RequestedByExternalID: deref(schema.RequestedByExternalID),

		Status:    Status(schema.Status),
		CreatedAt: schema.CreatedAt,

		DecidedByUserID:     schema.DecidedByUserID,
		DecidedByExternalID: schema.DecidedByExternalID,
		DecidedByName:       schema.DecidedByName,
		DecisionAt:          schema.DecisionAt,
	}
}
