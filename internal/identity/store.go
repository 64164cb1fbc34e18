package identity

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/Suhanikhatrii/user-data-requisition/internal/domain"
)

// UserSchema represents the users table schema in PostgreSQL
type UserSchema struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID             uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	ExternalID     string    `bun:"external_id,notnull,unique" json:"external_id"`
	Name           *string   `bun:"name" json:"name,omitempty"`
	Email          *string   `bun:"email,unique,nullzero" json:"email,omitempty"`
	CredentialHash string    `bun:"credential_hash,notnull" json:"-"`
	Role           string    `bun:"role,notnull" json:"role"`
	CreatedAt      time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	CreatedBy      *string   `bun:"created_by" json:"created_by,omitempty"`
}

// PostgresUserStore implements the UserStore interface
type PostgresUserStore struct {
	db *bun.DB
}

// NewPostgresUserStore creates a new user store instance
func NewPostgresUserStore(db *bun.DB) *PostgresUserStore {
	return &PostgresUserStore{
		db: db,
	}
}

// Insert persists a new user. Uniqueness of external_id (and email when set)
// is enforced by the store constraints.
func (s *PostgresUserStore) Insert(ctx context.Context, user *User) error {
	schema := userToSchema(user)

	_, err := s.db.NewInsert().
		Model(&schema).
		Exec(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return domain.NewConflictError("user", user.ExternalID, "user already exists")
		}
		return domain.NewStorageError("insert", "users", err)
	}

	return nil
}

// FindByID retrieves a user by its generated identifier
func (s *PostgresUserStore) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var schema UserSchema
	err := s.db.NewSelect().
		Model(&schema).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("user", id.String())
		}
		return nil, domain.NewStorageError("select", "users", err)
	}

	return schemaToUser(schema), nil
}

// FindByExternalID retrieves a user by its employee identifier
func (s *PostgresUserStore) FindByExternalID(ctx context.Context, externalID string) (*User, error) {
	var schema UserSchema
	err := s.db.NewSelect().
		Model(&schema).
		Where("external_id = ?", externalID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("user", externalID)
		}
		return nil, domain.NewStorageError("select", "users", err)
	}

	return schemaToUser(schema), nil
}

// FindByEmail retrieves a user by email
func (s *PostgresUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	var schema UserSchema
	err := s.db.NewSelect().
		Model(&schema).
		Where("email = ?", email).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("user", email)
		}
		return nil, domain.NewStorageError("select", "users", err)
	}

	return schemaToUser(schema), nil
}

// List retrieves all users ordered by creation time
func (s *PostgresUserStore) List(ctx context.Context) ([]*User, error) {
	var schemas []UserSchema
	err := s.db.NewSelect().
		Model(&schemas).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, domain.NewStorageError("select", "users", err)
	}

	users := make([]*User, len(schemas))
	for i, schema := range schemas {
		users[i] = schemaToUser(schema)
	}
	return users, nil
}

// UpdateCredential replaces a user's stored credential hash
func (s *PostgresUserStore) UpdateCredential(ctx context.Context, id uuid.UUID, newHash string) error {
	result, err := s.db.NewUpdate().
		Model((*UserSchema)(nil)).
		Where("id = ?", id).
		Set("credential_hash = ?", newHash).
		Exec(ctx)
	if err != nil {
		return domain.NewStorageError("update", "users", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.NewStorageError("update", "users", err)
	}
	if rowsAffected == 0 {
		return domain.NewNotFoundError("user", id.String())
	}

	return nil
}

// Helper conversion functions

func schemaToUser(schema UserSchema) *User {
	user := &User{
		ID:             schema.ID,
		ExternalID:     schema.ExternalID,
		CredentialHash: schema.CredentialHash,
		Role:           Role(schema.Role),
		CreatedAt:      schema.CreatedAt,
	}
	if schema.Name != nil {
		user.Name = *schema.Name
	}
	if schema.Email != nil {
		user.Email = *schema.Email
	}
	if schema.CreatedBy != nil {
		user.CreatedBy = *schema.CreatedBy
	}
	return user
}

func userToSchema(user *User) UserSchema {
	var name, email, createdBy *string
	if user.Name != "" {
		name = &user.Name
	}
	if user.Email != "" {
		email = &user.Email
	}
	if user.CreatedBy != "" {
		createdBy = &user.CreatedBy
	}

	return UserSchema{
		ID:             user.ID,
		ExternalID:     user.ExternalID,
		Name:           name,
		Email:          email,
		CredentialHash: user.CredentialHash,
		Role:           string(user.Role),
		CreatedAt:      user.CreatedAt,
		CreatedBy:      createdBy,
	}
}
