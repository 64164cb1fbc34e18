package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserStore defines the interface for user storage operations
type UserStore interface {
	Insert(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByExternalID(ctx context.Context, externalID string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	UpdateCredential(ctx context.Context, id uuid.UUID, newHash string) error
}

// UserService defines the interface for identity operations
type UserService interface {
	Authenticate(ctx context.Context, req *AuthenticateRequest) (*UserSummary, error)
	CreateUser(ctx context.Context, req *CreateUserRequest) (uuid.UUID, error)
	ListUsers(ctx context.Context) ([]*UserSummary, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req *ChangePasswordRequest) error
}
