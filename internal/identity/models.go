package identity

import (
	"time"

	"github.com/google/uuid"
)

// Role classifies what a user may do in the approval flow
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleApprover  Role = "approver"
	RoleRequester Role = "requester"
)

// User represents an account in the system. ExternalID is the human-entered
// credential identifier (an employee number) and is unique across all users.
type User struct {
	ID             uuid.UUID `json:"id"`
	ExternalID     string    `json:"externalId"`
	Name           string    `json:"name,omitempty"`
	Email          string    `json:"email,omitempty"`
	CredentialHash string    `json:"-"`
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy,omitempty"`
}

// UserSummary is the credential-free view of a user returned by read operations
type UserSummary struct {
	ID         uuid.UUID `json:"id"`
	ExternalID string    `json:"externalId"`
	Name       string    `json:"name,omitempty"`
	Email      string    `json:"email,omitempty"`
	Role       Role      `json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
	CreatedBy  string    `json:"createdBy,omitempty"`
}

// CreateUserRequest represents the request to register a user
type CreateUserRequest struct {
	Name       string `json:"name"`
	ExternalID string `json:"externalId"`
	Email      string `json:"email,omitempty"`
	Password   string `json:"password"`
	Role       Role   `json:"role"`
	CreatedBy  string `json:"createdBy,omitempty"`
}

// AuthenticateRequest carries login credentials
type AuthenticateRequest struct {
	ExternalID string `json:"externalId"`
	Password   string `json:"password"`
}

// ChangePasswordRequest carries a password-change attempt for a user
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Summary converts a full user record to its credential-free view
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:         u.ID,
		ExternalID: u.ExternalID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		CreatedAt:  u.CreatedAt,
		CreatedBy:  u.CreatedBy,
	}
}
