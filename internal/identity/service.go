package identity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Suhanikhatrii/user-data-requisition/internal/domain"
	"github.com/Suhanikhatrii/user-data-requisition/internal/secrets"
)

const minPasswordLength = 6

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	store UserStore
}

// NewUserService creates a new identity service instance
func NewUserService(store UserStore) *UserServiceImpl {
	return &UserServiceImpl{
		store: store,
	}
}

// Authenticate verifies credentials and returns the matching user's summary.
// Unknown users and bad passwords are indistinguishable to the caller.
func (s *UserServiceImpl) Authenticate(ctx context.Context, req *AuthenticateRequest) (*UserSummary, error) {
	if req.ExternalID == "" || req.Password == "" {
		return nil, domain.NewValidationError("externalId", "External ID and password are required")
	}

	user, err := s.store.FindByExternalID(ctx, req.ExternalID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewAuthError("Invalid external ID or password")
		}
		return nil, err
	}

	if !secrets.Verify(req.Password, user.CredentialHash) {
		return nil, domain.NewAuthError("Invalid external ID or password")
	}

	return user.Summary(), nil
}

// CreateUser registers a new user and returns the generated identifier
func (s *UserServiceImpl) CreateUser(ctx context.Context, req *CreateUserRequest) (uuid.UUID, error) {
	if req.Name == "" {
		return uuid.Nil, domain.NewValidationError("name", "Name is required")
	}
	if req.ExternalID == "" {
		return uuid.Nil, domain.NewValidationError("externalId", "External ID is required")
	}
	if req.Password == "" {
		return uuid.Nil, domain.NewValidationError("password", "Password is required")
	}
	if req.Role == "" {
		return uuid.Nil, domain.NewValidationError("role", "Role is required")
	}
	if len(req.Password) < minPasswordLength {
		return uuid.Nil, domain.NewValidationError("password", "Password must be at least 6 characters long")
	}

	if _, err := s.store.FindByExternalID(ctx, req.ExternalID); err == nil {
		return uuid.Nil, domain.NewConflictError("user", req.ExternalID, "user with this external ID already exists")
	} else if !domain.IsNotFound(err) {
		return uuid.Nil, err
	}

	// Email is optional, only check uniqueness when supplied
	if req.Email != "" {
		if _, err := s.store.FindByEmail(ctx, req.Email); err == nil {
			return uuid.Nil, domain.NewConflictError("user", req.Email, "user with this email already exists")
		} else if !domain.IsNotFound(err) {
			return uuid.Nil, err
		}
	}

	hash, err := secrets.Hash(req.Password)
	if err != nil {
		return uuid.Nil, err
	}

	createdBy := req.CreatedBy
	if createdBy == "" {
		createdBy = "unknown"
	}

	user := &User{
		ID:             uuid.New(),
		ExternalID:     req.ExternalID,
		Name:           req.Name,
		Email:          req.Email,
		CredentialHash: hash,
		Role:           req.Role,
		CreatedAt:      time.Now(),
		CreatedBy:      createdBy,
	}

	if err := s.store.Insert(ctx, user); err != nil {
		return uuid.Nil, err
	}

	return user.ID, nil
}

// ListUsers returns all users without credential material
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]*UserSummary, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]*UserSummary, len(users))
	for i, user := range users {
		summaries[i] = user.Summary()
	}
	return summaries, nil
}

// ChangePassword verifies the current password and stores a new credential hash
func (s *UserServiceImpl) ChangePassword(ctx context.Context, userID uuid.UUID, req *ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return domain.NewValidationError("currentPassword", "Current and new passwords are required")
	}
	if len(req.NewPassword) < minPasswordLength {
		return domain.NewValidationError("newPassword", "New password must be at least 6 characters long")
	}

	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !secrets.Verify(req.CurrentPassword, user.CredentialHash) {
		return domain.NewAuthError("Incorrect current password")
	}

	// Reject a new password identical to the current one, checked against the
	// stored hash rather than string equality
	if secrets.Verify(req.NewPassword, user.CredentialHash) {
		return domain.NewValidationError("newPassword", "New password cannot be the same as current password")
	}

	newHash, err := secrets.Hash(req.NewPassword)
	if err != nil {
		return err
	}

	return s.store.UpdateCredential(ctx, userID, newHash)
}
