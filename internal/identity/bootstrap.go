package identity

import (
	"context"

	"github.com/Suhanikhatrii/user-data-requisition/internal/domain"
)

// EnsureDefaultAdmin creates the bootstrap administrator account when no user
// with the configured external ID exists yet. Safe to call on every startup.
func EnsureDefaultAdmin(ctx context.Context, svc UserService, externalID, password, name string) (bool, error) {
	_, err := svc.CreateUser(ctx, &CreateUserRequest{
		Name:       name,
		ExternalID: externalID,
		Password:   password,
		Role:       RoleAdmin,
		CreatedBy:  "system",
	})
	if err != nil {
		if domain.IsConflict(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
