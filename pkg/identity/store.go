package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrRoleNotFound     = errors.New("role not found")
	ErrDuplicateEmail   = errors.New("email already in use")
	ErrStoreUnavailable = errors.New("identity store unavailable")
)

// Store defines the capability surface the admin services consume from the
// identity store. Password hashing is deliberately not part of this interface;
// callers hash credentials before handing them over (see pkg/password).
type Store interface {
	// User operations
	ListUsers(ctx context.Context) ([]User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (User, error)
	CreateUser(ctx context.Context, params CreateUserParams) (User, error)
	UpdateUser(ctx context.Context, params UpdateUserParams) (User, error)

	// Role operations. Membership is addressed by role name, matching the
	// way the presentation layer submits selections.
	ListRoles(ctx context.Context) ([]Role, error)
	GetUserRoles(ctx context.Context, userID uuid.UUID) ([]string, error)
	IsUserInRole(ctx context.Context, userID uuid.UUID, roleName string) (bool, error)
	RemoveUserFromRoles(ctx context.Context, userID uuid.UUID, roleNames []string) error
	AddUserToRoles(ctx context.Context, userID uuid.UUID, roleNames []string) error
}
