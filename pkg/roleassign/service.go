package roleassign

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tendant/simple-admin/pkg/identity"
	"golang.org/x/exp/slog"
)

var (
	// ErrRoleRemovalFailed means step two of the reconciliation (removing the
	// user's current roles) failed; the selected roles were never attempted.
	ErrRoleRemovalFailed = errors.New("cannot remove user existing roles")
	// ErrRoleAdditionFailed means the current roles were removed but adding
	// the selected roles failed; the user holds no roles until a retry succeeds.
	ErrRoleAdditionFailed = errors.New("cannot add selected roles to user")
)

// RoleSelection pairs a role with whether the user currently holds it
type RoleSelection struct {
	RoleID   uuid.UUID `json:"role_id"`
	RoleName string    `json:"role_name"`
	Selected bool      `json:"selected"`
}

// RoleAssignmentService manages a user's role memberships over an identity store
type RoleAssignmentService struct {
	store identity.Store
}

// NewRoleAssignmentService creates a new role assignment service
func NewRoleAssignmentService(store identity.Store) *RoleAssignmentService {
	return &RoleAssignmentService{
		store: store,
	}
}

// ListAllWithSelection returns every role known to the store with a flag for
// whether the user holds it. Ordering follows the store's role enumeration.
func (s *RoleAssignmentService) ListAllWithSelection(ctx context.Context, userID uuid.UUID) ([]RoleSelection, error) {
	_, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	roles, err := s.store.ListRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	selections := make([]RoleSelection, 0, len(roles))
	for _, role := range roles {
		selected, err := s.store.IsUserInRole(ctx, userID, role.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to check membership in %q: %w", role.Name, err)
		}
		selections = append(selections, RoleSelection{
			RoleID:   role.ID,
			RoleName: role.Name,
			Selected: selected,
		})
	}
	return selections, nil
}

// ReconcileRoles replaces the user's entire role set with the selected role
// names: read the current set, remove all of it, then add the selection. The
// steps run in that order with no rollback. If the removal fails the addition
// is never attempted and the user may keep part of the original set; if the
// addition fails the user is left with no roles until a retry succeeds. The
// store's per-call guarantees are the only transactional boundary here.
func (s *RoleAssignmentService) ReconcileRoles(ctx context.Context, userID uuid.UUID, selectedRoleNames []string) error {
	_, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}

	current, err := s.store.GetUserRoles(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to read current roles: %w", err)
	}

	if err := s.store.RemoveUserFromRoles(ctx, userID, current); err != nil {
		slog.Error("Failed removing existing roles", "userId", userID, "err", err)
		return fmt.Errorf("%w: %v", ErrRoleRemovalFailed, err)
	}

	if err := s.store.AddUserToRoles(ctx, userID, selectedRoleNames); err != nil {
		slog.Error("Failed adding selected roles", "userId", userID, "roles", selectedRoleNames, "err", err)
		return fmt.Errorf("%w: %v", ErrRoleAdditionFailed, err)
	}

	slog.Info("Reconciled roles", "userId", userID, "roles", selectedRoleNames)
	return nil
}
