package roleassign

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-admin/pkg/identity"
)

func seedStore(t *testing.T, roleNames ...string) (*identity.InMemoryStore, uuid.UUID) {
	t.Helper()
	store := identity.NewInMemoryStore()
	for _, name := range roleNames {
		store.SeedRole(identity.Role{ID: uuid.New(), Name: name})
	}

	userID := uuid.New()
	store.SeedUser(identity.User{
		ID:        userID,
		Email:     "user@example.com",
		FirstName: "Test",
		LastName:  "User",
	})
	return store, userID
}

func TestListAllWithSelection(t *testing.T) {
	ctx := context.Background()
	store, userID := seedStore(t, "Admin", "Editor", "Viewer")
	service := NewRoleAssignmentService(store)

	err := store.AddUserToRoles(ctx, userID, []string{"Editor"})
	require.NoError(t, err)

	t.Run("existing user", func(t *testing.T) {
		selections, err := service.ListAllWithSelection(ctx, userID)
		require.NoError(t, err)
		require.Len(t, selections, 3)

		byName := make(map[string]bool, len(selections))
		for _, sel := range selections {
			byName[sel.RoleName] = sel.Selected
		}
		assert.False(t, byName["Admin"])
		assert.True(t, byName["Editor"])
		assert.False(t, byName["Viewer"])
	})

	t.Run("non-existent user", func(t *testing.T) {
		_, err := service.ListAllWithSelection(ctx, uuid.New())
		assert.ErrorIs(t, err, identity.ErrUserNotFound)
	})
}

func TestReconcileRoles(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces entire role set", func(t *testing.T) {
		store, userID := seedStore(t, "Admin", "Editor", "Viewer")
		service := NewRoleAssignmentService(store)

		err := store.AddUserToRoles(ctx, userID, []string{"Admin"})
		require.NoError(t, err)

		err = service.ReconcileRoles(ctx, userID, []string{"Editor", "Viewer"})
		require.NoError(t, err)

		roles, err := store.GetUserRoles(ctx, userID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Editor", "Viewer"}, roles)

		inAdmin, err := store.IsUserInRole(ctx, userID, "Admin")
		require.NoError(t, err)
		assert.False(t, inAdmin)
	})

	t.Run("idempotent for repeated identical selection", func(t *testing.T) {
		store, userID := seedStore(t, "Admin", "Editor", "Viewer")
		service := NewRoleAssignmentService(store)

		selection := []string{"Editor", "Viewer"}
		err := service.ReconcileRoles(ctx, userID, selection)
		require.NoError(t, err)
		err = service.ReconcileRoles(ctx, userID, selection)
		require.NoError(t, err)

		roles, err := store.GetUserRoles(ctx, userID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Editor", "Viewer"}, roles)
	})

	t.Run("empty selection clears roles", func(t *testing.T) {
		store, userID := seedStore(t, "Admin")
		service := NewRoleAssignmentService(store)

		err := store.AddUserToRoles(ctx, userID, []string{"Admin"})
		require.NoError(t, err)

		err = service.ReconcileRoles(ctx, userID, nil)
		require.NoError(t, err)

		roles, err := store.GetUserRoles(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, roles)
	})

	t.Run("non-existent user", func(t *testing.T) {
		store, _ := seedStore(t, "Admin")
		service := NewRoleAssignmentService(store)

		err := service.ReconcileRoles(ctx, uuid.New(), []string{"Admin"})
		assert.ErrorIs(t, err, identity.ErrUserNotFound)
	})

	t.Run("unknown selected role", func(t *testing.T) {
		store, userID := seedStore(t, "Admin")
		service := NewRoleAssignmentService(store)

		err := service.ReconcileRoles(ctx, userID, []string{"NoSuchRole"})
		assert.ErrorIs(t, err, ErrRoleAdditionFailed)
	})
}

// failingStore wraps the in-memory store and forces failures on the
// membership mutation calls to exercise the reconciliation failure window.
type failingStore struct {
	*identity.InMemoryStore
	failRemove bool
	failAdd    bool
	addCalls   int
}

var errStorageBroken = errors.New("storage broken")

func (f *failingStore) RemoveUserFromRoles(ctx context.Context, userID uuid.UUID, roleNames []string) error {
	if f.failRemove {
		return errStorageBroken
	}
	return f.InMemoryStore.RemoveUserFromRoles(ctx, userID, roleNames)
}

func (f *failingStore) AddUserToRoles(ctx context.Context, userID uuid.UUID, roleNames []string) error {
	f.addCalls++
	if f.failAdd {
		return errStorageBroken
	}
	return f.InMemoryStore.AddUserToRoles(ctx, userID, roleNames)
}

func TestReconcileRolesRemovalFailure(t *testing.T) {
	ctx := context.Background()
	store, userID := seedStore(t, "Admin", "Editor")

	err := store.AddUserToRoles(ctx, userID, []string{"Admin"})
	require.NoError(t, err)

	failing := &failingStore{InMemoryStore: store, failRemove: true}
	service := NewRoleAssignmentService(failing)

	err = service.ReconcileRoles(ctx, userID, []string{"Editor"})
	assert.ErrorIs(t, err, ErrRoleRemovalFailed)

	// The addition step is never attempted and the original set survives
	assert.Equal(t, 0, failing.addCalls)
	roles, err := store.GetUserRoles(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Admin"}, roles)
}

func TestReconcileRolesAdditionFailure(t *testing.T) {
	ctx := context.Background()
	store, userID := seedStore(t, "Admin", "Editor")

	err := store.AddUserToRoles(ctx, userID, []string{"Admin"})
	require.NoError(t, err)

	failing := &failingStore{InMemoryStore: store, failAdd: true}
	service := NewRoleAssignmentService(failing)

	err = service.ReconcileRoles(ctx, userID, []string{"Editor"})
	assert.ErrorIs(t, err, ErrRoleAdditionFailed)

	// The removal already happened; the user holds no roles until a retry
	roles, err := store.GetUserRoles(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, roles)
}
