// Package main runs the admin service without a database using the in-memory
// identity store. Useful for:
// - Quick development and testing
// - Demo/prototype environments
// - Learning the API without database setup
//
// Note: All data is lost when the server stops. For production, use cmd/admin
// with PostgreSQL.
package main

import (
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/tendant/chi-demo/app"
	"github.com/tendant/simple-admin/pkg/directory"
	directoryapi "github.com/tendant/simple-admin/pkg/directory/api"
	"github.com/tendant/simple-admin/pkg/identity"
	"github.com/tendant/simple-admin/pkg/password"
	"github.com/tendant/simple-admin/pkg/roleassign"
	roleassignapi "github.com/tendant/simple-admin/pkg/roleassign/api"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("Starting in-memory admin service (no database required)")

	store := identity.NewInMemoryStore()
	seedInitialData(store)

	hasher := password.NewBcryptHasher()
	directoryService := directory.NewDirectoryService(store, hasher)
	roleAssignService := roleassign.NewRoleAssignmentService(store)

	myApp := app.Default()
	myApp.R.Mount("/api/admin/users", directoryapi.Handler(directoryapi.NewHandle(directoryService)))
	myApp.R.Mount("/api/admin/memberships", roleassignapi.Handler(roleassignapi.NewHandle(roleAssignService)))

	slog.Info("API endpoints:")
	slog.Info("  GET  /api/admin/users              - List users with roles")
	slog.Info("  POST /api/admin/users              - Create user")
	slog.Info("  GET  /api/admin/users/edit?id=     - Edit projection (blank template without id)")
	slog.Info("  PUT  /api/admin/users/{id}         - Update user")
	slog.Info("  GET  /api/admin/memberships/{id}   - Roles with selection flags")
	slog.Info("  PUT  /api/admin/memberships/{id}   - Reconcile role set")

	myApp.Run()
}

func seedInitialData(store *identity.InMemoryStore) {
	slog.Info("Seeding initial data...")

	for _, name := range []string{"Admin", "Editor", "Viewer"} {
		store.SeedRole(identity.Role{ID: uuid.New(), Name: name})
	}

	hasher := password.NewBcryptHasher()
	hash, _ := hasher.Hash("password123")

	adminID := uuid.New()
	store.SeedUser(identity.User{
		ID:           adminID,
		Email:        "admin@example.com",
		FirstName:    "Admin",
		LastName:     "User",
		PasswordHash: hash,
	})
	if err := store.AddUserToRoles(nil, adminID, []string{"Admin"}); err != nil {
		slog.Error("Failed seeding admin role", "err", err)
	}

	slog.Info("Created admin user", "id", adminID, "email", "admin@example.com")
}
