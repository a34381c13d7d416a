// Package identity provides the pluggable identity store that backs the
// simple-admin services.
//
// The store is the system of record for users, roles, and role membership.
// The admin services (pkg/directory, pkg/roleassign) hold no state of their
// own; they consume the Store interface and project its data per request.
//
// # Implementations
//
// Two implementations ship with the module:
//   - PostgresStore, backed by a pgx connection pool and the schema in
//     migrations/admin_db.sql
//   - InMemoryStore, for development and tests, with Seed helpers
//
// # Basic Usage
//
//	pool, _ := pgxpool.New(ctx, databaseURL)
//	store := identity.NewPostgresStore(pool)
//
//	users, err := store.ListUsers(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Or pick an implementation by configuration:
//
//	store, err := identity.NewStore("postgres", identity.StoreConfig{Pool: pool})
//
// # Errors
//
// Domain conditions surface as sentinel errors (ErrUserNotFound,
// ErrRoleNotFound, ErrDuplicateEmail). Infrastructure failures are wrapped
// with ErrStoreUnavailable so callers can report a generic outage instead of
// a field-level problem.
package identity
