// Package directory provides the User Directory Service: listing, creating,
// and updating user records over a pluggable identity store.
//
// The service holds no state of its own. Each operation reads from or writes
// to the identity.Store it was constructed with and returns a request-scoped
// projection (UserSummary, UserEdit).
//
// Validation failures are accumulated into a ValidationErrors list so every
// field problem is reported at once; infrastructure errors from the store
// propagate unchanged.
package directory
