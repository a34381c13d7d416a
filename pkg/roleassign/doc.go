// Package roleassign provides the Role Assignment Service: enumerating roles
// with selection flags and replacing a user's role set via remove-all-then-
// add-selected reconciliation.
package roleassign
