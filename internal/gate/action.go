// Package gate is the single authorization checkpoint: each endpoint asks
// for exactly one Permission, and the gate resolves the caller's role to a
// Profile that either grants it or not. The package knows nothing about
// domain models; callers pass the role name as a string.
package gate

// Action describes the kind of operation a caller wants to perform.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionDelete Action = "delete"
	ActionList   Action = "list"
)
