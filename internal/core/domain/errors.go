package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidStructure indicates a malformed local or decoded-remote
	// tree: a missing index document, duplicate paths, or a broken
	// contents listing. Fatal; aborts the run before any action executes.
	ErrInvalidStructure = errors.New("invalid documentation structure")

	// ErrInvalidTable indicates a navigation table that cannot be decoded:
	// a level jump, a bad first row, a duplicate reference or a malformed
	// row. Malformed tables are rejected, never silently repaired.
	ErrInvalidTable = errors.New("invalid navigation table")

	// ErrRemoteUnavailable indicates the index topic could not be
	// retrieved. Fatal; reconciling against an empty remote tree would
	// mass-delete remote content on a transient outage.
	ErrRemoteUnavailable = errors.New("documentation server unavailable")

	// ErrNotFound indicates a requested remote topic does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrNotConfigured indicates a required client or setting is missing.
	ErrNotConfigured = errors.New("not configured")
)
