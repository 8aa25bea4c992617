package domain

// ActionKind identifies a planned operation against the remote server.
type ActionKind string

const (
	// ActionCreate creates a remote topic for a local-only node.
	ActionCreate ActionKind = "create"

	// ActionUpdate overwrites a remote topic whose local content changed.
	ActionUpdate ActionKind = "update"

	// ActionDelete removes a remote topic with no local counterpart.
	ActionDelete ActionKind = "delete"

	// ActionNoop records an unchanged path. No network call is made.
	ActionNoop ActionKind = "no-op"
)

// Outcome is the result of executing (or simulating) an action.
type Outcome string

const (
	// OutcomeSuccess means the action was applied, or would be in dry-run.
	OutcomeSuccess Outcome = "success"

	// OutcomeSkip means the action was intentionally not applied,
	// e.g. a delete suppressed by configuration.
	OutcomeSkip Outcome = "skip"

	// OutcomeFail means the action was attempted and failed.
	// Other actions in the plan still run.
	OutcomeFail Outcome = "fail"
)

// Action is one planned or executed operation in an action plan.
type Action struct {
	// Kind is the operation to perform.
	Kind ActionKind

	// Path is the logical path the action concerns.
	Path string

	// RemoteID is the remote topic URL. Required for update and delete,
	// empty for create until execution records the new URL.
	RemoteID string

	// Outcome is populated after execution. Empty while planning.
	Outcome Outcome
}
