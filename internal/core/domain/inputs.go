package domain

// RunInputs carries the configuration values consumed by a single run.
// Parsing and defaulting happen in the config adapter; the core only
// sees resolved values.
type RunInputs struct {
	// DocsPath is the documentation root directory.
	DocsPath string

	// IndexURL is the remote index topic URL, sourced from project
	// metadata by the caller.
	IndexURL string

	// Category is the remote category topics are created under.
	Category int

	// DryRun records the plan without side effects when true.
	DryRun bool

	// KeepDeleted suppresses deletes: remote-only paths are reported
	// as skip instead of being removed.
	KeepDeleted bool
}
