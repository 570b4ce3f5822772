// Package exitcode defines exit codes for robotctl.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown command or flag).
	UserError = 1

	// ConfigError indicates the configuration could not be loaded or is invalid.
	ConfigError = 2

	// BackendError indicates a backend/network error or a non-2xx answer.
	BackendError = 3
)
