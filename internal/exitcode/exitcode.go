// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, out of range task number).
	UserError = 1

	// WalletError indicates a missing or unusable wallet session.
	WalletError = 2

	// BackendError indicates a gateway/contract/network error.
	BackendError = 3
)
