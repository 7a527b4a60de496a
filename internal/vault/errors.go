package vault

import "errors"

var (
	// ErrUserCancelled means the user dismissed a file picker. This is a
	// normal declined operation, not a failure — callers return to their
	// prior state and must not log it as an error.
	ErrUserCancelled = errors.New("operation cancelled by user")

	// ErrPermissionDenied means the handle still references the file but
	// access is no longer authorized. The fix is re-prompting the user for
	// access, not treating the vault as lost.
	ErrPermissionDenied = errors.New("storage permission denied")

	// ErrNotFound means the vault file was deleted or moved out from under
	// the handle.
	ErrNotFound = errors.New("vault file not found")
)
