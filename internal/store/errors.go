package store

import "errors"

var (
	// ErrHandleNotFound means no storage handle has been persisted yet —
	// the app has never been pointed at a vault file, or the handle was
	// revoked.
	ErrHandleNotFound = errors.New("no persisted storage handle")

	// ErrUnknownAccount is returned by state-store mutators when a
	// transaction or recurring item references an account that does not
	// exist in the current state.
	ErrUnknownAccount = errors.New("unknown account")
)
