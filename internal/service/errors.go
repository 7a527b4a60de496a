package service

import "errors"

var (
	// ErrNoFileConfigured means a save or auto-sync was requested before any
	// vault file was configured.
	ErrNoFileConfigured = errors.New("no sync file configured")

	// ErrNotEncrypted means a password operation was requested on a
	// plaintext vault.
	ErrNotEncrypted = errors.New("encryption is not enabled")

	// ErrNoPendingFile means DecryptPendingFile or ClearPendingEncryptedFile
	// was called outside the AwaitingPassword state.
	ErrNoPendingFile = errors.New("no pending encrypted file")

	// ErrInvalidState means the operation is not valid in the engine's
	// current state.
	ErrInvalidState = errors.New("operation not valid in current state")

	// ErrSnapshotRejected wraps a validator error for a decoded snapshot.
	ErrSnapshotRejected = errors.New("snapshot failed validation")

	// ErrAutoSyncUnavailable means the host lacks the capabilities needed
	// for handle-based auto-sync.
	ErrAutoSyncUnavailable = errors.New("auto-sync unavailable on this host")
)
