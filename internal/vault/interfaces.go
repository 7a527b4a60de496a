// SPDX-License-Identifier: Apache-2.0

// Package vault is the capability/byte-transport boundary between the sync
// engine and the external vault file. It acquires and validates storage
// handles, reads and writes raw bytes atomically, and persists the active
// handle across restarts. It never interprets payload bytes — encryption
// and format decisions live one layer up, in the engine and the codec.
package vault

import (
	"context"

	"github.com/finchest/finchest/models"
)

// FilePicker is the UI-owned suspension point for choosing a vault file
// location. Implementations block until the user picks a path or dismisses
// the dialog; dismissal is reported as [ErrUserCancelled].
type FilePicker interface {
	// PickNewFile asks the user where a new vault file should be created.
	PickNewFile(ctx context.Context) (string, error)

	// PickExistingFile asks the user to select an existing vault file.
	PickExistingFile(ctx context.Context) (string, error)
}

// Manager owns the lifecycle of the single active [models.StorageHandle].
//
// Acquire methods validate access but do NOT persist the handle — commit is
// a separate Persist call, so a flow that is cancelled halfway (e.g. an
// encrypted file whose password prompt the user abandons) leaves no
// half-acquired handle behind.
type Manager interface {
	// AcquireNew runs the new-file picker flow and returns a handle to a
	// freshly created (empty) vault file.
	// Returns [ErrUserCancelled] if the user dismissed the picker.
	AcquireNew(ctx context.Context) (models.StorageHandle, error)

	// AcquireExisting runs the open-file picker flow and returns a handle
	// to an existing vault file.
	// Returns [ErrUserCancelled] or [ErrNotFound].
	AcquireExisting(ctx context.Context) (models.StorageHandle, error)

	// Read returns the full content of the vault file behind handle.
	Read(ctx context.Context, handle models.StorageHandle) ([]byte, error)

	// Write atomically replaces the vault file content with data using
	// write-to-temp-then-rename. After Write returns, the file contains
	// either the previous bytes or data in full — never a mix, never a
	// truncated tail.
	Write(ctx context.Context, handle models.StorageHandle, data []byte) error

	// Persist records handle as the active one in the internal handle
	// store, replacing any previous handle.
	Persist(ctx context.Context, handle models.StorageHandle) error

	// RestorePersisted returns the handle persisted by an earlier session.
	// Returns [store.ErrHandleNotFound] if none exists.
	RestorePersisted(ctx context.Context) (models.StorageHandle, error)

	// Revoke forgets the persisted handle. The vault file itself is left
	// untouched.
	Revoke(ctx context.Context) error
}

// ExportSink receives the bytes of a one-shot manual export. It is the
// fallback path for hosts without handle-based file access.
type ExportSink interface {
	Export(ctx context.Context, fileName string, data []byte) error
}

// WriteObserver is notified right before the manager replaces the vault
// file. The file watcher uses this to tell the application's own writes
// apart from external ones.
type WriteObserver interface {
	ObserveSelfWrite(path string)
}
