// SPDX-License-Identifier: Apache-2.0

// Package store holds finchest's internal persistence and the in-memory
// domain state container.
//
// Two very different lifetimes live here. The handle store is durable: a
// tiny bbolt database inside the app's data directory that remembers which
// external vault file the user granted access to, so the grant survives a
// restart. The state store is volatile: the reactive in-memory container
// for all domain entities, replaced wholesale on every vault load and read
// on every save. The vault file itself is NOT written by this package —
// that is the vault manager's job.
package store

import (
	"context"

	"github.com/finchest/finchest/models"
)

// HandleStore persists the single active [models.StorageHandle] across
// application restarts.
type HandleStore interface {
	// Save persists handle as the active one, replacing any previous handle.
	Save(ctx context.Context, handle models.StorageHandle) error

	// Load returns the persisted active handle.
	// Returns [ErrHandleNotFound] if none has been saved or it was deleted.
	Load(ctx context.Context) (models.StorageHandle, error)

	// Delete removes the persisted handle. Deleting an absent handle is a
	// no-op, not an error.
	Delete(ctx context.Context) error

	// Close releases the underlying database.
	Close() error
}
