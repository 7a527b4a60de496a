// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"

	"github.com/finchest/finchest/internal/app"
	"github.com/finchest/finchest/internal/codec"
	"github.com/finchest/finchest/internal/crypto"
	"github.com/finchest/finchest/internal/store"
	"github.com/finchest/finchest/internal/vault"
	"github.com/finchest/finchest/models"
)

// mapToResult translates a lower-layer error into the SyncResult the UI
// consumes. Cancellation is not a failure; everything else gets a stable
// user-facing reason string from the app package.
func mapToResult(err error) models.SyncResult {
	if err == nil {
		return models.Success()
	}

	switch {
	case errors.Is(err, vault.ErrUserCancelled),
		errors.Is(err, context.Canceled):
		return models.Cancelled()

	case errors.Is(err, crypto.ErrAuthenticationFailed):
		return models.Failure(app.MsgWrongPassword)

	case errors.Is(err, vault.ErrPermissionDenied):
		return models.Failure(app.MsgReconnectStorage)

	case errors.Is(err, vault.ErrNotFound):
		return models.Failure(app.MsgVaultFileMissing)

	case errors.Is(err, store.ErrHandleNotFound),
		errors.Is(err, ErrNoFileConfigured):
		return models.Failure(app.MsgNoSyncFileConfigured)

	case errors.Is(err, codec.ErrUnsupportedVersion):
		return models.Failure(app.MsgUnsupportedVersion)

	case errors.Is(err, codec.ErrMalformed):
		return models.Failure(app.MsgFileNotCompatible)

	case errors.Is(err, ErrSnapshotRejected):
		return models.Failure(app.MsgSnapshotInvalid)

	case errors.Is(err, ErrAutoSyncUnavailable):
		return models.Failure(app.MsgAutoSyncUnavailable)

	default:
		return models.Failure(err.Error())
	}
}
