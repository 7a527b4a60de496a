// SPDX-License-Identifier: Apache-2.0

// Package service contains the sync engine: the orchestrator that moves
// application state between memory and the encrypted vault file.
//
// The engine is a state machine
//
//	Unconfigured → Configuring → Idle → AwaitingPassword → Idle
//
// with a transient Saving sub-state, and it is the single logical writer of
// the vault file: every encode→encrypt→write sequence runs under one mutex,
// so saves and loads never overlap and the file on disk is always either
// the previous content or the new content in full.
//
// Lower layers (vault, crypto, codec) return tagged sentinel errors; the
// engine maps them into [models.SyncResult] values for the UI and never
// lets them escape raw.
package service

import (
	"context"

	"github.com/finchest/finchest/models"
)

// StateAccess is the engine's view of the domain state store: pull the
// current snapshot for saving, push a loaded snapshot for applying.
// Apply must replace all entities atomically.
type StateAccess interface {
	Snapshot() models.Snapshot
	Apply(models.Snapshot)
}

// SyncEngine orchestrates persistence of the application state into a
// user-chosen vault file. All operations are safe for concurrent use;
// see the package documentation for the state machine.
type SyncEngine interface {
	// ConfigureSyncFile runs the save-to-new-file flow: picks a location,
	// writes the current snapshot unencrypted, and persists the handle.
	// Cancelling the picker leaves engine state, encryption state, and disk
	// untouched.
	ConfigureSyncFile(ctx context.Context) models.SyncResult

	// EnableEncryption derives fresh parameters from password and atomically
	// rewrites the vault encrypted. Valid only from Idle. There is no
	// DisableEncryption: an encrypted vault is never silently downgraded to
	// plaintext.
	EnableEncryption(ctx context.Context, password string) models.SyncResult

	// RotatePassword re-encrypts the vault under newPassword with a fresh
	// salt. Valid only when encryption is enabled.
	RotatePassword(ctx context.Context, newPassword string) models.SyncResult

	// LoadFromNewFile runs the open-file flow. A plaintext vault is decoded,
	// validated, and applied immediately; an encrypted one is captured as a
	// pending file and the engine transitions to AwaitingPassword.
	LoadFromNewFile(ctx context.Context) models.SyncResult

	// DecryptPendingFile attempts to decrypt the pending file with password.
	// On authentication failure the engine stays in AwaitingPassword and the
	// caller may retry.
	DecryptPendingFile(ctx context.Context, password string) models.SyncResult

	// ClearPendingEncryptedFile abandons the password flow and restores the
	// state the engine was in before the encrypted file was opened. The file
	// on disk is not touched.
	ClearPendingEncryptedFile(ctx context.Context) models.SyncResult

	// ManualExport serializes (and encrypts, if enabled) the current
	// snapshot and hands the bytes to the export sink. Stateless per call:
	// no handle is held and no engine state changes.
	ManualExport(ctx context.Context) models.SyncResult

	// SetupAutoSync enables scheduler-driven saves for the current handle.
	// A no-op returning failure when no handle is configured or the host
	// cannot auto-sync.
	SetupAutoSync(ctx context.Context) models.SyncResult

	// SaveNow writes the current snapshot to the vault file. Skips the write
	// entirely when the snapshot is unchanged since the last successful
	// save, so back-to-back saves of identical state are byte no-ops.
	SaveNow(ctx context.Context) models.SyncResult

	// Resume restores the previous session: loads the persisted handle and
	// the vault content behind it. An encrypted vault parks the engine in
	// AwaitingPassword; a missing persisted handle leaves it Unconfigured.
	Resume(ctx context.Context) models.SyncResult

	// Status returns a point-in-time view of the engine for the UI.
	Status() models.EngineStatus
}
