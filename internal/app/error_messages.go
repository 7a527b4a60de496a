// SPDX-License-Identifier: Apache-2.0

// Package app contains shared application-layer constants used across the
// Finchest sync engine and client shell.
//
// All Msg* constants are human-readable message strings that are surfaced to
// the user or written into log entries to describe the outcome of an
// operation. Keeping them in one place ensures consistent wording throughout
// the application.
package app

const (
	// MsgWrongPassword is shown when decryption of a vault file fails
	// authentication. A wrong password and a corrupted file are
	// cryptographically indistinguishable, so the wording covers both.
	MsgWrongPassword = "wrong password or corrupted file"

	// MsgFileNotCompatible is shown when a selected file is not a vault
	// file at all (not JSON, or a JSON document with an alien shape).
	MsgFileNotCompatible = "selected file is not a compatible vault file"

	// MsgUnsupportedVersion is shown when a vault file was written by a
	// newer app version whose format this build cannot read.
	MsgUnsupportedVersion = "vault file was created by a newer version of the app"

	// MsgReconnectStorage is shown when access to the vault file was lost
	// (permission revoked, drive unmounted) and the user must re-select it.
	MsgReconnectStorage = "lost access to the vault file, please re-select it"

	// MsgNoSyncFileConfigured is shown when a save is requested before any
	// vault file has been configured.
	MsgNoSyncFileConfigured = "no vault file configured"

	// MsgVaultFileMissing is shown when the configured vault file was
	// deleted or moved outside the app.
	MsgVaultFileMissing = "vault file not found, it may have been moved or deleted"

	// MsgSnapshotInvalid is shown when a vault file decodes but its content
	// violates basic consistency rules.
	MsgSnapshotInvalid = "vault file content failed validation"

	// MsgAutoSyncUnavailable is shown on hosts where persistent file access
	// is unavailable and only manual export/import can be offered.
	MsgAutoSyncUnavailable = "automatic sync is not available on this device"
)
