// SPDX-License-Identifier: Apache-2.0

package models

// SyncOutcome is the tag of a [SyncResult]. Callers switch on the tag alone;
// a result is never partially populated.
type SyncOutcome string

const (
	// OutcomeSuccess means the operation completed and any loaded state has
	// been published to the application.
	OutcomeSuccess SyncOutcome = "success"
	// OutcomeNeedsPassword means the opened file is encrypted; the engine is
	// holding its ciphertext and waits for DecryptPendingFile.
	OutcomeNeedsPassword SyncOutcome = "needs_password"
	// OutcomeFailure means the operation failed; Reason carries the
	// user-facing explanation.
	OutcomeFailure SyncOutcome = "failure"
	// OutcomeCancelled means the user declined a picker or prompt. This is
	// not an error: the engine is back in its prior state and nothing was
	// touched.
	OutcomeCancelled SyncOutcome = "cancelled"
)

// SyncResult is the tagged outcome of a single load/save/export operation.
type SyncResult struct {
	Outcome SyncOutcome
	// Reason is set only when Outcome is [OutcomeFailure].
	Reason string
}

// Success returns the success result.
func Success() SyncResult { return SyncResult{Outcome: OutcomeSuccess} }

// NeedsPassword returns the needs-password result.
func NeedsPassword() SyncResult { return SyncResult{Outcome: OutcomeNeedsPassword} }

// Failure returns a failure result with the given user-facing reason.
func Failure(reason string) SyncResult {
	return SyncResult{Outcome: OutcomeFailure, Reason: reason}
}

// Cancelled returns the cancelled result.
func Cancelled() SyncResult { return SyncResult{Outcome: OutcomeCancelled} }

// EngineState is the observable lifecycle state of the sync engine.
type EngineState string

const (
	// StateUnconfigured means no sync file is configured.
	StateUnconfigured EngineState = "unconfigured"
	// StateConfiguring means a file picker flow is in progress.
	StateConfiguring EngineState = "configuring"
	// StateIdle means a handle is held and the engine is ready to save/load.
	StateIdle EngineState = "idle"
	// StateSaving means an encode→encrypt→write sequence is in flight.
	StateSaving EngineState = "saving"
	// StateAwaitingPassword means an encrypted file was opened and the
	// engine is waiting for the user's password.
	StateAwaitingPassword EngineState = "awaiting_password"
)

// EngineStatus is a point-in-time view of the engine for the UI: the
// lifecycle state plus the last surfaced error reason, if any.
type EngineStatus struct {
	State EngineState
	// Encrypted reports whether the active vault file is encrypted.
	Encrypted bool
	// AutoSync reports whether scheduler-driven saves are enabled.
	AutoSync bool
	// Path is the location of the active vault file, empty when
	// unconfigured.
	Path string
	// ErrReason is the last user-facing failure reason, empty when healthy.
	ErrReason string
}
