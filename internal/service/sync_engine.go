// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/finchest/finchest/internal/caps"
	"github.com/finchest/finchest/internal/codec"
	"github.com/finchest/finchest/internal/crypto"
	"github.com/finchest/finchest/internal/logger"
	"github.com/finchest/finchest/internal/store"
	"github.com/finchest/finchest/internal/utils"
	"github.com/finchest/finchest/internal/validators"
	"github.com/finchest/finchest/internal/vault"
	"github.com/finchest/finchest/models"
)

// engineStash is the engine configuration captured before entering
// AwaitingPassword, restored verbatim when the password flow is abandoned.
type engineStash struct {
	state        models.EngineState
	handle       models.StorageHandle
	enc          models.EncryptionState
	key          []byte
	lastSavedSum string
}

type syncEngine struct {
	files     vault.Manager
	cipher    crypto.Cipher
	state     StateAccess
	validator validators.Validator
	caps      *caps.Detector
	exporter  vault.ExportSink
	log       *logger.Logger

	// mu is the single serialization point: every load, save, and export
	// runs under it, so no two encode→encrypt→write sequences overlap.
	mu           sync.Mutex
	engState     models.EngineState
	handle       models.StorageHandle
	enc          models.EncryptionState
	key          []byte
	pending      *models.PendingEncryptedFile
	prev         *engineStash
	lastSavedSum string
	lastErr      string
	autoSync     bool

	// status is the published EngineStatus, stored outside mu so Status
	// reads never block behind file I/O or key derivation in flight.
	status atomic.Value
}

// NewSyncEngine wires the engine from its collaborators. The returned engine
// starts Unconfigured; call Resume to pick up a previous session.
func NewSyncEngine(
	files vault.Manager,
	cipher crypto.Cipher,
	state StateAccess,
	validator validators.Validator,
	detector *caps.Detector,
	exporter vault.ExportSink,
	log *logger.Logger,
) SyncEngine {
	e := &syncEngine{
		files:     files,
		cipher:    cipher,
		state:     state,
		validator: validator,
		caps:      detector,
		exporter:  exporter,
		log:       log,
		engState:  models.StateUnconfigured,
	}
	e.publish()
	return e
}

func (e *syncEngine) ConfigureSyncFile(ctx context.Context) models.SyncResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.engState != models.StateUnconfigured && e.engState != models.StateIdle {
		return e.finish(mapToResult(ErrInvalidState))
	}

	priorState := e.engState
	e.engState = models.StateConfiguring
	e.publish()

	handle, err := e.files.AcquireNew(ctx)
	if err != nil {
		e.engState = priorState
		return e.finish(mapToResult(err))
	}

	// A fresh file always starts plaintext; EnableEncryption is a separate,
	// explicit step.
	priorHandle, priorEnc, priorKey, priorSum := e.handle, e.enc, e.key, e.lastSavedSum
	e.handle = handle
	e.enc = models.EncryptionState{}
	e.key = nil

	if err := e.writeCurrent(ctx, true); err != nil {
		e.handle, e.enc, e.key, e.lastSavedSum = priorHandle, priorEnc, priorKey, priorSum
		e.engState = priorState
		return e.finish(mapToResult(err))
	}
	if err := e.files.Persist(ctx, handle); err != nil {
		e.handle, e.enc, e.key, e.lastSavedSum = priorHandle, priorEnc, priorKey, priorSum
		e.engState = priorState
		return e.finish(mapToResult(err))
	}

	e.engState = models.StateIdle
	e.log.Info().Str("path", handle.Path).Msg("sync file configured")
	return e.finish(models.Success())
}

func (e *syncEngine) EnableEncryption(ctx context.Context, password string) models.SyncResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.engState != models.StateIdle {
		if e.handle.IsZero() {
			return e.finish(mapToResult(ErrNoFileConfigured))
		}
		return e.finish(mapToResult(ErrInvalidState))
	}

	return e.finish(e.rekey(ctx, password))
}

func (e *syncEngine) RotatePassword(ctx context.Context, newPassword string) models.SyncResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.engState != models.StateIdle {
		return e.finish(mapToResult(ErrInvalidState))
	}
	if !e.enc.Enabled {
		return e.finish(mapToResult(ErrNotEncrypted))
	}

	return e.finish(e.rekey(ctx, newPassword))
}

// rekey derives fresh parameters (new random salt) from password and
// rewrites the vault encrypted under them. Caller holds the lock.
func (e *syncEngine) rekey(ctx context.Context, password string) models.SyncResult {
	params, err := e.cipher.GenerateParams()
	if err != nil {
		return mapToResult(err)
	}
	key := e.cipher.DeriveKey(password, params)

	priorEnc, priorKey := e.enc, e.key
	e.enc = models.EncryptionState{Enabled: true, Params: params}
	e.key = key

	if err := e.writeCurrent(ctx, true); err != nil {
		e.enc, e.key = priorEnc, priorKey
		return mapToResult(err)
	}

	e.log.Info().Str("path", e.handle.Path).Msg("vault re-encrypted with fresh parameters")
	return models.Success()
}

func (e *syncEngine) LoadFromNewFile(ctx context.Context) models.SyncResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.engState != models.StateUnconfigured && e.engState != models.StateIdle {
		return e.finish(mapToResult(ErrInvalidState))
	}

	handle, err := e.files.AcquireExisting(ctx)
	if err != nil {
		return e.finish(mapToResult(err))
	}

	return e.finish(e.loadFromHandle(ctx, handle))
}

// loadFromHandle reads, frames, and either applies (plaintext) or parks
// (encrypted) the vault behind handle. Caller holds the lock. The prior
// engine configuration is untouched unless the load fully succeeds or the
// file turns out encrypted, in which case it is stashed for restore.
func (e *syncEngine) loadFromHandle(ctx context.Context, handle models.StorageHandle) models.SyncResult {
	data, err := e.files.Read(ctx, handle)
	if err != nil {
		return mapToResult(err)
	}

	env, err := codec.DecodeVaultFile(data)
	if err != nil {
		return mapToResult(err)
	}

	if env.Encrypted {
		e.prev = &engineStash{
			state:        e.engState,
			handle:       e.handle,
			enc:          e.enc,
			key:          e.key,
			lastSavedSum: e.lastSavedSum,
		}
		e.pending = &models.PendingEncryptedFile{
			Handle:     handle,
			Ciphertext: env.Payload,
			Params:     *env.KDF,
		}
		e.engState = models.StateAwaitingPassword
		e.log.Info().Str("path", handle.Path).Msg("encrypted vault opened, awaiting password")
		return models.NeedsPassword()
	}

	snap, sum, err := e.decodeAndValidate(ctx, env.Payload)
	if err != nil {
		return mapToResult(err)
	}
	if err := e.files.Persist(ctx, handle); err != nil {
		return mapToResult(err)
	}

	e.state.Apply(snap)
	e.handle = handle
	e.enc = models.EncryptionState{}
	e.key = nil
	e.lastSavedSum = sum
	e.engState = models.StateIdle

	if env.Legacy {
		e.log.Info().Str("path", handle.Path).Msg("legacy vault loaded, will be upgraded on next save")
		e.lastSavedSum = ""
	} else {
		e.log.Info().Str("path", handle.Path).Msg("vault loaded")
	}
	return models.Success()
}

func (e *syncEngine) DecryptPendingFile(ctx context.Context, password string) models.SyncResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.pending == nil {
		return e.finish(mapToResult(ErrNoPendingFile))
	}

	key := e.cipher.DeriveKey(password, e.pending.Params)
	plaintext, err := e.cipher.Open(e.pending.Ciphertext, key)
	if err != nil {
		// Wrong password: stay in AwaitingPassword, the user may retry.
		e.log.Info().Msg("pending vault decryption failed authentication")
		return e.finish(mapToResult(err))
	}

	snap, sum, err := e.decodeAndValidate(ctx, plaintext)
	if err != nil {
		// Decrypted fine but does not decode: corrupt beyond recovery for
		// this file. Abandon the flow entirely.
		e.restoreStash()
		return e.finish(mapToResult(err))
	}

	handle := e.pending.Handle
	params := e.pending.Params
	if err := e.files.Persist(ctx, handle); err != nil {
		e.restoreStash()
		return e.finish(mapToResult(err))
	}

	e.state.Apply(snap)
	e.handle = handle
	e.enc = models.EncryptionState{Enabled: true, Params: params}
	e.key = key
	e.lastSavedSum = sum
	e.pending = nil
	e.prev = nil
	e.engState = models.StateIdle

	e.log.Info().Str("path", handle.Path).Msg("encrypted vault loaded")
	return e.finish(models.Success())
}

func (e *syncEngine) ClearPendingEncryptedFile(ctx context.Context) models.SyncResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.pending == nil {
		return e.finish(mapToResult(ErrNoPendingFile))
	}

	e.restoreStash()
	e.log.Info().Msg("password flow abandoned, prior state restored")
	return e.finish(models.Cancelled())
}

// restoreStash drops the pending file and puts the engine back into the
// configuration captured before AwaitingPassword. Caller holds the lock.
func (e *syncEngine) restoreStash() {
	e.pending = nil
	if e.prev == nil {
		e.engState = models.StateUnconfigured
		e.handle = models.StorageHandle{}
		e.enc = models.EncryptionState{}
		e.key = nil
		e.lastSavedSum = ""
		return
	}
	e.engState = e.prev.state
	e.handle = e.prev.handle
	e.enc = e.prev.enc
	e.key = e.prev.key
	e.lastSavedSum = e.prev.lastSavedSum
	e.prev = nil
}

func (e *syncEngine) ManualExport(ctx context.Context) models.SyncResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	file, _, err := e.encodeCurrent()
	if err != nil {
		return e.finish(mapToResult(err))
	}

	name := fmt.Sprintf("finchest-export-%s.vault", time.Now().Format("2006-01-02"))
	if err := e.exporter.Export(ctx, name, file); err != nil {
		return e.finish(mapToResult(err))
	}

	return e.finish(models.Success())
}

func (e *syncEngine) SetupAutoSync(ctx context.Context) models.SyncResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.caps.CanAutoSync() {
		e.log.Warn().Msg("auto-sync unsupported on this host")
		return e.finish(mapToResult(ErrAutoSyncUnavailable))
	}
	if e.handle.IsZero() {
		e.log.Warn().Msg("auto-sync requested without a configured sync file")
		return e.finish(mapToResult(ErrNoFileConfigured))
	}

	e.autoSync = true
	e.log.Info().Str("path", e.handle.Path).Msg("auto-sync enabled")
	return e.finish(models.Success())
}

func (e *syncEngine) SaveNow(ctx context.Context) models.SyncResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.handle.IsZero() {
		return e.finish(mapToResult(ErrNoFileConfigured))
	}
	if e.engState == models.StateAwaitingPassword {
		// A load is pending acknowledgment; saving now could clobber the
		// file the user is about to decrypt.
		return e.finish(mapToResult(ErrInvalidState))
	}

	if err := e.writeCurrent(ctx, false); err != nil {
		return e.finish(mapToResult(err))
	}
	return e.finish(models.Success())
}

func (e *syncEngine) Resume(ctx context.Context) models.SyncResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	handle, err := e.files.RestorePersisted(ctx)
	if errors.Is(err, store.ErrHandleNotFound) {
		// No previous session: a fresh start, not a failure.
		e.log.Info().Msg("no persisted sync file, starting unconfigured")
		return e.finish(models.Success())
	}
	if err != nil {
		return e.finish(mapToResult(err))
	}

	e.log.Info().Str("path", handle.Path).Msg("resuming previous session")
	return e.finish(e.loadFromHandle(ctx, handle))
}

// Status returns the last published engine status. It reads a separately
// stored value, so polling it while a save or key derivation is in flight
// returns immediately and reports the transient Saving state.
func (e *syncEngine) Status() models.EngineStatus {
	return e.status.Load().(models.EngineStatus)
}

// publish snapshots the observable fields into the status value. Caller
// holds the lock (except in the constructor, before any concurrency).
func (e *syncEngine) publish() {
	e.status.Store(models.EngineStatus{
		State:     e.engState,
		Encrypted: e.enc.Enabled,
		AutoSync:  e.autoSync,
		Path:      e.handle.Path,
		ErrReason: e.lastErr,
	})
}

// encodeCurrent produces the on-disk bytes for the current snapshot under
// the current encryption configuration, plus the content sum of the
// canonical plaintext. Caller holds the lock.
func (e *syncEngine) encodeCurrent() ([]byte, string, error) {
	canonical, err := codec.EncodeSnapshot(e.state.Snapshot())
	if err != nil {
		return nil, "", err
	}
	sum := utils.ContentSum(canonical)

	payload := canonical
	var kdf *models.DerivationParams
	if e.enc.Enabled {
		blob, err := e.cipher.Seal(canonical, e.key)
		if err != nil {
			return nil, "", err
		}
		payload = blob
		kdf = &e.enc.Params
	}

	file, err := codec.EncodeVaultFile(payload, kdf)
	if err != nil {
		return nil, "", err
	}
	return file, sum, nil
}

// writeCurrent encodes and writes the current snapshot to the active
// handle. Unless force is set, the write is skipped when the canonical
// content is unchanged since the last successful save, which makes
// back-to-back saves of identical state byte no-ops. Caller holds the lock.
func (e *syncEngine) writeCurrent(ctx context.Context, force bool) error {
	file, sum, err := e.encodeCurrent()
	if err != nil {
		return err
	}

	if !force && sum == e.lastSavedSum {
		e.log.Debug().Msg("snapshot unchanged, save skipped")
		return nil
	}

	priorState := e.engState
	e.engState = models.StateSaving
	e.publish()
	err = e.files.Write(ctx, e.handle, file)
	e.engState = priorState
	e.publish()
	if err != nil {
		return err
	}

	e.lastSavedSum = sum
	e.log.Debug().Str("path", e.handle.Path).Int("bytes", len(file)).Msg("snapshot saved")
	return nil
}

// decodeAndValidate turns plaintext payload bytes into a validated snapshot
// and the content sum of its canonical re-encoding.
func (e *syncEngine) decodeAndValidate(ctx context.Context, payload []byte) (models.Snapshot, string, error) {
	snap, err := codec.DecodeSnapshot(payload)
	if err != nil {
		return models.Snapshot{}, "", err
	}
	if err := e.validator.Validate(ctx, snap); err != nil {
		return models.Snapshot{}, "", fmt.Errorf("%w: %v", ErrSnapshotRejected, err)
	}

	canonical, err := codec.EncodeSnapshot(snap)
	if err != nil {
		return models.Snapshot{}, "", err
	}
	return snap, utils.ContentSum(canonical), nil
}

// finish records the result for Status observers: failures latch their
// reason, success clears it, cancellation leaves it untouched.
func (e *syncEngine) finish(res models.SyncResult) models.SyncResult {
	switch res.Outcome {
	case models.OutcomeFailure:
		e.lastErr = res.Reason
	case models.OutcomeSuccess:
		e.lastErr = ""
	}
	e.publish()
	return res
}
