// SPDX-License-Identifier: Apache-2.0

package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/finchest/finchest/internal/logger"
	"github.com/finchest/finchest/internal/store"
	"github.com/finchest/finchest/models"
)

const vaultFileMode = 0o600

// fileManager is the filesystem implementation of [Manager].
type fileManager struct {
	picker   FilePicker
	handles  store.HandleStore
	observer WriteObserver
	log      *logger.Logger
}

// NewManager constructs a [Manager] backed by the local filesystem.
// observer may be nil when no watcher is wired.
func NewManager(picker FilePicker, handles store.HandleStore, observer WriteObserver, log *logger.Logger) Manager {
	return &fileManager{
		picker:   picker,
		handles:  handles,
		observer: observer,
		log:      log,
	}
}

// AcquireNew implements [Manager]. The picked file is created empty so the
// grant is validated immediately; the caller writes the first real content.
func (m *fileManager) AcquireNew(ctx context.Context) (models.StorageHandle, error) {
	path, err := m.picker.PickNewFile(ctx)
	if err != nil {
		return models.StorageHandle{}, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return models.StorageHandle{}, fmt.Errorf("resolve vault path: %w", err)
	}

	f, err := os.OpenFile(abs, os.O_CREATE|os.O_RDWR, vaultFileMode)
	if err != nil {
		return models.StorageHandle{}, mapFSError(err)
	}
	if err := f.Close(); err != nil {
		return models.StorageHandle{}, fmt.Errorf("close new vault file: %w", err)
	}

	handle := newHandle(abs)
	m.log.Debug().Str("path", abs).Str("handle_id", handle.ID).Msg("acquired new vault file")
	return handle, nil
}

// AcquireExisting implements [Manager].
func (m *fileManager) AcquireExisting(ctx context.Context) (models.StorageHandle, error) {
	path, err := m.picker.PickExistingFile(ctx)
	if err != nil {
		return models.StorageHandle{}, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return models.StorageHandle{}, fmt.Errorf("resolve vault path: %w", err)
	}

	if _, err := os.Stat(abs); err != nil {
		return models.StorageHandle{}, mapFSError(err)
	}

	handle := newHandle(abs)
	m.log.Debug().Str("path", abs).Str("handle_id", handle.ID).Msg("acquired existing vault file")
	return handle, nil
}

// Read implements [Manager].
func (m *fileManager) Read(ctx context.Context, handle models.StorageHandle) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(handle.Path)
	if err != nil {
		return nil, mapFSError(err)
	}
	return data, nil
}

// Write implements [Manager]. The new content goes to a temp file in the
// same directory, is fsynced, and then renamed over the vault file — rename
// within one filesystem is atomic, so a crash mid-write leaves the previous
// vault intact.
func (m *fileManager) Write(ctx context.Context, handle models.StorageHandle, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(handle.Path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(handle.Path)+".tmp-*")
	if err != nil {
		return mapFSError(err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return mapFSError(err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return mapFSError(err)
	}
	if err := tmp.Chmod(vaultFileMode); err != nil {
		cleanup()
		return mapFSError(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return mapFSError(err)
	}

	if m.observer != nil {
		m.observer.ObserveSelfWrite(handle.Path)
	}

	if err := os.Rename(tmpName, handle.Path); err != nil {
		_ = os.Remove(tmpName)
		return mapFSError(err)
	}

	m.log.Debug().Str("path", handle.Path).Int("bytes", len(data)).Msg("vault file replaced")
	return nil
}

// Persist implements [Manager].
func (m *fileManager) Persist(ctx context.Context, handle models.StorageHandle) error {
	return m.handles.Save(ctx, handle)
}

// RestorePersisted implements [Manager].
func (m *fileManager) RestorePersisted(ctx context.Context) (models.StorageHandle, error) {
	return m.handles.Load(ctx)
}

// Revoke implements [Manager].
func (m *fileManager) Revoke(ctx context.Context) error {
	if err := m.handles.Delete(ctx); err != nil {
		return err
	}
	m.log.Info().Msg("storage handle revoked")
	return nil
}

func newHandle(absPath string) models.StorageHandle {
	return models.StorageHandle{
		ID:        uuid.NewString(),
		Path:      absPath,
		GrantedAt: time.Now().UTC(),
	}
}

// mapFSError translates filesystem errors into the package's access error
// taxonomy. Unknown causes stay wrapped so the original text survives in
// logs.
func mapFSError(err error) error {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	default:
		return fmt.Errorf("vault file access: %w", err)
	}
}
