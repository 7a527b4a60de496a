// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchest/finchest/models"
)

func newTestHandleStore(t *testing.T) HandleStore {
	t.Helper()
	s, err := NewHandleStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testHandle() models.StorageHandle {
	return models.StorageHandle{
		ID:        uuid.NewString(),
		Path:      "/home/u/family.vault",
		GrantedAt: time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
	}
}

func TestHandleStore_SaveLoadRoundTrip(t *testing.T) {
	s := newTestHandleStore(t)
	ctx := context.Background()
	handle := testHandle()

	require.NoError(t, s.Save(ctx, handle))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, handle.ID, got.ID)
	assert.Equal(t, handle.Path, got.Path)
	assert.True(t, handle.GrantedAt.Equal(got.GrantedAt))
}

func TestHandleStore_LoadWithoutSave(t *testing.T) {
	s := newTestHandleStore(t)

	_, err := s.Load(context.Background())

	assert.ErrorIs(t, err, ErrHandleNotFound)
}

func TestHandleStore_SaveReplacesPrevious(t *testing.T) {
	s := newTestHandleStore(t)
	ctx := context.Background()

	first := testHandle()
	second := testHandle()
	second.Path = "/home/u/other.vault"

	require.NoError(t, s.Save(ctx, first))
	require.NoError(t, s.Save(ctx, second))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
	assert.Equal(t, "/home/u/other.vault", got.Path)
}

func TestHandleStore_Delete(t *testing.T) {
	s := newTestHandleStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, testHandle()))
	require.NoError(t, s.Delete(ctx))

	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, ErrHandleNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, s.Delete(ctx))
}

func TestHandleStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	handle := testHandle()

	s, err := NewHandleStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, handle))
	require.NoError(t, s.Close())

	reopened, err := NewHandleStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, handle.ID, got.ID)
}

func TestHandleStore_CancelledContext(t *testing.T) {
	s := newTestHandleStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.Save(ctx, testHandle()))
	_, err := s.Load(ctx)
	assert.Error(t, err)
}
