// SPDX-License-Identifier: Apache-2.0

package vault

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/finchest/finchest/internal/logger"
)

func newTestWatcher(t *testing.T, path string) *Watcher {
	t.Helper()
	w, err := NewWatcher(logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	require.NoError(t, w.Watch(path))
	return w
}

func waitForChange(t *testing.T, w *Watcher) {
	t.Helper()
	select {
	case <-w.Changes():
	case <-time.After(3 * time.Second):
		t.Fatal("expected an external change notification")
	}
}

func assertNoChange(t *testing.T, w *Watcher) {
	t.Helper()
	select {
	case <-w.Changes():
		t.Fatal("unexpected change notification")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_ReportsExternalWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "family.vault")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o600))

	w := newTestWatcher(t, path)

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o600))
	waitForChange(t, w)
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "family.vault")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o600))

	w := newTestWatcher(t, path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o600))
	assertNoChange(t, w)
}

func TestWatcher_SuppressesSelfWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "family.vault")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o600))

	w := newTestWatcher(t, path)

	w.ObserveSelfWrite(path)
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o600))
	assertNoChange(t, w)
}

func TestWatcher_ReportsAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "family.vault")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o600))

	w := newTestWatcher(t, path)

	// Another process replacing the vault via temp+rename.
	tmp := filepath.Join(dir, ".family.vault.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("v2"), 0o600))
	require.NoError(t, os.Rename(tmp, path))
	waitForChange(t, w)
}
