// SPDX-License-Identifier: Apache-2.0

package vault

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/finchest/finchest/internal/logger"
)

// selfWriteWindow is how long after one of our own writes events on the
// vault path are ignored. Rename-based replacement fires several events
// (create, rename, chmod) in quick succession.
const selfWriteWindow = 2 * time.Second

// Watcher reports external modifications of the active vault file. It
// watches the file's parent directory (editors and our own atomic writes
// replace the inode, which breaks per-file watches) and filters events down
// to the vault's base name.
//
// Watcher implements [WriteObserver] so the manager can mark its own writes;
// those are swallowed instead of being reported as external changes.
type Watcher struct {
	fw  *fsnotify.Watcher
	log *logger.Logger

	mu            sync.Mutex
	path          string
	watchedDir    string
	suppressUntil time.Time

	changes chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher constructs a Watcher. Call Watch to point it at a vault file
// and Close when done.
func NewWatcher(log *logger.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fw:      fw,
		log:     log,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Watch points the watcher at path, replacing any previous target.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watchedDir == dir {
		w.path = abs
		return nil
	}
	if w.watchedDir != "" {
		_ = w.fw.Remove(w.watchedDir)
	}
	if err := w.fw.Add(dir); err != nil {
		return err
	}
	w.watchedDir = dir
	w.path = abs
	w.log.Debug().Str("path", abs).Msg("watching vault file")
	return nil
}

// ObserveSelfWrite implements [WriteObserver].
func (w *Watcher) ObserveSelfWrite(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.path == "" || filepath.Clean(path) != w.path {
		return
	}
	w.suppressUntil = time.Now().Add(selfWriteWindow)
}

// Changes delivers a signal per burst of external vault modifications.
// Signals coalesce while unconsumed.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops the watcher and releases its OS resources.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fw.Close()
	})
	return err
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if w.isExternalChange(ev) {
				select {
				case w.changes <- struct{}{}:
				default:
				}
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("vault watcher error")
		}
	}
}

func (w *Watcher) isExternalChange(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.path == "" || filepath.Clean(ev.Name) != w.path {
		return false
	}
	if time.Now().Before(w.suppressUntil) {
		return false
	}

	w.log.Debug().Str("op", ev.Op.String()).Msg("external vault change detected")
	return true
}
