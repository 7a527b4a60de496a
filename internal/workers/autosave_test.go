// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchest/finchest/internal/app"
	"github.com/finchest/finchest/internal/logger"
	"github.com/finchest/finchest/models"
)

const testDebounce = 50 * time.Millisecond

// fakeSaver counts saves and plays back scripted results (default success).
type fakeSaver struct {
	mu      sync.Mutex
	calls   int
	results []models.SyncResult
}

func (s *fakeSaver) SaveNow(context.Context) models.SyncResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if len(s.results) > 0 {
		res := s.results[0]
		s.results = s.results[1:]
		return res
	}
	return models.Success()
}

func (s *fakeSaver) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func waitForCalls(t *testing.T, s *fakeSaver, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.callCount() >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d saves, got %d", want, s.callCount())
}

func startJob(t *testing.T, saver *fakeSaver, changes chan struct{}) *AutoSaveJob {
	t.Helper()
	job := NewAutoSaveJob(saver, changes, testDebounce, logger.Nop())
	job.Start(context.Background())
	t.Cleanup(job.Stop)
	return job
}

func notify(changes chan struct{}) {
	// Non-blocking send, same as the state store's coalescing channel.
	select {
	case changes <- struct{}{}:
	default:
	}
}

func TestAutoSave_CoalescesBurstIntoOneSave(t *testing.T) {
	saver := &fakeSaver{}
	changes := make(chan struct{}, 1)
	startJob(t, saver, changes)

	for i := 0; i < 10; i++ {
		notify(changes)
		time.Sleep(2 * time.Millisecond)
	}

	waitForCalls(t, saver, 1)
	// No further saves without further changes.
	time.Sleep(3 * testDebounce)
	assert.Equal(t, 1, saver.callCount())
}

func TestAutoSave_EachQuietPeriodSavesOnce(t *testing.T) {
	saver := &fakeSaver{}
	changes := make(chan struct{}, 1)
	startJob(t, saver, changes)

	notify(changes)
	waitForCalls(t, saver, 1)

	notify(changes)
	waitForCalls(t, saver, 2)
}

func TestAutoSave_DebounceReArmsOnEveryChange(t *testing.T) {
	saver := &fakeSaver{}
	changes := make(chan struct{}, 1)
	startJob(t, saver, changes)

	// Keep poking faster than the debounce window for a while: the save
	// must not fire until the burst ends.
	for i := 0; i < 5; i++ {
		notify(changes)
		time.Sleep(testDebounce / 2)
		assert.Equal(t, 0, saver.callCount())
	}

	waitForCalls(t, saver, 1)
}

func TestAutoSave_PermissionDeniedLatches(t *testing.T) {
	saver := &fakeSaver{results: []models.SyncResult{models.Failure(app.MsgReconnectStorage)}}
	changes := make(chan struct{}, 1)
	job := startJob(t, saver, changes)

	notify(changes)

	select {
	case <-job.ReconnectNeeded():
	case <-time.After(2 * time.Second):
		t.Fatal("expected a reconnect signal")
	}

	// Latched: further changes do not trigger saves.
	notify(changes)
	time.Sleep(3 * testDebounce)
	require.Equal(t, 1, saver.callCount())

	// After reconnecting, saving picks up again.
	job.Resume()
	notify(changes)
	waitForCalls(t, saver, 2)
}

func TestAutoSave_OtherFailuresDoNotLatch(t *testing.T) {
	saver := &fakeSaver{results: []models.SyncResult{models.Failure("disk full")}}
	changes := make(chan struct{}, 1)
	startJob(t, saver, changes)

	notify(changes)
	waitForCalls(t, saver, 1)

	notify(changes)
	waitForCalls(t, saver, 2)
}

func TestAutoSave_StopIsIdempotent(t *testing.T) {
	saver := &fakeSaver{}
	changes := make(chan struct{}, 1)
	job := NewAutoSaveJob(saver, changes, testDebounce, logger.Nop())

	// Stop before start is a no-op.
	job.Stop()

	job.Start(context.Background())
	job.Stop()
	job.Stop()

	notify(changes)
	time.Sleep(3 * testDebounce)
	assert.Equal(t, 0, saver.callCount())
}

func TestWorkers_StartStopAll(t *testing.T) {
	saver := &fakeSaver{}
	changes := make(chan struct{}, 1)
	job := NewAutoSaveJob(saver, changes, testDebounce, logger.Nop())

	all := NewWorkers(job)
	all.Start(context.Background())
	notify(changes)
	waitForCalls(t, saver, 1)
	all.Stop()
}
