// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/finchest/finchest/internal/app"
	"github.com/finchest/finchest/internal/logger"
	"github.com/finchest/finchest/models"
)

// Saver is the slice of the sync engine the auto-save job needs.
type Saver interface {
	SaveNow(ctx context.Context) models.SyncResult
}

// AutoSaveJob debounces state-change notifications into saves.
//
// The job runs a single loop goroutine, so saves are strictly sequential:
// at most one write is in flight, and changes arriving during a save sit in
// the (buffered, coalescing) source channel and trigger exactly one more
// debounce round afterwards. A change burst within one debounce window
// re-arms the timer and produces a single save reflecting the final state.
//
// When a save fails with the lost-storage-access reason the job latches:
// it stops saving and raises a persistent reconnect signal instead of
// retrying into the same denial. Resume un-latches after the user has
// re-granted access.
type AutoSaveJob struct {
	saver    Saver
	changes  <-chan struct{}
	debounce time.Duration
	log      *logger.Logger

	paused    atomic.Bool
	reconnect chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewAutoSaveJob creates an AutoSaveJob fed by changes. The job is idle
// until Start is called. If debounce is zero or negative it defaults to
// 3 seconds.
func NewAutoSaveJob(saver Saver, changes <-chan struct{}, debounce time.Duration, log *logger.Logger) *AutoSaveJob {
	if debounce <= 0 {
		debounce = 3 * time.Second
	}
	return &AutoSaveJob{
		saver:     saver,
		changes:   changes,
		debounce:  debounce,
		log:       log,
		reconnect: make(chan struct{}, 1),
	}
}

// Start implements [Worker]. It stops any previously running loop, then
// launches the debounce loop. The goroutine exits when ctx is cancelled or
// Stop is called.
func (j *AutoSaveJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		j.loop(jobCtx)
	}()
}

// Stop implements [Worker]. It cancels the loop goroutine and blocks until
// it has fully exited. Safe to call when the job is not running.
func (j *AutoSaveJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// ReconnectNeeded delivers one signal when auto-save latched on lost
// storage access. The UI should prompt the user to re-select the vault
// file and then call Resume.
func (j *AutoSaveJob) ReconnectNeeded() <-chan struct{} {
	return j.reconnect
}

// Resume un-latches the job after storage access has been restored.
func (j *AutoSaveJob) Resume() {
	if j.paused.CompareAndSwap(true, false) {
		j.log.Info().Msg("auto-save resumed")
	}
}

func (j *AutoSaveJob) loop(ctx context.Context) {
	timer := time.NewTimer(j.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	armed := false

	for {
		select {
		case <-ctx.Done():
			return

		case <-j.changes:
			if j.paused.Load() {
				continue
			}
			// Re-arm on every change: a burst becomes one save.
			if armed && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(j.debounce)
			armed = true

		case <-timer.C:
			armed = false
			if j.paused.Load() {
				continue
			}
			j.save(ctx)
		}
	}
}

func (j *AutoSaveJob) save(ctx context.Context) {
	res := j.saver.SaveNow(ctx)
	switch res.Outcome {
	case models.OutcomeSuccess:
		return
	case models.OutcomeFailure:
		if res.Reason == app.MsgReconnectStorage {
			// Retrying cannot succeed without user action: latch and signal.
			j.paused.Store(true)
			select {
			case j.reconnect <- struct{}{}:
			default:
			}
			j.log.Warn().Msg("auto-save lost storage access, waiting for reconnect")
			return
		}
		// Other failures recover by coalescing into the next change-driven
		// save attempt.
		j.log.Warn().Str("reason", res.Reason).Msg("auto-save failed")
	}
}
