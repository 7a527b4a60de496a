// SPDX-License-Identifier: Apache-2.0

// Package caps probes what the host environment allows. The sync engine
// consults it once at startup to choose between the full auto-sync flow and
// the manual export/import fallback.
package caps

import (
	"os"
	"sync"

	"github.com/finchest/finchest/internal/logger"
)

// Detector reports host capabilities. Probes run once and are cached: the
// answer cannot change within a session, and repeated filesystem probes
// would just add noise.
type Detector struct {
	dataDir string
	log     *logger.Logger

	once        sync.Once
	canAutoSync bool
}

// NewDetector constructs a Detector probing against dataDir.
func NewDetector(dataDir string, log *logger.Logger) *Detector {
	return &Detector{dataDir: dataDir, log: log}
}

// CanAutoSync reports whether persistent handle storage and direct file
// writes are available. When false, only manual export/import is offered.
func (d *Detector) CanAutoSync() bool {
	d.once.Do(func() {
		d.canAutoSync = d.probeWritableDataDir()
		d.log.Info().Bool("auto_sync", d.canAutoSync).Msg("host capabilities detected")
	})
	return d.canAutoSync
}

// probeWritableDataDir checks that the data dir exists (or can be created)
// and accepts a write.
func (d *Detector) probeWritableDataDir() bool {
	if d.dataDir == "" {
		return false
	}
	if err := os.MkdirAll(d.dataDir, 0o700); err != nil {
		d.log.Warn().Err(err).Msg("data dir not creatable")
		return false
	}

	probe, err := os.CreateTemp(d.dataDir, ".caps-probe-*")
	if err != nil {
		d.log.Warn().Err(err).Msg("data dir not writable")
		return false
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)

	return true
}
