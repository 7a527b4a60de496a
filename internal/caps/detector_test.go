// SPDX-License-Identifier: Apache-2.0

package caps

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finchest/finchest/internal/logger"
)

func TestDetector_WritableDir(t *testing.T) {
	d := NewDetector(t.TempDir(), logger.Nop())

	assert.True(t, d.CanAutoSync())
}

func TestDetector_CreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	d := NewDetector(dir, logger.Nop())

	assert.True(t, d.CanAutoSync())
	assert.DirExists(t, dir)
}

func TestDetector_EmptyDir(t *testing.T) {
	d := NewDetector("", logger.Nop())

	assert.False(t, d.CanAutoSync())
}

func TestDetector_ResultIsCached(t *testing.T) {
	d := NewDetector(t.TempDir(), logger.Nop())

	first := d.CanAutoSync()
	// Mutating the field after the probe must not change the answer.
	d.dataDir = ""
	assert.Equal(t, first, d.CanAutoSync())
}
