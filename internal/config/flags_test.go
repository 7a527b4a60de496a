// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags_AllFields(t *testing.T) {
	cfg := parseFlags([]string{
		"-data-dir", "/var/lib/finchest",
		"-vault", "/home/u/family.vault",
		"-export-dir", "/home/u/Downloads",
		"-c", "/etc/finchest.json",
		"-log-level", "debug",
		"-autosave-debounce", "2s",
		"-argon-time", "3",
		"-argon-memory", "32768",
		"-argon-threads", "2",
	})

	assert.Equal(t, "/var/lib/finchest", cfg.Storage.DataDir)
	assert.Equal(t, "/home/u/family.vault", cfg.Storage.VaultPath)
	assert.Equal(t, "/home/u/Downloads", cfg.Storage.ExportDir)
	assert.Equal(t, "/etc/finchest.json", cfg.JSONFilePath)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.Workers.AutoSaveDebounce)
	assert.Equal(t, uint32(3), cfg.Crypto.ArgonTime)
	assert.Equal(t, uint32(32768), cfg.Crypto.ArgonMemory)
	assert.Equal(t, uint8(2), cfg.Crypto.ArgonThreads)
}

func TestParseFlags_ConfigAlias(t *testing.T) {
	cfg := parseFlags([]string{"-config", "/etc/finchest.json"})

	assert.Equal(t, "/etc/finchest.json", cfg.JSONFilePath)
}

func TestParseFlags_UnknownFlagsFiltered(t *testing.T) {
	cfg := parseFlags([]string{
		"-ui-theme", "dark",
		"-log-level", "debug",
		"-unknown-bool",
		"-vault", "/home/u/family.vault",
		"-window=800x600",
		"-data-dir", "/var/lib/finchest",
	})

	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "/home/u/family.vault", cfg.Storage.VaultPath)
	assert.Equal(t, "/var/lib/finchest", cfg.Storage.DataDir)
}

func TestParseFlags_NoFlags(t *testing.T) {
	cfg := parseFlags(nil)

	assert.Empty(t, cfg.Storage.DataDir)
	assert.Empty(t, cfg.JSONFilePath)
	assert.Zero(t, cfg.Workers.AutoSaveDebounce)
}
