// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Defaults applied by [GetAppConfig] when neither env, flags, nor the JSON
// file set a value. The Argon2id costs follow the OWASP recommendation
// (1 iteration, 64 MiB, 4 threads, 32-byte key).
const (
	DefaultAutoSaveDebounce = 3 * time.Second
	DefaultArgonTime        = uint32(1)
	DefaultArgonMemory      = uint32(64 * 1024) // KiB
	DefaultArgonThreads     = uint8(4)
	DefaultLogLevel         = "info"
)

// AppConfig is the runtime configuration view consumed by the application
// wiring, assembled and defaulted from [StructuredConfig].
type AppConfig struct {
	// App contains application-level settings.
	App App
	// Storage contains resolved filesystem locations.
	Storage Storage
	// Crypto contains the Argon2id parameters for new encrypted vaults.
	Crypto Crypto
	// Workers contains background job settings.
	Workers Workers
}

// GetAppConfig builds and validates the application config view from the
// merged structured configuration, filling in defaults for anything the
// user did not set.
func GetAppConfig() (*AppConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	appCfg := &AppConfig{
		App:     cfg.App,
		Storage: cfg.Storage,
		Crypto:  cfg.Crypto,
		Workers: cfg.Workers,
	}
	appCfg.applyDefaults()

	return appCfg, appCfg.validate()
}

func (cfg *AppConfig) applyDefaults() {
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = DefaultLogLevel
	}
	if cfg.Storage.DataDir == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			cfg.Storage.DataDir = filepath.Join(dir, "finchest")
		}
	}
	if cfg.Storage.ExportDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.Storage.ExportDir = home
		}
	}
	if cfg.Crypto.ArgonTime == 0 {
		cfg.Crypto.ArgonTime = DefaultArgonTime
	}
	if cfg.Crypto.ArgonMemory == 0 {
		cfg.Crypto.ArgonMemory = DefaultArgonMemory
	}
	if cfg.Crypto.ArgonThreads == 0 {
		cfg.Crypto.ArgonThreads = DefaultArgonThreads
	}
	if cfg.Workers.AutoSaveDebounce == 0 {
		cfg.Workers.AutoSaveDebounce = DefaultAutoSaveDebounce
	}
}
