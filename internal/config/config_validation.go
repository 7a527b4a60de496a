// SPDX-License-Identifier: Apache-2.0

package config

import "time"

// validate checks that the merged [StructuredConfig] satisfies structural
// invariants before defaults are applied. Level names and paths are checked
// later by [AppConfig.validate] once defaults are known.
func (cfg *StructuredConfig) validate() error {
	if cfg.Workers.AutoSaveDebounce < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

// allowedLogLevels is the exhaustive set of level names accepted for
// App.LogLevel.
var allowedLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

func (cfg *AppConfig) validate() error {
	if _, ok := allowedLogLevels[cfg.App.LogLevel]; !ok {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DataDir == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Workers.AutoSaveDebounce < 100*time.Millisecond {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Crypto.ArgonTime == 0 || cfg.Crypto.ArgonMemory < 8*1024 || cfg.Crypto.ArgonThreads == 0 {
		return ErrInvalidCryptoConfigs
	}

	return nil
}
