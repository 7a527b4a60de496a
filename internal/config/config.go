// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// finchest application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file (in that precedence order).
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the log level and the
	// application version.
	App App `envPrefix:"APP_"`

	// Storage holds filesystem locations: the internal data directory, an
	// optional preset vault path, and the manual-export directory.
	Storage Storage `envPrefix:"STORAGE_"`

	// Crypto holds the Argon2id cost parameters written into newly
	// encrypted vault files.
	Crypto Crypto `envPrefix:"CRYPTO_"`

	// Workers holds configuration for background workers, currently the
	// auto-save scheduler.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged underneath the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// LogLevel is the zerolog level name ("debug", "info", "warn", "error").
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Shown in the startup banner.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage holds filesystem locations used by the persistence layer.
type Storage struct {
	// DataDir is the directory holding finchest's internal state — the
	// handle store database and temporary files. Defaults to the
	// OS-specific user config directory.
	// Env: STORAGE_DATA_DIR
	DataDir string `env:"DATA_DIR"`

	// VaultPath optionally pre-selects the vault file location, bypassing
	// the interactive picker. Useful for scripting and tests.
	// Env: STORAGE_VAULT_PATH
	VaultPath string `env:"VAULT_PATH"`

	// ExportDir is where manual exports are written when the host offers no
	// handle-based file access. Defaults to the user's home directory.
	// Env: STORAGE_EXPORT_DIR
	ExportDir string `env:"EXPORT_DIR"`
}

// Crypto holds the Argon2id tuning parameters for newly created encrypted
// vaults. Existing vaults always use the parameters stored in their own
// header, so changing these never breaks old files.
type Crypto struct {
	// ArgonTime is the Argon2id time cost (iterations).
	// Env: CRYPTO_ARGON_TIME
	ArgonTime uint32 `env:"ARGON_TIME"`

	// ArgonMemory is the Argon2id memory cost in KiB.
	// Env: CRYPTO_ARGON_MEMORY
	ArgonMemory uint32 `env:"ARGON_MEMORY"`

	// ArgonThreads is the Argon2id parallelism degree.
	// Env: CRYPTO_ARGON_THREADS
	ArgonThreads uint8 `env:"ARGON_THREADS"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// AutoSaveDebounce is the quiet window after the last state change
	// before an auto-save fires (e.g. "3s"). Every new change re-arms it.
	// Env: WORKERS_AUTOSAVE_DEBOUNCE
	AutoSaveDebounce time.Duration `env:"AUTOSAVE_DEBOUNCE"`
}
