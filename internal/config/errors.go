package config

import "errors"

// Validation errors returned by [AppConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, an unknown log level name).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, no resolvable data directory).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidCryptoConfigs indicates unusable Argon2id cost parameters
	// (for example, zero iterations or less than 8 MiB of memory).
	ErrInvalidCryptoConfigs = errors.New("invalid crypto configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, a negative or sub-100ms debounce window).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
