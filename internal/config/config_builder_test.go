// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigBuilder_EnvWinsOverJSON(t *testing.T) {
	jsonPath := writeJSONConfig(t, `{
		"app": {"log_level": "error"},
		"storage": {"data_dir": "/from-json"}
	}`)
	setEnvVars(t, map[string]string{
		"CONFIG":           jsonPath,
		"STORAGE_DATA_DIR": "/from-env",
	})

	cfg, err := newConfigBuilder().withEnv().withJSON().build()

	require.NoError(t, err)
	// env wins for the contested field, JSON fills the rest
	assert.Equal(t, "/from-env", cfg.Storage.DataDir)
	assert.Equal(t, "error", cfg.App.LogLevel)
}

func TestConfigBuilder_JSONFillsGaps(t *testing.T) {
	jsonPath := writeJSONConfig(t, `{"workers": {"autosave_debounce": "7s"}}`)
	setEnvVars(t, map[string]string{"CONFIG": jsonPath})

	cfg, err := newConfigBuilder().withEnv().withJSON().build()

	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, cfg.Workers.AutoSaveDebounce)
}

func TestConfigBuilder_BadJSONSurfacesError(t *testing.T) {
	jsonPath := writeJSONConfig(t, `{broken`)
	setEnvVars(t, map[string]string{"CONFIG": jsonPath})

	_, err := newConfigBuilder().withEnv().withJSON().build()

	require.Error(t, err)
}

func TestAppConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *AppConfig)
		wantErr error
	}{
		{
			name:   "defaults are valid",
			mutate: func(cfg *AppConfig) {},
		},
		{
			name:    "unknown log level",
			mutate:  func(cfg *AppConfig) { cfg.App.LogLevel = "loud" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "missing data dir",
			mutate:  func(cfg *AppConfig) { cfg.Storage.DataDir = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "debounce too small",
			mutate:  func(cfg *AppConfig) { cfg.Workers.AutoSaveDebounce = time.Millisecond },
			wantErr: ErrInvalidWorkerConfigs,
		},
		{
			name:    "argon memory too small",
			mutate:  func(cfg *AppConfig) { cfg.Crypto.ArgonMemory = 1024 },
			wantErr: ErrInvalidCryptoConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &AppConfig{
				Storage: Storage{DataDir: "/data"},
			}
			cfg.applyDefaults()
			tt.mutate(cfg)

			err := cfg.validate()

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
