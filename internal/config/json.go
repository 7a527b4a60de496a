// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration is a time.Duration that unmarshals from a JSON string in Go
// duration syntax ("3s", "500ms").
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler for [Duration].
func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}

	*d = Duration(parsed)
	return nil
}

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and the
// string-based [Duration] type, so a config file can say "3s" instead of a
// nanosecond count.
type StructuredJSONConfig struct {
	App struct {
		LogLevel string `json:"log_level"`
		Version  string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DataDir   string `json:"data_dir"`
		VaultPath string `json:"vault_path"`
		ExportDir string `json:"export_dir"`
	} `json:"storage,omitempty"`

	Crypto struct {
		ArgonTime    uint32 `json:"argon_time"`
		ArgonMemory  uint32 `json:"argon_memory"`
		ArgonThreads uint8  `json:"argon_threads"`
	} `json:"crypto,omitempty"`

	Workers struct {
		AutoSaveDebounce Duration `json:"autosave_debounce"`
	} `json:"workers,omitempty"`
}

// parseJSON reads and decodes the JSON configuration file at jsonFilePath
// and maps it onto a [StructuredConfig].
func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			LogLevel: jsonCfg.App.LogLevel,
			Version:  jsonCfg.App.Version,
		},
		Storage: Storage{
			DataDir:   jsonCfg.Storage.DataDir,
			VaultPath: jsonCfg.Storage.VaultPath,
			ExportDir: jsonCfg.Storage.ExportDir,
		},
		Crypto: Crypto{
			ArgonTime:    jsonCfg.Crypto.ArgonTime,
			ArgonMemory:  jsonCfg.Crypto.ArgonMemory,
			ArgonThreads: jsonCfg.Crypto.ArgonThreads,
		},
		Workers: Workers{
			AutoSaveDebounce: time.Duration(jsonCfg.Workers.AutoSaveDebounce),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}
