// SPDX-License-Identifier: Apache-2.0

package config

import (
	"flag"
	"io"
	"os"
	"strings"
	"time"
)

// knownFlags lists every flag name this package owns. Arguments naming any
// other flag are stripped before parsing.
var knownFlags = map[string]bool{
	"data-dir":          true,
	"vault":             true,
	"export-dir":        true,
	"c":                 true,
	"config":            true,
	"log-level":         true,
	"autosave-debounce": true,
	"argon-time":        true,
	"argon-memory":      true,
	"argon-threads":     true,
}

// ParseFlags parses all configuration flags from the process arguments.
//
// Flags:
//
//	-data-dir internal data directory (handle store, temp files)
//	-vault path to the vault file (skips the interactive picker)
//	-export-dir directory for manual exports
//	-c/-config json file path with configs
//	-log-level zerolog level name (debug, info, warn, error)
//	-autosave-debounce auto-save quiet window (e.g., "3s", "500ms")
//	-argon-time Argon2id time cost for new encrypted vaults
//	-argon-memory Argon2id memory cost in KiB for new encrypted vaults
//	-argon-threads Argon2id parallelism for new encrypted vaults
func ParseFlags() *StructuredConfig {
	return parseFlags(os.Args[1:])
}

// parseFlags is the testable core of [ParseFlags]: it parses the given
// argument list on a private FlagSet so tests never touch the global
// flag.CommandLine state.
func parseFlags(args []string) *StructuredConfig {
	var dataDir string
	var vaultPath string
	var exportDir string
	var jsonConfigPath string
	var logLevel string
	var autoSaveDebounce time.Duration
	var argonTime uint
	var argonMemory uint
	var argonThreads uint

	fs := flag.NewFlagSet("finchest", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&dataDir, "data-dir", "", "Internal data directory")
	fs.StringVar(&vaultPath, "vault", "", "Vault file path")
	fs.StringVar(&exportDir, "export-dir", "", "Manual export directory")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.DurationVar(&autoSaveDebounce, "autosave-debounce", 0, "Auto-save debounce window (e.g., 3s)")
	fs.UintVar(&argonTime, "argon-time", 0, "Argon2id time cost")
	fs.UintVar(&argonMemory, "argon-memory", 0, "Argon2id memory cost (KiB)")
	fs.UintVar(&argonThreads, "argon-threads", 0, "Argon2id parallelism")

	// The binary may be run with UI-layer flags this package does not own.
	// flag.Parse stops at the first unknown name, which would silently drop
	// everything after it, so unknown flags are filtered out up front.
	_ = fs.Parse(filterKnownArgs(args))

	return &StructuredConfig{
		App: App{
			LogLevel: logLevel,
		},
		Storage: Storage{
			DataDir:   dataDir,
			VaultPath: vaultPath,
			ExportDir: exportDir,
		},
		Crypto: Crypto{
			ArgonTime:    uint32(argonTime),
			ArgonMemory:  uint32(argonMemory),
			ArgonThreads: uint8(argonThreads),
		},
		Workers: Workers{
			AutoSaveDebounce: autoSaveDebounce,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// filterKnownArgs drops arguments naming flags outside [knownFlags], along
// with a detached value following a dropped "-name value" pair.
func filterKnownArgs(args []string) []string {
	kept := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") || arg == "-" || arg == "--" {
			kept = append(kept, arg)
			continue
		}

		name := strings.TrimLeft(arg, "-")
		if eq := strings.Index(name, "="); eq >= 0 {
			name = name[:eq]
		}
		if knownFlags[name] {
			kept = append(kept, arg)
			continue
		}

		// Skip the unknown flag's detached value too, if it has one.
		if !strings.Contains(arg, "=") && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
		}
	}
	return kept
}
