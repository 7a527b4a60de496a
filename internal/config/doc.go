// SPDX-License-Identifier: Apache-2.0

// Package config loads the finchest application configuration.
//
// Values come from three sources merged in precedence order: environment
// variables, command-line flags, and an optional JSON file named by the
// CONFIG env variable or the -c/-config flag. The merged result is
// defaulted and validated into an [AppConfig] consumed by the wiring in
// cmd/finchest.
package config
