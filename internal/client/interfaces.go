// SPDX-License-Identifier: Apache-2.0

package client

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run() error
}

// PasswordPrompt collects a secret from the user without echoing it.
// An empty string with nil error means the user declined to enter one.
type PasswordPrompt interface {
	ReadPassword(prompt string) (string, error)
}
