// SPDX-License-Identifier: Apache-2.0

package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/finchest/finchest/internal/vault"
)

// terminalPrompt reads passwords from the controlling terminal with echo
// disabled. Falls back to plain line reading when stdin is not a TTY
// (tests, pipes).
type terminalPrompt struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminalPrompt returns a [PasswordPrompt] over stdin/stdout.
func NewTerminalPrompt() PasswordPrompt {
	return &terminalPrompt{in: bufio.NewReader(os.Stdin), out: os.Stdout}
}

func (p *terminalPrompt) ReadPassword(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(secret), nil
	}

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// linePicker is a [vault.FilePicker] that asks for a path on the terminal.
// An empty line means the user cancelled.
type linePicker struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePicker returns a FilePicker prompting on stdin/stdout.
func NewLinePicker() vault.FilePicker {
	return &linePicker{in: bufio.NewReader(os.Stdin), out: os.Stdout}
}

func (p *linePicker) PickNewFile(ctx context.Context) (string, error) {
	return p.ask(ctx, "Path for the new vault file: ")
}

func (p *linePicker) PickExistingFile(ctx context.Context) (string, error) {
	return p.ask(ctx, "Path of the vault file to open: ")
}

func (p *linePicker) ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", vault.ErrUserCancelled
	}

	path := strings.TrimSpace(line)
	if path == "" {
		return "", vault.ErrUserCancelled
	}
	return path, nil
}

// fixedPicker short-circuits the picker dialog with a preconfigured path
// (the storage.vault_path setting). Both flows resolve to the same file.
type fixedPicker struct {
	path string
}

// NewFixedPicker returns a FilePicker that always yields path.
func NewFixedPicker(path string) vault.FilePicker {
	return &fixedPicker{path: path}
}

func (p *fixedPicker) PickNewFile(context.Context) (string, error)      { return p.path, nil }
func (p *fixedPicker) PickExistingFile(context.Context) (string, error) { return p.path, nil }
