// SPDX-License-Identifier: Apache-2.0

// Package client assembles the interactive finchest shell: it wires the
// sync engine to terminal prompts and pickers, runs the resume flow, and
// drives the auto-save and watcher workers for the lifetime of the session.
package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/finchest/finchest/internal/caps"
	"github.com/finchest/finchest/internal/config"
	"github.com/finchest/finchest/internal/crypto"
	"github.com/finchest/finchest/internal/logger"
	"github.com/finchest/finchest/internal/service"
	"github.com/finchest/finchest/internal/store"
	"github.com/finchest/finchest/internal/validators"
	"github.com/finchest/finchest/internal/vault"
	"github.com/finchest/finchest/internal/workers"
	"github.com/finchest/finchest/models"
)

type App struct {
	cfg        *config.AppConfig
	log        *logger.Logger
	state      *store.StateStore
	engine     service.SyncEngine
	job        *workers.AutoSaveJob
	background *workers.Workers
	watcher    *vault.Watcher
	handles    store.HandleStore
	prompt     PasswordPrompt

	in  *bufio.Reader
	out io.Writer
}

// NewApp wires the full application from configuration. Call Close to
// release the handle store and watcher.
func NewApp(cfg *config.AppConfig, log *logger.Logger) (*App, error) {
	handles, err := store.NewHandleStore(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("create handle store: %w", err)
	}

	watcher, err := vault.NewWatcher(log.GetChildLogger())
	if err != nil {
		_ = handles.Close()
		return nil, fmt.Errorf("create vault watcher: %w", err)
	}

	var picker vault.FilePicker
	if cfg.Storage.VaultPath != "" {
		picker = NewFixedPicker(cfg.Storage.VaultPath)
	} else {
		picker = NewLinePicker()
	}

	state := store.NewStateStore()
	files := vault.NewManager(picker, handles, watcher, log.GetChildLogger())
	cipher := crypto.NewCipher(cfg.Crypto.ArgonTime, cfg.Crypto.ArgonMemory, cfg.Crypto.ArgonThreads)
	sink := vault.NewDownloadSink(cfg.Storage.ExportDir, log.GetChildLogger())
	detector := caps.NewDetector(cfg.Storage.DataDir, log.GetChildLogger())

	engine := service.NewSyncEngine(
		files,
		cipher,
		state,
		validators.NewSnapshotValidator(),
		detector,
		sink,
		log.GetChildLogger(),
	)

	job := workers.NewAutoSaveJob(engine, state.Changes(), cfg.Workers.AutoSaveDebounce, log.GetChildLogger())

	return &App{
		cfg:        cfg,
		log:        log,
		state:      state,
		engine:     engine,
		job:        job,
		background: workers.NewWorkers(job),
		watcher:    watcher,
		handles:    handles,
		prompt:     NewTerminalPrompt(),
		in:         bufio.NewReader(os.Stdin),
		out:        os.Stdout,
	}, nil
}

// Close releases the app's OS resources.
func (a *App) Close() error {
	a.background.Stop()
	if err := a.watcher.Close(); err != nil {
		return err
	}
	return a.handles.Close()
}

// Run implements [Client]: resumes the previous session, starts the
// background workers, and serves the interactive command loop until the
// user quits or the process receives an interrupt.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res := a.engine.Resume(ctx)
	if res.Outcome == models.OutcomeNeedsPassword {
		a.passwordLoop(ctx)
	} else if res.Outcome == models.OutcomeFailure {
		fmt.Fprintf(a.out, "resume: %s\n", res.Reason)
	}

	a.startWorkers(ctx)
	defer a.background.Stop()

	go a.watchReconnect(ctx)
	go a.watchExternalChanges(ctx)

	return a.commandLoop(ctx)
}

// startWorkers enables auto-sync and the file watcher when a handle is
// configured; otherwise the session runs in manual mode.
func (a *App) startWorkers(ctx context.Context) {
	status := a.engine.Status()
	if status.State != models.StateIdle {
		return
	}

	if res := a.engine.SetupAutoSync(ctx); res.Outcome == models.OutcomeSuccess {
		a.background.Start(ctx)
	} else {
		fmt.Fprintf(a.out, "auto-sync disabled: %s\n", res.Reason)
	}

	if status.Path != "" {
		if err := a.watcher.Watch(status.Path); err != nil {
			a.log.Warn().Err(err).Msg("vault watcher not started")
		}
	}
}

// passwordLoop prompts until the pending vault decrypts or the user gives
// up with an empty password.
func (a *App) passwordLoop(ctx context.Context) {
	for {
		password, err := a.prompt.ReadPassword("Vault password (empty to cancel): ")
		if err != nil || password == "" {
			a.engine.ClearPendingEncryptedFile(ctx)
			fmt.Fprintln(a.out, "vault left locked")
			return
		}

		res := a.engine.DecryptPendingFile(ctx, password)
		switch res.Outcome {
		case models.OutcomeSuccess:
			fmt.Fprintln(a.out, "vault unlocked")
			return
		case models.OutcomeFailure:
			fmt.Fprintf(a.out, "%s\n", res.Reason)
		default:
			return
		}
	}
}

func (a *App) watchReconnect(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-a.job.ReconnectNeeded():
			fmt.Fprintln(a.out, "lost access to the vault file — run 'load' to re-select it")
		}
	}
}

func (a *App) watchExternalChanges(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-a.watcher.Changes():
			fmt.Fprintln(a.out, "vault file was changed by another program — run 'load' to refresh")
		}
	}
}

func (a *App) commandLoop(ctx context.Context) error {
	fmt.Fprintln(a.out, "commands: status save load configure encrypt rotate export quit")

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Fprint(a.out, "> ")
		line, err := a.in.ReadString('\n')
		if err != nil {
			return nil
		}

		switch cmd := strings.TrimSpace(line); cmd {
		case "", "help":
			fmt.Fprintln(a.out, "commands: status save load configure encrypt rotate export quit")
		case "quit", "exit":
			return nil
		case "status":
			a.printStatus()
		case "save":
			a.report(a.engine.SaveNow(ctx))
		case "export":
			a.report(a.engine.ManualExport(ctx))
		case "configure":
			if res := a.engine.ConfigureSyncFile(ctx); res.Outcome == models.OutcomeSuccess {
				a.startWorkers(ctx)
			} else {
				a.report(res)
			}
		case "load":
			res := a.engine.LoadFromNewFile(ctx)
			if res.Outcome == models.OutcomeNeedsPassword {
				a.passwordLoop(ctx)
			} else {
				a.report(res)
			}
			if a.engine.Status().State == models.StateIdle {
				a.job.Resume()
				a.startWorkers(ctx)
			}
		case "encrypt":
			a.withPassword("New vault password: ", func(pw string) models.SyncResult {
				return a.engine.EnableEncryption(ctx, pw)
			})
		case "rotate":
			a.withPassword("New vault password: ", func(pw string) models.SyncResult {
				return a.engine.RotatePassword(ctx, pw)
			})
		default:
			fmt.Fprintf(a.out, "unknown command %q\n", cmd)
		}
	}
}

func (a *App) withPassword(prompt string, op func(string) models.SyncResult) {
	password, err := a.prompt.ReadPassword(prompt)
	if err != nil || password == "" {
		fmt.Fprintln(a.out, "cancelled")
		return
	}
	a.report(op(password))
}

func (a *App) report(res models.SyncResult) {
	switch res.Outcome {
	case models.OutcomeSuccess:
		fmt.Fprintln(a.out, "ok")
	case models.OutcomeCancelled:
		fmt.Fprintln(a.out, "cancelled")
	case models.OutcomeNeedsPassword:
		fmt.Fprintln(a.out, "password required")
	case models.OutcomeFailure:
		fmt.Fprintf(a.out, "error: %s\n", res.Reason)
	}
}

func (a *App) printStatus() {
	status := a.engine.Status()
	fmt.Fprintf(a.out, "state: %s\n", status.State)
	if status.Path != "" {
		fmt.Fprintf(a.out, "vault: %s (encrypted: %t, auto-sync: %t)\n",
			status.Path, status.Encrypted, status.AutoSync)
	}
	if status.ErrReason != "" {
		fmt.Fprintf(a.out, "last error: %s\n", status.ErrReason)
	}

	snap := a.state.Snapshot()
	fmt.Fprintf(a.out, "accounts: %d, transactions: %d, goals: %d\n",
		len(snap.Accounts), len(snap.Transactions), len(snap.Goals))
	for code, total := range a.state.TotalsByCurrency() {
		fmt.Fprintf(a.out, "  total %s: %s\n", code, store.FormatAmount(total, code))
	}
}
