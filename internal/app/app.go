// Package app runs a oneshot session: it resolves options into a run request, brings the
// container runtime up and starts the shell or script.
package app

import (
	"context"
	"os"
	"time"

	"github.com/moby/term"

	rt "oneshot/internal/runtime"
	"oneshot/internal/ui"
)

type App struct {
	provider        ContainerProvider
	stdinIsTerminal func() bool
	console         *ui.Console
}

type Option func(*App)

// WithContainerProvider replaces the adapter factory.
func WithContainerProvider(provider ContainerProvider) Option {
	return func(a *App) {
		a.provider = provider
	}
}

// WithTerminalCheck replaces the stdin TTY check used before interactive shells.
func WithTerminalCheck(fn func() bool) Option {
	return func(a *App) {
		a.stdinIsTerminal = fn
	}
}

func WithConsole(console *ui.Console) Option {
	return func(a *App) {
		a.console = console
	}
}

func New(opts ...Option) *App {
	a := &App{
		provider:        NewContainerFactory(),
		stdinIsTerminal: func() bool { return term.IsTerminal(os.Stdin.Fd()) },
		console:         ui.NewConsole(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Shell installs the requested toolchains and drops into an interactive shell.
func (a *App) Shell(ctx context.Context, opts Options) error {
	return a.execute(ctx, newSession(ModeShell, opts, ""))
}

// Run installs the requested toolchains and evaluates script in the container.
func (a *App) Run(ctx context.Context, opts Options, script string) error {
	return a.execute(ctx, newSession(ModeRun, opts, script))
}

func (a *App) stages() []Stage {
	return []Stage{
		NewPrepareStage(a.provider),
		NewInitializeStage(),
		NewLaunchStage(a.stdinIsTerminal, a.console),
	}
}

func (a *App) execute(ctx context.Context, session *Session) error {
	log := session.logger()
	log.Info("Starting oneshot session")

	for _, stage := range a.stages() {
		log.Debug("Executing stage", "stage", stage.Name())
		if err := stage.Execute(ctx, session); err != nil {
			log.Debug("Stage failed", "stage", stage.Name(), "error", err)
			return err
		}
		session.LastSuccessfulStage = SessionStage(stage.Name())
	}

	session.LastSuccessfulStage = StageCompleted
	log.Info("oneshot session completed", "duration", time.Since(session.StartedAt).String())
	return nil
}

func (o Options) binary() string {
	if o.Binary == "" {
		return rt.DefaultBinary
	}
	return o.Binary
}
