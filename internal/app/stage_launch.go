package app

import (
	"context"
	"fmt"

	errs "oneshot/internal/errors"
	"oneshot/internal/ui"
)

// LaunchStage starts the interactive shell or the one-shot script.
type LaunchStage struct {
	stdinIsTerminal func() bool
	console         *ui.Console
}

func NewLaunchStage(stdinIsTerminal func() bool, console *ui.Console) *LaunchStage {
	return &LaunchStage{stdinIsTerminal: stdinIsTerminal, console: console}
}

func (s *LaunchStage) Name() string {
	return string(StageLaunch)
}

func (s *LaunchStage) Execute(ctx context.Context, session *Session) error {
	log := session.logger()

	var err error
	switch session.Mode {
	case ModeShell:
		if !s.stdinIsTerminal() {
			s.console.PrintWarning("stdin is not a terminal; the interactive shell may not behave as expected")
		}
		log.Debug("Launching interactive shell", "image", session.Request.Image())
		err = session.Container.Shell(ctx, session.Request)
	case ModeRun:
		log.Debug("Launching script", "image", session.Request.Image())
		err = session.Container.Run(ctx, session.Request, session.Script)
	default:
		return fmt.Errorf("unknown session mode: %s", session.Mode)
	}

	if err != nil {
		return errs.FromRuntime(err, session.Options.binary())
	}
	return nil
}
