package app

import (
	"context"

	errs "oneshot/internal/errors"
)

// InitializeStage brings the container runtime up.
type InitializeStage struct{}

func NewInitializeStage() *InitializeStage {
	return &InitializeStage{}
}

func (s *InitializeStage) Name() string {
	return string(StageInitialize)
}

func (s *InitializeStage) Execute(ctx context.Context, session *Session) error {
	session.logger().Debug("Initializing container runtime")
	if err := session.Container.Initialize(ctx); err != nil {
		return errs.FromRuntime(err, session.Options.binary())
	}
	return nil
}
