package app

import (
	"context"
)

// Stage is one step of a oneshot session. Stages run in order and stop at the first
// error.
type Stage interface {
	Name() string
	Execute(ctx context.Context, session *Session) error
}
