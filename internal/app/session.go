package app

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"oneshot/internal/catalog"
	"oneshot/pkg/install"
	"oneshot/pkg/runtime"
)

// Mode selects what the container does once the toolchains are installed.
type Mode string

const (
	ModeShell Mode = "shell"
	ModeRun   Mode = "run"
)

// SessionStage names the last stage a session finished.
type SessionStage string

const (
	StagePrepare    SessionStage = "prepare"
	StageInitialize SessionStage = "initialize"
	StageLaunch     SessionStage = "launch"
	StageCompleted  SessionStage = "completed"
)

// Options are the merged flag and config values for one session.
type Options struct {
	// Image is a catalog alias or an image reference. Empty selects catalog.DefaultImage.
	Image string
	// OutputDir is bind-mounted at /OUTPUT. Empty selects the working directory.
	OutputDir    string
	Capabilities []string
	Directives   install.Directives
	// Runtime names the container adapter; Binary overrides its executable.
	Runtime string
	Binary  string
	Catalog *catalog.Catalog
}

// Session carries one invocation through the stages.
type Session struct {
	RunID  string
	Mode   Mode
	Script string

	Options   Options
	Request   runtime.RunRequest
	Container runtime.Container

	LastSuccessfulStage SessionStage
	StartedAt           time.Time
}

func newSession(mode Mode, opts Options, script string) *Session {
	return &Session{
		RunID:     uuid.New().String(),
		Mode:      mode,
		Script:    script,
		Options:   opts,
		StartedAt: time.Now(),
	}
}

func (s *Session) logger() *slog.Logger {
	return slog.With("runId", s.RunID, "mode", string(s.Mode))
}
