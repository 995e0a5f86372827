package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"oneshot/internal/ui"
	"oneshot/pkg/runtime"
)

const (
	// DefaultBinary is the podman executable looked up on PATH.
	DefaultBinary = "podman"

	// ShellPrompt is exported as PS1 so the interactive shell is recognizable.
	ShellPrompt = `\[\033[1;32m\]podshot \[\033[0m\]:\[\033[1;34m\]\w\[\033[0m\]^ `

	containerShell = "/bin/sh"
)

// ExecCommandFunc creates the exec.Cmd for a runtime invocation. Tests replace it.
type ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

// PodmanOption configures a Podman adapter.
type PodmanOption func(*Podman)

// WithBinary overrides the podman executable.
func WithBinary(binary string) PodmanOption {
	return func(p *Podman) {
		if binary != "" {
			p.binary = binary
		}
	}
}

// WithExecCommand overrides how commands are created.
func WithExecCommand(fn ExecCommandFunc) PodmanOption {
	return func(p *Podman) {
		p.execCommand = fn
	}
}

// WithStdio overrides the streams attached to container sessions.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) PodmanOption {
	return func(p *Podman) {
		p.stdin = stdin
		p.stdout = stdout
		p.stderr = stderr
		p.console = ui.NewConsoleTo(stdout, stderr)
	}
}

var _ runtime.Container = (*Podman)(nil)

// Podman implements the Container interface by shelling out to the podman CLI.
type Podman struct {
	binary      string
	execCommand ExecCommandFunc
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	console     *ui.Console
}

// NewPodman creates a Podman adapter attached to the process's standard streams.
func NewPodman(opts ...PodmanOption) *Podman {
	p := &Podman{
		binary:      DefaultBinary,
		execCommand: exec.CommandContext,
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		console:     ui.NewConsole(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the runtime name.
func (p *Podman) Name() string {
	return "podman"
}

// Binary returns the executable the adapter invokes.
func (p *Podman) Binary() string {
	return p.binary
}

// Initialize runs "machine init" and "machine start". A machine that already exists or
// is already running makes podman exit non-zero; that is not treated as a failure.
func (p *Podman) Initialize(ctx context.Context) error {
	for _, args := range [][]string{{"machine", "init"}, {"machine", "start"}} {
		slog.Debug("Preparing podman machine", "binary", p.binary, "args", args)

		out, err := p.execCommand(ctx, p.binary, args...).CombinedOutput()
		if err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				slog.Debug("Podman machine command exited non-zero",
					"args", args, "exitCode", exitErr.ExitCode(), "output", strings.TrimSpace(string(out)))
				continue
			}
			return runtime.NewInitError(err)
		}
	}
	return nil
}

// Shell starts an interactive container session and blocks until it ends.
func (p *Podman) Shell(ctx context.Context, req runtime.RunRequest) error {
	args := p.ShellArgs(req)
	slog.Info("Starting interactive container", "image", req.Image(), "outputDir", req.OutputDir())

	cmd := p.execCommand(ctx, p.binary, args...)
	cmd.Stdin = p.stdin
	cmd.Stdout = p.stdout
	cmd.Stderr = p.stderr

	if err := p.wait(cmd); err != nil {
		return err
	}
	p.console.PrintInfo("Output directory: " + req.OutputDir())
	return nil
}

// Run runs command in a container after the install script and blocks until it exits.
func (p *Podman) Run(ctx context.Context, req runtime.RunRequest, command string) error {
	args := p.RunArgs(req, command)
	slog.Info("Running container command", "image", req.Image(), "outputDir", req.OutputDir(), "command", command)

	cmd := p.execCommand(ctx, p.binary, args...)
	cmd.Stdin = p.stdin
	cmd.Stdout = p.stdout
	cmd.Stderr = p.stderr

	if err := p.wait(cmd); err != nil {
		return err
	}
	p.console.PrintInfo("Output directory: " + req.OutputDir())
	return nil
}

// ShellArgs returns the podman arguments for an interactive session.
func (p *Podman) ShellArgs(req runtime.RunRequest) []string {
	args := []string{"run", "-it", "--rm"}
	args = append(args, mountArgs(req)...)
	args = append(args, capabilityArgs(req)...)
	args = append(args,
		"-e", "PS1="+ShellPrompt,
		req.Image(),
		containerShell, "-c", req.InstallCommand().Then("exec "+containerShell),
	)
	return args
}

// RunArgs returns the podman arguments for a one-shot command.
func (p *Podman) RunArgs(req runtime.RunRequest, command string) []string {
	args := []string{"run", "--sig-proxy=true", "-i", "--rm"}
	args = append(args, mountArgs(req)...)
	args = append(args, "-a", "stdout", "-a", "stderr")
	args = append(args, capabilityArgs(req)...)
	args = append(args,
		req.Image(),
		containerShell, "-c", req.InstallCommand().Then("eval "+command),
	)
	return args
}

// wait runs cmd. Only launch failures are errors; the container's own exit status is
// logged and left to the caller's terminal output.
func (p *Podman) wait(cmd *exec.Cmd) error {
	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		slog.Warn("Container exited with non-zero status", "exitCode", exitErr.ExitCode())
		return nil
	}
	return runtime.NewExecutionError(err)
}

func mountArgs(req runtime.RunRequest) []string {
	return []string{
		"-v", fmt.Sprintf("%s:%s:Z", req.OutputDir(), runtime.OutputMountPath),
		"-w", runtime.OutputMountPath,
	}
}

func capabilityArgs(req runtime.RunRequest) []string {
	var args []string
	for _, c := range req.Capabilities() {
		args = append(args, "--cap-add", c.String())
	}
	return args
}
