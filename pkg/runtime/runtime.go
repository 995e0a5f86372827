// Package runtime defines the contract between oneshot and a container runtime.
package runtime

import (
	"context"

	"oneshot/pkg/install"
)

// OutputMountPath is where the host output directory appears inside the container.
const OutputMountPath = "/OUTPUT"

// Container is implemented by each container runtime adapter.
type Container interface {
	// Initialize prepares the runtime for use. Calling it again must be harmless.
	Initialize(ctx context.Context) error
	// Shell runs the install script and then an interactive shell attached to the terminal.
	Shell(ctx context.Context, req RunRequest) error
	// Run runs the install script and then command, streaming its output.
	Run(ctx context.Context, req RunRequest, command string) error
}

// RunRequest describes one disposable container. It is immutable once built.
type RunRequest struct {
	image        string
	outputDir    string
	capabilities []Capability
	install      install.Command
}

// NewRunRequest builds a RunRequest. outputDir should already be resolved to an
// existing absolute directory.
func NewRunRequest(image, outputDir string, capabilities []Capability, installCmd install.Command) RunRequest {
	return RunRequest{
		image:        image,
		outputDir:    outputDir,
		capabilities: append([]Capability(nil), capabilities...),
		install:      installCmd,
	}
}

// Image returns the container image reference.
func (r RunRequest) Image() string { return r.image }

// OutputDir returns the host directory bind-mounted at OutputMountPath.
func (r RunRequest) OutputDir() string { return r.outputDir }

// Capabilities returns the capabilities to add, in request order.
func (r RunRequest) Capabilities() []Capability {
	return append([]Capability(nil), r.capabilities...)
}

// InstallCommand returns the install script run before the shell or command.
func (r RunRequest) InstallCommand() install.Command { return r.install }
