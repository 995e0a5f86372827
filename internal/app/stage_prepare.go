package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"oneshot/internal/catalog"
	errs "oneshot/internal/errors"
	"oneshot/internal/scriptcheck"
	"oneshot/pkg/runtime"
)

// PrepareStage turns session options into a run request and picks the container adapter.
type PrepareStage struct {
	provider ContainerProvider
}

func NewPrepareStage(provider ContainerProvider) *PrepareStage {
	return &PrepareStage{provider: provider}
}

func (s *PrepareStage) Name() string {
	return string(StagePrepare)
}

func (s *PrepareStage) Execute(ctx context.Context, session *Session) error {
	log := session.logger()
	opts := session.Options

	outputDir, err := resolveOutputDir(opts.OutputDir)
	if err != nil {
		return err
	}

	image, err := resolveImage(opts.Catalog, opts.Image)
	if err != nil {
		return err
	}

	caps, err := runtime.ParseCapabilities(opts.Capabilities)
	if err != nil {
		return errs.NewConfigError(
			"Unknown container capability",
			err.Error(),
			"Use net-raw or net-admin",
			err,
		)
	}

	for _, finding := range scriptcheck.Check(opts.Directives) {
		log.Warn("Install directive may not reach the package manager as a single argument",
			"toolchain", string(finding.Toolchain), "value", finding.Value, "reason", finding.Reason)
	}

	script := opts.Directives.Script()
	if err := scriptcheck.Parse(script.String()); err != nil {
		log.Warn("Install script is not valid POSIX shell", "error", err)
	}

	container, err := s.provider.GetContainer(opts.Runtime, opts.Binary)
	if err != nil {
		return errs.NewConfigError(
			"Container runtime is not available",
			err.Error(),
			"Set runtime.name to podman",
			err,
		)
	}

	session.Request = runtime.NewRunRequest(image, outputDir, caps, script)
	session.Container = container

	log.Debug("Prepared run request",
		"image", image,
		"outputDir", outputDir,
		"capabilities", fmt.Sprint(caps),
		"toolchains", fmt.Sprint(opts.Directives.Requested()),
		"install", script.String(),
	)
	return nil
}

// resolveOutputDir makes dir absolute, defaulting to the working directory, and checks
// that it is an existing directory.
func resolveOutputDir(dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", errs.NewOutputDirError(
				"Could not determine the current directory",
				err.Error(),
				"Pass --output-dir explicitly",
				err,
			)
		}
		dir = cwd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errs.NewOutputDirError(
			fmt.Sprintf("Could not resolve output directory %q", dir),
			err.Error(),
			"Pass an absolute path to --output-dir",
			err,
		)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", errs.NewOutputDirError(
			fmt.Sprintf("Output directory %q is not accessible", abs),
			err.Error(),
			"Create the directory first or choose another --output-dir",
			err,
		)
	}
	if !info.IsDir() {
		err := fmt.Errorf("%s is not a directory", abs)
		return "", errs.NewOutputDirError(
			fmt.Sprintf("Output directory %q is not a directory", abs),
			"",
			"Choose a directory for --output-dir",
			err,
		)
	}

	return abs, nil
}

func resolveImage(c *catalog.Catalog, image string) (string, error) {
	if c == nil {
		c = catalog.Default()
	}
	if image == "" {
		image = catalog.DefaultImage
	}

	resolved, err := c.Resolve(image)
	if err != nil {
		return "", errs.NewImageError(
			fmt.Sprintf("Image %q is neither a known alias nor a valid reference", image),
			err.Error(),
			"Run 'oneshot images' to list aliases and pass one as @name, or pass a reference such as docker.io/library/alpine:latest",
			err,
		)
	}
	return resolved, nil
}
