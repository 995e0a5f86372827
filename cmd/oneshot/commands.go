package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"oneshot/internal/app"
	errs "oneshot/internal/errors"
)

// sessionRunner is the part of app.App the commands drive.
type sessionRunner interface {
	Shell(ctx context.Context, opts app.Options) error
	Run(ctx context.Context, opts app.Options, script string) error
}

func newRunCmd(c *cli) *cobra.Command {
	var (
		flags  sessionFlags
		script string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a shell command within the oneshot container",
		Long: `Run installs the requested toolchains in a fresh container and evaluates the
script with /bin/sh. The container is removed when the script exits. Files written
to /OUTPUT end up in the output directory on the host.`,
		Example: `  oneshot run -s "python3 -i" --from-uv=numpy
  oneshot run -s "bun repl" --from-bun
  oneshot run -s "rg TODO /OUTPUT" --from-cargo=ripgrep -o ./src`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, c.settings)
			if err != nil {
				return err
			}
			return c.newRunner().Run(cmd.Context(), opts, script)
		},
	}

	cmd.Flags().StringVarP(&script, "script", "s", "", "shell command to evaluate in the container (required)")
	if err := cmd.MarkFlagRequired("script"); err != nil {
		slog.Error("Failed to mark script flag as required for run command", "error", err)
	}
	flags.register(cmd)
	return cmd
}

func newShellCmd(c *cli) *cobra.Command {
	var flags sessionFlags

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Run an interactive shell within the oneshot container",
		Long: `Shell installs the requested toolchains in a fresh container and opens an
interactive /bin/sh. The container is removed when the shell exits.`,
		Example: `  oneshot shell --from-apk=curl,jq
  oneshot shell -i rust -c net-raw`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, c.settings)
			if err != nil {
				return err
			}
			return c.newRunner().Shell(cmd.Context(), opts)
		},
	}

	flags.register(cmd)
	return cmd
}

func newExecCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "exec",
		Short: "Execute a script file within the oneshot container (not implemented)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return errs.NewNotImplementedError(
				"The exec command is not implemented yet",
				fmt.Sprintf("Use: oneshot run -s \"$(cat %s)\"", path),
				errors.New("exec is not implemented"),
			)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "script file to execute (required)")
	if err := cmd.MarkFlagRequired("path"); err != nil {
		slog.Error("Failed to mark path flag as required for exec command", "error", err)
	}
	return cmd
}

func newImagesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "images",
		Short: "List the known image aliases",
		Long: `Images lists the image catalog. Any name or tag prefixed with @ can be passed
to --image in place of the full reference, e.g. --image @python. Values without
the @ are always used as image references. Entries from the images section of the
config file are listed after the built-in ones.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := c.settings.Catalog()
			if err != nil {
				return errs.NewConfigError(
					"Image catalog in the config file is invalid",
					err.Error(),
					"Fix the images section of "+c.settings.Source,
					err,
				)
			}

			rows := [][]string{{"NAME", "IMAGE", "TAGS"}}
			for _, img := range catalog.Images() {
				rows = append(rows, []string{img.Name, img.URL, strings.Join(img.Tags, ",")})
			}
			c.console.PrintRows(rows)
			return nil
		},
	}
}
