package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"oneshot/internal/app"
	"oneshot/internal/config"
	errs "oneshot/internal/errors"
	"oneshot/internal/ui"
)

// version is set at build time via ldflags
var version = "dev"

type cli struct {
	cfgFile string
	verbose bool

	settings  *config.Settings
	console   *ui.Console
	newRunner func() sessionRunner
}

func newCLI() *cli {
	return &cli{
		console:   ui.NewConsole(),
		newRunner: func() sessionRunner { return app.New() },
	}
}

func newRootCmd(c *cli) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "oneshot",
		Short:   "Disposable containers with the toolchains you ask for",
		Version: version,
		Long: `oneshot starts a throwaway podman container, installs the requested toolchains
and either opens a shell or runs a script in it. The output directory on the host
is mounted at /OUTPUT so results outlive the container.

Settings are read from $XDG_CONFIG_HOME/oneshot/config.yaml (or --config) and
ONESHOT_* environment variables; flags override both.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initLogging(cmd.ErrOrStderr(), c.verbose)

			settings, err := config.Load(c.cfgFile)
			if err != nil {
				return errs.NewConfigError(
					"Could not load configuration",
					err.Error(),
					"Check the config file or the ONESHOT_* environment variables",
					err,
				)
			}
			if settings.Source != "" {
				slog.Debug("Loaded configuration", "path", settings.Source)
			}
			c.settings = settings
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/oneshot/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newRunCmd(c))
	rootCmd.AddCommand(newShellCmd(c))
	rootCmd.AddCommand(newExecCmd())
	rootCmd.AddCommand(newImagesCmd(c))
	return rootCmd
}

func initLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// handleError sends command errors through the logging error handler.
func handleError(w io.Writer, _ fang.Styles, err error) {
	errs.HandleError(w, err)
}

func main() {
	rootCmd := newRootCmd(newCLI())
	rootCmd.SetArgs(expandToolchainArgs(rootCmd, os.Args[1:]))

	// No signal notification: podman forwards signals to the container itself.
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version),
		fang.WithErrorHandler(handleError),
	); err != nil {
		os.Exit(1)
	}
}
