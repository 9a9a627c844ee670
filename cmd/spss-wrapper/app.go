// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/spsswrap/spss-wrapper/internal/config"
	"github.com/spsswrap/spss-wrapper/internal/launch"
	"github.com/spsswrap/spss-wrapper/internal/winepath"
	"github.com/spsswrap/spss-wrapper/pkg/platform"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root
	// for the CLI layer: the root command handler builds a RunRequest from flags
	// and delegates to App.Run.
	App struct {
		// Config loads the layered configuration. When nil, Run uses a file
		// provider that logs through the request's logger.
		Config      config.Provider
		execCommand winepath.ExecCommandFunc
		spawnPrefix func() []string
		getenv      func(string) string
		stdin       io.Reader
		stdout      io.Writer
		stderr      io.Writer

		// verbose is recorded by the root command for the error handler.
		verbose bool
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config      config.Provider
		ExecCommand winepath.ExecCommandFunc
		// SpawnPrefix returns the argv prefix needed to reach host binaries.
		SpawnPrefix func() []string
		Getenv      func(string) string
		Stdin       io.Reader
		Stdout      io.Writer
		Stderr      io.Writer
	}

	// RunRequest captures all CLI inputs of one invocation as an immutable value.
	RunRequest struct {
		// Files are the host paths to open, in order.
		Files []string
		// Overrides are the flag values for the configuration fields.
		Overrides config.Overrides
		// ConfigPath is the --config flag value. Empty means the default location.
		ConfigPath string
		Verbose    bool
		DryRun     bool
		// InitConfig writes the resolved configuration and exits.
		InitConfig bool
		// Force allows InitConfig to overwrite an existing file.
		Force bool
	}
)

// NewApp creates an App from deps, filling nil fields with production defaults.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:      deps.Config,
		execCommand: deps.ExecCommand,
		spawnPrefix: deps.SpawnPrefix,
		getenv:      deps.Getenv,
		stdin:       deps.Stdin,
		stdout:      deps.Stdout,
		stderr:      deps.Stderr,
	}
	if app.execCommand == nil {
		app.execCommand = exec.CommandContext
	}
	if app.spawnPrefix == nil {
		app.spawnPrefix = platform.HostSpawnPrefix
	}
	if app.getenv == nil {
		app.getenv = os.Getenv
	}
	if app.stdin == nil {
		app.stdin = os.Stdin
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

// Run executes one invocation: resolve configuration, translate each file,
// build the launch plan and, unless dry-run, launch it.
func (a *App) Run(ctx context.Context, req RunRequest) error {
	logger := newLogger(a.stderr, req.Verbose)

	provider := a.Config
	if provider == nil {
		provider = config.NewProvider(logger)
	}

	res, err := provider.Load(ctx, config.LoadOptions{
		ConfigFilePath: req.ConfigPath,
		Overrides:      req.Overrides,
		Getenv:         a.getenv,
	})
	if err != nil {
		return err
	}
	cfg := res.Config

	logger.Debug("configuration",
		"bottle", cfg.BottleName,
		"program", cfg.ProgramName,
		"flatpak_app_id", cfg.FlatpakAppID,
		"config_file", res.Path)

	if req.InitConfig {
		return a.initConfig(res.Path, cfg, req.Force)
	}

	prefix := a.spawnPrefix()
	if len(prefix) > 0 {
		logger.Debug("running inside a sandbox, spawning on the host", "prefix", prefix)
	}

	translator := winepath.NewTranslator(
		winepath.WithExecCommand(a.execCommand),
		winepath.WithSpawnPrefix(prefix),
		winepath.WithLogger(logger),
	)
	resolved, err := translator.TranslateAll(ctx, req.Files, cfg)
	if err != nil {
		return err
	}

	plan := launch.Build(cfg, winepath.GuestPaths(resolved), launch.WithSpawnPrefix(prefix))

	if req.DryRun || req.Verbose {
		fmt.Fprintf(a.stdout, "Command: %s\n", plan)
	}
	if req.DryRun {
		return nil
	}

	launcher := launch.NewLauncher(
		launch.WithExecCommand(a.execCommand),
		launch.WithStdio(a.stdin, a.stdout, a.stderr),
		launch.WithLogger(logger),
	)
	return launcher.Run(ctx, plan)
}

func (a *App) initConfig(path string, cfg config.Config, force bool) error {
	if path == "" {
		return fmt.Errorf("no config file location available; pass --config")
	}
	if err := config.WriteFile(path, cfg, force); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, SuccessStyle.Render("Wrote configuration to ")+CmdStyle.Render(path))
	return nil
}

// logger returns the logger used outside of a request, e.g. by the error handler.
func (a *App) logger() *slog.Logger {
	return newLogger(a.stderr, a.verbose)
}
