// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/spsswrap/spss-wrapper/internal/config"
	"github.com/spsswrap/spss-wrapper/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlags holds the parsed flag values of one root command instance.
type rootFlags struct {
	bottle       string
	program      string
	flatpakAppID string
	configPath   string
	verbose      bool
	dryRun       bool
	initConfig   bool
	force        bool
}

// NewRootCommand creates the spss-wrapper root command bound to app.
func NewRootCommand(app *App) *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "spss-wrapper [flags] [files...]",
		Short: "Launch IBM SPSS through Bottles on Linux",
		Long: TitleStyle.Render("spss-wrapper") + SubtitleStyle.Render(" - Launch IBM SPSS through Bottles on Linux") + `

spss-wrapper starts SPSS inside a Bottles bottle installed as a Flatpak.
File arguments are translated to Windows paths with winepath, run inside
the bottle, before SPSS is started with them.

` + SubtitleStyle.Render("Configuration (highest priority first):") + `
  1. Flags: --bottle, --program, --flatpak-app-id
  2. Environment: ` + config.EnvBottleName + `, ` + config.EnvProgramName + `, ` + config.EnvFlatpakAppID + `
  3. Config file: $XDG_CONFIG_HOME/spss-wrapper/config.toml
  4. Defaults: bottle "` + config.DefaultBottleName + `", program "` + config.DefaultProgramName + `"`,
		Example: `  spss-wrapper                         Start SPSS
  spss-wrapper survey.sav syntax.sps   Open files in SPSS
  spss-wrapper -n data.sav             Print the command without running it
  spss-wrapper -b Stats --init-config  Save the bottle name to the config file`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.verbose = flags.verbose
			return app.Run(cmd.Context(), RunRequest{
				Files: args,
				Overrides: config.Overrides{
					BottleName:   flags.bottle,
					ProgramName:  flags.program,
					FlatpakAppID: flags.flatpakAppID,
				},
				ConfigPath: flags.configPath,
				Verbose:    flags.verbose,
				DryRun:     flags.dryRun,
				InitConfig: flags.initConfig,
				Force:      flags.force,
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.bottle, "bottle", "b", "", "bottle name (overrides env var and config file)")
	f.StringVarP(&flags.program, "program", "p", "", "program name within the bottle (overrides env var and config file)")
	f.StringVarP(&flags.flatpakAppID, "flatpak-app-id", "a", "", "Bottles Flatpak application ID")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "show configuration, resolved paths and commands")
	f.BoolVarP(&flags.dryRun, "dry-run", "n", false, "print the command that would be executed without running it")
	f.BoolVar(&flags.initConfig, "init-config", false, "write the resolved configuration to the config file and exit")
	f.BoolVarP(&flags.force, "force", "f", false, "allow --init-config to overwrite an existing config file")
	f.StringVar(&flags.configPath, "config", "", "config file (default is $HOME/.config/spss-wrapper/config.toml)")

	return cmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command with args and returns the process exit code.
func (a *App) Execute(ctx context.Context, args []string) types.ExitCode {
	root := NewRootCommand(a)
	root.SetArgs(args)
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := fang.Execute(
		ctx,
		root,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(a.handleError),
	)
	return exitCodeOf(err)
}

// Execute runs the CLI with the process arguments and exits.
// This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	os.Exit(int(app.Execute(context.Background(), os.Args[1:])))
}
