// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"strings"

	"github.com/spsswrap/spss-wrapper/internal/config"
	"github.com/spsswrap/spss-wrapper/internal/winepath"
)

// InvocationPlan is the ordered argument vector for launching the program.
type InvocationPlan struct {
	args []string
}

// BuildOption configures Build.
type BuildOption func(*buildOptions)

type buildOptions struct {
	launcher    string
	spawnPrefix []string
}

// WithLauncher sets the launcher binary (default "flatpak").
func WithLauncher(launcher string) BuildOption {
	return func(o *buildOptions) { o.launcher = launcher }
}

// WithSpawnPrefix prepends prefix to the plan, e.g. ["flatpak-spawn", "--host"].
func WithSpawnPrefix(prefix []string) BuildOption {
	return func(o *buildOptions) { o.spawnPrefix = prefix }
}

// Build assembles the launch vector for cfg and the translated guest paths.
// With no paths the vector ends at the program name. Build performs no
// validation.
func Build(cfg config.Config, guestPaths []string, opts ...BuildOption) InvocationPlan {
	o := buildOptions{launcher: winepath.DefaultLauncher}
	for _, opt := range opts {
		opt(&o)
	}

	args := make([]string, 0, len(o.spawnPrefix)+9+len(guestPaths))
	args = append(args, o.spawnPrefix...)
	args = append(args,
		o.launcher,
		"run",
		"--command=bottles-cli",
		cfg.FlatpakAppID,
		"run",
		"-b", cfg.BottleName,
		"-p", cfg.ProgramName,
	)
	args = append(args, guestPaths...)
	return InvocationPlan{args: args}
}

// Args returns a copy of the argument vector.
func (p InvocationPlan) Args() []string {
	return append([]string(nil), p.args...)
}

// Len returns the number of arguments.
func (p InvocationPlan) Len() int { return len(p.args) }

// String renders the plan space-joined, as printed in dry-run mode.
func (p InvocationPlan) String() string {
	return strings.Join(p.args, " ")
}
