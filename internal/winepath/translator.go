// SPDX-License-Identifier: MPL-2.0

package winepath

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/spsswrap/spss-wrapper/internal/config"
	"github.com/spsswrap/spss-wrapper/internal/issue"
	"github.com/spsswrap/spss-wrapper/pkg/types"
)

// DefaultLauncher is the sandbox-runtime launcher binary.
const DefaultLauncher = "flatpak"

// ErrEmptyTranslation is wrapped by errors for a helper that printed nothing.
var ErrEmptyTranslation = errors.New("winepath returned an empty result")

type (
	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// Option configures a Translator.
	Option func(*Translator)

	// Translator converts host paths to guest (Windows) paths.
	Translator struct {
		launcher    string
		spawnPrefix []string
		execCommand ExecCommandFunc
		logger      *slog.Logger
	}

	// ResolvedPath pairs a validated host path with its guest form.
	ResolvedPath struct {
		// Host is the absolute, symlink-free host path.
		Host string
		// Guest is the path as seen inside the bottle.
		Guest string
	}

	// HelperError describes a translation helper that exited non-zero.
	HelperError struct {
		ExitCode types.ExitCode
		Stdout   string
		Stderr   string
	}
)

// Error implements the error interface.
func (e *HelperError) Error() string {
	return fmt.Sprintf("command failed with exit code %d\nstdout: %s\nstderr: %s",
		e.ExitCode, strings.TrimRight(e.Stdout, "\n"), strings.TrimRight(e.Stderr, "\n"))
}

// WithExecCommand sets the function used to create commands.
func WithExecCommand(fn ExecCommandFunc) Option {
	return func(t *Translator) { t.execCommand = fn }
}

// WithLauncher sets the launcher binary (default "flatpak").
func WithLauncher(launcher string) Option {
	return func(t *Translator) { t.launcher = launcher }
}

// WithSpawnPrefix sets an argv prefix used to reach the host launcher from a
// sandbox, e.g. ["flatpak-spawn", "--host"].
func WithSpawnPrefix(prefix []string) Option {
	return func(t *Translator) { t.spawnPrefix = append([]string(nil), prefix...) }
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) { t.logger = logger }
}

// NewTranslator creates a Translator with the given options.
func NewTranslator(opts ...Option) *Translator {
	t := &Translator{
		launcher:    DefaultLauncher,
		execCommand: exec.CommandContext,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ResolveHostPath returns the absolute, symlink-normalized form of input.
// Any failure to look the path up (missing, a parent that is not a directory,
// a permission error) is reported as HostPathNotFound.
func ResolveHostPath(input string) (string, error) {
	abs, err := filepath.Abs(input)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", issue.NewErrorContext().
			WithIssue(issue.HostPathNotFoundId).
			WithOperation("open file").
			WithResource(abs).
			WithSuggestion("Check the file name for typos").
			WithSuggestion("Make sure symlinks point to an existing file").
			WithSuggestion("Make sure every parent directory is readable").
			Wrap(fmt.Errorf("file does not exist: %w", err)).
			BuildError()
	}
	return resolved, nil
}

// CommandFor returns the argv that runs winepath for hostPath in cfg's bottle.
func (t *Translator) CommandFor(hostPath string, cfg config.Config) []string {
	script := "winepath -w " + quote(hostPath)

	argv := make([]string, 0, len(t.spawnPrefix)+9)
	argv = append(argv, t.spawnPrefix...)
	argv = append(argv,
		t.launcher,
		"run",
		"--command=bottles-cli",
		cfg.FlatpakAppID,
		"shell",
		"-b", cfg.BottleName,
		"-i", script,
	)
	return argv
}

// Translate validates input on the host and translates it inside the bottle.
// No process is started when validation fails.
func (t *Translator) Translate(ctx context.Context, input string, cfg config.Config) (ResolvedPath, error) {
	hostPath, err := ResolveHostPath(input)
	if err != nil {
		return ResolvedPath{}, err
	}
	t.logger.Debug("resolved path", "input", input, "host", hostPath)

	argv := t.CommandFor(hostPath, cfg)
	t.logger.Debug("running winepath", "command", strings.Join(argv, " "))

	var stdout, stderr bytes.Buffer
	cmd := t.execCommand(ctx, argv[0], argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return ResolvedPath{}, t.runError(err, hostPath, argv, cfg, stdout.String(), stderr.String())
	}

	guest := strings.TrimSpace(stdout.String())
	if guest == "" {
		return ResolvedPath{}, issue.NewErrorContext().
			WithIssue(issue.EmptyTranslationId).
			WithOperation("translate path to Windows format").
			WithResource(hostPath).
			WithCommand(argv).
			WithSuggestion("The bottle may not be properly configured").
			WithSuggestion("The path may not be accessible from within the bottle").
			WithSuggestion("Try running manually: " + manualCommand(argv)).
			Wrap(ErrEmptyTranslation).
			BuildError()
	}

	t.logger.Debug("translated path", "host", hostPath, "guest", guest)
	return ResolvedPath{Host: hostPath, Guest: guest}, nil
}

// TranslateAll translates inputs in order. The first failure stops the run and
// is returned; later inputs are not touched.
func (t *Translator) TranslateAll(ctx context.Context, inputs []string, cfg config.Config) ([]ResolvedPath, error) {
	resolved := make([]ResolvedPath, 0, len(inputs))
	for _, input := range inputs {
		rp, err := t.Translate(ctx, input, cfg)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, rp)
	}
	return resolved, nil
}

// GuestPaths returns the guest form of each resolved path, in order.
func GuestPaths(resolved []ResolvedPath) []string {
	paths := make([]string, len(resolved))
	for i, rp := range resolved {
		paths[i] = rp.Guest
	}
	return paths
}

func (t *Translator) runError(err error, hostPath string, argv []string, cfg config.Config, stdout, stderr string) error {
	if IsLauncherMissing(err) {
		return LauncherMissingError(argv, err)
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return fmt.Errorf("failed to run %s: %w", argv[0], err)
	}

	listCmd := strings.Join(append(t.baseArgs(cfg), "list", "bottles"), " ")
	return issue.NewErrorContext().
		WithIssue(issue.TranslationFailedId).
		WithOperation("translate path to Windows format").
		WithResource(hostPath).
		WithCommand(argv).
		WithSuggestion(fmt.Sprintf("Bottle '%s' may not exist", cfg.BottleName)).
		WithSuggestion("Bottles/Flatpak may not be properly installed").
		WithSuggestion(fmt.Sprintf("The Flatpak app ID '%s' may be incorrect", cfg.FlatpakAppID)).
		WithSuggestion("To check available bottles, run: " + listCmd).
		Wrap(&HelperError{
			ExitCode: types.ExitCode(exitErr.ExitCode()),
			Stdout:   stdout,
			Stderr:   stderr,
		}).
		BuildError()
}

// baseArgs returns the argv prefix that invokes bottles-cli.
func (t *Translator) baseArgs(cfg config.Config) []string {
	args := append([]string(nil), t.spawnPrefix...)
	return append(args, t.launcher, "run", "--command=bottles-cli", cfg.FlatpakAppID)
}

// LauncherMissingError reports that the launcher binary of argv is not installed.
func LauncherMissingError(argv []string, cause error) error {
	return issue.NewErrorContext().
		WithIssue(issue.LauncherMissingId).
		WithOperation("run " + argv[0]).
		WithCommand(argv).
		WithSuggestions(
			"Ubuntu/Debian: sudo apt install flatpak",
			"Fedora: sudo dnf install flatpak",
			"Arch: sudo pacman -S flatpak",
		).
		Wrap(fmt.Errorf("'%s' command not found: %w", argv[0], cause)).
		BuildError()
}

// IsLauncherMissing reports whether err from starting a command means the
// binary is not installed.
func IsLauncherMissing(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}

// quote shell-quotes s for the in-bottle shell.
func quote(s string) string {
	q, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		// Quote rejects NUL bytes and invalid UTF-8.
		return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
	}
	return q
}

// manualCommand renders argv for copy-pasting into a shell.
func manualCommand(argv []string) string {
	parts := make([]string, len(argv))
	for i, a := range argv {
		parts[i] = quote(a)
	}
	return strings.Join(parts, " ")
}
