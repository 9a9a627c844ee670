// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/spsswrap/spss-wrapper/internal/issue"
	"github.com/spsswrap/spss-wrapper/internal/winepath"
	"github.com/spsswrap/spss-wrapper/pkg/types"
)

// ErrEmptyPlan is returned when Run is given a plan with no arguments.
var ErrEmptyPlan = errors.New("empty invocation plan")

type (
	// Launcher runs invocation plans as child processes.
	Launcher struct {
		execCommand winepath.ExecCommandFunc
		stdin       io.Reader
		stdout      io.Writer
		stderr      io.Writer
		logger      *slog.Logger
	}

	// LauncherOption configures a Launcher.
	LauncherOption func(*Launcher)
)

// WithExecCommand sets the function used to create the child process.
func WithExecCommand(fn winepath.ExecCommandFunc) LauncherOption {
	return func(l *Launcher) { l.execCommand = fn }
}

// WithStdio sets the streams attached to the child process.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) LauncherOption {
	return func(l *Launcher) {
		l.stdin = stdin
		l.stdout = stdout
		l.stderr = stderr
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *slog.Logger) LauncherOption {
	return func(l *Launcher) { l.logger = logger }
}

// NewLauncher returns a Launcher wired to the process's standard streams,
// adjusted by opts.
func NewLauncher(opts ...LauncherOption) *Launcher {
	l := &Launcher{
		execCommand: exec.CommandContext,
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run executes plan and blocks until it exits. A missing launcher binary is
// reported as LauncherMissing; a non-zero exit as LaunchFailed carrying the
// child's exit code.
func (l *Launcher) Run(ctx context.Context, plan InvocationPlan) error {
	argv := plan.Args()
	if len(argv) == 0 {
		return ErrEmptyPlan
	}

	cmd := l.execCommand(ctx, argv[0], argv[1:]...)
	cmd.Stdin = l.stdin
	cmd.Stdout = l.stdout
	cmd.Stderr = l.stderr

	l.logger.Debug("launching", "command", plan.String())
	err := cmd.Run()
	if err == nil {
		return nil
	}

	if winepath.IsLauncherMissing(err) {
		return winepath.LauncherMissingError(argv, err)
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return fmt.Errorf("failed to run %s: %w", argv[0], err)
	}

	code := types.ExitCode(exitErr.ExitCode())
	return issue.NewErrorContext().
		WithIssue(issue.LaunchFailedId).
		WithOperation("launch program").
		WithCommand(argv).
		WithExitCode(code.Failure()).
		Wrap(fmt.Errorf("program exited with code %d", code)).
		BuildError()
}
