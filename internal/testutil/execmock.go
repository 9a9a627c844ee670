// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strconv"
	"testing"
)

const (
	helperEnvWant     = "GO_WANT_HELPER_PROCESS"
	helperEnvExitCode = "GO_HELPER_EXIT_CODE"
	helperEnvStdout   = "GO_HELPER_STDOUT"
	helperEnvStderr   = "GO_HELPER_STDERR"

	// missingBinary is a command name that LookPath cannot resolve.
	missingBinary = "spss-wrapper-test-missing-binary"
)

type (
	// CommandRecorder captures arguments passed to exec.Command for verification.
	// It uses the TestHelperProcess pattern to simulate command execution: every
	// recorded command re-executes the test binary, which prints the configured
	// output and exits with the configured code.
	//
	// The package under test must declare:
	//
	//	func TestHelperProcess(t *testing.T) { testutil.RunHelperProcess() }
	CommandRecorder struct {
		// Invocations records each call to the mock exec.Command.
		Invocations []Invocation
		// Responses are consumed one per invocation; once exhausted, Default is used.
		Responses []Response
		// Default is the response used when Responses is exhausted.
		Default Response
	}

	// Invocation represents a single invocation of exec.Command.
	Invocation struct {
		Name string
		Args []string
	}

	// Response configures how a recorded command behaves.
	Response struct {
		Stdout   string
		Stderr   string
		ExitCode int
		// Missing makes the command fail to start as if the binary were not installed.
		Missing bool
	}
)

// NewCommandRecorder creates a recorder whose commands succeed with no output.
func NewCommandRecorder() *CommandRecorder {
	return &CommandRecorder{Invocations: make([]Invocation, 0)}
}

// CommandFunc returns a function that can replace exec.CommandContext.
func (m *CommandRecorder) CommandFunc(t testing.TB) func(ctx context.Context, name string, args ...string) *exec.Cmd {
	t.Helper()
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		resp := m.Default
		if idx := len(m.Invocations); idx < len(m.Responses) {
			resp = m.Responses[idx]
		}
		m.Invocations = append(m.Invocations, Invocation{Name: name, Args: slices.Clone(args)})

		if resp.Missing {
			return exec.CommandContext(ctx, missingBinary)
		}

		cs := []string{"-test.run=TestHelperProcess", "--", name}
		cs = append(cs, args...)
		//nolint:gosec // TestHelperProcess is a test-only pattern
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = []string{
			helperEnvWant + "=1",
			helperEnvExitCode + "=" + strconv.Itoa(resp.ExitCode),
			helperEnvStdout + "=" + resp.Stdout,
			helperEnvStderr + "=" + resp.Stderr,
		}
		return cmd
	}
}

// LastInvocation returns the most recent invocation, or nil if none.
func (m *CommandRecorder) LastInvocation() *Invocation {
	if len(m.Invocations) == 0 {
		return nil
	}
	return &m.Invocations[len(m.Invocations)-1]
}

// Argv returns the full argument vector (name followed by args) of invocation i.
func (m *CommandRecorder) Argv(i int) []string {
	inv := m.Invocations[i]
	return append([]string{inv.Name}, inv.Args...)
}

// AssertInvocationCount verifies the number of command invocations.
func (m *CommandRecorder) AssertInvocationCount(t testing.TB, expected int) {
	t.Helper()
	if len(m.Invocations) != expected {
		t.Errorf("expected %d invocations, got %d: %v", expected, len(m.Invocations), m.Invocations)
	}
}

// RunHelperProcess is the body of each package's TestHelperProcess. It does
// nothing unless the test binary was started by a CommandRecorder.
func RunHelperProcess() {
	if os.Getenv(helperEnvWant) != "1" {
		return
	}

	if stdout := os.Getenv(helperEnvStdout); stdout != "" {
		fmt.Fprint(os.Stdout, stdout)
	}
	if stderr := os.Getenv(helperEnvStderr); stderr != "" {
		fmt.Fprint(os.Stderr, stderr)
	}

	exitCode, err := strconv.Atoi(os.Getenv(helperEnvExitCode))
	if err != nil {
		exitCode = 0
	}
	os.Exit(exitCode)
}
