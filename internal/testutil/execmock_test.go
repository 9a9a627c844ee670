// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"
)

func TestHelperProcess(t *testing.T) { RunHelperProcess() }

func TestCommandRecorder(t *testing.T) {
	recorder := NewCommandRecorder()
	recorder.Responses = []Response{
		{Stdout: "first", Stderr: "warn"},
		{ExitCode: 3},
		{Missing: true},
	}
	recorder.Default = Response{Stdout: "default"}
	command := recorder.CommandFunc(t)
	ctx := context.Background()

	var stdout, stderr bytes.Buffer
	cmd := command(ctx, "flatpak", "run", "x")
	cmd.Stdout, cmd.Stderr = &stdout, &stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("first command failed: %v", err)
	}
	if stdout.String() != "first" || stderr.String() != "warn" {
		t.Errorf("first command output = %q/%q", stdout.String(), stderr.String())
	}

	err := command(ctx, "flatpak", "second").Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 3 {
		t.Errorf("second command error = %v, want exit status 3", err)
	}

	if err := command(ctx, "flatpak", "third").Run(); !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("third command error = %v, want exec.ErrNotFound", err)
	}

	out, err := command(ctx, "flatpak", "fourth").Output()
	if err != nil || string(out) != "default" {
		t.Errorf("fourth command = %q, %v", out, err)
	}

	recorder.AssertInvocationCount(t, 4)
	if got := recorder.Argv(0); len(got) != 3 || got[0] != "flatpak" || got[2] != "x" {
		t.Errorf("Argv(0) = %v", got)
	}
	if last := recorder.LastInvocation(); last == nil || last.Args[0] != "fourth" {
		t.Errorf("LastInvocation() = %v", last)
	}
}
