// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"os"
	"runtime"
	"sync"
)

// Sandbox type constants.
const (
	// SandboxNone indicates no sandbox environment detected.
	SandboxNone SandboxType = ""
	// SandboxFlatpak indicates a Flatpak sandbox environment.
	SandboxFlatpak SandboxType = "flatpak"

	flatpakInfoPath = "/.flatpak-info"
)

// detectOnce caches the sandbox detection result for the lifetime of the process.
//
// INVARIANT: detectSandboxFrom MUST NOT panic; sync.OnceValue re-panics on
// every later call.
var detectOnce = sync.OnceValue(func() SandboxType {
	return detectSandboxFrom(runtime.GOOS, statFile)
})

// SandboxType identifies the type of application sandbox, if any.
type SandboxType string

// DetectSandbox returns the type of application sandbox the current process is
// running in. The result is cached after the first call.
//
// A process started from a Flatpak'd file manager or IDE inherits its sandbox;
// the host's flatpak binary is then only reachable through flatpak-spawn.
func DetectSandbox() SandboxType {
	return detectOnce()
}

// HostSpawnPrefix returns the argv prefix needed to run a host binary from the
// current sandbox, or nil when no prefix is needed.
func HostSpawnPrefix() []string {
	return SpawnPrefixFor(DetectSandbox())
}

// SpawnPrefixFor returns the host spawn prefix for a given sandbox type.
// This is a pure function that does not depend on cached detection state.
func SpawnPrefixFor(st SandboxType) []string {
	switch st {
	case SandboxFlatpak:
		return []string{"flatpak-spawn", "--host"}
	default:
		return nil
	}
}

// detectSandboxFrom performs sandbox detection for goos using the provided
// stat function. Flatpak sandboxes only exist on Linux.
func detectSandboxFrom(goos string, statFile func(string) error) SandboxType {
	if goos != Linux {
		return SandboxNone
	}
	// The /.flatpak-info file is always present inside Flatpak sandboxes.
	if err := statFile(flatpakInfoPath); err == nil {
		return SandboxFlatpak
	}
	return SandboxNone
}

func statFile(path string) error {
	_, err := os.Stat(path)
	return err
}
