// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Common helpers include environment variable management (MustSetenv, MustUnsetenv,
// SetHomeDir), directory operations (MustChdir, MustMkdirAll) and a recorder that
// replaces exec.Command with a re-exec of the test binary (CommandRecorder).
package testutil
