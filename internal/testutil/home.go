// SPDX-License-Identifier: MPL-2.0

package testutil

import "testing"

// SetHomeDir points HOME at dir and returns a cleanup function that restores
// the original value.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    t.Cleanup(testutil.SetHomeDir(t, t.TempDir()))
//	    // Test code...
//	}
func SetHomeDir(t testing.TB, dir string) func() {
	t.Helper()
	return MustSetenv(t, "HOME", dir)
}
