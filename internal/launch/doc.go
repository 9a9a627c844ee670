// SPDX-License-Identifier: MPL-2.0

// Package launch builds and runs the process invocation that starts the
// program inside its bottle.
//
// Build is pure: it assembles an InvocationPlan from a resolved configuration
// and the already-translated guest paths. Launcher.Run executes a plan with the
// caller's standard streams attached and blocks until the program exits.
package launch
