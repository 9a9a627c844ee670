// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// Every fatal condition of the wrapper is an ActionableError tagged with an issue
// Id. The Id selects the exit code and a Markdown remediation page from the
// catalog, so the CLI layer can render all failures from a single place.
package issue
