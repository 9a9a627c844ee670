// SPDX-License-Identifier: MPL-2.0

// Package platform detects whether the wrapper itself runs inside an
// application sandbox and how to reach host binaries from there.
package platform
