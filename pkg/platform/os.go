// SPDX-License-Identifier: MPL-2.0

package platform

// Linux is the runtime.GOOS value of the only platform with Flatpak sandboxes.
const Linux = "linux"
