// SPDX-License-Identifier: MPL-2.0

// Package winepath translates host file paths into the Windows paths seen by
// programs running inside a Bottles bottle.
//
// Each path is first validated on the host, then handed to winepath, which runs
// inside the bottle through bottles-cli:
//
//	flatpak run --command=bottles-cli <app-id> shell -b <bottle> -i "winepath -w '<path>'"
//
// Translations run one at a time, in order, and the first failure stops the run.
package winepath
