// SPDX-License-Identifier: MPL-2.0

package config

import "strings"

// Resolve merges the sources into a Config. Every field is resolved
// independently; whitespace-only candidates count as empty.
func Resolve(src Sources) Config {
	getenv := src.Getenv
	if getenv == nil {
		getenv = func(string) string { return "" }
	}

	return Config{
		BottleName: firstNonEmpty(
			src.Overrides.BottleName,
			getenv(EnvBottleName),
			src.File.BottleName,
			DefaultBottleName,
		),
		ProgramName: firstNonEmpty(
			src.Overrides.ProgramName,
			getenv(EnvProgramName),
			src.File.ProgramName,
			DefaultProgramName,
		),
		FlatpakAppID: firstNonEmpty(
			src.Overrides.FlatpakAppID,
			getenv(EnvFlatpakAppID),
			src.File.FlatpakAppID,
			DefaultFlatpakAppID,
		),
	}
}

// firstNonEmpty returns the first candidate that is not blank, trimmed.
// The last candidate is always a non-empty default.
func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if trimmed := strings.TrimSpace(c); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
