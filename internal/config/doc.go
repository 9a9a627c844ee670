// SPDX-License-Identifier: MPL-2.0

// Package config resolves the wrapper's configuration.
//
// Each field (bottle name, program name, Flatpak app ID) is taken from the first
// non-empty source in this order: explicit override, environment variable,
// the TOML file at ~/.config/spss-wrapper/config.toml (or the XDG equivalent),
// built-in default. Resolve is a pure function over those sources; the file is
// parsed with Viper and a broken file only ever produces a warning.
package config
