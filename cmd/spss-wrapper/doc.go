// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI for spss-wrapper.
//
// It implements the single Cobra root command, resolves configuration from
// flags, environment and the config file, translates file arguments into the
// bottle's path convention and launches the program. All fatal errors are
// rendered once by the top-level error handler installed in Execute.
package cmd
