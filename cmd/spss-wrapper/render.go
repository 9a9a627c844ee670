// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"golang.org/x/term"

	"github.com/spsswrap/spss-wrapper/internal/issue"
	"github.com/spsswrap/spss-wrapper/pkg/types"
)

// handleError is the single top-level error handler. Each fatal error is
// rendered once: domain errors with their context, suggestions and help links
// (the full remediation page in verbose mode), everything else through fang's
// default.
func (a *App) handleError(w io.Writer, styles fang.Styles, err error) {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		fang.DefaultErrorHandler(w, styles, err)
		return
	}

	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.verbose))

	entry := issue.Get(ae.Issue)
	if entry == nil {
		return
	}

	if !a.verbose {
		if links := entry.ExtLinks(); len(links) > 0 {
			fmt.Fprintln(w)
			for _, link := range links {
				fmt.Fprintln(w, SubtitleStyle.Render("See also: ")+CmdStyle.Render(string(link)))
			}
		}
		return
	}

	rendered, renderErr := entry.Render(catalogStyle(w))
	if renderErr != nil {
		a.logger().Warn("failed to render issue catalog entry", "issue", ae.Issue, "error", renderErr)
		return
	}
	fmt.Fprint(w, rendered)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// exitCodeOf maps an error returned by the root command to a process exit code.
func exitCodeOf(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}

	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Code().Failure()
	}
	return types.ExitFailure
}

// catalogStyle picks the glamour style for w: colored on a terminal, plain
// otherwise.
func catalogStyle(w io.Writer) string {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "dark"
	}
	return "notty"
}
