// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spsswrap/spss-wrapper/pkg/types"
)

type (
	// ActionableError is an error with context for user-facing error messages.
	// It provides structured information about what operation failed, what resource
	// was involved, which external command was attempted and suggestions for how
	// to fix the issue.
	//
	// Use the ErrorContext builder for convenient construction:
	//
	//	err := issue.NewErrorContext().
	//		WithIssue(issue.HostPathNotFoundId).
	//		WithOperation("resolve file path").
	//		WithResource("./data.sav").
	//		WithSuggestion("Check the file name for typos").
	//		Wrap(originalErr).
	//		Build()
	ActionableError struct {
		// Issue tags the error with its kind. Zero means untagged.
		Issue Id

		// Operation describes what was being attempted (e.g., "translate path").
		Operation string

		// Resource identifies the file, path, or entity involved (optional).
		Resource string

		// Command is the external command that was attempted (optional).
		Command []string

		// Suggestions provides hints on how to fix the issue (optional).
		Suggestions []string

		// ExitCode overrides the exit code derived from Issue when non-zero.
		ExitCode types.ExitCode

		// Cause is the underlying error that triggered this error (optional).
		Cause error
	}

	// ErrorContext is a builder for constructing ActionableError instances.
	// It provides a fluent API for setting error context incrementally.
	ErrorContext struct {
		issue       Id
		operation   string
		resource    string
		command     []string
		suggestions []string
		exitCode    types.ExitCode
		cause       error
	}
)

// --- Constructors ---

// NewErrorContext creates a new ErrorContext builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// IdOf returns the issue Id of the first ActionableError in err's chain,
// or zero if there is none.
func IdOf(err error) Id {
	var ae *ActionableError
	if errors.As(err, &ae) {
		return ae.Issue
	}
	return 0
}

// --- ActionableError Methods ---

// Error implements the error interface.
// Returns a concise error message suitable for default (non-verbose) output.
func (e *ActionableError) Error() string {
	var msg strings.Builder

	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)

	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}

	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}

	return msg.String()
}

// Unwrap returns the underlying cause error for use with errors.Is/As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Code returns the process exit code for this error. An explicit ExitCode wins,
// otherwise the code is derived from the issue Id.
func (e *ActionableError) Code() types.ExitCode {
	if e.ExitCode != 0 {
		return e.ExitCode
	}
	return e.Issue.ExitCode()
}

// Format returns a formatted error message with optional verbosity.
//
// When verbose is false:
//
//	failed to <operation>: <resource>: <cause message>
//
//	Command: <command>
//
//	  • <suggestion 1>
//	  • <suggestion 2>
//
// When verbose is true, additionally includes the full error chain.
func (e *ActionableError) Format(verbose bool) string {
	var msg strings.Builder

	msg.WriteString(e.Error())

	if len(e.Command) > 0 {
		msg.WriteString("\n\nCommand: ")
		msg.WriteString(strings.Join(e.Command, " "))
	}

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n")
		for _, suggestion := range e.Suggestions {
			msg.WriteString("\n  • ")
			msg.WriteString(suggestion)
		}
	}

	if verbose && e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		err := e.Cause
		depth := 1
		for err != nil {
			fmt.Fprintf(&msg, "\n  %d. %s", depth, err.Error())
			err = errors.Unwrap(err)
			depth++
		}
	}

	return msg.String()
}

// --- ErrorContext Methods ---

// WithIssue tags the error with an issue Id.
func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.issue = id
	return c
}

// WithOperation sets the operation being performed.
// The operation should be a verb phrase like "translate path" or "launch program".
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.operation = op
	return c
}

// WithResource sets the resource (file, path, entity) involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.resource = res
	return c
}

// WithCommand records the external command that was attempted.
func (c *ErrorContext) WithCommand(argv []string) *ErrorContext {
	c.command = append([]string(nil), argv...)
	return c
}

// WithSuggestion adds a suggestion for how to fix the issue.
// Can be called multiple times to add multiple suggestions.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.suggestions = append(c.suggestions, sug)
	return c
}

// WithSuggestions adds multiple suggestions at once.
func (c *ErrorContext) WithSuggestions(sugs ...string) *ErrorContext {
	c.suggestions = append(c.suggestions, sugs...)
	return c
}

// WithExitCode sets an explicit exit code, overriding the one derived from the issue.
func (c *ErrorContext) WithExitCode(code types.ExitCode) *ErrorContext {
	c.exitCode = code
	return c
}

// Wrap wraps an underlying error as the cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.cause = err
	return c
}

// Build creates an ActionableError from the context.
// Returns nil if no operation is set (operation is required).
func (c *ErrorContext) Build() *ActionableError {
	if c.operation == "" {
		return nil
	}

	return &ActionableError{
		Issue:       c.issue,
		Operation:   c.operation,
		Resource:    c.resource,
		Command:     c.command,
		Suggestions: c.suggestions,
		ExitCode:    c.exitCode,
		Cause:       c.cause,
	}
}

// BuildError creates an ActionableError and returns it as an error interface.
// This is a convenience method for direct use in return statements.
// Returns nil if no operation is set.
func (c *ErrorContext) BuildError() error {
	ae := c.Build()
	if ae == nil {
		return nil
	}
	return ae
}
