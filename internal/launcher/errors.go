// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package launcher

import (
	"errors"
	"fmt"
	"io"
)

// NotFoundMessage is printed when the interpreter cannot be located.
const NotFoundMessage = "Java not found. Please make sure it's installed and added to your PATH."

const errorMessagePrefix = "An error occurred: "

var (
	// ErrExecutableNotFound is the kind of error returned when the interpreter is not on the execution path.
	ErrExecutableNotFound = errors.New("executable not found")
	// ErrExecution is the kind of every other failure to start or wait for the child process.
	ErrExecution = errors.New("execution failed")
	// ErrEmptyCommand is returned when there is nothing to launch.
	ErrEmptyCommand = errors.New("command is empty")
)

var _ error = (*Error)(nil)

// Error is returned by Launcher.Run when the child could not be started or waited for.
// Kind is ErrExecutableNotFound or ErrExecution; Err is the underlying cause.
type Error struct {
	Kind error
	Err  error
}

// Error returns the description of the underlying cause.
func (e *Error) Error() string {
	return e.Err.Error()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func notFound(err error) *Error {
	return &Error{Kind: ErrExecutableNotFound, Err: err}
}

func execution(err error) *Error {
	return &Error{Kind: ErrExecution, Err: err}
}

// Message returns the text shown to the user for an error returned by Run.
func Message(err error) string {
	if errors.Is(err, ErrExecutableNotFound) {
		return NotFoundMessage
	}

	return errorMessagePrefix + err.Error()
}

// Report writes the message for err to w. It does nothing for a nil error.
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}

	fmt.Fprintln(w, Message(err)) //nolint:errcheck
}
