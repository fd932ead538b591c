// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package launcher starts the maze application's Java process and hands it the terminal.
//
// The child receives this process's standard input, output and error descriptors
// directly; nothing is piped, buffered or captured. Run blocks until the child
// exits and does not judge its exit code.
//
// Two failures are told apart. When the interpreter cannot be found on the
// execution path the error has kind ErrExecutableNotFound and Message returns
// NotFoundMessage. Every other failure has kind ErrExecution and Message
// includes its description.
package launcher
