// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger in a context.Context.
//
// The default logger writes human-readable lines to standard error, so log output
// never mixes with what a launched child process writes to standard output.
// The level is read once from MAZERUN_LOG_LEVEL and defaults to WARN.
package ctxlog
