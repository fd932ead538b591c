// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the mazerun command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/mazerun"
	"github.com/matt-FFFFFF/mazerun/cmd/mazerun/config"
	"github.com/matt-FFFFFF/mazerun/cmd/mazerun/launch"
	"github.com/matt-FFFFFF/mazerun/cmd/mazerun/show"
	"github.com/matt-FFFFFF/mazerun/internal/ctxlog"
	"github.com/urfave/cli/v3"
)

// newRootCmd returns the root command for the CLI.
func newRootCmd() *cli.Command {
	return &cli.Command{
		Commands: []*cli.Command{
			config.NewCommand(),
			show.NewCommand(),
		},
		Flags:     launch.Flags(),
		Action:    launch.Action,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Name:      "mazerun",
		Description: `Mazerun starts the maze application's terminal front-end in a Java
virtual machine and hands it the terminal until it exits. Profiles change the
interpreter, class path, JVM options, working directory and environment.`,
		Usage:     "mazerun [--profile FILE]",
		Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Authors: []any{
			"Matt White (matt-FFFFFF)",
		},
		EnableShellCompletion: true,
		Version:               fmt.Sprintf("%s (commit: %s)", mazerun.Version, mazerun.Commit),
	}
}

func main() {
	ctx := ctxlog.New(context.Background(), ctxlog.DefaultLogger)

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		ctxlog.Logger(ctx).Error("command execution failed", "error", err)
		os.Exit(1)
	}
}
