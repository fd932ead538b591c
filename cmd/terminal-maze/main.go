// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Command terminal-maze starts the maze application's terminal front-end:
//
//	java -cp app/build/classes/java/main org.mazeApp.Launcher terminal
//
// It takes no arguments. Problems starting Java are printed and the process still exits 0.
// For profiles and diagnostics use the mazerun command.
package main

import (
	"context"
	"io"
	"os"

	"github.com/matt-FFFFFF/mazerun/internal/ctxlog"
	"github.com/matt-FFFFFF/mazerun/internal/launcher"
	"github.com/matt-FFFFFF/mazerun/internal/profile"
)

func main() {
	run(ctxlog.New(context.Background(), ctxlog.DefaultLogger), os.Stdout)
}

// run launches the built-in profile and writes any failure message to w.
func run(ctx context.Context, w io.Writer) {
	res, err := launcher.New(profile.Default().Command()).Run(ctx)
	if err != nil {
		launcher.Report(w, err)
		return
	}

	ctxlog.Debug(ctx, "java exited", "exitCode", res.ExitCode, "duration", res.Duration)
}
