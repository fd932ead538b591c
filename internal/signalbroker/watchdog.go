// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/mazerun/internal/ctxlog"
)

// Watch passes every signal received on sigCh to handle, together with the number of
// times that signal has now been seen. It returns when done is closed or sigCh is closed.
// A nil handle only logs.
func Watch(ctx context.Context, sigCh <-chan os.Signal, done <-chan struct{}, handle func(os.Signal, int)) {
	seen := make(map[os.Signal]int)

	for {
		select {
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			seen[sig]++
			ctxlog.Info(ctx, "watchdog", "detail", "received signal", "signal", sig.String(), "count", seen[sig])

			if handle != nil {
				handle(sig, seen[sig])
			}

		case <-done:
			return
		}
	}
}
