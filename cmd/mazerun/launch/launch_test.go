// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package launch

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/matt-FFFFFF/mazerun/internal/ctxlog"
	"github.com/matt-FFFFFF/mazerun/internal/launcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"go.uber.org/goleak"
)

func newTestCmd(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:           "mazerun",
		Flags:          Flags(),
		Action:         Action,
		Writer:         w,
		ErrWriter:      io.Discard,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

func testContext(t *testing.T) context.Context {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("launch tests use shell scripts as the fake interpreter")
	}

	t.Setenv(profileEnvVar, "")

	return ctxlog.New(context.Background(), ctxlog.DefaultLogger)
}

func fakeJava(t *testing.T, script string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "java")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	t.Setenv("PATH", dir)

	return path
}

func writeProfile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func exitCode(t *testing.T, err error) int {
	t.Helper()

	var exitErr cli.ExitCoder
	require.ErrorAs(t, err, &exitErr)

	return exitErr.ExitCode()
}

func TestAction_JavaNotFound(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := testContext(t)
	t.Setenv("PATH", t.TempDir())

	var buf bytes.Buffer

	err := newTestCmd(&buf).Run(ctx, []string{"mazerun"})
	require.NoError(t, err)
	assert.Equal(t, launcher.NotFoundMessage+"\n", buf.String())
}

func TestAction_IgnoresArguments(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := testContext(t)
	t.Setenv("PATH", t.TempDir())

	var buf bytes.Buffer

	err := newTestCmd(&buf).Run(ctx, []string{"mazerun", "gui", "--", "extra"})
	require.NoError(t, err)
	assert.Equal(t, launcher.NotFoundMessage+"\n", buf.String())
}

func TestAction_ChildExitCode(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{
			name: "ignored by default",
			args: []string{"mazerun"},
		},
		{
			name:     "propagated on request",
			args:     []string{"mazerun", "--exit-code"},
			wantCode: 3,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer goleak.VerifyNone(t)

			ctx := testContext(t)
			fakeJava(t, "exit 3")

			var buf bytes.Buffer

			err := newTestCmd(&buf).Run(ctx, tc.args)
			assert.Empty(t, buf.String())

			if tc.wantCode == 0 {
				require.NoError(t, err)
				return
			}

			assert.Equal(t, tc.wantCode, exitCode(t, err))
		})
	}
}

func TestAction_Profile(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := testContext(t)
	java := fakeJava(t, `pwd > "$OUT"; echo "$@" >> "$OUT"`)

	workDir := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	path := writeProfile(t, "maze.yaml", `
executable: `+java+`
jvm_options: ["-Xmx256m"]
working_dir: `+workDir+`
args: []
env:
  OUT: `+out+`
`)

	var buf bytes.Buffer

	require.NoError(t, newTestCmd(&buf).Run(ctx, []string{"mazerun", "--profile", path}))
	assert.Empty(t, buf.String())

	got, err := os.ReadFile(out)
	require.NoError(t, err)

	wantDir, err := filepath.EvalSymlinks(workDir)
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(got), []byte("\n"))
	require.Len(t, lines, 2)

	gotDir, err := filepath.EvalSymlinks(string(lines[0]))
	require.NoError(t, err)
	assert.Equal(t, wantDir, gotDir)
	assert.Equal(t, "-Xmx256m -cp app/build/classes/java/main org.mazeApp.Launcher", string(lines[1]))
}

func TestAction_ProfileFromEnv(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := testContext(t)
	t.Setenv("PATH", t.TempDir())

	path := writeProfile(t, "maze.hcl", `executable = "javaw"`)
	t.Setenv(profileEnvVar, path)

	var buf bytes.Buffer

	require.NoError(t, newTestCmd(&buf).Run(ctx, []string{"mazerun"}))
	assert.Equal(t, launcher.NotFoundMessage+"\n", buf.String(), "javaw is not on PATH either")
}

func TestAction_BadProfile(t *testing.T) {
	tests := []struct {
		name    string
		profile func(t *testing.T) string
	}{
		{
			name:    "missing file",
			profile: func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.yaml") },
		},
		{
			name:    "unknown key",
			profile: func(t *testing.T) string { return writeProfile(t, "bad.yaml", "mainclass: Foo\n") },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := testContext(t)
			fakeJava(t, "exit 0")

			var buf bytes.Buffer

			err := newTestCmd(&buf).Run(ctx, []string{"mazerun", "--profile", tc.profile(t)})
			assert.Equal(t, 1, exitCode(t, err))
			assert.Contains(t, err.Error(), ErrLoadProfile.Error())
			assert.Empty(t, buf.String(), "nothing is launched")
		})
	}
}
