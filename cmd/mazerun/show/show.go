// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package show prints the resolved launch profile and checks that it can run,
// without starting anything.
package show

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/mazerun/cmd/mazerun/launch"
	"github.com/matt-FFFFFF/mazerun/internal/color"
	"github.com/matt-FFFFFF/mazerun/internal/commandinpath"
	"github.com/matt-FFFFFF/mazerun/internal/profile"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const classFileExt = ".class"

var (
	// ErrMarshalReport is returned when the report cannot be encoded.
	ErrMarshalReport = errors.New("failed to marshal report")
	// ErrWriteReport is returned when the report cannot be written.
	ErrWriteReport = errors.New("failed to write report")
)

// FsFactory returns the filesystem the checks look at, replaced in tests.
var FsFactory = afero.NewOsFs

// NewCommand returns the show subcommand.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Show the launch profile and check that it can start",
		Description: `Prints the profile selected with --profile, the command it launches,
and whether the interpreter, class path and main class can be found.`,
		Action: actionFunc,
	}
}

type report struct {
	Profile *profile.Profile `yaml:"profile"`
	Command []string         `yaml:"command"`
	Checks  []check          `yaml:"checks"`
}

type check struct {
	Name   string `yaml:"name"`
	OK     bool   `yaml:"ok"`
	Detail string `yaml:"detail"`
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	p, err := launch.LoadProfile(ctx, cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	r := report{
		Profile: p,
		Command: p.Command(),
		Checks:  runChecks(FsFactory(), p, os.Getenv("PATH")),
	}

	b, err := yaml.Marshal(r)
	if err != nil {
		return errors.Join(ErrMarshalReport, err)
	}

	w := cmd.Root().Writer
	if _, err := w.Write(b); err != nil {
		return errors.Join(ErrWriteReport, err)
	}

	return writeSummary(w, r.Checks)
}

func runChecks(fsys afero.Fs, p *profile.Profile, pathEnv string) []check {
	checks := []check{checkExecutable(fsys, p, pathEnv)}

	if p.ClassPath == "" {
		return checks
	}

	cp := checkClassPath(fsys, p)
	checks = append(checks, cp)

	if cp.OK {
		checks = append(checks, checkMainClass(fsys, p))
	}

	return checks
}

func checkExecutable(fsys afero.Fs, p *profile.Profile, pathEnv string) check {
	c := check{Name: "executable"}

	name := p.Executable
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		name = inWorkingDir(p, name)
	}

	path, err := commandinpath.Find(fsys, name, pathEnv)
	if err != nil {
		c.Detail = err.Error()
		return c
	}

	c.OK = true
	c.Detail = path

	return c
}

// checkClassPath looks at each directory or archive on the class path.
func checkClassPath(fsys afero.Fs, p *profile.Profile) check {
	c := check{Name: "class_path", OK: true}

	var missing []string

	for _, entry := range filepath.SplitList(p.ClassPath) {
		if _, err := fsys.Stat(inWorkingDir(p, entry)); err != nil {
			missing = append(missing, entry)
		}
	}

	if len(missing) > 0 {
		c.OK = false
		c.Detail = "not found: " + strings.Join(missing, ", ")

		return c
	}

	c.Detail = p.ClassPath

	return c
}

// checkMainClass looks for the compiled main class in the class path directories.
// Archives are not opened, so a main class inside a jar is reported as missing.
func checkMainClass(fsys afero.Fs, p *profile.Profile) check {
	c := check{Name: "main_class"}
	rel := filepath.FromSlash(strings.ReplaceAll(p.MainClass, ".", "/")) + classFileExt

	for _, entry := range filepath.SplitList(p.ClassPath) {
		path := filepath.Join(inWorkingDir(p, entry), rel)
		if ok, _ := afero.Exists(fsys, path); ok {
			c.OK = true
			c.Detail = path

			return c
		}
	}

	c.Detail = rel + " not found on the class path"

	return c
}

func inWorkingDir(p *profile.Profile, path string) string {
	if p.WorkingDir == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(p.WorkingDir, path)
}

func writeSummary(w io.Writer, checks []check) error {
	failed := 0

	for _, c := range checks {
		if !c.OK {
			failed++
		}
	}

	on := colourFor(w)

	var err error
	if failed == 0 {
		_, err = fmt.Fprintln(w, color.Paint(on, "all checks passed", color.FgGreen, color.Bold))
	} else {
		_, err = fmt.Fprintln(w, color.Paint(on, fmt.Sprintf("%d of %d checks failed", failed, len(checks)), color.FgRed, color.Bold))
	}

	if err != nil {
		return errors.Join(ErrWriteReport, err)
	}

	return nil
}

// colourFor reports whether w accepts colour. Only files can be terminals.
func colourFor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return color.EnabledFor(f)
}
