// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package commandinpath resolves an executable name the way a shell would, by
// walking the search path.
//
// Unlike exec.LookPath it keeps "nothing by that name" apart from "found, but it
// cannot be executed", so callers can report the two differently.
package commandinpath

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/afero"
)

const defaultPathExt = ".COM;.EXE;.BAT;.CMD"

var (
	// ErrNotFound is returned when no file with the requested name exists.
	ErrNotFound = errors.New("executable file not found")
	// ErrEmptyName is returned when the requested name is empty.
	ErrEmptyName = errors.New("empty executable name")
)

// Find returns the path of the executable called name.
// A name containing a path separator is checked as is; a bare name is searched
// for in each directory of pathEnv, where an empty entry means the current directory.
// A file that exists but is a directory or lacks execute permission yields an
// *fs.PathError wrapping fs.ErrPermission.
func Find(fsys afero.Fs, name, pathEnv string) (string, error) {
	if name == "" {
		return "", ErrEmptyName
	}

	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		var permErr error

		for _, c := range candidates(name) {
			err := checkExecutable(fsys, c)
			if err == nil {
				return c, nil
			}

			if errors.Is(err, fs.ErrPermission) && permErr == nil {
				permErr = err
			}
		}

		if permErr != nil {
			return "", permErr
		}

		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	var permErr error

	for _, dir := range filepath.SplitList(pathEnv) {
		if dir == "" {
			dir = "."
		}

		for _, c := range candidates(filepath.Join(dir, name)) {
			err := checkExecutable(fsys, c)
			if err == nil {
				return c, nil
			}

			if errors.Is(err, fs.ErrPermission) && permErr == nil {
				permErr = err
			}
		}
	}

	if permErr != nil {
		return "", permErr
	}

	return "", fmt.Errorf("%w: %q in search path", ErrNotFound, name)
}

// FindInPath calls Find on the OS filesystem with the PATH of the current process.
func FindInPath(name string) (string, error) {
	return Find(afero.NewOsFs(), name, os.Getenv("PATH"))
}

func checkExecutable(fsys afero.Fs, path string) error {
	info, err := fsys.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fs.ErrNotExist
		}

		return &fs.PathError{Op: "exec", Path: path, Err: err}
	}

	if info.IsDir() {
		return &fs.PathError{Op: "exec", Path: path, Err: fs.ErrPermission}
	}

	if runtime.GOOS != "windows" && info.Mode()&0o111 == 0 {
		return &fs.PathError{Op: "exec", Path: path, Err: fs.ErrPermission}
	}

	return nil
}

// candidates lists the file names to try for path. On Windows a name without
// an extension is also tried with every PATHEXT extension.
func candidates(path string) []string {
	if runtime.GOOS != "windows" || filepath.Ext(path) != "" {
		return []string{path}
	}

	exts := os.Getenv("PATHEXT")
	if exts == "" {
		exts = defaultPathExt
	}

	out := []string{path}
	for _, ext := range strings.Split(strings.ToLower(exts), ";") {
		if ext == "" {
			continue
		}

		out = append(out, path+ext)
	}

	return out
}
