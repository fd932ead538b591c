// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package profile

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
)

const (
	// DefaultName is the name of the built-in profile.
	DefaultName = "terminal"
	// DefaultExecutable is the interpreter launched by the built-in profile.
	DefaultExecutable = "java"
	// DefaultClassPath is where the maze application's compiled classes are expected.
	DefaultClassPath = "app/build/classes/java/main"
	// DefaultMainClass is the entry point of the maze application.
	DefaultMainClass = "org.mazeApp.Launcher"
	// TerminalArg asks the maze application for its terminal front-end.
	TerminalArg = "terminal"

	classPathFlag = "-cp"
)

var (
	// ErrNoExecutable is returned when a profile does not name an interpreter.
	ErrNoExecutable = errors.New("executable must not be empty")
	// ErrNoMainClass is returned when a profile does not name a main class.
	ErrNoMainClass = errors.New("main_class must not be empty")
	// ErrInvalidEnv is returned for an environment variable name that cannot be passed to a process.
	ErrInvalidEnv = errors.New("invalid environment variable name")
)

// Profile describes the Java command to launch.
type Profile struct {
	Name       string            `yaml:"name,omitempty" hcl:"name,optional"`
	Executable string            `yaml:"executable,omitempty" hcl:"executable,optional"`
	JVMOptions []string          `yaml:"jvm_options,omitempty" hcl:"jvm_options,optional"`
	ClassPath  string            `yaml:"class_path,omitempty" hcl:"class_path,optional"`
	MainClass  string            `yaml:"main_class,omitempty" hcl:"main_class,optional"`
	Args       []string          `yaml:"args" hcl:"args,optional"`
	WorkingDir string            `yaml:"working_dir,omitempty" hcl:"working_dir,optional"`
	Env        map[string]string `yaml:"env,omitempty" hcl:"env,optional"`
}

// Default returns the built-in profile. Its command is
// java -cp app/build/classes/java/main org.mazeApp.Launcher terminal.
func Default() *Profile {
	return &Profile{
		Name:       DefaultName,
		Executable: DefaultExecutable,
		ClassPath:  DefaultClassPath,
		MainClass:  DefaultMainClass,
		Args:       []string{TerminalArg},
	}
}

// Command returns the full token sequence, interpreter first.
// The class path pair is omitted when ClassPath is empty.
func (p *Profile) Command() []string {
	cmd := make([]string, 0, 4+len(p.JVMOptions)+len(p.Args))
	cmd = append(cmd, p.Executable)
	cmd = append(cmd, p.JVMOptions...)

	if p.ClassPath != "" {
		cmd = append(cmd, classPathFlag, p.ClassPath)
	}

	cmd = append(cmd, p.MainClass)
	cmd = append(cmd, p.Args...)

	return cmd
}

// Validate reports every problem with the profile at once.
func (p *Profile) Validate() error {
	var err error

	if strings.TrimSpace(p.Executable) == "" {
		err = multierror.Append(err, ErrNoExecutable)
	}

	if strings.TrimSpace(p.MainClass) == "" {
		err = multierror.Append(err, ErrNoMainClass)
	}

	for _, k := range slices.Sorted(maps.Keys(p.Env)) {
		if k == "" || strings.ContainsAny(k, "=\x00") {
			err = multierror.Append(err, fmt.Errorf("%w: %q", ErrInvalidEnv, k))
		}
	}

	return err
}

// applyDefaults fills fields left out of a decoded profile.
// A nil Args means the key was absent; an empty list is kept and launches the GUI.
func (p *Profile) applyDefaults() {
	d := Default()

	if p.Name == "" {
		p.Name = d.Name
	}

	if p.Executable == "" {
		p.Executable = d.Executable
	}

	if p.ClassPath == "" {
		p.ClassPath = d.ClassPath
	}

	if p.MainClass == "" {
		p.MainClass = d.MainClass
	}

	if p.Args == nil {
		p.Args = d.Args
	}
}
