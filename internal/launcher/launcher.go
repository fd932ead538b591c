// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package launcher

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/matt-FFFFFF/mazerun/internal/commandinpath"
	"github.com/matt-FFFFFF/mazerun/internal/ctxlog"
	"github.com/matt-FFFFFF/mazerun/internal/signalbroker"
	"github.com/spf13/afero"
)

// startProcess is os.StartProcess, replaced in tests.
var startProcess = os.StartProcess

// Result describes a child process that ran to completion.
type Result struct {
	Path     string        // Resolved path of the executable.
	Args     []string      // Argument vector passed to the child, starting with the command name as given.
	Pid      int           // Process ID of the child.
	ExitCode int           // Exit code of the child, -1 if it was terminated by a signal.
	Duration time.Duration // Time between start and exit.
}

// Launcher runs one command as a child process that shares this process's terminal.
type Launcher struct {
	Command []string          // Interpreter followed by its arguments.
	Dir     string            // Working directory of the child, empty to inherit.
	Env     map[string]string // Variables added to the inherited environment.

	// Standard streams handed to the child. Nil means the parent's own.
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File

	// ForwardSignals relays SIGINT, SIGTERM and SIGQUIT received by this process
	// to the child. A second signal of the same type kills the child. When false
	// only SIGINT and SIGQUIT are caught, so this process keeps waiting while the
	// child decides what to do with the ones the terminal sends it.
	ForwardSignals bool

	Fs afero.Fs // Filesystem used to resolve the executable, defaults to the OS.

	sigCh chan os.Signal // Channel to receive signals, allows mocking in test.
}

// New returns a Launcher for command using the parent's standard streams.
func New(command []string) *Launcher {
	return &Launcher{
		Command: slices.Clone(command),
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Run starts the child and blocks until it exits. Any exit code is a success.
// Failures are returned as *Error: ErrExecutableNotFound when the interpreter is
// not on the execution path, ErrExecution for everything else.
func (l *Launcher) Run(ctx context.Context) (*Result, error) {
	logger := ctxlog.Logger(ctx).With("component", "launcher")

	if len(l.Command) == 0 {
		return nil, execution(ErrEmptyCommand)
	}

	path, err := l.resolve(l.Command[0])
	if err != nil {
		if errors.Is(err, commandinpath.ErrNotFound) {
			logger.Debug("executable not found", "name", l.Command[0], "error", err)
			return nil, notFound(err)
		}

		logger.Debug("executable not usable", "name", l.Command[0], "error", err)

		return nil, execution(err)
	}

	res := &Result{
		Path: path,
		Args: slices.Clone(l.Command),
	}

	logger.Debug("command info", "path", path, "cwd", l.Dir, "args", res.Args[1:])

	sigCh := l.sigCh
	if sigCh == nil {
		sigCh = signalbroker.New(ctx, l.caughtSignals()...)
		defer signalbroker.Stop(ctx, sigCh)
	}

	start := time.Now()

	ps, err := startProcess(path, res.Args, &os.ProcAttr{
		Dir:   l.Dir,
		Env:   l.environ(),
		Files: l.files(),
	})
	if err != nil {
		logger.Debug("could not start process", "error", err)
		return nil, execution(err)
	}

	res.Pid = ps.Pid
	logger.Info("process started", "pid", ps.Pid)

	done := make(chan struct{})

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		signalbroker.Watch(ctx, sigCh, done, l.signalHandler(ctx, ps))
	}()

	state, err := ps.Wait()

	close(done)
	wg.Wait()

	res.Duration = time.Since(start)

	if err != nil {
		logger.Debug("wait failed", "pid", ps.Pid, "error", err)
		return nil, execution(err)
	}

	res.ExitCode = state.ExitCode()
	logger.Info("process exited", "pid", ps.Pid, "exitCode", res.ExitCode, "duration", res.Duration)

	return res, nil
}

// resolve finds the executable. A relative name containing a separator is
// taken relative to the child's working directory, like a shell would after cd.
func (l *Launcher) resolve(name string) (string, error) {
	fsys := l.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	if l.Dir != "" && !filepath.IsAbs(name) && strings.ContainsAny(name, `/`+string(filepath.Separator)) {
		name = filepath.Join(l.Dir, name)
	}

	path, err := commandinpath.Find(fsys, name, os.Getenv("PATH"))
	if err != nil {
		return "", err
	}

	// The child changes directory before exec, so a relative path would be
	// looked up from the wrong place.
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", err
		}

		path = abs
	}

	return path, nil
}

func (l *Launcher) environ() []string {
	env := os.Environ()

	for _, k := range slices.Sorted(maps.Keys(l.Env)) {
		env = append(env, fmt.Sprintf("%s=%s", k, l.Env[k]))
	}

	return env
}

func (l *Launcher) files() []*os.File {
	return []*os.File{
		orDefault(l.Stdin, os.Stdin),
		orDefault(l.Stdout, os.Stdout),
		orDefault(l.Stderr, os.Stderr),
	}
}

func orDefault(f, def *os.File) *os.File {
	if f == nil {
		return def
	}

	return f
}

// caughtSignals lists the signals held off while the child runs. Without
// forwarding only the ones the terminal also sends to the child are caught,
// so SIGTERM aimed at this process alone keeps its default action.
// Nil means every termination signal.
func (l *Launcher) caughtSignals() []os.Signal {
	if l.ForwardSignals {
		return nil
	}

	return []os.Signal{os.Interrupt, syscall.SIGQUIT}
}

// signalHandler returns what Watch does with each caught signal. Without
// forwarding it returns nil and the signal is only logged.
func (l *Launcher) signalHandler(ctx context.Context, ps *os.Process) func(os.Signal, int) {
	if !l.ForwardSignals {
		return nil
	}

	return func(s os.Signal, count int) {
		if count > 1 {
			ctxlog.Info(ctx, "received duplicate signal, killing process", "signal", s.String(), "pid", ps.Pid)
			killPs(ctx, ps)

			return
		}

		if err := ps.Signal(s); err != nil {
			ctxlog.Info(ctx, "failed to send signal", "signal", s.String(), "error", err)
		}
	}
}

func killPs(ctx context.Context, ps *os.Process) {
	if err := ps.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			ctxlog.Debug(ctx, "process already done", "pid", ps.Pid)
			return
		}

		ctxlog.Error(ctx, "process kill error", "pid", ps.Pid, "error", err)

		return
	}

	ctxlog.Info(ctx, "process killed", "pid", ps.Pid)
}
