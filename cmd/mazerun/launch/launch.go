// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package launch holds the default action of the mazerun CLI: load a profile and
// hand the terminal to the Java process it describes.
package launch

import (
	"context"
	"errors"
	"time"

	"github.com/matt-FFFFFF/mazerun/internal/ctxlog"
	"github.com/matt-FFFFFF/mazerun/internal/launcher"
	"github.com/matt-FFFFFF/mazerun/internal/profile"
	"github.com/urfave/cli/v3"
)

const (
	profileFlag           = "profile"
	profileTimeoutFlag    = "profile-timeout"
	exitCodeFlag          = "exit-code"
	forwardSignalsFlag    = "forward-signals"
	profileEnvVar         = "MAZERUN_PROFILE"
	profileTimeoutDefault = 30 * time.Second
)

// ErrLoadProfile is returned when the profile given on the command line cannot be used.
var ErrLoadProfile = errors.New("failed to load profile")

// Flags returns the flags of the launch action. They are defined on the root
// command, so subcommands see them too.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    profileFlag,
			Aliases: []string{"p"},
			Usage: "Launch profile to use instead of the built-in terminal profile. " +
				"A local .yaml or .hcl file, or any source Hashicorp's go-getter understands.",
			Sources:   cli.EnvVars(profileEnvVar),
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.DurationFlag{
			Name:     profileTimeoutFlag,
			Usage:    "Time allowed for reading or downloading the profile",
			Value:    profileTimeoutDefault,
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:        exitCodeFlag,
			Usage:       "Exit with the Java process's exit code instead of 0",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.BoolFlag{
			Name: forwardSignalsFlag,
			Usage: "Relay SIGINT, SIGTERM and SIGQUIT to the Java process. " +
				"A second signal of the same type kills it",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
	}
}

// LoadProfile returns the profile selected by the --profile flag.
func LoadProfile(ctx context.Context, cmd *cli.Command) (*profile.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, cmd.Duration(profileTimeoutFlag))
	defer cancel()

	p, err := profile.Load(ctx, cmd.String(profileFlag))
	if err != nil {
		return nil, errors.Join(ErrLoadProfile, err)
	}

	return p, nil
}

// Action launches the selected profile and waits for it. Positional arguments
// are ignored. A launch failure is printed and is not an error of the CLI.
func Action(ctx context.Context, cmd *cli.Command) error {
	p, err := LoadProfile(ctx, cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if cmd.Args().Len() > 0 {
		ctxlog.Debug(ctx, "ignoring arguments", "args", cmd.Args().Slice())
	}

	l := launcher.New(p.Command())
	l.Dir = p.WorkingDir
	l.Env = p.Env
	l.ForwardSignals = cmd.Bool(forwardSignalsFlag)

	ctxlog.Debug(ctx, "launching profile", "profile", p.Name, "command", p.Command())

	res, err := l.Run(ctx)
	if err != nil {
		launcher.Report(cmd.Root().Writer, err)
		return nil
	}

	if cmd.Bool(exitCodeFlag) && res.ExitCode != 0 {
		return cli.Exit("", res.ExitCode)
	}

	return nil
}
