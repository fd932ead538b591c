// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config prints example launch profiles.
package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/mazerun/internal/profile"
	"github.com/urfave/cli/v3"
)

const formatFlag = "format"

var examples = map[string]string{
	"yaml": profile.ExampleYAML,
	"yml":  profile.ExampleYAML,
	"hcl":  profile.ExampleHCL,
}

// NewCommand returns the config subcommand.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Print an example launch profile",
		Description: `Prints a profile equivalent to the built-in one. Save it to a file,
edit it, and pass it to --profile.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     formatFlag,
				Aliases:  []string{"f"},
				Usage:    "Profile format, yaml or hcl",
				Value:    "yaml",
				OnlyOnce: true,
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(_ context.Context, cmd *cli.Command) error {
	format := strings.ToLower(strings.TrimSpace(cmd.String(formatFlag)))

	example, ok := examples[format]
	if !ok {
		return cli.Exit(fmt.Sprintf("unknown format %q, use yaml or hcl", format), 1)
	}

	if _, err := fmt.Fprint(cmd.Root().Writer, example); err != nil {
		return cli.Exit("failed to write example: "+err.Error(), 1)
	}

	return nil
}
