// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package profile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/mazerun/internal/ctxlog"
	"github.com/spf13/afero"
)

const (
	forcedGetterSeparator = "::"
	schemeSeparator       = "://"
	subdirSeparator       = "//"
)

// ErrGetProfile is returned when a profile document cannot be read or fetched.
var ErrGetProfile = errors.New("failed to get profile")

// FsFactory returns the filesystem local profile files are read from.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Load returns the profile found at src, or the built-in profile when src is empty.
// src is either a local file path or a go-getter source such as
// "git::https://github.com/org/repo//profiles/maze.yaml?ref=main" or an https URL.
func Load(ctx context.Context, src string) (*Profile, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		ctxlog.Debug(ctx, "using built-in profile", "name", DefaultName)
		return Default(), nil
	}

	var (
		data []byte
		name string
		err  error
	)

	if isRemote(src) {
		data, name, err = fetch(ctx, src)
	} else {
		name = src
		data, err = afero.ReadFile(FsFactory(), src)
	}

	if err != nil {
		return nil, errors.Join(ErrGetProfile, err)
	}

	ctxlog.Debug(ctx, "read profile", "source", src, "bytes", len(data))

	return Decode(name, data)
}

func isRemote(src string) bool {
	return strings.Contains(src, forcedGetterSeparator) || strings.Contains(src, schemeSeparator)
}

// fetch downloads src with go-getter and returns its content and a file name
// whose extension selects the decoder.
func fetch(ctx context.Context, src string) ([]byte, string, error) {
	tmpDir, err := os.MkdirTemp("", "mazerun-profile-*")
	if err != nil {
		return nil, "", err
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, "", err
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     src,
		Pwd:     wd,
		GetMode: getter.ModeFile,
	}

	name := path.Base(stripQuery(src))
	target := filepath.Join(tmpDir, "profile"+path.Ext(name))
	req.Dst = target

	// A "//" subdirectory means the source is a directory (e.g. a git repository)
	// and the profile is a file inside it.
	if dir, file := splitSubdir(src); file != "" {
		req.Src = dir
		req.Dst = filepath.Join(tmpDir, "src")
		req.GetMode = getter.ModeDir
		name = file
		target = filepath.Join(req.Dst, filepath.FromSlash(file))
	}

	ctxlog.Debug(ctx, "fetching profile", "source", req.Src, "mode", req.GetMode)

	if _, err := client.Get(ctx, req); err != nil {
		return nil, "", fmt.Errorf("fetching %s: %w", src, err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return nil, "", err
	}

	return data, name, nil
}

// splitSubdir splits a go-getter source at its "//" subdirectory marker.
// The query string stays with the directory source. It returns empty strings
// when src has no subdirectory.
func splitSubdir(src string) (string, string) {
	base, query := src, ""
	if i := strings.Index(src, "?"); i >= 0 {
		base, query = src[:i], src[i:]
	}

	start := 0
	if i := strings.Index(base, schemeSeparator); i >= 0 {
		start = i + len(schemeSeparator)
	}

	i := strings.Index(base[start:], subdirSeparator)
	if i < 0 {
		return "", ""
	}

	sub := strings.Trim(base[start+i+len(subdirSeparator):], "/")
	if sub == "" {
		return "", ""
	}

	return base[:start+i] + query, sub
}

func stripQuery(src string) string {
	if i := strings.Index(src, "?"); i >= 0 {
		return src[:i]
	}

	return src
}
