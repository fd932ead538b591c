// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"os"
	"testing"

	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
)

func TestEnabledFor(t *testing.T) {
	t.Setenv(NoColor, "1")
	assert.False(t, EnabledFor(os.Stdout), "Expected color output to be disabled")

	t.Setenv(ForceColor, "1")
	assert.False(t, EnabledFor(os.Stdout), "Expected color output to be disabled as NO_COLOR is still set")

	t.Setenv(NoColor, "")
	assert.True(t, EnabledFor(os.Stdout), "Expected color output to be enabled as FORCE_COLOR is set and NO_COLOR is unset")
}

func TestEnabledFor_NotATerminal(t *testing.T) {
	t.Setenv(NoColor, "")
	t.Setenv(ForceColor, "")

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	defer f.Close() //nolint:errcheck

	assert.False(t, EnabledFor(f))
	assert.False(t, EnabledFor(nil))
}

func TestPaint(t *testing.T) {
	assert.Equal(t, "plain", Paint(false, "plain", FgRed))
	assert.Equal(t, "plain", Paint(true, "plain"))
	assert.Equal(t, "\033[31mred\033[0m", Paint(true, "red", FgRed))
	assert.Equal(t, "\033[1;92mok\033[0m", Paint(true, "ok", Bold, FgHiGreen))
}

func TestColorize(t *testing.T) {
	stubs := gostub.Stub(&enabled, true)
	defer stubs.Reset()

	assert.Equal(t, "\033[36mhi\033[0m", Colorize("hi", FgCyan))

	stubs.Stub(&enabled, false)
	assert.Equal(t, "hi", Colorize("hi", FgCyan))
}
