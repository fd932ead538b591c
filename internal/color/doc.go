// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color wraps strings in ANSI escape codes when the destination can show them.
// NO_COLOR disables colour, FORCE_COLOR enables it, otherwise colour is used only
// when the file is a terminal.
package color
