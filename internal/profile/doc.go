// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package profile describes what gets launched: the interpreter, its options,
// the class path, the main class and its arguments.
//
// The built-in profile starts the maze application's terminal front-end.
// Other profiles are written in YAML or HCL and may be fetched from anywhere
// Hashicorp's go-getter can reach.
package profile
