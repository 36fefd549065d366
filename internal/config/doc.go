// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides typed configuration loading for termchat.
//
// The configuration lives in a TOML file with three groups plus a top-level
// system prompt:
//
//	system_prompt = "..."
//	[app]     full_screen, clear_on_start, show_copy_prompt, theme
//	[claude]  model, max_tokens, temperature
//	[log]     level
//
// # Configuration Precedence
//
//   - Environment variables (TERMCHAT_*)
//   - <config dir>/config.toml
//   - Built-in defaults
//
// A missing config file is created from the defaults on first load.
//
// # Usage
//
//	paths, err := config.DefaultPaths()
//	cfg, err := config.Load(paths)
package config
