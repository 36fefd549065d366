// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging routes the standard logrus logger to termchat's log file.
//
// Every entry carries a session field identifying the run, so entries from
// consecutive runs appended to the same file can be told apart. The terminal
// never receives log output.
package logging
