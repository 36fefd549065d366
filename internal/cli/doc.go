// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the termchat command and its interactive chat loop.
//
// # Key Types
//
//   - Session: the chat loop owning the current conversation
//   - Console: liner-backed line input with history, raw keypresses and
//     masked secret input
//   - Indicator: the "Thinking" spinner shown while a request is in flight
//
// # Usage
//
//	if err := cli.Execute(); err != nil {
//	    cli.DisplayError(err)
//	    os.Exit(cli.GetExitCode(err))
//	}
//
// # Chat Input
//
// A message may span several lines. Two consecutive empty lines send it.
// Typing "exit" or "load" as the first line runs that command instead:
//
//   - exit: save the conversation if needed and quit
//   - load: pick a saved conversation to resume, or 0 for a new one
//
// Ctrl+C or Ctrl+D at the prompt exits like "exit".
package cli
