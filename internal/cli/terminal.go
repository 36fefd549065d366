// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

// IsTTY returns true if stdin is a terminal.
// Use this to determine if interactive prompts are possible.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY returns true if stdout is a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// IsStderrTTY returns true if stderr is a terminal.
func IsStderrTTY() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// =============================================================================
// TERMINAL SIZE
// =============================================================================

const (
	// DefaultTerminalWidth is the fallback width when detection fails
	DefaultTerminalWidth = 80
	// DefaultTerminalHeight is the fallback height when detection fails
	DefaultTerminalHeight = 24
)

// GetTerminalSize returns both width and height of the terminal.
// Returns defaults (80x24) if size cannot be determined.
func GetTerminalSize() (width, height int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return DefaultTerminalWidth, DefaultTerminalHeight
	}
	return w, h
}

// GetTerminalHeight returns the current height, read on every call so the
// pager follows resizes.
func GetTerminalHeight() int {
	_, h := GetTerminalSize()
	return h
}

// =============================================================================
// SCREEN CONTROL
// =============================================================================

// Screen wraps the escape sequences for clearing and the alternate screen.
type Screen struct {
	out *termenv.Output
	alt bool
}

// NewScreen returns a Screen writing to w.
func NewScreen(w io.Writer) *Screen {
	return &Screen{out: termenv.NewOutput(w)}
}

// EnterFullScreen switches to the alternate screen buffer.
func (s *Screen) EnterFullScreen() {
	s.out.AltScreen()
	s.alt = true
}

// Restore leaves the alternate screen if it was entered.
func (s *Screen) Restore() {
	if s.alt {
		s.out.ExitAltScreen()
		s.alt = false
	}
}

// Clear clears the screen and homes the cursor.
func (s *Screen) Clear() {
	s.out.ClearScreen()
}
