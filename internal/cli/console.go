// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// ErrInterrupted is returned when the user presses Ctrl+C at a prompt.
var ErrInterrupted = errors.New("interrupted")

// ctrlC is the byte a raw-mode terminal delivers for Ctrl+C.
const ctrlC = 3

// =============================================================================
// CONSOLE
// =============================================================================

// Console provides line editing with persistent history, single keypress
// reads and masked input.
type Console struct {
	line        *liner.State
	historyFile string
	out         io.Writer
}

// NewConsole creates a Console and loads history from historyFile.
func NewConsole(historyFile string) *Console {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	c := &Console{
		line:        line,
		historyFile: historyFile,
		out:         os.Stdout,
	}
	c.LoadHistory()
	return c
}

// LoadHistory loads command history from file.
func (c *Console) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		if _, err := c.line.ReadHistory(f); err != nil {
			logrus.WithError(err).Debug("failed to read input history")
		}
		f.Close()
	}
}

// ReadLine reads a line of input with the given prompt. Non-blank lines are
// added to history. Ctrl+C returns ErrInterrupted and Ctrl+D returns io.EOF.
func (c *Console) ReadLine(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", ErrInterrupted
		}
		return "", err
	}

	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// ReadKey prints prompt and waits for one keypress. Without a terminal it
// reads a whole line and returns its first character, or '\n' for an empty
// line.
func (c *Console) ReadKey(prompt string) (rune, error) {
	if !IsTTY() {
		line, err := c.line.Prompt(prompt)
		if err != nil {
			return 0, err
		}
		if r, _ := utf8.DecodeRuneInString(line); r != utf8.RuneError {
			return r, nil
		}
		return '\n', nil
	}

	fmt.Fprint(c.out, prompt)
	defer fmt.Fprintln(c.out)

	fd := int(os.Stdin.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return 0, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer term.Restore(fd, state)

	buf := make([]byte, utf8.UTFMax)
	n, err := os.Stdin.Read(buf)
	if err != nil {
		return 0, err
	}
	if n == 1 && buf[0] == ctrlC {
		return 0, ErrInterrupted
	}
	r, _ := utf8.DecodeRune(buf[:n])
	return r, nil
}

// ReadSecret prints prompt and reads a line without echo.
func (c *Console) ReadSecret(prompt string) (string, error) {
	if !IsTTY() {
		return c.line.Prompt(prompt)
	}

	fmt.Fprint(c.out, prompt)
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(c.out)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(secret), nil
}

// SaveHistory persists command history to file with secure permissions.
func (c *Console) SaveHistory() {
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		logrus.WithError(err).Warn("failed to open history file")
		return
	}
	defer f.Close()

	if _, err := c.line.WriteHistory(f); err != nil {
		logrus.WithError(err).Warn("failed to write history file")
	}
}

// Close saves history and closes the liner.
func (c *Console) Close() {
	c.SaveHistory()
	c.line.Close()
}
