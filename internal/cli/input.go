// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import "strings"

// Commands recognized on the first line of an entry.
const (
	CommandExit = "exit"
	CommandLoad = "load"
)

// LineReader reads one line after printing a prompt.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Entry is one unit of user input: either a command or a message.
type Entry struct {
	Command string
	Text    string
}

// readEntry collects lines until two consecutive empty lines; the second one
// is dropped and the text is trimmed. A first line of "exit" or "load", in any
// case, returns that command at once.
func readEntry(r LineReader, prompt, continuation string) (Entry, error) {
	var lines []string

	for {
		p := continuation
		if len(lines) == 0 {
			p = prompt
		}

		line, err := r.ReadLine(p)
		if err != nil {
			return Entry{}, err
		}

		if len(lines) == 0 {
			switch cmd := strings.ToLower(strings.TrimSpace(line)); cmd {
			case CommandExit, CommandLoad:
				return Entry{Command: cmd}, nil
			}
		}

		blank := strings.TrimSpace(line) == ""
		if blank && len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
			break
		}
		lines = append(lines, line)
	}

	return Entry{Text: strings.TrimSpace(strings.Join(lines, "\n"))}, nil
}
