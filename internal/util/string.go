// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Ellipsis is appended to shortened text.
const Ellipsis = "..."

// TruncateRunes keeps the first maxRunes characters of s and appends an
// ellipsis when anything was cut. Counting is by rune, so multi-byte
// characters are never split.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + Ellipsis
}

// FirstWords returns the first n whitespace-separated words of s joined by
// single spaces. The second result reports whether words were dropped.
func FirstWords(s string, n int) (string, bool) {
	words := strings.Fields(s)
	if n <= 0 {
		return "", len(words) > 0
	}
	if len(words) <= n {
		return strings.Join(words, " "), false
	}
	return strings.Join(words[:n], " "), true
}

// Slugify turns a title into a filesystem-safe name: case-folded, every run
// of characters that is not a letter or digit collapsed to a single
// underscore, trimmed, and limited to maxRunes characters. An empty result
// becomes "untitled".
func Slugify(title string, maxRunes int) string {
	folded := cases.Fold().String(title)

	var sb strings.Builder
	pendingSep := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && sb.Len() > 0 {
				sb.WriteByte('_')
			}
			pendingSep = false
			sb.WriteRune(r)
			continue
		}
		pendingSep = true
	}

	slug := sb.String()
	if maxRunes > 0 {
		if runes := []rune(slug); len(runes) > maxRunes {
			slug = strings.TrimRight(string(runes[:maxRunes]), "_")
		}
	}
	if slug == "" {
		return "untitled"
	}
	return slug
}

// CountLines returns the number of newline-delimited lines in s. An empty
// string has zero lines.
func CountLines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}
