// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"
	"testing"

	"github.com/jeranaias/termchat/internal/config"
	"github.com/jeranaias/termchat/internal/storage"
	"github.com/jeranaias/termchat/internal/ui/styles"
)

func testTheme(t *testing.T) *styles.Theme {
	t.Helper()
	theme, err := styles.NewTheme(config.DefaultTheme())
	if err != nil {
		t.Fatalf("NewTheme failed: %v", err)
	}
	return theme
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		input  string
		count  int
		want   int
		wantOK bool
	}{
		{"0", 3, 0, true},
		{" 2 ", 3, 2, true},
		{"3", 3, 3, true},
		{"4", 3, 0, false},
		{"-1", 3, 0, false},
		{"two", 3, 0, false},
		{"", 3, 0, false},
		{"0", 0, 0, true},
	}

	for _, tc := range tests {
		got, ok := parseSelection(tc.input, tc.count)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("parseSelection(%q, %d) = (%d, %v), want (%d, %v)",
				tc.input, tc.count, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestFormatMenu(t *testing.T) {
	summaries := []storage.Summary{
		{Title: "Pointers in Go", Timestamp: "2025-01-02 15:04", Preview: "What is a\npointer?", Exchanges: 1},
		{Title: strings.Repeat("long ", 40), Timestamp: "Unknown", Exchanges: 3},
	}

	out := formatMenu(summaries, 80, testTheme(t))

	for _, want := range []string{
		"  0. Start a new conversation",
		"  1. Pointers in Go",
		"(1 exchange)",
		"What is a pointer?",
		"  2. long long",
		"(3 exchanges)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("menu missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, strings.Repeat("long ", 40)) {
		t.Error("long title should be truncated")
	}
}

func TestFormatMenu_Empty(t *testing.T) {
	out := formatMenu(nil, 80, testTheme(t))
	if !strings.Contains(out, "0. Start a new conversation") {
		t.Errorf("empty menu should still offer a new conversation:\n%s", out)
	}
}
