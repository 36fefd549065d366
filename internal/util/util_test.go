// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_Basic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conv.json")
	data := []byte(`{"title":"hello"}`)

	if err := AtomicWriteFile(path, data, 0600); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != string(data) {
		t.Errorf("Content mismatch: got %q, want %q", content, data)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Permissions = %o, want 600", perm)
	}
}

func TestAtomicWriteFile_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversations", "nested", "conv.json")

	if err := AtomicWriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("File not created: %v", err)
	}
}

func TestAtomicWriteFile_OverwritesWithoutLeftovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conv.json")

	if err := AtomicWriteFile(path, []byte("first"), 0644); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if err := AtomicWriteFile(path, []byte("second"), 0644); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	content, _ := os.ReadFile(path)
	if string(content) != "second" {
		t.Errorf("Content = %q, want %q", content, "second")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the target file, found %d entries", len(entries))
	}
}

// =============================================================================
// STRING TESTS
// =============================================================================

func TestTruncateRunes(t *testing.T) {
	testCases := []struct {
		input    string
		maxRunes int
		expected string
	}{
		{"hello world", 5, "hello..."},
		{"hello", 5, "hello"},
		{"", 5, ""},
		{"hello world", 0, ""},
		{"日本語のテキスト", 3, "日本語..."},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if got := TruncateRunes(tc.input, tc.maxRunes); got != tc.expected {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tc.input, tc.maxRunes, got, tc.expected)
			}
		})
	}
}

func TestFirstWords(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		n         int
		want      string
		truncated bool
	}{
		{"fewer words", "What is a pointer?", 10, "What is a pointer?", false},
		{"exactly n", "one two three", 3, "one two three", false},
		{"more words", "one two three four", 2, "one two", true},
		{"collapses whitespace", "  spaced\n\tout   words ", 10, "spaced out words", false},
		{"empty", "", 10, "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, truncated := FirstWords(tc.input, tc.n)
			if got != tc.want || truncated != tc.truncated {
				t.Errorf("FirstWords(%q, %d) = (%q, %v), want (%q, %v)",
					tc.input, tc.n, got, truncated, tc.want, tc.truncated)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	testCases := []struct {
		input    string
		maxRunes int
		expected string
	}{
		{"What is a pointer?", 50, "what_is_a_pointer"},
		{"Hello,   World!!", 50, "hello_world"},
		{"__leading and trailing__", 50, "leading_and_trailing"},
		{"C++ / Go: tips", 50, "c_go_tips"},
		{"ÉCOLE Notes", 50, "école_notes"},
		{"!!!", 50, "untitled"},
		{"", 50, "untitled"},
		{"abcdef ghij", 7, "abcdef"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if got := Slugify(tc.input, tc.maxRunes); got != tc.expected {
				t.Errorf("Slugify(%q, %d) = %q, want %q", tc.input, tc.maxRunes, got, tc.expected)
			}
		})
	}
}

func TestCountLines(t *testing.T) {
	testCases := []struct {
		input    string
		expected int
	}{
		{"", 0},
		{"one", 1},
		{"one\ntwo", 2},
		{"one\ntwo\n", 3},
	}

	for _, tc := range testCases {
		if got := CountLines(tc.input); got != tc.expected {
			t.Errorf("CountLines(%q) = %d, want %d", tc.input, got, tc.expected)
		}
	}
}
