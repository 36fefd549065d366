// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_CreatesDefaultFile(t *testing.T) {
	paths := PathsIn(t.TempDir())

	cfg, err := Load(paths)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	info, err := os.Stat(paths.ConfigFile)
	if err != nil {
		t.Fatalf("default config file not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config permissions = %o, want 600", perm)
	}

	want := Default()
	if cfg.Claude != want.Claude {
		t.Errorf("Claude = %+v, want %+v", cfg.Claude, want.Claude)
	}
	if cfg.SystemPrompt != want.SystemPrompt {
		t.Errorf("SystemPrompt = %q", cfg.SystemPrompt)
	}

	// A second load reads back what the first one wrote.
	again, err := Load(paths)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if again.Claude != cfg.Claude || again.App.ClearOnStart != cfg.App.ClearOnStart {
		t.Errorf("round trip mismatch: %+v vs %+v", again, cfg)
	}
	for _, role := range ThemeRoles {
		if again.App.Theme[role] != want.App.Theme[role] {
			t.Errorf("theme[%s] = %q, want %q", role, again.App.Theme[role], want.App.Theme[role])
		}
	}
}

func TestLoad_ReadsFileAndFillsDefaults(t *testing.T) {
	paths := PathsIn(t.TempDir())
	content := `
system_prompt = "Talk like a pirate."

[app]
show_copy_prompt = false

[app.theme]
assistant = "#7C3AED"

[claude]
model = "claude-3-haiku-20240307"
temperature = 0.0
`
	if err := os.WriteFile(paths.ConfigFile, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(paths)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.SystemPrompt != "Talk like a pirate." {
		t.Errorf("SystemPrompt = %q", cfg.SystemPrompt)
	}
	if cfg.App.ShowCopyPrompt {
		t.Error("ShowCopyPrompt should be false")
	}
	if !cfg.App.ClearOnStart {
		t.Error("ClearOnStart should keep its default")
	}
	if cfg.App.Theme["assistant"] != "#7C3AED" {
		t.Errorf("theme[assistant] = %q", cfg.App.Theme["assistant"])
	}
	if cfg.App.Theme["error"] != "red" {
		t.Errorf("theme[error] = %q, want default red", cfg.App.Theme["error"])
	}
	if cfg.Claude.Model != "claude-3-haiku-20240307" {
		t.Errorf("Model = %q", cfg.Claude.Model)
	}
	if cfg.Claude.Temperature != 0 {
		t.Errorf("Temperature = %g, want explicit 0", cfg.Claude.Temperature)
	}
	if cfg.Claude.MaxTokens != 4096 {
		t.Errorf("MaxTokens = %d, want default 4096", cfg.Claude.MaxTokens)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	paths := PathsIn(t.TempDir())
	if err := os.WriteFile(paths.ConfigFile, []byte("[claude\nmodel = "), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(paths); err == nil {
		t.Fatal("expected an error for malformed TOML")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	paths := PathsIn(t.TempDir())
	content := "[claude]\nmax_tokens = -5\ntemperature = 3.5\n"
	if err := os.WriteFile(paths.ConfigFile, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(paths)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verrs ValidateErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("error %v is not ValidateErrors", err)
	}
	if len(verrs) != 2 {
		t.Errorf("got %d validation errors, want 2: %v", len(verrs), verrs)
	}
	if !strings.Contains(err.Error(), "claude.max_tokens") || !strings.Contains(err.Error(), "claude.temperature") {
		t.Errorf("error %q should name both fields", err)
	}
}

func TestLoad_UnwritableDirectory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	// A regular file where the config directory should be cannot hold config.toml.
	if _, err := Load(PathsIn(blocker)); err == nil {
		t.Fatal("expected an error when the config directory is unusable")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("TERMCHAT_MODEL", "claude-3-opus-latest")
	t.Setenv("TERMCHAT_MAX_TOKENS", "1024")
	t.Setenv("TERMCHAT_LOG_LEVEL", "debug")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Claude.Model != "claude-3-opus-latest" {
		t.Errorf("Model = %q", cfg.Claude.Model)
	}
	if cfg.Claude.MaxTokens != 1024 {
		t.Errorf("MaxTokens = %d", cfg.Claude.MaxTokens)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestApplyEnvOverrides_IgnoresBadNumber(t *testing.T) {
	t.Setenv("TERMCHAT_MAX_TOKENS", "lots")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Claude.MaxTokens != 4096 {
		t.Errorf("MaxTokens = %d, want unchanged default", cfg.Claude.MaxTokens)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"empty model", func(c *Config) { c.Claude.Model = " " }, "claude.model"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"empty extra theme colour", func(c *Config) { c.App.Theme["banner"] = "" }, "app.theme.banner"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tc.wantErr)
			}
		})
	}
}

func TestDefaultPaths_HomeOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)

	paths, err := DefaultPaths()
	if err != nil {
		t.Fatalf("DefaultPaths failed: %v", err)
	}
	if paths.Dir != dir {
		t.Errorf("Dir = %q, want %q", paths.Dir, dir)
	}
	if paths.Conversations != filepath.Join(dir, "conversations") {
		t.Errorf("Conversations = %q", paths.Conversations)
	}

	if err := paths.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs failed: %v", err)
	}
	if _, err := os.Stat(paths.Conversations); err != nil {
		t.Errorf("conversations dir missing: %v", err)
	}
}
