// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete termchat configuration.
type Config struct {
	// SystemPrompt is sent with every request of a new conversation.
	SystemPrompt string `toml:"system_prompt"`

	App    AppConfig    `toml:"app"`
	Claude ClaudeConfig `toml:"claude"`
	Log    LogConfig    `toml:"log"`
}

// AppConfig contains terminal behaviour settings.
type AppConfig struct {
	// FullScreen switches to the terminal's alternate screen for the session.
	FullScreen bool `toml:"full_screen"`
	// ClearOnStart clears the screen before the welcome banner.
	ClearOnStart bool `toml:"clear_on_start"`
	// ShowCopyPrompt asks after each code block whether to copy it.
	ShowCopyPrompt bool `toml:"show_copy_prompt"`
	// Theme maps display roles (see ThemeRoles) to colour identifiers:
	// a colour name ("cyan", "bright_red"), an ANSI number ("39") or hex ("#7C3AED").
	Theme map[string]string `toml:"theme"`
}

// ClaudeConfig contains model parameters for the Messages API.
type ClaudeConfig struct {
	Model       string  `toml:"model"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float64 `toml:"temperature"`
}

// LogConfig controls the log file.
type LogConfig struct {
	// Level is a logrus level name: "debug", "info", "warn", "error".
	Level string `toml:"level"`
}

// ThemeRoles lists the theme keys the UI looks up.
var ThemeRoles = []string{"user", "assistant", "code", "error", "info", "prompt", "success"}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// DefaultSystemPrompt is used when the config file does not set one.
const DefaultSystemPrompt = "You are a helpful assistant running in a terminal. " +
	"Answer concisely and put code in fenced code blocks tagged with their language."

// Default returns a Config with the documented default values.
func Default() *Config {
	return &Config{
		SystemPrompt: DefaultSystemPrompt,

		App: AppConfig{
			FullScreen:     false,
			ClearOnStart:   true,
			ShowCopyPrompt: true,
			Theme:          DefaultTheme(),
		},

		Claude: ClaudeConfig{
			Model:       "claude-3-5-sonnet-latest",
			MaxTokens:   4096,
			Temperature: 0.7,
		},

		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultTheme returns the default role to colour mapping.
func DefaultTheme() map[string]string {
	return map[string]string{
		"user":      "green",
		"assistant": "blue",
		"code":      "cyan",
		"error":     "red",
		"info":      "bright_black",
		"prompt":    "yellow",
		"success":   "green",
	}
}

// =============================================================================
// CONFIG PATHS
// =============================================================================

// HomeEnv overrides the configuration directory.
const HomeEnv = "TERMCHAT_HOME"

// Paths holds every on-disk location termchat uses. It is resolved once at
// startup and handed to each component that needs a path.
type Paths struct {
	Dir           string
	ConfigFile    string
	Conversations string
	History       string
	LogFile       string
}

// PathsIn returns the layout rooted at dir.
func PathsIn(dir string) Paths {
	return Paths{
		Dir:           dir,
		ConfigFile:    filepath.Join(dir, "config.toml"),
		Conversations: filepath.Join(dir, "conversations"),
		History:       filepath.Join(dir, "chat_history"),
		LogFile:       filepath.Join(dir, "termchat.log"),
	}
}

// DefaultPaths resolves the layout from TERMCHAT_HOME or ~/.termchat.
func DefaultPaths() (Paths, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return PathsIn(dir), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf("could not determine home directory: %w", err)
	}
	return PathsIn(filepath.Join(home, ".termchat")), nil
}

// EnsureDirs creates the configuration and conversation directories.
func (p Paths) EnsureDirs() error {
	if err := os.MkdirAll(p.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.MkdirAll(p.Conversations, 0755); err != nil {
		return fmt.Errorf("failed to create conversations directory: %w", err)
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads the config file at paths.ConfigFile. A missing file is created
// with the defaults. Environment overrides are applied last and the result is
// validated.
func Load(paths Paths) (*Config, error) {
	cfg := Default()

	_, err := os.Stat(paths.ConfigFile)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := SaveTOML(cfg, paths.ConfigFile); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		logrus.WithField("path", paths.ConfigFile).Info("created default config")
	case err != nil:
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	default:
		if err := LoadTOML(cfg, paths.ConfigFile); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes the TOML file at path over cfg and fills missing values
// from the defaults. Unknown keys are logged, not rejected.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	for _, key := range md.Undecoded() {
		logrus.WithField("key", key.String()).Warn("ignoring unknown config key")
	}
	fillDefaults(cfg)
	return nil
}

// fillDefaults restores defaults for values the file set to empty. Keys the
// file omits already keep the defaults Load started from.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = defaults.SystemPrompt
	}

	if cfg.App.Theme == nil {
		cfg.App.Theme = map[string]string{}
	}
	for role, color := range defaults.App.Theme {
		if strings.TrimSpace(cfg.App.Theme[role]) == "" {
			cfg.App.Theme[role] = color
		}
	}

	if cfg.Claude.Model == "" {
		cfg.Claude.Model = defaults.Claude.Model
	}
	if cfg.Claude.MaxTokens == 0 {
		cfg.Claude.MaxTokens = defaults.Claude.MaxTokens
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveTOML writes the configuration to path with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "# termchat configuration file")
	fmt.Fprintln(file, "# Theme colours accept names (cyan, bright_red), ANSI numbers (\"39\") or hex (\"#7C3AED\").")
	fmt.Fprintln(file, "")

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every recognized option.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if strings.TrimSpace(c.Claude.Model) == "" {
		errs = append(errs, ValidationError{Field: "claude.model", Message: "must not be empty"})
	}
	if c.Claude.MaxTokens <= 0 {
		errs = append(errs, ValidationError{
			Field:   "claude.max_tokens",
			Message: fmt.Sprintf("must be positive, got %d", c.Claude.MaxTokens),
		})
	}
	if c.Claude.Temperature < 0 || c.Claude.Temperature > 1 {
		errs = append(errs, ValidationError{
			Field:   "claude.temperature",
			Message: fmt.Sprintf("must be between 0 and 1, got %g", c.Claude.Temperature),
		})
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, ValidationError{Field: "log.level", Message: err.Error()})
	}

	roles := make([]string, 0, len(c.App.Theme))
	for role := range c.App.Theme {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	for _, role := range roles {
		if strings.TrimSpace(c.App.Theme[role]) == "" {
			errs = append(errs, ValidationError{Field: "app.theme." + role, Message: "colour must not be empty"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - TERMCHAT_MODEL: overrides claude.model
//   - TERMCHAT_MAX_TOKENS: overrides claude.max_tokens
//   - TERMCHAT_LOG_LEVEL: overrides log.level
func (c *Config) ApplyEnvOverrides() {
	if model := os.Getenv("TERMCHAT_MODEL"); model != "" {
		c.Claude.Model = model
	}

	if raw := os.Getenv("TERMCHAT_MAX_TOKENS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			c.Claude.MaxTokens = n
		} else {
			logrus.WithField("value", raw).Warn("ignoring non-numeric TERMCHAT_MAX_TOKENS")
		}
	}

	if level := os.Getenv("TERMCHAT_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
}
