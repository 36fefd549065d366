// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jeranaias/termchat/internal/cloud"
	"github.com/jeranaias/termchat/internal/config"
)

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"config", &ConfigError{Err: config.ValidateErrors{{Field: "claude.model", Message: "must not be empty"}}}, ExitConfigError},
		{"auth", fmt.Errorf("startup: %w", cloud.ErrNotConfigured), ExitAuthError},
		{"other", errors.New("boom"), ExitGeneralError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := GetExitCode(tc.err); got != tc.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestConfigError_Unwrap(t *testing.T) {
	inner := config.ValidateErrors{{Field: "log.level", Message: "bad"}}
	err := error(&ConfigError{Err: inner})

	var verrs config.ValidateErrors
	if !errors.As(err, &verrs) {
		t.Fatal("ConfigError should unwrap to ValidateErrors")
	}
	if !strings.HasPrefix(err.Error(), "configuration error: log.level") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "termchat "+Version) {
		t.Errorf("output = %q", out.String())
	}
}

func TestRootCommand_RejectsArgs(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"unexpected"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.Execute(); err == nil {
		t.Error("root command should reject positional arguments")
	}
}
