// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/jeranaias/termchat/internal/cloud"
)

// APIKeyEnv names the environment variable holding the API key.
const APIKeyEnv = "ANTHROPIC_API_KEY"

// SecretReader reads input without echoing it.
type SecretReader interface {
	ReadSecret(prompt string) (string, error)
}

// ResolveAPIKey returns the key from the environment, or asks for it when
// unset. The key is held in memory only. An empty answer is
// cloud.ErrNotConfigured.
func ResolveAPIKey(getenv func(string) string, prompt SecretReader) (string, error) {
	if key := strings.TrimSpace(getenv(APIKeyEnv)); key != "" {
		return key, nil
	}

	key, err := prompt.ReadSecret("Enter your Anthropic API key: ")
	if err != nil {
		return "", fmt.Errorf("%w: %v", cloud.ErrNotConfigured, err)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("%w: set %s or enter a key", cloud.ErrNotConfigured, APIKeyEnv)
	}
	return key, nil
}
