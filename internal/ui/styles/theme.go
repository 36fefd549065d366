// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Role names looked up in the theme map.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleCode      = "code"
	RoleError     = "error"
	RoleInfo      = "info"
	RolePrompt    = "prompt"
	RoleSuccess   = "success"
)

// Theme holds the styled components for the application, built from the
// role to colour map in the config.
type Theme struct {
	// ColorProfile is the detected terminal capability. NO_COLOR yields Ascii.
	ColorProfile termenv.Profile

	Colors map[string]lipgloss.Color

	// ==========================================================================
	// TEXT STYLES
	// ==========================================================================

	User      lipgloss.Style
	Assistant lipgloss.Style
	Error     lipgloss.Style
	Info      lipgloss.Style
	Prompt    lipgloss.Style
	Success   lipgloss.Style

	// ==========================================================================
	// BLOCK STYLES
	// ==========================================================================

	UserBlock      lipgloss.Style
	AssistantBlock lipgloss.Style
	CodeBlock      lipgloss.Style
	CodeLangBadge  lipgloss.Style
}

// NewTheme builds a theme from a role to colour identifier map. Roles missing
// from the map fall back to the terminal's default foreground. An identifier
// that ResolveColor rejects is an error naming the role.
func NewTheme(roles map[string]string) (*Theme, error) {
	t := &Theme{
		ColorProfile: termenv.EnvColorProfile(),
		Colors:       make(map[string]lipgloss.Color, len(roles)),
	}

	names := make([]string, 0, len(roles))
	for role := range roles {
		names = append(names, role)
	}
	sort.Strings(names)

	var bad []string
	for _, role := range names {
		c, err := ResolveColor(roles[role])
		if err != nil {
			bad = append(bad, fmt.Sprintf("%s: %v", role, err))
			continue
		}
		t.Colors[role] = c
	}
	if len(bad) > 0 {
		return nil, fmt.Errorf("invalid theme: %s", strings.Join(bad, "; "))
	}

	t.initStyles()
	return t, nil
}

// Color returns the colour configured for role, or the empty colour (terminal
// default) when the role is not set.
func (t *Theme) Color(role string) lipgloss.TerminalColor {
	if c, ok := t.Colors[role]; ok {
		return c
	}
	return lipgloss.NoColor{}
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.User = lipgloss.NewStyle().Foreground(t.Color(RoleUser)).Bold(true)
	t.Assistant = lipgloss.NewStyle().Foreground(t.Color(RoleAssistant)).Bold(true)
	t.Error = lipgloss.NewStyle().Foreground(t.Color(RoleError)).Bold(true)
	t.Info = lipgloss.NewStyle().Foreground(t.Color(RoleInfo))
	t.Prompt = lipgloss.NewStyle().Foreground(t.Color(RolePrompt)).Bold(true)
	t.Success = lipgloss.NewStyle().Foreground(t.Color(RoleSuccess))

	t.UserBlock = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Color(RoleUser)).
		Padding(0, 1)

	t.AssistantBlock = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Color(RoleAssistant)).
		Padding(0, 1)

	t.CodeBlock = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Color(RoleCode)).
		Padding(0, 1)

	t.CodeLangBadge = lipgloss.NewStyle().
		Foreground(t.Color(RoleCode)).
		Bold(true)
}

// =============================================================================
// STATUS HELPERS
// =============================================================================

// RenderError renders an error line with the error indicator.
func (t *Theme) RenderError(message string) string {
	return t.Error.Render(StatusIndicators.Error + " " + message)
}

// RenderSuccess renders a success line with the success indicator.
func (t *Theme) RenderSuccess(message string) string {
	return t.Success.Render(StatusIndicators.Success + " " + message)
}

// RenderInfo renders an informational line.
func (t *Theme) RenderInfo(message string) string {
	return t.Info.Render(message)
}
