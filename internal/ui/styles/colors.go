// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// NAMED COLORS
// =============================================================================

// namedColors maps the colour names accepted in the theme config to the
// sixteen base ANSI colours.
var namedColors = map[string]string{
	"black":   "0",
	"red":     "1",
	"green":   "2",
	"yellow":  "3",
	"blue":    "4",
	"magenta": "5",
	"cyan":    "6",
	"white":   "7",

	"bright_black":   "8",
	"bright_red":     "9",
	"bright_green":   "10",
	"bright_yellow":  "11",
	"bright_blue":    "12",
	"bright_magenta": "13",
	"bright_cyan":    "14",
	"bright_white":   "15",
}

// aliases accepted for convenience.
var colorAliases = map[string]string{
	"gray":   "bright_black",
	"grey":   "bright_black",
	"purple": "magenta",
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ResolveColor turns a colour identifier into a lipgloss colour. Accepted forms
// are a colour name ("cyan", "bright_red"), an ANSI number from 0 to 255 ("39")
// and a hex value ("#7C3AED").
func ResolveColor(id string) (lipgloss.Color, error) {
	key := strings.ToLower(strings.TrimSpace(id))
	key = strings.ReplaceAll(key, "-", "_")
	if alias, ok := colorAliases[key]; ok {
		key = alias
	}

	if ansi, ok := namedColors[key]; ok {
		return lipgloss.Color(ansi), nil
	}
	if n, err := strconv.Atoi(key); err == nil {
		if n < 0 || n > 255 {
			return "", fmt.Errorf("ANSI colour %d out of range 0-255", n)
		}
		return lipgloss.Color(key), nil
	}
	if hexColor.MatchString(key) {
		return lipgloss.Color(strings.ToUpper(key)), nil
	}
	return "", fmt.Errorf("unknown colour %q", id)
}

// ColorNames returns the accepted colour names in ANSI order.
func ColorNames() []string {
	names := make([]string, len(namedColors))
	for name, ansi := range namedColors {
		n, _ := strconv.Atoi(ansi)
		names[n] = name
	}
	return names
}

// =============================================================================
// STATUS INDICATORS
// =============================================================================

// StatusIndicatorSet contains text indicators for status lines so the state
// is readable without colour.
type StatusIndicatorSet struct {
	Success string
	Error   string
	Info    string
}

// StatusIndicators are ASCII-only for maximum compatibility.
var StatusIndicators = StatusIndicatorSet{
	Success: "[OK]",
	Error:   "[X]",
	Info:    "[i]",
}
