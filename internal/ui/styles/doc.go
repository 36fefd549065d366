// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling for termchat.

# Colors (colors.go)

Theme colours are configured per display role as identifiers:

	cyan, bright_red, gray  - one of the sixteen named ANSI colours
	"39"                    - an ANSI 256-colour number
	"#7C3AED"               - a hex RGB value

ResolveColor maps an identifier to a lipgloss.Color.

# Theme (theme.go)

NewTheme builds every style from the role map in the config:

	theme, err := styles.NewTheme(cfg.App.Theme)
	fmt.Println(theme.RenderError("request failed"))

The roles are user, assistant, code, error, info, prompt and success. The
colour profile comes from termenv.EnvColorProfile, so NO_COLOR disables colour.
*/
package styles
