// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/jeranaias/termchat/internal/model"
	"github.com/jeranaias/termchat/internal/ui/styles"
)

// BlockRenderer styles single blocks of output.
type BlockRenderer interface {
	RenderText(body string) string
	RenderCode(body, language string) string
	RenderUser(body string) string
}

// DefaultWidth is used when the terminal width is unknown.
const DefaultWidth = 80

// minWidth keeps borders readable on very narrow terminals.
const minWidth = 20

// Blocks renders segments with the theme's border colours.
type Blocks struct {
	theme     *styles.Theme
	width     int
	highlight bool
	markdown  *glamour.TermRenderer
}

// NewBlocks creates a block renderer for a terminal of the given width.
// Highlighting and markdown styling are disabled when the theme's colour
// profile is plain ASCII.
func NewBlocks(theme *styles.Theme, width int) *Blocks {
	if width <= 0 {
		width = DefaultWidth
	}
	if width < minWidth {
		width = minWidth
	}

	b := &Blocks{
		theme:     theme,
		width:     width,
		highlight: theme.ColorProfile != termenv.Ascii,
	}

	// Border and padding take four columns.
	styleOpt := glamour.WithAutoStyle()
	if !b.highlight {
		styleOpt = glamour.WithStandardStyle("notty")
	}
	md, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width-4))
	if err == nil {
		b.markdown = md
	}
	return b
}

// RenderText renders prose as markdown inside the assistant border.
func (b *Blocks) RenderText(body string) string {
	content := strings.Trim(b.renderMarkdown(body), "\n")
	title := b.theme.Assistant.Render(model.RoleAssistant.DisplayName())
	return b.theme.AssistantBlock.Render(title + "\n" + content)
}

// RenderCode renders highlighted code inside the code border with a language
// badge.
func (b *Blocks) RenderCode(body, language string) string {
	code := body
	if b.highlight {
		code = highlightCode(body, language)
	}
	code = strings.TrimRight(code, "\n")
	badge := b.theme.CodeLangBadge.Render(language)
	return b.theme.CodeBlock.Render(badge + "\n" + code)
}

// RenderUser renders a user turn for conversation replay.
func (b *Blocks) RenderUser(body string) string {
	title := b.theme.User.Render(model.RoleUser.DisplayName())
	return b.theme.UserBlock.Render(title + "\n" + strings.TrimSpace(body))
}

// renderMarkdown falls back to the raw text when glamour is unavailable.
func (b *Blocks) renderMarkdown(body string) string {
	if b.markdown == nil {
		return body
	}
	rendered, err := b.markdown.Render(body)
	if err != nil {
		return body
	}
	return rendered
}

// =============================================================================
// SYNTAX HIGHLIGHTING
// =============================================================================

// highlightCode applies chroma highlighting. The lexer is chosen by tag, then
// by content analysis, then plain text.
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}
