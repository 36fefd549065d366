// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/termchat/internal/storage"
	"github.com/jeranaias/termchat/internal/ui/styles"
)

const (
	// menuIndent lines previews up under titles.
	menuIndent = "     "
	// minTitleWidth keeps titles legible on narrow terminals.
	minTitleWidth = 12
)

// formatMenu renders the load menu: entry 0 starts a new conversation, saved
// conversations follow numbered from 1.
func formatMenu(summaries []storage.Summary, width int, theme *styles.Theme) string {
	var sb strings.Builder

	sb.WriteString(theme.Assistant.Render("Saved conversations"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("%3d. %s\n", 0, theme.Success.Render("Start a new conversation")))

	// "NNN. " + title + "  " + timestamp + "  " + "(N exchanges)"
	titleWidth := width - 5 - 2 - len(storage.TimestampLayout) - 2 - 16
	if titleWidth < minTitleWidth {
		titleWidth = minTitleWidth
	}

	for i, sum := range summaries {
		title := runewidth.Truncate(sum.Title, titleWidth, "...")
		title = runewidth.FillRight(title, titleWidth)

		sb.WriteString(fmt.Sprintf("%3d. %s  %s  %s\n",
			i+1,
			theme.User.Render(title),
			theme.Info.Render(sum.Timestamp),
			theme.Info.Render(exchangeLabel(sum.Exchanges)),
		))

		if sum.Preview != "" {
			preview := strings.Join(strings.Fields(sum.Preview), " ")
			preview = runewidth.Truncate(preview, width-len(menuIndent), "...")
			sb.WriteString(menuIndent + theme.Info.Render(preview) + "\n")
		}
	}
	return sb.String()
}

func exchangeLabel(n int) string {
	if n == 1 {
		return "(1 exchange)"
	}
	return fmt.Sprintf("(%d exchanges)", n)
}

// parseSelection reads a menu choice in [0, count].
func parseSelection(input string, count int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 0 || n > count {
		return 0, false
	}
	return n, true
}
