// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/termchat/internal/ui/styles"
)

func newTestBlocks(t *testing.T) *Blocks {
	t.Helper()
	theme, err := styles.NewTheme(map[string]string{"assistant": "blue", "code": "cyan", "user": "green"})
	require.NoError(t, err)
	return NewBlocks(theme, 60)
}

func TestBlocks_RenderCode(t *testing.T) {
	out := newTestBlocks(t).RenderCode("print('hi')", "python")

	assert.Contains(t, out, "python")
	assert.Contains(t, out, "╭", "rounded border")
}

func TestBlocks_RenderText(t *testing.T) {
	out := newTestBlocks(t).RenderText("Some **bold** prose.")

	assert.Contains(t, out, "Claude")
	assert.Contains(t, out, "bold")
}

func TestBlocks_RenderUser(t *testing.T) {
	out := newTestBlocks(t).RenderUser("  my question  ")

	assert.Contains(t, out, "You")
	assert.Contains(t, out, "my question")
}

func TestHighlightCode_FallsBack(t *testing.T) {
	// Unknown tags still produce output containing the source tokens.
	out := highlightCode("plain words here", "no-such-language")
	assert.True(t, strings.Contains(out, "plain"), "got %q", out)
}

func TestNewBlocks_WidthFloor(t *testing.T) {
	theme, err := styles.NewTheme(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultWidth, NewBlocks(theme, 0).width)
	assert.Equal(t, minWidth, NewBlocks(theme, 5).width)
}
