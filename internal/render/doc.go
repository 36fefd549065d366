// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package render turns model replies into terminal output.

# Segments (segment.go)

Parse splits a reply on ``` fences into an ordered list of prose and code
segments:

	segs := render.Parse("hello\n```go\nfmt.Println(1)\n```\nworld")
	// [Text("hello"), Code("fmt.Println(1)", "go"), Text("world")]

A fence with no language tag gets DefaultLanguage. An unterminated fence
turns the rest of the reply into code.

# Blocks (blocks.go)

Blocks renders one segment at a time: prose through glamour, code through
chroma, each inside a rounded lipgloss border coloured from the theme.

# Pager (pager.go)

Pager writes segments in order and pauses with a continuation prompt when the
next block would overflow the page. After each code block it can offer to copy
the code to the clipboard. Print replays segments without pausing.
*/
package render
