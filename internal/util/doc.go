// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the termchat packages.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe truncation with a trailing ellipsis
//   - FirstWords: the first N whitespace-separated words of a text
//   - Slugify: filesystem-safe, case-folded rendition of a title
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	preview := util.TruncateRunes(content, 50)
//	name := util.Slugify(title, 50) + ".json"
//	err := util.AtomicWriteFile(path, data, 0600)
package util
