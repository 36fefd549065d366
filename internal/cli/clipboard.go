// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import "github.com/atotto/clipboard"

// SystemClipboard copies to the OS clipboard.
type SystemClipboard struct{}

// WriteAll implements render.Clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}
