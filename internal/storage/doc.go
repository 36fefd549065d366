// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides conversation persistence for termchat.
//
// Each conversation is one JSON file in the conversations directory:
//
//	{
//	  "title": "What is a pointer?",
//	  "created": "2025-01-02T15:04:05.123456789Z",
//	  "last_updated": "2025-01-02T15:09:41.987654321Z",
//	  "system_prompt": "...",
//	  "messages": [{"role": "user", "content": "..."}, ...]
//	}
//
// File names start with the creation time and a slug of the title, for
// example 20250102_150405_what_is_a_pointer.json, so sorting names in
// reverse lists the newest conversation first.
//
// # Usage
//
//	store, err := storage.NewStore(paths.Conversations)
//	location, err := store.Save(conv)
//
//	summaries, skipped, err := store.List()
//	conv, err := store.Load(summaries[0].Location, cfg.SystemPrompt)
//
// Writes are atomic: a crash leaves either the old or the new file.
package storage
