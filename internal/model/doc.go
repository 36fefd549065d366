// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and turns.
//
// # Key Types
//
//   - Conversation: ordered turns plus title, timestamps, system prompt and
//     the backing location assigned once the conversation is saved
//   - Turn: a single message with a role and content
//   - Role: user or assistant
//
// # Usage
//
//	conv := model.NewConversation(cfg.SystemPrompt)
//	conv.AppendExchange("What is a pointer?", reply)
//	conv.AutoTitle()
package model
