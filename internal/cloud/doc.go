// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cloud sends conversations to the Anthropic Messages API.
//
// # Key Types
//
//   - Client: the interface the chat loop depends on
//   - AnthropicClient: Client backed by anthropic-sdk-go
//   - Request: system prompt, prior turns and the new message
//   - APIError: HTTP status and message of a failed call
//
// # Usage
//
//	client, err := cloud.NewAnthropicClient(apiKey, cloud.Settings{
//	    Model:     "claude-3-5-sonnet-latest",
//	    MaxTokens: 4096,
//	})
//	reply, err := client.Send(ctx, cloud.Request{
//	    System:  "Be brief.",
//	    History: conv.Turns,
//	    Message: "Hello",
//	})
//
// Calls are blocking and are not retried. API keys are never logged; a
// SHA-256 fingerprint identifies the key instead.
package cloud
