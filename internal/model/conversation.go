// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/jeranaias/termchat/internal/util"
)

// TitleWords is the number of words of the first user turn kept in a derived title.
const TitleWords = 10

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds the turns of one chat plus the metadata that is
// persisted alongside them.
//
// Created and LastUpdated are zero until the conversation is first saved.
// Location is the backing file and stays empty until then as well.
type Conversation struct {
	Title        string
	Created      time.Time
	LastUpdated  time.Time
	SystemPrompt string
	Turns        []Turn

	// Location is the on-disk identity assigned by the store.
	Location string
}

// NewConversation creates an empty conversation using the given system prompt.
func NewConversation(systemPrompt string) *Conversation {
	return &Conversation{
		SystemPrompt: systemPrompt,
		Turns:        make([]Turn, 0),
	}
}

// =============================================================================
// TURN MANAGEMENT
// =============================================================================

// AppendExchange appends a user turn immediately followed by the assistant's
// reply. Turns are only ever added in pairs.
func (c *Conversation) AppendExchange(userText, assistantText string) {
	c.Turns = append(c.Turns, UserTurn(userText), AssistantTurn(assistantText))
}

// FirstUserTurn returns the first turn sent by the user.
func (c *Conversation) FirstUserTurn() (Turn, bool) {
	for _, t := range c.Turns {
		if t.Role == RoleUser {
			return t, true
		}
	}
	return Turn{}, false
}

// ExchangeCount approximates the number of user/assistant exchanges.
func (c *Conversation) ExchangeCount() int {
	return len(c.Turns) / 2
}

// IsEmpty returns true if there are no turns.
func (c *Conversation) IsEmpty() bool {
	return len(c.Turns) == 0
}

// IsPersisted reports whether the conversation has a backing location.
func (c *Conversation) IsPersisted() bool {
	return c.Location != ""
}

// =============================================================================
// TITLE MANAGEMENT
// =============================================================================

// DeriveTitle builds a title from the first TitleWords words of text,
// appending an ellipsis when the text was longer.
func DeriveTitle(text string) string {
	title, truncated := util.FirstWords(text, TitleWords)
	if truncated {
		title += util.Ellipsis
	}
	return title
}

// AutoTitle sets the title from the first user turn when none is set.
// It returns true if the title changed.
func (c *Conversation) AutoTitle() bool {
	if c.Title != "" {
		return false
	}
	first, ok := c.FirstUserTurn()
	if !ok {
		return false
	}
	c.Title = DeriveTitle(first.Content)
	return c.Title != ""
}

// GetTitle returns the conversation title or a default.
func (c *Conversation) GetTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return "New conversation"
}
