// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jeranaias/termchat/internal/cloud"
	"github.com/jeranaias/termchat/internal/model"
	"github.com/jeranaias/termchat/internal/render"
	"github.com/jeranaias/termchat/internal/storage"
	"github.com/jeranaias/termchat/internal/ui/styles"
)

// Prompts shown by the chat loop.
const (
	PromptFirst        = "You: "
	PromptContinuation = "...  "
	PromptSelection    = "Select a conversation (0 for new): "
)

// =============================================================================
// SESSION STATE
// =============================================================================

// ConversationStore persists conversations. storage.Store implements it.
type ConversationStore interface {
	Save(conv *model.Conversation) (string, error)
	List() ([]storage.Summary, []error, error)
	Load(location, fallbackSystemPrompt string) (*model.Conversation, error)
}

// SessionOptions carries the collaborators a Session needs.
type SessionOptions struct {
	Client    cloud.Client
	Store     ConversationStore
	Input     render.Prompter
	Pager     *render.Pager
	Theme     *styles.Theme
	Out       io.Writer
	Indicator Indicator

	// SystemPrompt seeds new conversations.
	SystemPrompt string
	// Model is shown in the welcome banner.
	Model string
	// Width is used to fit the load menu.
	Width int
	// Height reports the terminal height at render time.
	Height func() int
}

// Session is the interactive chat loop. It owns the current conversation for
// the whole run.
type Session struct {
	opts SessionOptions
	conv *model.Conversation
	log  *logrus.Entry
}

// NewSession creates a session with an empty conversation.
func NewSession(opts SessionOptions) *Session {
	if opts.Indicator == nil {
		opts.Indicator = NoIndicator{}
	}
	if opts.Height == nil {
		opts.Height = GetTerminalHeight
	}
	if opts.Width <= 0 {
		opts.Width = DefaultTerminalWidth
	}
	return &Session{
		opts: opts,
		conv: model.NewConversation(opts.SystemPrompt),
		log:  logrus.WithField("component", "session"),
	}
}

// Conversation returns the current conversation.
func (s *Session) Conversation() *model.Conversation {
	return s.conv
}

// =============================================================================
// MAIN LOOP
// =============================================================================

// Run reads entries until the user exits. Ctrl+C or end of input at the
// prompt exits like the exit command.
func (s *Session) Run(ctx context.Context) error {
	s.printWelcome()

	prompt := s.opts.Theme.Prompt.Render(PromptFirst)
	continuation := s.opts.Theme.Info.Render(PromptContinuation)

	for {
		entry, err := readEntry(s.opts.Input, prompt, continuation)
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, ErrInterrupted) {
				s.log.WithError(err).Warn("input closed")
			}
			fmt.Fprintln(s.opts.Out)
			s.exit()
			return nil
		}

		switch entry.Command {
		case CommandExit:
			s.exit()
			return nil
		case CommandLoad:
			s.loadMenu()
			continue
		}

		if entry.Text == "" {
			continue
		}
		s.submit(ctx, entry.Text)
	}
}

// =============================================================================
// MESSAGE PROCESSING
// =============================================================================

// submit sends one message. The conversation changes only when the reply
// arrives.
func (s *Session) submit(ctx context.Context, text string) {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	stop := s.opts.Indicator.Start("Thinking")
	reply, err := s.opts.Client.Send(ctx, cloud.Request{
		System:  s.conv.SystemPrompt,
		History: s.conv.Turns,
		Message: text,
	})
	stop()

	if err != nil {
		s.reportError("Request failed", err)
		return
	}

	s.conv.AppendExchange(text, reply)
	s.autosave()

	if err := s.opts.Pager.Render(render.Parse(reply), s.opts.Height()); err != nil {
		s.reportError("Could not display reply", err)
	}
}

// autosave persists the conversation after every exchange. A conversation
// whose first save failed is retried on the next exchange.
func (s *Session) autosave() {
	switch {
	case s.conv.IsPersisted():
		s.save()
	case !s.conv.IsEmpty():
		s.conv.AutoTitle()
		s.save()
	}
}

// save writes the conversation and reports failures inline.
func (s *Session) save() bool {
	location, err := s.opts.Store.Save(s.conv)
	if err != nil {
		s.reportError("Could not save conversation", err)
		return false
	}
	s.log.WithField("path", location).Debug("conversation saved")
	return true
}

// persistPending saves a conversation that has turns but no file yet.
func (s *Session) persistPending() {
	if s.conv.IsEmpty() || s.conv.IsPersisted() {
		return
	}
	s.conv.AutoTitle()
	if s.save() {
		fmt.Fprintln(s.opts.Out, s.opts.Theme.RenderInfo("Conversation saved to "+s.conv.Location))
	}
}

// exit saves pending work and says goodbye.
func (s *Session) exit() {
	s.persistPending()
	fmt.Fprintln(s.opts.Out, s.opts.Theme.RenderSuccess("Goodbye!"))
}

// =============================================================================
// LOAD MENU
// =============================================================================

// loadMenu lets the user resume a saved conversation or start a new one. The
// current conversation is kept on any failure or invalid choice.
func (s *Session) loadMenu() {
	summaries, skipped, err := s.opts.Store.List()
	if err != nil {
		s.reportError("Could not list conversations", err)
		return
	}
	for _, e := range skipped {
		fmt.Fprintln(s.opts.Out, s.opts.Theme.RenderInfo("Skipped unreadable conversation: "+e.Error()))
	}

	fmt.Fprintln(s.opts.Out)
	fmt.Fprint(s.opts.Out, formatMenu(summaries, s.opts.Width, s.opts.Theme))
	if len(summaries) == 0 {
		fmt.Fprintln(s.opts.Out, s.opts.Theme.RenderInfo("No saved conversations yet."))
	}
	fmt.Fprintln(s.opts.Out)

	line, err := s.opts.Input.ReadLine(s.opts.Theme.Prompt.Render(PromptSelection))
	if err != nil {
		s.log.WithError(err).Debug("selection prompt closed")
		return
	}

	choice, ok := parseSelection(line, len(summaries))
	if !ok {
		fmt.Fprintln(s.opts.Out, s.opts.Theme.RenderError("Invalid selection."))
		return
	}

	if choice == 0 {
		s.persistPending()
		s.conv = model.NewConversation(s.opts.SystemPrompt)
		fmt.Fprintln(s.opts.Out, s.opts.Theme.RenderSuccess("Started a new conversation."))
		return
	}

	loaded, err := s.opts.Store.Load(summaries[choice-1].Location, s.opts.SystemPrompt)
	if err != nil {
		s.reportError("Could not load conversation", err)
		return
	}

	s.persistPending()
	s.conv = loaded
	s.log.WithFields(logrus.Fields{
		"path":  loaded.Location,
		"turns": len(loaded.Turns),
	}).Info("conversation loaded")
	s.replay()
}

// replay prints every turn of the current conversation without pausing.
func (s *Session) replay() {
	fmt.Fprintln(s.opts.Out)
	fmt.Fprintln(s.opts.Out, s.opts.Theme.RenderSuccess("Loaded: "+s.conv.GetTitle()))
	fmt.Fprintln(s.opts.Out)

	for _, turn := range s.conv.Turns {
		var err error
		if turn.Role == model.RoleUser {
			err = s.opts.Pager.PrintUser(turn.Content)
		} else {
			err = s.opts.Pager.Print(render.Parse(turn.Content))
		}
		if err != nil {
			s.reportError("Could not display conversation", err)
			return
		}
	}
}

// =============================================================================
// DISPLAY
// =============================================================================

func (s *Session) printWelcome() {
	t := s.opts.Theme
	fmt.Fprintln(s.opts.Out, t.Assistant.Render("termchat")+" "+t.Info.Render("chatting with "+s.opts.Model))
	fmt.Fprintln(s.opts.Out, t.Info.Render(strings.Repeat("-", 30)))
	fmt.Fprintln(s.opts.Out, t.Info.Render("Press Enter twice to send. Type 'load' to resume a conversation, 'exit' to quit."))
	fmt.Fprintln(s.opts.Out)
}

// reportError prints one error line and logs it.
func (s *Session) reportError(what string, err error) {
	s.log.WithError(err).Error(what)
	fmt.Fprintln(s.opts.Out, s.opts.Theme.RenderError(what+": "+err.Error()))
}
