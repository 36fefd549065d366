// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/jeranaias/termchat/internal/ui/styles"
)

// Indicator shows progress while a request is in flight. Start returns the
// function that stops it; the stop function is safe to call more than once.
type Indicator interface {
	Start(message string) (stop func())
}

// NoIndicator shows nothing. It is used when stderr is not a terminal.
type NoIndicator struct{}

// Start implements Indicator.
func (NoIndicator) Start(string) func() {
	return func() {}
}

// =============================================================================
// THINKING SPINNER
// =============================================================================

// stopMsg tells the spinner program to clear its line and exit.
type stopMsg struct{}

// thinkingModel is the bubbletea model behind ThinkingSpinner.
type thinkingModel struct {
	spinner   spinner.Model
	theme     *styles.Theme
	message   string
	startTime time.Time
	done      bool
}

func newThinkingModel(theme *styles.Theme, message string) thinkingModel {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	return thinkingModel{
		spinner:   s,
		theme:     theme,
		message:   message,
		startTime: time.Now(),
	}
}

func (m thinkingModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m thinkingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(stopMsg); ok {
		m.done = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m thinkingModel) View() string {
	if m.done {
		return ""
	}
	elapsed := time.Since(m.startTime).Round(100 * time.Millisecond)
	return m.theme.Prompt.Render(m.spinner.View()) + " " +
		m.theme.Info.Render(fmt.Sprintf("%s... (%s)", m.message, elapsed))
}

// ThinkingSpinner animates a spinner on its own line of out.
type ThinkingSpinner struct {
	out   io.Writer
	theme *styles.Theme
}

// NewThinkingSpinner creates a spinner that writes to out, normally stderr.
func NewThinkingSpinner(out io.Writer, theme *styles.Theme) *ThinkingSpinner {
	return &ThinkingSpinner{out: out, theme: theme}
}

// Start runs the spinner program in the background until stop is called.
// stop blocks until the spinner line is cleared.
func (s *ThinkingSpinner) Start(message string) func() {
	p := tea.NewProgram(
		newThinkingModel(s.theme, message),
		tea.WithOutput(s.out),
		tea.WithInput(nil),
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := p.Run(); err != nil {
			logrus.WithError(err).Debug("spinner stopped with error")
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.Send(stopMsg{})
			<-done
		})
	}
}
