// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jeranaias/termchat/internal/ui/styles"
	"github.com/jeranaias/termchat/internal/util"
)

const (
	// PageMargin is the number of terminal rows kept free on each page.
	PageMargin = 5
	// CodeOverhead approximates the rows a code block adds around its body.
	CodeOverhead = 5
)

// Prompts shown by the pager.
const (
	ContinuePrompt = "-- More -- press Enter to continue "
	CopyPrompt     = "Press 'c' to copy this code, any other key to continue "
)

// Prompter reads user responses from the terminal.
type Prompter interface {
	// ReadLine prints prompt and blocks until a full line is entered.
	ReadLine(prompt string) (string, error)
	// ReadKey prints prompt and blocks for a single keypress.
	ReadKey(prompt string) (rune, error)
}

// Clipboard receives copied code.
type Clipboard interface {
	WriteAll(text string) error
}

// Pager writes rendered segments to out, one page at a time.
type Pager struct {
	out       io.Writer
	blocks    BlockRenderer
	prompter  Prompter
	clipboard Clipboard
	theme     *styles.Theme

	// CopyPrompt enables the copy offer after each code block.
	CopyPrompt bool
}

// NewPager creates a pager.
func NewPager(out io.Writer, blocks BlockRenderer, prompter Prompter, clipboard Clipboard, theme *styles.Theme) *Pager {
	return &Pager{
		out:       out,
		blocks:    blocks,
		prompter:  prompter,
		clipboard: clipboard,
		theme:     theme,
	}
}

// Estimate returns the row count the pager budgets for seg.
func Estimate(seg Segment) int {
	if seg.IsCode() {
		return util.CountLines(seg.Body) + CodeOverhead
	}
	return util.CountLines(strings.TrimSpace(seg.Body))
}

// PageSize returns the rows available per page on a terminal of the given
// height. It is never less than one.
func PageSize(height int) int {
	if n := height - PageMargin; n > 0 {
		return n
	}
	return 1
}

// Render writes every segment in order. Before a block that would overflow
// the current page it waits for the continuation prompt, except at the top of
// a page. If the terminal stops answering prompts the rest is written without
// pausing.
func (p *Pager) Render(segments []Segment, height int) error {
	maxLines := PageSize(height)
	current := 0
	interactive := true

	for _, seg := range segments {
		estimate := Estimate(seg)

		if interactive && current > 0 && current+estimate > maxLines {
			if _, err := p.prompter.ReadLine(p.theme.Prompt.Render(ContinuePrompt)); err != nil {
				logrus.WithError(err).Debug("continuation prompt closed, paging disabled")
				interactive = false
			}
			current = 0
		}

		if err := p.write(seg); err != nil {
			return err
		}
		current += estimate

		if seg.IsCode() && p.CopyPrompt && interactive {
			if !p.offerCopy(seg) {
				interactive = false
			}
		}
	}
	return nil
}

// Print writes every segment with no pauses and no copy prompts.
func (p *Pager) Print(segments []Segment) error {
	for _, seg := range segments {
		if err := p.write(seg); err != nil {
			return err
		}
	}
	return nil
}

// PrintUser writes a user turn.
func (p *Pager) PrintUser(text string) error {
	_, err := fmt.Fprintln(p.out, p.blocks.RenderUser(text))
	return err
}

func (p *Pager) write(seg Segment) error {
	var block string
	if seg.IsCode() {
		block = p.blocks.RenderCode(seg.Body, seg.Language)
	} else {
		block = p.blocks.RenderText(seg.Body)
	}
	if _, err := fmt.Fprintln(p.out, block); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// offerCopy asks once whether to copy the code. It reports false when the
// prompt could not be read.
func (p *Pager) offerCopy(seg Segment) bool {
	key, err := p.prompter.ReadKey(p.theme.Prompt.Render(CopyPrompt))
	if err != nil {
		logrus.WithError(err).Debug("copy prompt closed")
		return false
	}
	if key != 'c' {
		return true
	}

	if err := p.clipboard.WriteAll(seg.Body); err != nil {
		logrus.WithError(err).Warn("clipboard copy failed")
		fmt.Fprintln(p.out, p.theme.RenderError("Could not copy to clipboard: "+err.Error()))
		return true
	}
	fmt.Fprintln(p.out, p.theme.RenderSuccess("Code copied to clipboard."))
	return true
}
