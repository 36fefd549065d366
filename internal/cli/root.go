// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jeranaias/termchat/internal/cloud"
	"github.com/jeranaias/termchat/internal/config"
	"github.com/jeranaias/termchat/internal/logging"
	"github.com/jeranaias/termchat/internal/render"
	"github.com/jeranaias/termchat/internal/storage"
	"github.com/jeranaias/termchat/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// NewRootCommand builds the termchat command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "termchat",
		Short: "Chat with Claude in your terminal",
		Long: "termchat is an interactive terminal client for Claude. Replies are split\n" +
			"into prose and highlighted code, paged to fit the screen, and every\n" +
			"conversation is saved so it can be resumed with 'load'.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context())
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "termchat %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
		},
	})

	return root
}

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}

// Run wires configuration, logging, the API client and storage, then runs an
// interactive session until the user exits.
func Run(ctx context.Context) error {
	paths, err := config.DefaultPaths()
	if err != nil {
		return &ConfigError{Err: err}
	}
	if err := paths.EnsureDirs(); err != nil {
		return &ConfigError{Err: err}
	}

	logFile, err := logging.Setup(paths.LogFile)
	if err != nil {
		return &ConfigError{Err: err}
	}
	defer logFile.Close()

	cfg, err := config.Load(paths)
	if err != nil {
		return &ConfigError{Err: err}
	}
	if err := logging.SetLevel(cfg.Log.Level); err != nil {
		return &ConfigError{Err: err}
	}

	log := logging.NewLogger("cli")
	log.WithFields(logrus.Fields{
		"version": Version,
		"model":   cfg.Claude.Model,
		"config":  paths.ConfigFile,
	}).Info("starting termchat")

	theme, err := styles.NewTheme(cfg.App.Theme)
	if err != nil {
		return &ConfigError{Err: err}
	}
	lipgloss.SetColorProfile(theme.ColorProfile)

	console := NewConsole(paths.History)
	defer console.Close()

	apiKey, err := ResolveAPIKey(os.Getenv, console)
	if err != nil {
		return err
	}
	client, err := cloud.NewAnthropicClient(apiKey, cloud.Settings{
		Model:       cfg.Claude.Model,
		MaxTokens:   cfg.Claude.MaxTokens,
		Temperature: cfg.Claude.Temperature,
	})
	if err != nil {
		return err
	}

	store, err := storage.NewStore(paths.Conversations)
	if err != nil {
		return err
	}

	screen := NewScreen(os.Stdout)
	if cfg.App.FullScreen {
		screen.EnterFullScreen()
		defer screen.Restore()
	}
	if cfg.App.ClearOnStart {
		screen.Clear()
	}

	width, _ := GetTerminalSize()
	pager := render.NewPager(os.Stdout, render.NewBlocks(theme, width), console, SystemClipboard{}, theme)
	pager.CopyPrompt = cfg.App.ShowCopyPrompt

	var indicator Indicator = NoIndicator{}
	if IsStderrTTY() {
		indicator = NewThinkingSpinner(os.Stderr, theme)
	}

	session := NewSession(SessionOptions{
		Client:       client,
		Store:        store,
		Input:        console,
		Pager:        pager,
		Theme:        theme,
		Out:          os.Stdout,
		Indicator:    indicator,
		SystemPrompt: cfg.SystemPrompt,
		Model:        client.Model(),
		Width:        width,
		Height:       GetTerminalHeight,
	})

	err = session.Run(ctx)
	log.Info("termchat exiting")
	return err
}
