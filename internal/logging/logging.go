// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// sessionID identifies this process in the log file.
var sessionID = uuid.NewString()

// sessionHook stamps the session field on every entry.
type sessionHook struct {
	id string
}

func (h sessionHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h sessionHook) Fire(entry *logrus.Entry) error {
	entry.Data["session"] = h.id
	return nil
}

// Setup opens (or creates) the log file at path in append mode and points the
// standard logrus logger at it. The returned closer releases the file.
func Setup(path string) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	Attach(f)
	return f, nil
}

// Attach points the standard logger at w with the file formatter and session
// hook. Setup calls it; tests use it with a buffer.
func Attach(w io.Writer) {
	logger := logrus.StandardLogger()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	hooks := make(logrus.LevelHooks)
	hooks.Add(sessionHook{id: sessionID})
	logger.ReplaceHooks(hooks)
}

// SetLevel applies a logrus level name ("debug", "info", "warn", "error").
func SetLevel(name string) error {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logrus.SetLevel(level)
	return nil
}

// NewLogger returns an entry tagged with a component name.
func NewLogger(component string) *logrus.Entry {
	return logrus.WithField("component", component)
}
