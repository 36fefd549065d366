// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jeranaias/termchat/internal/model"
	"github.com/jeranaias/termchat/internal/util"
)

// =============================================================================
// RECORD FORMAT
// =============================================================================

const (
	// fileTimeLayout prefixes every file name with the creation time.
	fileTimeLayout = "20060102_150405"
	// slugRunes caps the title part of a file name.
	slugRunes = 50
	// previewRunes caps the preview shown in listings.
	previewRunes = 50

	// UntitledTitle is shown for records without a title.
	UntitledTitle = "Untitled"
	// UnknownTimestamp is shown for records without timestamps.
	UnknownTimestamp = "Unknown"
	// TimestampLayout formats timestamps in listings.
	TimestampLayout = "2006-01-02 15:04"
)

// record is the on-disk form of a conversation. Pointer fields tell a missing
// key apart from a zero value.
type record struct {
	Title        string       `json:"title"`
	Created      *time.Time   `json:"created,omitempty"`
	LastUpdated  *time.Time   `json:"last_updated,omitempty"`
	SystemPrompt *string      `json:"system_prompt,omitempty"`
	Messages     []model.Turn `json:"messages"`
}

// Summary describes one saved conversation for the load menu.
type Summary struct {
	Location  string
	Title     string
	Timestamp string
	Preview   string
	Exchanges int
}

// =============================================================================
// CONVERSATION STORE
// =============================================================================

// Store reads and writes conversation records in one directory.
type Store struct {
	// Dir holds one JSON file per conversation.
	Dir string

	now func() time.Time
	log *logrus.Entry
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a store rooted at dir, creating the directory if needed.
func NewStore(dir string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create conversations directory: %w", err)
	}

	s := &Store{
		Dir: dir,
		now: time.Now,
		log: logrus.WithField("component", "storage"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// =============================================================================
// SAVE OPERATIONS
// =============================================================================

// Save writes conv and returns the file path. A conversation without turns is
// not written and Save returns "". A persisted conversation overwrites its
// file and refreshes LastUpdated. A new one gets Created, LastUpdated and a
// fresh file name, recorded in conv.Location. Only those three fields change.
func (s *Store) Save(conv *model.Conversation) (string, error) {
	if conv.IsEmpty() {
		return "", nil
	}

	now := s.now()
	created := conv.Created
	location := conv.Location

	if location == "" || created.IsZero() {
		created = now
	}
	updated := now
	if updated.Before(created) {
		updated = created
	}
	if updated.Before(conv.LastUpdated) {
		updated = conv.LastUpdated
	}

	if location == "" {
		var err error
		location, err = s.newLocation(created, conv.Title)
		if err != nil {
			return "", err
		}
	}

	rec := record{
		Title:        conv.Title,
		Created:      &created,
		LastUpdated:  &updated,
		SystemPrompt: &conv.SystemPrompt,
		Messages:     conv.Turns,
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode conversation: %w", err)
	}

	if err := util.AtomicWriteFile(location, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write conversation: %w", err)
	}

	conv.Location = location
	conv.Created = created
	conv.LastUpdated = updated

	s.log.WithFields(logrus.Fields{
		"path":  location,
		"turns": len(conv.Turns),
	}).Debug("saved conversation")
	return location, nil
}

// newLocation picks an unused file name for a conversation created at t.
func (s *Store) newLocation(t time.Time, title string) (string, error) {
	base := t.Format(fileTimeLayout) + "_" + util.Slugify(title, slugRunes)

	for n := 1; ; n++ {
		name := base + ".json"
		if n > 1 {
			name = base + "_" + strconv.Itoa(n) + ".json"
		}
		path := filepath.Join(s.Dir, name)

		_, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check %s: %w", name, err)
		}
	}
}

// =============================================================================
// LIST OPERATIONS
// =============================================================================

// List summarizes every record, newest file name first. Records that cannot be
// read are skipped and returned in the second value. The error is set only
// when the directory itself cannot be read. A missing directory lists nothing.
func (s *Store) List() ([]Summary, []error, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Summary{}, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to read conversations directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	summaries := make([]Summary, 0, len(names))
	var skipped []error

	for _, name := range names {
		path := filepath.Join(s.Dir, name)
		rec, err := readRecord(path)
		if err != nil {
			s.log.WithError(err).WithField("path", path).Warn("skipping unreadable conversation")
			skipped = append(skipped, err)
			continue
		}
		summaries = append(summaries, summarize(path, rec))
	}
	return summaries, skipped, nil
}

func summarize(path string, rec *record) Summary {
	sum := Summary{
		Location:  path,
		Title:     rec.Title,
		Timestamp: UnknownTimestamp,
		Exchanges: len(rec.Messages) / 2,
	}
	if sum.Title == "" {
		sum.Title = UntitledTitle
	}

	switch {
	case rec.LastUpdated != nil:
		sum.Timestamp = rec.LastUpdated.Local().Format(TimestampLayout)
	case rec.Created != nil:
		sum.Timestamp = rec.Created.Local().Format(TimestampLayout)
	}

	for _, turn := range rec.Messages {
		if turn.Role == model.RoleUser {
			sum.Preview = util.TruncateRunes(turn.Content, previewRunes)
			break
		}
	}
	return sum
}

// =============================================================================
// LOAD OPERATIONS
// =============================================================================

// Load reads the record at location. Missing fields take defaults: the
// fallback system prompt, UntitledTitle, and now for Created. LastUpdated
// defaults to Created.
func (s *Store) Load(location, fallbackSystemPrompt string) (*model.Conversation, error) {
	rec, err := readRecord(location)
	if err != nil {
		return nil, err
	}

	conv := &model.Conversation{
		Title:        rec.Title,
		SystemPrompt: fallbackSystemPrompt,
		Turns:        rec.Messages,
		Location:     location,
	}
	if conv.Title == "" {
		conv.Title = UntitledTitle
	}
	if rec.SystemPrompt != nil {
		conv.SystemPrompt = *rec.SystemPrompt
	}
	if conv.Turns == nil {
		conv.Turns = []model.Turn{}
	}

	if rec.Created != nil {
		conv.Created = *rec.Created
	} else {
		conv.Created = s.now()
	}
	if rec.LastUpdated != nil {
		conv.LastUpdated = *rec.LastUpdated
	} else {
		conv.LastUpdated = conv.Created
	}

	s.log.WithFields(logrus.Fields{
		"path":  location,
		"turns": len(conv.Turns),
	}).Debug("loaded conversation")
	return conv, nil
}

// readRecord parses one file. Every turn must carry a known role.
func readRecord(path string) (*record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &RecordError{Path: path, Err: ErrConversationNotFound}
		}
		return nil, &RecordError{Path: path, Err: err}
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, &RecordError{Path: path, Err: fmt.Errorf("malformed record: %w", err)}
	}
	for i, turn := range rec.Messages {
		if !turn.Role.Valid() {
			return nil, &RecordError{Path: path, Err: fmt.Errorf("message %d has unknown role %q", i, turn.Role)}
		}
	}
	return &rec, nil
}

// =============================================================================
// DELETE OPERATIONS
// =============================================================================

// Delete removes the record at location.
func (s *Store) Delete(location string) error {
	if err := os.Remove(location); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &RecordError{Path: location, Err: ErrConversationNotFound}
		}
		return &RecordError{Path: location, Err: err}
	}
	return nil
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrConversationNotFound is returned when a conversation doesn't exist.
// Use errors.Is(err, ErrConversationNotFound) to check for this error.
var ErrConversationNotFound = &ConversationError{Message: "conversation not found"}

// ConversationError represents a conversation-related error.
// It implements the error interface and can be compared using errors.Is.
type ConversationError struct {
	Message string
}

// Error implements the error interface.
func (e *ConversationError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing conversation errors.
func (e *ConversationError) Is(target error) bool {
	t, ok := target.(*ConversationError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// RecordError ties a failure to the file it came from.
type RecordError struct {
	Path string
	Err  error
}

func (e *RecordError) Error() string {
	return filepath.Base(e.Path) + ": " + e.Err.Error()
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
