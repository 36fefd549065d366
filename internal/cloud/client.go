// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/jeranaias/termchat/internal/model"
)

// DefaultTimeout bounds one Messages API call.
const DefaultTimeout = 120 * time.Second

// Error variables for Messages API failures.
var (
	// ErrNotConfigured indicates the API key is not set.
	ErrNotConfigured = errors.New("Anthropic API key not configured")

	// ErrUnexpectedResponse indicates the reply did not start with a text block.
	ErrUnexpectedResponse = errors.New("unexpected response from Claude")
)

// APIError is a non-2xx answer from the Messages API.
type APIError struct {
	Status  int
	Type    string
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("Claude API error [%s] (HTTP %d): %s", e.Type, e.Status, e.Message)
	}
	return fmt.Sprintf("Claude API error (HTTP %d): %s", e.Status, e.Message)
}

// =============================================================================
// CLIENT
// =============================================================================

// Request is one chat call: the system prompt, the turns so far and the new
// user message.
type Request struct {
	System  string
	History []model.Turn
	Message string
}

// Client sends a conversation to the model and returns the reply text.
type Client interface {
	Send(ctx context.Context, req Request) (string, error)
}

// Settings are the model parameters sent with every request.
type Settings struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

// AnthropicClient calls the Messages API through the official SDK.
type AnthropicClient struct {
	client   anthropic.Client
	settings Settings
	apiKey   string
	log      *logrus.Entry
}

// NewAnthropicClient creates a client. Extra options (base URL, HTTP client)
// are passed through to the SDK. An empty key returns ErrNotConfigured.
func NewAnthropicClient(apiKey string, settings Settings, opts ...option.RequestOption) (*AnthropicClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	base := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(DefaultTimeout),
	}

	c := &AnthropicClient{
		client:   anthropic.NewClient(append(base, opts...)...),
		settings: settings,
		apiKey:   apiKey,
	}
	c.log = logrus.WithFields(logrus.Fields{
		"component": "cloud",
		"key":       c.KeyFingerprint(),
	})
	return c, nil
}

// Model returns the configured model identifier.
func (c *AnthropicClient) Model() string {
	return c.settings.Model
}

// KeyFingerprint identifies the API key in logs without exposing any of it.
func (c *AnthropicClient) KeyFingerprint() string {
	h := sha256.Sum256([]byte(c.apiKey))
	return hex.EncodeToString(h[:4])
}

// Send performs one blocking Messages API call. The new message is only part
// of the request; History is not modified.
func (c *AnthropicClient) Send(ctx context.Context, req Request) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.settings.Model),
		MaxTokens:   int64(c.settings.MaxTokens),
		Messages:    buildMessages(req.History, req.Message),
		Temperature: anthropic.Float(c.settings.Temperature),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	start := time.Now()
	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		c.log.WithError(err).WithField("duration", time.Since(start)).Warn("messages request failed")
		return "", translateError(err)
	}

	c.log.WithFields(logrus.Fields{
		"model":         msg.Model,
		"stop_reason":   msg.StopReason,
		"input_tokens":  msg.Usage.InputTokens,
		"output_tokens": msg.Usage.OutputTokens,
		"duration":      time.Since(start),
	}).Info("messages request completed")

	if len(msg.Content) == 0 || msg.Content[0].Type != "text" {
		return "", ErrUnexpectedResponse
	}
	return msg.Content[0].Text, nil
}

// buildMessages converts the turns plus the new message into SDK params.
func buildMessages(history []model.Turn, message string) []anthropic.MessageParam {
	msgs := make([]anthropic.MessageParam, 0, len(history)+1)
	for _, turn := range history {
		block := anthropic.NewTextBlock(turn.Content)
		if turn.Role == model.RoleAssistant {
			msgs = append(msgs, anthropic.NewAssistantMessage(block))
		} else {
			msgs = append(msgs, anthropic.NewUserMessage(block))
		}
	}
	return append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(message)))
}

// translateError turns SDK errors into APIError. Transport errors are wrapped.
func translateError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		out := &APIError{
			Status:  apiErr.StatusCode,
			Message: http.StatusText(apiErr.StatusCode),
		}
		raw := apiErr.RawJSON()
		if msg := gjson.Get(raw, "error.message"); msg.Exists() {
			out.Message = msg.String()
		}
		out.Type = gjson.Get(raw, "error.type").String()
		return out
	}
	return fmt.Errorf("request to Claude failed: %w", err)
}
