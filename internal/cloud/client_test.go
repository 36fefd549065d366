// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/jeranaias/termchat/internal/model"
)

const textReply = `{
	"id": "msg_1",
	"type": "message",
	"role": "assistant",
	"model": "claude-3-5-sonnet-latest",
	"content": [{"type": "text", "text": "Hello there"}],
	"stop_reason": "end_turn",
	"usage": {"input_tokens": 12, "output_tokens": 3}
}`

var testSettings = Settings{Model: "claude-3-5-sonnet-latest", MaxTokens: 256, Temperature: 0.5}

// newTestClient points a client at a handler that answers every request.
func newTestClient(t *testing.T, status int, body string, seen *string) *AnthropicClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			data, _ := io.ReadAll(r.Body)
			*seen = string(data)
		}
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("X-Api-Key"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	client, err := NewAnthropicClient("sk-ant-test", testSettings, option.WithBaseURL(srv.URL))
	require.NoError(t, err)
	return client
}

func TestNewAnthropicClient_RequiresKey(t *testing.T) {
	_, err := NewAnthropicClient("   ", testSettings)
	assert.True(t, errors.Is(err, ErrNotConfigured))
}

func TestSend_BuildsRequest(t *testing.T) {
	var body string
	client := newTestClient(t, http.StatusOK, textReply, &body)

	history := []model.Turn{model.UserTurn("first"), model.AssistantTurn("reply one")}
	reply, err := client.Send(context.Background(), Request{
		System:  "Be brief.",
		History: history,
		Message: "second",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello there", reply)

	assert.Equal(t, "claude-3-5-sonnet-latest", gjson.Get(body, "model").String())
	assert.Equal(t, int64(256), gjson.Get(body, "max_tokens").Int())
	assert.Equal(t, 0.5, gjson.Get(body, "temperature").Float())
	assert.Equal(t, "Be brief.", gjson.Get(body, "system.0.text").String())

	msgs := gjson.Get(body, "messages").Array()
	require.Len(t, msgs, 3)
	assert.Equal(t, "user", msgs[0].Get("role").String())
	assert.Equal(t, "first", msgs[0].Get("content.0.text").String())
	assert.Equal(t, "assistant", msgs[1].Get("role").String())
	assert.Equal(t, "user", msgs[2].Get("role").String())
	assert.Equal(t, "second", msgs[2].Get("content.0.text").String())

	assert.Len(t, history, 2, "history must not grow")
}

func TestSend_OmitsEmptySystem(t *testing.T) {
	var body string
	client := newTestClient(t, http.StatusOK, textReply, &body)

	_, err := client.Send(context.Background(), Request{Message: "hi"})
	require.NoError(t, err)
	assert.False(t, gjson.Get(body, "system").Exists())
}

func TestSend_APIError(t *testing.T) {
	client := newTestClient(t, http.StatusUnauthorized,
		`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`, nil)

	_, err := client.Send(context.Background(), Request{Message: "hi"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "got %T: %v", err, err)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "authentication_error", apiErr.Type)
	assert.Equal(t, "invalid x-api-key", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "HTTP 401")
}

func TestSend_UnexpectedResponse(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty content", `[]`},
		{"tool use first", `[{"type":"tool_use","id":"toolu_1","name":"lookup","input":{}}]`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body := `{"id":"msg_1","type":"message","role":"assistant","model":"m","content":` +
				tc.content + `,"stop_reason":"end_turn","usage":{"input_tokens":1,"output_tokens":1}}`
			client := newTestClient(t, http.StatusOK, body, nil)

			_, err := client.Send(context.Background(), Request{Message: "hi"})
			assert.True(t, errors.Is(err, ErrUnexpectedResponse), "got %v", err)
		})
	}
}

func TestSend_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := NewAnthropicClient("sk-ant-test", testSettings, option.WithBaseURL(url))
	require.NoError(t, err)

	_, err = client.Send(context.Background(), Request{Message: "hi"})
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestAPIError_Format(t *testing.T) {
	err := &APIError{Status: 529, Message: "Overloaded"}
	assert.Equal(t, "Claude API error (HTTP 529): Overloaded", err.Error())
}

func TestKeyFingerprint(t *testing.T) {
	client, err := NewAnthropicClient("sk-ant-secret", testSettings)
	require.NoError(t, err)

	fp := client.KeyFingerprint()
	assert.Len(t, fp, 8)
	assert.NotContains(t, "sk-ant-secret", fp)
	assert.Equal(t, "claude-3-5-sonnet-latest", client.Model())
}
