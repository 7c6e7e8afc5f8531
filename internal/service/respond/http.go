// Package respond implements the widget's external responders: a plain
// HTTP endpoint client and an Ark-hosted chat model. Both satisfy the
// widget's Responder port, so the fallback behavior is identical.
package respond

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/AbdulManan133/chatbot-Ui/internal/model/chat"
)

// historyWindow bounds the context forwarded with each request.
const historyWindow = 10

// HTTP forwards the user's message to a remote responder endpoint. Any
// transport error, non-2xx status or missing reply field is returned to
// the caller, which treats it as a resolver failure.
type HTTP struct {
	endpoint string
	client   *http.Client
}

// NewHTTP builds a responder for the given endpoint.
func NewHTTP(endpoint string) *HTTP {
	return &HTTP{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

type httpRequest struct {
	Message string         `json:"message"`
	History []chat.Message `json:"history"`
}

type httpResponse struct {
	Message  string `json:"message"`
	Response string `json:"response"`
}

// Reply issues one POST carrying the message and the last ten history
// entries, and extracts the reply from a `message` or `response` field.
func (h *HTTP) Reply(ctx context.Context, message string, history []chat.Message) (string, error) {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	body, err := json.Marshal(httpRequest{Message: message, History: history})
	if err != nil {
		return "", fmt.Errorf("encoding responder request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building responder request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling responder: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("responder returned status %d", resp.StatusCode)
	}

	var payload httpResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decoding responder body: %w", err)
	}
	if payload.Message != "" {
		return payload.Message, nil
	}
	if payload.Response != "" {
		return payload.Response, nil
	}
	return "", errors.New("responder body carries no message or response field")
}
