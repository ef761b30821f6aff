package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// HTTPClient talks to the chat endpoint of a NexoShop server.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a client against the given server base URL,
// e.g. "http://localhost:8080".
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type chatRequest struct {
	Message             string         `json:"message"`
	ConversationHistory []HistoryEntry `json:"conversationHistory,omitempty"`
}

type chatErrorResponse struct {
	Error string `json:"error"`
}

func (c *HTTPClient) Send(ctx context.Context, message string, history []HistoryEntry) (*Reply, error) {
	body, err := json.Marshal(chatRequest{
		Message:             message,
		ConversationHistory: history,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal chat request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create chat request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to call chat endpoint")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read chat response")
	}

	if resp.StatusCode != http.StatusOK {
		var errResp chatErrorResponse
		if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error != "" {
			return nil, errors.Errorf("chat endpoint returned %d: %s", resp.StatusCode, errResp.Error)
		}
		return nil, errors.Errorf("chat endpoint returned %d", resp.StatusCode)
	}

	reply := &Reply{}
	if err := json.Unmarshal(data, reply); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal chat response")
	}
	return reply, nil
}
