// Package chat holds the client-side conversation session for the NexoShop
// shopping assistant: an ordered message log, a loading flag, and persistence
// across restarts.
package chat

import (
	"context"

	"github.com/gabrieloporto/nexoshop/store"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of the conversation log.
type Message struct {
	Role      string           `json:"role"`
	Content   string           `json:"content"`
	Timestamp string           `json:"timestamp"`
	Products  []*store.Product `json:"products,omitempty"`
}

// HistoryEntry is the reduced message shape sent to the chat endpoint:
// role and content only, timestamps and products stripped.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Reply is the assistant's answer to one turn.
type Reply struct {
	Message   string           `json:"message"`
	Products  []*store.Product `json:"products"`
	Timestamp string           `json:"timestamp"`
}

// Client sends one chat turn to the assistant backend.
type Client interface {
	Send(ctx context.Context, message string, history []HistoryEntry) (*Reply, error)
}
