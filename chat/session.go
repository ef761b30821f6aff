package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"
)

// historyWindow is how many prior messages accompany each new turn.
const historyWindow = 10

// errorReply is appended verbatim whenever a turn fails, so the conversation
// log always ends with an assistant message.
const errorReply = "Lo siento, hubo un error al procesar tu mensaje. Por favor intenta nuevamente."

// ErrBusy is returned when SendMessage is called while a previous turn is
// still in flight. Overlapping sends are rejected, not queued.
var ErrBusy = errors.New("a message is already being processed")

// ErrEmptyMessage is returned for blank input.
var ErrEmptyMessage = errors.New("message cannot be empty")

// Session is one conversation with the assistant. All methods are safe for
// concurrent use, but only one SendMessage may be in flight at a time.
type Session struct {
	id      string
	client  Client
	storage Storage

	mu       sync.Mutex
	messages []Message
	loading  bool
}

// NewSession creates a session backed by the given client and storage. The
// persisted history is loaded eagerly; a corrupt or missing history starts
// the session empty.
func NewSession(client Client, storage Storage) *Session {
	s := &Session{
		id:      shortuuid.New(),
		client:  client,
		storage: storage,
	}

	if storage != nil {
		messages, err := storage.Load()
		if err != nil {
			slog.Warn("failed to load chat history, starting empty", "error", err)
		} else {
			s.messages = messages
		}
	}

	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Messages returns a copy of the conversation log in order.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]Message, len(s.messages))
	copy(list, s.messages)
	return list
}

// IsLoading reports whether a turn is currently in flight.
func (s *Session) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// SendMessage runs one conversation turn: the user message is appended
// immediately, the assistant reply (or the fixed error reply) follows once
// the backend answers. Each successful or failed turn grows the log by
// exactly two messages.
func (s *Session) SendMessage(ctx context.Context, content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyMessage
	}

	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return ErrBusy
	}
	s.loading = true

	// History carries at most the last historyWindow messages that existed
	// before this turn, reduced to role and content.
	history := s.historyLocked()

	s.messages = append(s.messages, Message{
		Role:      RoleUser,
		Content:   content,
		Timestamp: now(),
	})
	s.persistLocked()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	reply, err := s.client.Send(ctx, content, history)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		slog.Error("chat turn failed", "session", s.id, "error", err)
		s.messages = append(s.messages, Message{
			Role:      RoleAssistant,
			Content:   errorReply,
			Timestamp: now(),
		})
		s.persistLocked()
		return errors.Wrap(err, "failed to send message")
	}

	timestamp := reply.Timestamp
	if timestamp == "" {
		timestamp = now()
	}
	s.messages = append(s.messages, Message{
		Role:      RoleAssistant,
		Content:   reply.Message,
		Timestamp: timestamp,
		Products:  reply.Products,
	})
	s.persistLocked()
	return nil
}

// ClearHistory empties the conversation log and the persisted copy. It is
// idempotent.
func (s *Session) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = nil
	if s.storage != nil {
		if err := s.storage.Clear(); err != nil {
			slog.Warn("failed to clear persisted chat history", "session", s.id, "error", err)
		}
	}
}

func (s *Session) historyLocked() []HistoryEntry {
	start := len(s.messages) - historyWindow
	if start < 0 {
		start = 0
	}

	history := make([]HistoryEntry, 0, len(s.messages)-start)
	for _, message := range s.messages[start:] {
		history = append(history, HistoryEntry{Role: message.Role, Content: message.Content})
	}
	return history
}

func (s *Session) persistLocked() {
	if s.storage == nil {
		return
	}
	if err := s.storage.Save(s.messages); err != nil {
		slog.Warn("failed to persist chat history", "session", s.id, "error", err)
	}
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
