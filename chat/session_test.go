package chat

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrieloporto/nexoshop/store"
)

type stubClient struct {
	mu          sync.Mutex
	reply       *Reply
	err         error
	lastMessage string
	lastHistory []HistoryEntry
	block       chan struct{}
}

func (c *stubClient) Send(_ context.Context, message string, history []HistoryEntry) (*Reply, error) {
	c.mu.Lock()
	c.lastMessage = message
	c.lastHistory = history
	block := c.block
	c.mu.Unlock()

	if block != nil {
		<-block
	}
	if c.err != nil {
		return nil, c.err
	}
	return c.reply, nil
}

func okReply(text string) *Reply {
	return &Reply{Message: text, Products: []*store.Product{}}
}

func TestSendMessageAppendsUserAndAssistant(t *testing.T) {
	client := &stubClient{reply: &Reply{
		Message: "Tenemos zapatillas en stock.",
		Products: []*store.Product{
			{ID: 1, Name: "Zapatillas Running Pro", Price: 15000, Stock: 50, Category: "Calzado"},
		},
	}}
	session := NewSession(client, nil)

	err := session.SendMessage(context.Background(), "¿Tienen zapatillas?")
	require.NoError(t, err)

	messages := session.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, RoleUser, messages[0].Role)
	assert.Equal(t, "¿Tienen zapatillas?", messages[0].Content)
	assert.NotEmpty(t, messages[0].Timestamp)
	assert.Equal(t, RoleAssistant, messages[1].Role)
	assert.Equal(t, "Tenemos zapatillas en stock.", messages[1].Content)
	require.Len(t, messages[1].Products, 1)
	assert.Equal(t, "Zapatillas Running Pro", messages[1].Products[0].Name)
}

func TestSendMessageGrowsLogByTwoOnFailure(t *testing.T) {
	client := &stubClient{err: errors.New("backend down")}
	session := NewSession(client, nil)

	err := session.SendMessage(context.Background(), "hola")
	require.Error(t, err)

	messages := session.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, RoleUser, messages[0].Role)
	assert.Equal(t, RoleAssistant, messages[1].Role)
	assert.Equal(t, errorReply, messages[1].Content)
	assert.False(t, session.IsLoading())
}

func TestSendMessageRejectsEmpty(t *testing.T) {
	session := NewSession(&stubClient{reply: okReply("hola")}, nil)

	err := session.SendMessage(context.Background(), "   ")
	require.ErrorIs(t, err, ErrEmptyMessage)
	assert.Empty(t, session.Messages())
}

func TestSendMessageRejectsOverlap(t *testing.T) {
	block := make(chan struct{})
	client := &stubClient{reply: okReply("ok"), block: block}
	session := NewSession(client, nil)

	done := make(chan error, 1)
	go func() {
		done <- session.SendMessage(context.Background(), "primera")
	}()

	// Wait until the first turn is in flight.
	for !session.IsLoading() {
		time.Sleep(time.Millisecond)
	}

	err := session.SendMessage(context.Background(), "segunda")
	require.ErrorIs(t, err, ErrBusy)

	close(block)
	require.NoError(t, <-done)

	// Only the first turn landed.
	assert.Len(t, session.Messages(), 2)
	assert.False(t, session.IsLoading())
}

func TestHistoryWindowCapped(t *testing.T) {
	client := &stubClient{reply: okReply("ok")}
	session := NewSession(client, nil)

	// 8 turns = 16 messages before the last send.
	for i := 0; i < 8; i++ {
		require.NoError(t, session.SendMessage(context.Background(), fmt.Sprintf("mensaje %d", i)))
	}
	require.NoError(t, session.SendMessage(context.Background(), "la última"))

	require.Len(t, client.lastHistory, historyWindow)
	// The window holds the 10 most recent prior messages; the new user
	// message itself is not part of it.
	assert.Equal(t, "mensaje 3", client.lastHistory[0].Content)
	assert.Equal(t, RoleAssistant, client.lastHistory[len(client.lastHistory)-1].Role)
	for _, entry := range client.lastHistory {
		assert.NotEqual(t, "la última", entry.Content)
	}
}

func TestHistoryCarriesRoleAndContentOnly(t *testing.T) {
	client := &stubClient{reply: &Reply{
		Message:  "ok",
		Products: []*store.Product{{ID: 1, Name: "Gorra Running"}},
	}}
	session := NewSession(client, nil)

	require.NoError(t, session.SendMessage(context.Background(), "hola"))
	require.NoError(t, session.SendMessage(context.Background(), "otra"))

	require.Len(t, client.lastHistory, 2)
	assert.Equal(t, HistoryEntry{Role: RoleUser, Content: "hola"}, client.lastHistory[0])
	assert.Equal(t, HistoryEntry{Role: RoleAssistant, Content: "ok"}, client.lastHistory[1])
}

func TestClearHistory(t *testing.T) {
	storage := NewFileStorage(t.TempDir() + "/history.json")
	session := NewSession(&stubClient{reply: okReply("ok")}, storage)

	require.NoError(t, session.SendMessage(context.Background(), "hola"))
	require.Len(t, session.Messages(), 2)

	session.ClearHistory()
	assert.Empty(t, session.Messages())

	persisted, err := storage.Load()
	require.NoError(t, err)
	assert.Empty(t, persisted)

	// Idempotent.
	session.ClearHistory()
	assert.Empty(t, session.Messages())
}

func TestSessionPersistsAcrossRestarts(t *testing.T) {
	path := t.TempDir() + "/history.json"
	storage := NewFileStorage(path)

	session := NewSession(&stubClient{reply: okReply("ok")}, storage)
	require.NoError(t, session.SendMessage(context.Background(), "hola"))

	restored := NewSession(&stubClient{reply: okReply("ok")}, NewFileStorage(path))
	messages := restored.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, "hola", messages[0].Content)
}

func TestCorruptHistoryStartsEmpty(t *testing.T) {
	path := t.TempDir() + "/history.json"
	storage := NewFileStorage(path)
	require.NoError(t, storage.Save([]Message{{Role: RoleUser, Content: "hola"}}))

	// Corrupt the file in place.
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	session := NewSession(&stubClient{reply: okReply("ok")}, NewFileStorage(path))
	assert.Empty(t, session.Messages())
}

func TestSessionIDsAreUnique(t *testing.T) {
	a := NewSession(&stubClient{}, nil)
	b := NewSession(&stubClient{}, nil)
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}
