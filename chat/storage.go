package chat

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Storage persists a conversation log across restarts.
type Storage interface {
	Load() ([]Message, error)
	Save(messages []Message) error
	Clear() error
}

type historyFile struct {
	Messages    []Message `json:"messages"`
	LastUpdated string    `json:"lastUpdated"`
}

// FileStorage keeps the conversation log in a single JSON file.
type FileStorage struct {
	path string
}

// NewFileStorage creates a file-backed storage at the given path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Load reads the persisted log. A missing or corrupt file yields an empty
// history rather than an error, so a bad file never blocks the session.
func (f *FileStorage) Load() ([]Message, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to read chat history %s", f.path)
	}

	var history historyFile
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, nil
	}
	return history.Messages, nil
}

func (f *FileStorage) Save(messages []Message) error {
	data, err := json.Marshal(historyFile{
		Messages:    messages,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return errors.Wrap(err, "failed to marshal chat history")
	}

	if err := os.WriteFile(f.path, data, 0600); err != nil {
		return errors.Wrapf(err, "failed to write chat history %s", f.path)
	}
	return nil
}

func (f *FileStorage) Clear() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to remove chat history %s", f.path)
	}
	return nil
}
