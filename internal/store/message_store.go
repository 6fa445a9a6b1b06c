package store

import (
	"path/filepath"
	"sync"

	"confide/internal/domain"
)

// MessageFileStore keeps decrypted history per peer, one JSON file per
// conversation. Placeholder rows for unreadable envelopes live here too, so
// an acked-but-undecryptable message is never silently dropped.
type MessageFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewMessageFileStore returns a history store rooted at dir.
func NewMessageFileStore(dir string) *MessageFileStore { return &MessageFileStore{dir: dir} }

func (s *MessageFileStore) path(peer domain.UserID) string {
	return filepath.Join(s.dir, "history-"+peer.String()+".json")
}

// AppendMessage adds msg to the conversation with peer.
func (s *MessageFileStore) AppendMessage(peer domain.UserID, msg domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var msgs []domain.Message
	if err := readJSON(s.path(peer), &msgs); err != nil {
		return err
	}
	msgs = append(msgs, msg)
	return writeJSON(s.path(peer), msgs, 0o600)
}

// LoadMessages returns the conversation with peer, oldest first.
func (s *MessageFileStore) LoadMessages(peer domain.UserID) ([]domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var msgs []domain.Message
	if err := readJSON(s.path(peer), &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// ReplaceMessages swaps the whole conversation, used by re-sync.
func (s *MessageFileStore) ReplaceMessages(peer domain.UserID, msgs []domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeJSON(s.path(peer), msgs, 0o600)
}

// Compile-time assertion that MessageFileStore implements domain.MessageStore.
var _ domain.MessageStore = (*MessageFileStore)(nil)
