package relayserver

import (
	"context"
	"sync"

	"confide/internal/domain"
)

// MemoryStorage is an in-process Storage for tests and single-node
// development runs.
type MemoryStorage struct {
	mu       sync.RWMutex
	profiles map[domain.UserID]domain.AccountProfile
	queues   map[domain.UserID][]domain.Envelope
	sent     map[string][]domain.Envelope
}

// NewMemoryStorage returns empty in-memory relay storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		profiles: make(map[domain.UserID]domain.AccountProfile),
		queues:   make(map[domain.UserID][]domain.Envelope),
		sent:     make(map[string][]domain.Envelope),
	}
}

func (s *MemoryStorage) SaveProfile(_ context.Context, profile domain.AccountProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.UserID] = profile
	return nil
}

func (s *MemoryStorage) LoadProfile(
	_ context.Context,
	user domain.UserID,
) (domain.AccountProfile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[user]
	return p, ok, nil
}

func (s *MemoryStorage) EnqueueEnvelope(_ context.Context, env domain.Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queues[env.To] = append(s.queues[env.To], env)
	return nil
}

func (s *MemoryStorage) PeekEnvelopes(
	_ context.Context,
	user domain.UserID,
	limit int,
) ([]domain.Envelope, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	envs := s.queues[user]
	if limit > 0 && limit < len(envs) {
		envs = envs[:limit]
	}
	out := make([]domain.Envelope, len(envs))
	copy(out, envs)
	return out, nil
}

func (s *MemoryStorage) DropEnvelopes(_ context.Context, user domain.UserID, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.queues[user]
	if count > len(q) {
		count = len(q)
	}
	s.queues[user] = q[count:]
	return nil
}

func (s *MemoryStorage) AppendSent(_ context.Context, env domain.Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := env.From.String() + ":" + env.To.String()
	s.sent[key] = append(s.sent[key], env)
	return nil
}

func (s *MemoryStorage) ListSent(
	_ context.Context,
	user domain.UserID,
	peer domain.UserID,
	limit int,
) ([]domain.Envelope, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	envs := s.sent[user.String()+":"+peer.String()]
	if limit > 0 && limit < len(envs) {
		envs = envs[:limit]
	}
	out := make([]domain.Envelope, len(envs))
	copy(out, envs)
	return out, nil
}

var _ Storage = (*MemoryStorage)(nil)
