package relayserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"confide/internal/domain"
)

// Storage is the relay's persistence: the public directory, per-user inbox
// queues, and per-conversation sent logs kept for sender re-sync.
type Storage interface {
	SaveProfile(ctx context.Context, profile domain.AccountProfile) error
	LoadProfile(ctx context.Context, user domain.UserID) (domain.AccountProfile, bool, error)

	EnqueueEnvelope(ctx context.Context, env domain.Envelope) error
	PeekEnvelopes(ctx context.Context, user domain.UserID, limit int) ([]domain.Envelope, error)
	DropEnvelopes(ctx context.Context, user domain.UserID, count int) error

	AppendSent(ctx context.Context, env domain.Envelope) error
	ListSent(
		ctx context.Context,
		user domain.UserID,
		peer domain.UserID,
		limit int,
	) ([]domain.Envelope, error)
}

const (
	directoryKey = "directory:%s"
	queueKey     = "queue:%s"
	sentKey      = "sent:%s:%s"
)

// RedisStorage keeps relay state in Redis.
type RedisStorage struct {
	client *redis.Client
}

// NewRedisStorage returns relay storage over the given client.
func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{client: client}
}

// SaveProfile upserts the directory record for profile.UserID.
func (s *RedisStorage) SaveProfile(ctx context.Context, profile domain.AccountProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, fmt.Sprintf(directoryKey, profile.UserID), data, 0).Err()
}

// LoadProfile fetches a directory record; a missing user is not an error.
func (s *RedisStorage) LoadProfile(
	ctx context.Context,
	user domain.UserID,
) (domain.AccountProfile, bool, error) {
	data, err := s.client.Get(ctx, fmt.Sprintf(directoryKey, user)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.AccountProfile{}, false, nil
	}
	if err != nil {
		return domain.AccountProfile{}, false, err
	}
	var profile domain.AccountProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return domain.AccountProfile{}, false, err
	}
	return profile, true, nil
}

// EnqueueEnvelope appends env to the receiver's inbox queue.
func (s *RedisStorage) EnqueueEnvelope(ctx context.Context, env domain.Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return s.client.RPush(ctx, fmt.Sprintf(queueKey, env.To), data).Err()
}

// PeekEnvelopes returns up to limit queued envelopes without removing them.
// Removal happens only on ack, so an interrupted client fetches them again.
func (s *RedisStorage) PeekEnvelopes(
	ctx context.Context,
	user domain.UserID,
	limit int,
) ([]domain.Envelope, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	items, err := s.client.LRange(ctx, fmt.Sprintf(queueKey, user), 0, stop).Result()
	if err != nil {
		return nil, err
	}
	return decodeEnvelopes(items)
}

// DropEnvelopes removes the first count envelopes from the inbox queue.
func (s *RedisStorage) DropEnvelopes(ctx context.Context, user domain.UserID, count int) error {
	if count <= 0 {
		return nil
	}
	return s.client.LPopCount(ctx, fmt.Sprintf(queueKey, user), count).Err()
}

// AppendSent records the sender's copy for later re-sync.
func (s *RedisStorage) AppendSent(ctx context.Context, env domain.Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return s.client.RPush(ctx, fmt.Sprintf(sentKey, env.From, env.To), data).Err()
}

// ListSent returns up to limit sent envelopes from user to peer, oldest first.
func (s *RedisStorage) ListSent(
	ctx context.Context,
	user domain.UserID,
	peer domain.UserID,
	limit int,
) ([]domain.Envelope, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	items, err := s.client.LRange(ctx, fmt.Sprintf(sentKey, user, peer), 0, stop).Result()
	if err != nil {
		return nil, err
	}
	return decodeEnvelopes(items)
}

func decodeEnvelopes(items []string) ([]domain.Envelope, error) {
	envs := make([]domain.Envelope, 0, len(items))
	for _, item := range items {
		var env domain.Envelope
		if err := json.Unmarshal([]byte(item), &env); err != nil {
			return nil, err
		}
		envs = append(envs, env)
	}
	return envs, nil
}

var _ Storage = (*RedisStorage)(nil)
