package directory

import (
	"context"
	"fmt"

	"confide/internal/domain"
)

// Service is the client-side view of the relay directory with a local cache.
type Service struct {
	cache domain.DirectoryStore
	relay domain.RelayClient
}

// New returns a directory service over the given cache and relay.
func New(cache domain.DirectoryStore, relay domain.RelayClient) *Service {
	return &Service{cache: cache, relay: relay}
}

// Resolve returns the profile for user, from cache when present.
func (s *Service) Resolve(
	ctx context.Context,
	user domain.UserID,
) (domain.AccountProfile, error) {
	profile, ok, err := s.cache.LoadProfile(user)
	if err != nil {
		return domain.AccountProfile{}, err
	}
	if ok {
		return profile, nil
	}
	return s.Refresh(ctx, user)
}

// Refresh fetches the profile from the relay and overwrites the cached copy.
func (s *Service) Refresh(
	ctx context.Context,
	user domain.UserID,
) (domain.AccountProfile, error) {
	profile, err := s.relay.FetchProfile(ctx, user)
	if err != nil {
		return domain.AccountProfile{}, fmt.Errorf("resolve %q: %w", user, err)
	}
	if profile.PublicKey.IsZero() {
		return domain.AccountProfile{}, fmt.Errorf("resolve %q: directory returned empty public key", user)
	}
	if err := s.cache.SaveProfile(profile); err != nil {
		return domain.AccountProfile{}, err
	}
	return profile, nil
}

// Compile-time assertion that Service implements domain.DirectoryService.
var _ domain.DirectoryService = (*Service)(nil)
