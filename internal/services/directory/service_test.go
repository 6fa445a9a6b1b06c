package directory_test

import (
	"context"
	"errors"
	"testing"

	"confide/internal/domain"
	"confide/internal/services/directory"
	"confide/internal/store"
)

// countingRelay serves one profile and counts lookups.
type countingRelay struct {
	profile domain.AccountProfile
	lookups int
}

func (r *countingRelay) FetchProfile(_ context.Context, u domain.UserID) (domain.AccountProfile, error) {
	r.lookups++
	if u != r.profile.UserID {
		return domain.AccountProfile{}, errors.New("unknown user")
	}
	return r.profile, nil
}

func (r *countingRelay) RegisterAccount(context.Context, domain.AccountProfile) error { return nil }
func (r *countingRelay) UpdatePublicKey(context.Context, domain.UserID, domain.PublicKey) error {
	return nil
}
func (r *countingRelay) SendEnvelope(context.Context, domain.Envelope) error { return nil }
func (r *countingRelay) FetchEnvelopes(context.Context, domain.UserID, int) ([]domain.Envelope, error) {
	return nil, nil
}
func (r *countingRelay) FetchSentEnvelopes(context.Context, domain.UserID, domain.UserID, int) ([]domain.Envelope, error) {
	return nil, nil
}
func (r *countingRelay) AckEnvelopes(context.Context, domain.UserID, int) error { return nil }

func TestResolve_CachesRelayLookups(t *testing.T) {
	relay := &countingRelay{
		profile: domain.AccountProfile{UserID: "bob", PublicKey: domain.PublicKey{9}},
	}
	svc := directory.New(store.NewDirectoryFileStore(t.TempDir()), relay)
	ctx := context.Background()

	first, err := svc.Resolve(ctx, "bob")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	second, err := svc.Resolve(ctx, "bob")
	if err != nil {
		t.Fatalf("resolve (cached): %v", err)
	}
	if first != second {
		t.Fatal("cached profile differs from fetched one")
	}
	if relay.lookups != 1 {
		t.Fatalf("want 1 relay lookup, got %d", relay.lookups)
	}
}

func TestRefresh_BypassesCache(t *testing.T) {
	relay := &countingRelay{
		profile: domain.AccountProfile{UserID: "bob", PublicKey: domain.PublicKey{9}},
	}
	svc := directory.New(store.NewDirectoryFileStore(t.TempDir()), relay)
	ctx := context.Background()

	if _, err := svc.Resolve(ctx, "bob"); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	// Bob rotates keys; a plain Resolve would still serve the stale copy.
	relay.profile.PublicKey = domain.PublicKey{10}
	refreshed, err := svc.Refresh(ctx, "bob")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.PublicKey != (domain.PublicKey{10}) {
		t.Fatal("refresh served the stale key")
	}

	cached, err := svc.Resolve(ctx, "bob")
	if err != nil {
		t.Fatalf("resolve after refresh: %v", err)
	}
	if cached.PublicKey != (domain.PublicKey{10}) {
		t.Fatal("cache not overwritten by refresh")
	}
}

func TestResolve_UnknownUser(t *testing.T) {
	relay := &countingRelay{profile: domain.AccountProfile{UserID: "bob"}}
	svc := directory.New(store.NewDirectoryFileStore(t.TempDir()), relay)

	if _, err := svc.Resolve(context.Background(), "nobody"); err == nil {
		t.Fatal("expected error for unknown user")
	}
}
