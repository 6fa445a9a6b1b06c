package identity_test

import (
	"context"
	"errors"
	"testing"

	"confide/internal/crypto"
	"confide/internal/domain"
	"confide/internal/services/identity"
	"confide/internal/store"
)

// recordingRelay records directory writes and implements the rest of
// domain.RelayClient as no-ops.
type recordingRelay struct {
	registered []domain.AccountProfile
	rotated    map[domain.UserID]domain.PublicKey
}

func newRecordingRelay() *recordingRelay {
	return &recordingRelay{rotated: make(map[domain.UserID]domain.PublicKey)}
}

func (r *recordingRelay) RegisterAccount(_ context.Context, p domain.AccountProfile) error {
	r.registered = append(r.registered, p)
	return nil
}

func (r *recordingRelay) UpdatePublicKey(_ context.Context, u domain.UserID, pub domain.PublicKey) error {
	r.rotated[u] = pub
	return nil
}

func (r *recordingRelay) FetchProfile(context.Context, domain.UserID) (domain.AccountProfile, error) {
	return domain.AccountProfile{}, errors.New("not implemented")
}

func (r *recordingRelay) SendEnvelope(context.Context, domain.Envelope) error {
	return errors.New("not implemented")
}

func (r *recordingRelay) FetchEnvelopes(context.Context, domain.UserID, int) ([]domain.Envelope, error) {
	return nil, errors.New("not implemented")
}

func (r *recordingRelay) FetchSentEnvelopes(context.Context, domain.UserID, domain.UserID, int) ([]domain.Envelope, error) {
	return nil, errors.New("not implemented")
}

func (r *recordingRelay) AckEnvelopes(context.Context, domain.UserID, int) error {
	return errors.New("not implemented")
}

const goodPassphrase = "Tr1cky-Passphrase!"

func TestRegister_PublishesAndPersists(t *testing.T) {
	relay := newRecordingRelay()
	keys := store.NewKeyFileStore(t.TempDir())
	svc := identity.New(keys, relay)

	pair, fp, err := svc.Register(context.Background(), goodPassphrase, "alice", "Alice")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if fp == "" {
		t.Fatal("empty fingerprint")
	}
	if len(relay.registered) != 1 || relay.registered[0].PublicKey != pair.Public {
		t.Fatalf("profile not published: %+v", relay.registered)
	}

	loaded, err := svc.Load(goodPassphrase)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != pair {
		t.Fatal("loaded pair differs from registered pair")
	}
}

func TestRegister_WeakPassphrase(t *testing.T) {
	svc := identity.New(store.NewKeyFileStore(t.TempDir()), newRecordingRelay())

	if _, _, err := svc.Register(context.Background(), "short", "alice", "Alice"); !errors.Is(err, identity.ErrWeakPassphrase) {
		t.Fatalf("want ErrWeakPassphrase, got %v", err)
	}
}

func TestRegenerate_RotatesKeys(t *testing.T) {
	relay := newRecordingRelay()
	svc := identity.New(store.NewKeyFileStore(t.TempDir()), relay)
	ctx := context.Background()

	old, _, err := svc.Register(ctx, goodPassphrase, "alice", "Alice")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	fresh, _, err := svc.Regenerate(ctx, goodPassphrase, "alice")
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if fresh.Public == old.Public {
		t.Fatal("regeneration returned the old public key")
	}
	if relay.rotated["alice"] != fresh.Public {
		t.Fatal("rotated key not published to the directory")
	}

	loaded, err := svc.Load(goodPassphrase)
	if err != nil {
		t.Fatalf("load after rotation: %v", err)
	}
	if loaded != fresh {
		t.Fatal("store still holds the old pair")
	}
}

func TestLoad_RecoversPublicKeyFromPrivate(t *testing.T) {
	keys := store.NewKeyFileStore(t.TempDir())
	svc := identity.New(keys, newRecordingRelay())

	pair, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	// Simulate a store that only retained the private half.
	if err := keys.SaveKeyPair(goodPassphrase, domain.KeyPair{Private: pair.Private}); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := svc.Load(goodPassphrase)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Public != pair.Public {
		t.Fatal("public key not recovered from private half")
	}
}

func TestLoad_MissingPrivateKey(t *testing.T) {
	keys := store.NewKeyFileStore(t.TempDir())
	svc := identity.New(keys, newRecordingRelay())

	if err := keys.SaveKeyPair(goodPassphrase, domain.KeyPair{Public: domain.PublicKey{1}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := svc.Load(goodPassphrase); !errors.Is(err, crypto.ErrMissingPrivateKey) {
		t.Fatalf("want ErrMissingPrivateKey, got %v", err)
	}
}
