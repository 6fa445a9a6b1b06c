package identity

import (
	"context"
	"fmt"
	"unicode"

	"confide/internal/crypto"
	"confide/internal/domain"
)

const (
	// minPassphraseLength defines the minimum number of characters required
	// for a passphrase.
	minPassphraseLength = 12
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)
)

// Service manages the account key pair using a backing store and the relay
// directory.
//
// Registration publishes the public key and seals the private half locally;
// regeneration does the same with a fresh pair, orphaning history encrypted
// for the old key. That trade-off is inherent to rotation, not a bug.
type Service struct {
	keys  domain.KeyStore
	relay domain.RelayClient
}

// New returns an identity service backed by the given store and relay.
func New(keys domain.KeyStore, relay domain.RelayClient) *Service {
	return &Service{keys: keys, relay: relay}
}

// Register creates a fresh key pair, publishes the profile to the relay, and
// seals the private half with the passphrase.
func (s *Service) Register(
	ctx context.Context,
	passphrase string,
	user domain.UserID,
	displayName string,
) (domain.KeyPair, domain.Fingerprint, error) {
	if !isSecurePassphrase(passphrase) {
		return domain.KeyPair{}, "", ErrWeakPassphrase
	}

	pair, err := crypto.GenerateKeyPair()
	if err != nil {
		return domain.KeyPair{}, "", err
	}

	profile := domain.AccountProfile{
		UserID:      user,
		DisplayName: displayName,
		PublicKey:   pair.Public,
	}
	if err := s.relay.RegisterAccount(ctx, profile); err != nil {
		return domain.KeyPair{}, "", fmt.Errorf("register account: %w", err)
	}
	if err := s.keys.SaveKeyPair(passphrase, pair); err != nil {
		return domain.KeyPair{}, "", err
	}
	return pair, domain.Fingerprint(crypto.Fingerprint(pair.Public.Slice())), nil
}

// Load decrypts and returns the device key pair. If the stored public half
// is missing or corrupt it is recovered from the private key, which is the
// authoritative half.
func (s *Service) Load(passphrase string) (domain.KeyPair, error) {
	pair, err := s.keys.LoadKeyPair(passphrase)
	if err != nil {
		return domain.KeyPair{}, err
	}
	if pair.Private.IsZero() {
		return domain.KeyPair{}, crypto.ErrMissingPrivateKey
	}
	if pair.Public.IsZero() {
		pub, err := crypto.DerivePublicKey(pair.Private.Slice())
		if err != nil {
			return domain.KeyPair{}, err
		}
		pair.Public = pub
	}
	return pair, nil
}

// Regenerate rotates the key pair: fresh keys, new public key published,
// private half overwritten locally. Messages encrypted for the old key stay
// permanently unreadable.
func (s *Service) Regenerate(
	ctx context.Context,
	passphrase string,
	user domain.UserID,
) (domain.KeyPair, domain.Fingerprint, error) {
	// The store must open with this passphrase before we discard anything.
	if _, err := s.keys.LoadKeyPair(passphrase); err != nil {
		return domain.KeyPair{}, "", err
	}

	pair, err := crypto.GenerateKeyPair()
	if err != nil {
		return domain.KeyPair{}, "", err
	}
	if err := s.relay.UpdatePublicKey(ctx, user, pair.Public); err != nil {
		return domain.KeyPair{}, "", fmt.Errorf("publish rotated key: %w", err)
	}
	if err := s.keys.SaveKeyPair(passphrase, pair); err != nil {
		return domain.KeyPair{}, "", err
	}
	return pair, domain.Fingerprint(crypto.Fingerprint(pair.Public.Slice())), nil
}

// Fingerprint returns a short fingerprint of the local public key.
func (s *Service) Fingerprint(passphrase string) (domain.Fingerprint, error) {
	pair, err := s.Load(passphrase)
	if err != nil {
		return "", err
	}
	return domain.Fingerprint(crypto.Fingerprint(pair.Public.Slice())), nil
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertion that Service implements domain.IdentityService.
var _ domain.IdentityService = (*Service)(nil)
