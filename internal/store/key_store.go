package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"confide/internal/domain"
)

const keyPairFile = "keypair.enc"

// ErrNoKeyPair means this device has never generated keys (or the store was
// wiped). For an existing account this is the fatal, non-recoverable state:
// history encrypted for the old keys cannot be read again.
var ErrNoKeyPair = errors.New("store: no key pair on this device")

// KeyFileStore keeps the device key pair on disk, sealed with a passphrase.
type KeyFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewKeyFileStore returns a key store rooted at dir.
func NewKeyFileStore(dir string) *KeyFileStore { return &KeyFileStore{dir: dir} }

// SaveKeyPair seals pair with the passphrase and replaces the stored copy.
func (s *KeyFileStore) SaveKeyPair(passphrase string, pair domain.KeyPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(pair)
	if err != nil {
		return err
	}
	N, r, p := scryptParamsDefault()
	sealed, err := seal(passphrase, raw, N, r, p)
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(s.dir, keyPairFile), sealed, 0o600)
}

// LoadKeyPair decrypts and returns the device key pair.
func (s *KeyFileStore) LoadKeyPair(passphrase string) (domain.KeyPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sealed, err := os.ReadFile(filepath.Join(s.dir, keyPairFile))
	if errors.Is(err, os.ErrNotExist) {
		return domain.KeyPair{}, ErrNoKeyPair
	}
	if err != nil {
		return domain.KeyPair{}, err
	}
	raw, err := open(passphrase, sealed)
	if err != nil {
		return domain.KeyPair{}, err
	}
	var pair domain.KeyPair
	if err := json.Unmarshal(raw, &pair); err != nil {
		return domain.KeyPair{}, err
	}
	return pair, nil
}

// Compile-time assertion that KeyFileStore implements domain.KeyStore.
var _ domain.KeyStore = (*KeyFileStore)(nil)
