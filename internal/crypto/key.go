package crypto

import (
	"crypto/rand"

	"golang.org/x/crypto/curve25519"

	"confide/internal/domain"
)

// GenerateKeyPair returns a fresh X25519 key pair from a cryptographically
// secure random source. The caller persists the private half locally and
// publishes the public half to the directory.
func GenerateKeyPair() (domain.KeyPair, error) {
	var priv domain.PrivateKey
	if _, err := rand.Read(priv[:]); err != nil {
		return domain.KeyPair{}, err
	}
	pub, err := DerivePublicKey(priv.Slice())
	if err != nil {
		return domain.KeyPair{}, err
	}
	return domain.KeyPair{Public: pub, Private: priv}, nil
}

// DerivePublicKey recovers the public key from raw private key bytes via
// scalar base multiplication. Deterministic: the same private key always
// yields the same public key. Used on the recovery path when only the
// private half survived locally.
func DerivePublicKey(privateKey []byte) (domain.PublicKey, error) {
	if len(privateKey) != curve25519.ScalarSize {
		return domain.PublicKey{}, ErrInvalidKeyEncoding
	}
	pb, err := curve25519.X25519(privateKey, curve25519.Basepoint)
	if err != nil {
		return domain.PublicKey{}, ErrInvalidKeyEncoding
	}
	var pub domain.PublicKey
	copy(pub[:], pb)
	return pub, nil
}
