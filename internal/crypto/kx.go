package crypto

import (
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/curve25519"

	"confide/internal/domain"
	"confide/internal/util/memzero"
)

// ComputeSessionKeys derives the directional session keys for one
// conversation from the local key pair and the remote public key.
//
// Both sides hash BLAKE2b-512(X25519(local.Private, remote) || initiatorPub
// || responderPub) and split the digest. The initiator reads its receive key
// from the first half and its transmit key from the second; the responder
// reads the opposite. For parties A (initiator) and B (responder) this makes
// A's transmit key equal B's receive key and vice versa, which is the
// correctness property everything above relies on.
//
// Deterministic given its three inputs. Fails with ErrMissingPrivateKey when
// the local private key is absent, the single most common real-world failure
// (a device without key material trying to encrypt or decrypt).
func ComputeSessionKeys(
	local domain.KeyPair,
	remote domain.PublicKey,
	role domain.Role,
) (domain.SessionKeys, error) {
	if local.Private.IsZero() {
		return domain.SessionKeys{}, ErrMissingPrivateKey
	}
	if role != domain.RoleInitiator && role != domain.RoleResponder {
		return domain.SessionKeys{}, ErrUnknownRole
	}

	shared, err := curve25519.X25519(local.Private.Slice(), remote.Slice())
	if err != nil {
		return domain.SessionKeys{}, ErrInvalidKeyEncoding
	}
	defer memzero.Zero(shared)

	h, err := blake2b.New512(nil)
	if err != nil {
		return domain.SessionKeys{}, err
	}
	h.Write(shared)
	if role == domain.RoleInitiator {
		h.Write(local.Public.Slice())
		h.Write(remote.Slice())
	} else {
		h.Write(remote.Slice())
		h.Write(local.Public.Slice())
	}
	digest := h.Sum(nil)
	defer memzero.Zero(digest)

	var keys domain.SessionKeys
	if role == domain.RoleInitiator {
		copy(keys.Receive[:], digest[:32])
		copy(keys.Transmit[:], digest[32:])
	} else {
		copy(keys.Transmit[:], digest[:32])
		copy(keys.Receive[:], digest[32:])
	}
	return keys, nil
}
