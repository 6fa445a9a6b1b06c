package crypto

import (
	"crypto/rand"

	"golang.org/x/crypto/nacl/secretbox"

	"confide/internal/domain"
	"confide/internal/util/memzero"
)

// NonceBytes is the XSalsa20-Poly1305 nonce length, fresh per encryption.
const NonceBytes = 24

// EncryptMessage seals plaintext for the holder of receiverPub.
//
// The sender is the initiator of the exchange, so the message goes out under
// the initiator transmit key. Ciphertext and nonce come back base64 encoded
// for transport. Failures here are programmer errors or broken randomness,
// never transient; there is nothing to retry.
func EncryptMessage(
	sender domain.KeyPair,
	receiverPub domain.PublicKey,
	plaintext []byte,
) (domain.EncryptedEnvelope, error) {
	if sender.Private.IsZero() {
		return domain.EncryptedEnvelope{}, ErrMissingPrivateKey
	}
	keys, err := ComputeSessionKeys(sender, receiverPub, domain.RoleInitiator)
	if err != nil {
		return domain.EncryptedEnvelope{}, err
	}
	defer memzero.Zero(keys.Transmit[:])
	defer memzero.Zero(keys.Receive[:])

	var nonce [NonceBytes]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return domain.EncryptedEnvelope{}, err
	}
	box := secretbox.Seal(nil, plaintext, &nonce, &keys.Transmit)

	return domain.EncryptedEnvelope{
		Ciphertext: b64(box),
		Nonce:      b64(nonce[:]),
	}, nil
}

// DecryptMessage opens an envelope and returns the plaintext.
//
// sentByLocal picks the key exchange role: true means the local party was
// the original sender of this envelope (re-sync of own sent history) and the
// initiator transmit key opens it; false means the local party is the
// receiver and the responder receive key opens it. This mirrors exactly
// which key the encrypting side used; inverting it makes the tag check fail.
//
// A tag mismatch comes back as ErrDecryptionFailed: the content is
// permanently unreadable under this key material, and retrying cannot help.
// Callers persist a placeholder instead of dropping the message.
func DecryptMessage(
	local domain.KeyPair,
	remotePub domain.PublicKey,
	env domain.EncryptedEnvelope,
	sentByLocal bool,
) ([]byte, error) {
	if local.Private.IsZero() {
		return nil, ErrMissingPrivateKey
	}

	role := domain.RoleResponder
	if sentByLocal {
		role = domain.RoleInitiator
	}
	keys, err := ComputeSessionKeys(local, remotePub, role)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(keys.Transmit[:])
	defer memzero.Zero(keys.Receive[:])

	key := &keys.Receive
	if sentByLocal {
		key = &keys.Transmit
	}

	box, err := unb64(env.Ciphertext)
	if err != nil {
		return nil, err
	}
	nonceBytes, err := unb64(env.Nonce)
	if err != nil {
		return nil, err
	}
	if len(nonceBytes) != NonceBytes {
		return nil, ErrDecryptionFailed
	}
	var nonce [NonceBytes]byte
	copy(nonce[:], nonceBytes)

	plaintext, ok := secretbox.Open(nil, box, &nonce, key)
	if !ok {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}
