package crypto

import "errors"

var (
	// ErrMissingPrivateKey means the local device holds no private key for
	// this operation. Non-retryable without key regeneration, which orphans
	// the old message history.
	ErrMissingPrivateKey = errors.New("crypto: private key material is missing on this device")

	// ErrDecryptionFailed means the authentication tag did not verify. The
	// ciphertext is permanently unreadable under the supplied key material;
	// retrying cannot succeed.
	ErrDecryptionFailed = errors.New("crypto: decryption failed, wrong key material or tampered ciphertext")

	// ErrInvalidKeyEncoding means malformed key material was supplied. It
	// indicates corruption upstream and is never silently coerced.
	ErrInvalidKeyEncoding = errors.New("crypto: invalid key encoding")

	// ErrUnknownRole means the key exchange role tag was neither initiator
	// nor responder.
	ErrUnknownRole = errors.New("crypto: unknown key exchange role")
)
