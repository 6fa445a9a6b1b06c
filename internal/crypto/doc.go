// Package crypto is the end-to-end encryption core of confide.
//
// Contents
//
//   - X25519 key pair generation and public key recovery (GenerateKeyPair,
//     DerivePublicKey)
//   - Authenticated key exchange deriving directional per-conversation
//     session keys (ComputeSessionKeys)
//   - Authenticated encryption and decryption of message bodies
//     (EncryptMessage, DecryptMessage) with XSalsa20-Poly1305
//   - Key transport encoding (EncodeKey, DecodeKey) and short public key
//     fingerprints for display (Fingerprint)
//
// # Notes
//
// The package is stateless: every function is a deterministic transformation
// over the key material supplied by the caller. Which keys exist and which
// device holds which private half is the key store's and directory's
// business. Errors are returned immediately and never logged or degraded
// here; substituting placeholder text for an unreadable message belongs to
// the message service.
//
// The session key derivation is wire-compatible with libsodium's crypto_kx:
// both halves hash the X25519 shared point together with the initiator and
// responder public keys through BLAKE2b-512 and split the digest, so the
// initiator's transmit key is the responder's receive key and vice versa.
package crypto
