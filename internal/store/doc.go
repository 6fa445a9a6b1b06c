// Package store persists client-side state under the config home.
//
// The device key pair is sealed with a passphrase-derived key (scrypt then
// ChaCha20-Poly1305); everything else (directory cache, decrypted history)
// is plain JSON written atomically via a temp file and rename.
package store
