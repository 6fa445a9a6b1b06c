package crypto

import (
	"encoding/base64"

	"confide/internal/domain"
)

// b64 returns standard base64 encoding without newlines.
func b64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

// unb64 decodes standard base64; a malformed string is treated as a
// permanently unreadable payload, not retried.
func unb64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return b, nil
}

// EncodeKey renders a key for transport or display.
func EncodeKey(key []byte) string { return base64.StdEncoding.EncodeToString(key) }

// DecodeKey parses a base64 public key as published in the directory.
func DecodeKey(s string) (domain.PublicKey, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return domain.PublicKey{}, ErrInvalidKeyEncoding
	}
	if len(b) != 32 {
		return domain.PublicKey{}, ErrInvalidKeyEncoding
	}
	var pub domain.PublicKey
	copy(pub[:], b)
	return pub, nil
}
