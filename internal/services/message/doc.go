// Package message sends and receives encrypted messages.
//
// It derives per-conversation session keys through the crypto core, moves
// ciphertexts via the RelayClient, and persists decrypted history. An
// envelope that fails authentication is recorded as a placeholder and still
// acknowledged; the ciphertext cannot become readable on retry.
package message
