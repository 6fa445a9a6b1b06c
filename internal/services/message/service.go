package message

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"confide/internal/crypto"
	"confide/internal/domain"
)

// UnreadablePlaceholder is the user-visible body stored for an envelope
// whose authentication tag did not verify.
const UnreadablePlaceholder = "this message could not be decrypted"

var (
	// ErrSelfMessage mirrors the relay-side rule: a user cannot message
	// themselves.
	ErrSelfMessage = errors.New("cannot send a message to yourself")
)

// Service sends and receives messages over the relay.
//
// High-level flow:
//   - Send: resolve the receiver's public key, encrypt as initiator, post
//     the envelope, append the plaintext copy to local history.
//   - Receive: fetch envelopes, resolve each sender's public key, decrypt as
//     responder, persist plaintext (or a placeholder for an unreadable
//     envelope), then ack exactly what was processed.
//   - ResyncSent: fetch our own sent copies and decrypt them with the
//     initiator role, rebuilding history on a device that kept its keys.
type Service struct {
	keys      domain.KeyStore
	directory domain.DirectoryService
	history   domain.MessageStore
	relay     domain.RelayClient
}

// New constructs a message service with the given stores, directory and
// relay client.
func New(
	keys domain.KeyStore,
	directory domain.DirectoryService,
	history domain.MessageStore,
	relay domain.RelayClient,
) *Service {
	return &Service{
		keys:      keys,
		directory: directory,
		history:   history,
		relay:     relay,
	}
}

// Send encrypts plaintext for to and posts it via the relay.
func (s *Service) Send(
	ctx context.Context,
	passphrase string,
	from domain.UserID,
	to domain.UserID,
	plaintext []byte,
) error {
	if from == to {
		return ErrSelfMessage
	}
	pair, err := s.keys.LoadKeyPair(passphrase)
	if err != nil {
		return err
	}

	peer, err := s.directory.Resolve(ctx, to)
	if err != nil {
		return err
	}

	sealed, err := crypto.EncryptMessage(pair, peer.PublicKey, plaintext)
	if err != nil {
		return err
	}

	env := domain.Envelope{
		ID:                uuid.NewString(),
		From:              from,
		To:                to,
		EncryptedEnvelope: sealed,
		Timestamp:         time.Now().Unix(),
	}
	if err := s.relay.SendEnvelope(ctx, env); err != nil {
		return fmt.Errorf("send envelope to %q: %w", to, err)
	}

	// Our own plaintext copy; the relay only ever stores the ciphertext.
	return s.history.AppendMessage(to, domain.Message{
		ID:        env.ID,
		From:      from,
		To:        to,
		Body:      string(plaintext),
		Timestamp: env.Timestamp,
	})
}

// Receive fetches pending envelopes and decrypts them.
//
// Envelopes are processed in relay order. An authentication failure is a
// terminal, per-message condition: the placeholder is persisted and the
// envelope still counts as processed so it is acked and never re-fetched.
// Any other error stops processing and leaves the remaining envelopes
// queued; only the processed prefix is acked.
func (s *Service) Receive(
	ctx context.Context,
	passphrase string,
	me domain.UserID,
	limit int,
) ([]domain.Message, error) {
	pair, err := s.keys.LoadKeyPair(passphrase)
	if err != nil {
		return nil, err
	}

	envs, err := s.relay.FetchEnvelopes(ctx, me, limit)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Message, 0, len(envs))
	processed := 0

	for i, env := range envs {
		sender, err := s.directory.Resolve(ctx, env.From)
		if err != nil {
			break // leave this and the rest queued
		}

		msg := domain.Message{
			ID:        env.ID,
			From:      env.From,
			To:        env.To,
			Timestamp: env.Timestamp,
		}
		plain, err := crypto.DecryptMessage(pair, sender.PublicKey, env.EncryptedEnvelope, false)
		switch {
		case err == nil:
			msg.Body = string(plain)
		case errors.Is(err, crypto.ErrDecryptionFailed):
			// Permanently unreadable; keep the placeholder so the envelope
			// is acked and never re-fetched.
			msg.Body = UnreadablePlaceholder
			msg.Unreadable = true
		default:
			// Missing key material or corrupt inputs; nothing past this
			// point can decrypt either.
			return out, fmt.Errorf("decrypt from %q: %w", env.From, err)
		}

		if err := s.history.AppendMessage(env.From, msg); err != nil {
			return out, fmt.Errorf("save message from %q: %w", env.From, err)
		}
		out = append(out, msg)
		processed = i + 1
	}

	// Ack only what we processed successfully. If zero, do nothing.
	if processed > 0 {
		if err := s.relay.AckEnvelopes(ctx, me, processed); err != nil {
			return out, fmt.Errorf("ack %d envelopes: %w", processed, err)
		}
	}
	return out, nil
}

// ResyncSent rebuilds the local copy of our own sent messages to peer.
//
// The device decrypts its own envelopes with the initiator role, exactly
// mirroring the transmit key that sealed them. Unreadable entries (for
// example, envelopes sealed before a key rotation) become placeholders.
func (s *Service) ResyncSent(
	ctx context.Context,
	passphrase string,
	me domain.UserID,
	peer domain.UserID,
) ([]domain.Message, error) {
	pair, err := s.keys.LoadKeyPair(passphrase)
	if err != nil {
		return nil, err
	}
	peerProfile, err := s.directory.Resolve(ctx, peer)
	if err != nil {
		return nil, err
	}

	envs, err := s.relay.FetchSentEnvelopes(ctx, me, peer, 0)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Message, 0, len(envs))
	for _, env := range envs {
		msg := domain.Message{
			ID:        env.ID,
			From:      env.From,
			To:        env.To,
			Timestamp: env.Timestamp,
		}
		plain, err := crypto.DecryptMessage(pair, peerProfile.PublicKey, env.EncryptedEnvelope, true)
		switch {
		case err == nil:
			msg.Body = string(plain)
		case errors.Is(err, crypto.ErrDecryptionFailed):
			msg.Body = UnreadablePlaceholder
			msg.Unreadable = true
		default:
			return nil, fmt.Errorf("resync decrypt for %q: %w", peer, err)
		}
		out = append(out, msg)
	}

	existing, err := s.history.LoadMessages(peer)
	if err != nil {
		return nil, err
	}
	if err := s.history.ReplaceMessages(peer, merge(existing, out)); err != nil {
		return nil, err
	}
	return out, nil
}

// merge folds resynced sent messages into existing history, de-duplicated by
// envelope id and ordered by timestamp.
func merge(existing, resynced []domain.Message) []domain.Message {
	seen := make(map[string]bool, len(existing))
	merged := make([]domain.Message, 0, len(existing)+len(resynced))
	for _, m := range existing {
		seen[m.ID] = true
		merged = append(merged, m)
	}
	for _, m := range resynced {
		if !seen[m.ID] {
			merged = append(merged, m)
		}
	}
	for i := 1; i < len(merged); i++ {
		for j := i; j > 0 && merged[j].Timestamp < merged[j-1].Timestamp; j-- {
			merged[j], merged[j-1] = merged[j-1], merged[j]
		}
	}
	return merged
}

// Compile-time assertion that Service implements domain.MessageService.
var _ domain.MessageService = (*Service)(nil)
