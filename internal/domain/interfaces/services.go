package interfaces

import (
	"context"

	domaintypes "confide/internal/domain/types"
)

// IdentityService creates, loads, rotates and inspects the device key pair.
type IdentityService interface {
	Register(
		ctx context.Context,
		passphrase string,
		user domaintypes.UserID,
		displayName string,
	) (domaintypes.KeyPair, domaintypes.Fingerprint, error)
	Load(passphrase string) (domaintypes.KeyPair, error)
	Regenerate(ctx context.Context, passphrase string, user domaintypes.UserID) (
		domaintypes.KeyPair,
		domaintypes.Fingerprint,
		error,
	)
	Fingerprint(passphrase string) (domaintypes.Fingerprint, error)
}

// DirectoryService resolves a user id to that user's current public key.
type DirectoryService interface {
	Resolve(ctx context.Context, user domaintypes.UserID) (domaintypes.AccountProfile, error)
	Refresh(ctx context.Context, user domaintypes.UserID) (domaintypes.AccountProfile, error)
}

// MessageService encrypts, sends, fetches and decrypts messages.
type MessageService interface {
	Send(
		ctx context.Context,
		passphrase string,
		from domaintypes.UserID,
		to domaintypes.UserID,
		plaintext []byte,
	) error
	Receive(
		ctx context.Context,
		passphrase string,
		me domaintypes.UserID,
		limit int,
	) ([]domaintypes.Message, error)
	ResyncSent(
		ctx context.Context,
		passphrase string,
		me domaintypes.UserID,
		peer domaintypes.UserID,
	) ([]domaintypes.Message, error)
}
