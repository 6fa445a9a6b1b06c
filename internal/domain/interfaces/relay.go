package interfaces

import (
	"context"

	domaintypes "confide/internal/domain/types"
)

// RelayClient is how we talk to the central relay server, all with context.
// It covers both collaborator roles the encryption core depends on: the
// public key directory and the store-and-forward transport channel.
type RelayClient interface {
	RegisterAccount(ctx context.Context, profile domaintypes.AccountProfile) error
	UpdatePublicKey(ctx context.Context, user domaintypes.UserID, pub domaintypes.PublicKey) error
	FetchProfile(ctx context.Context, user domaintypes.UserID) (domaintypes.AccountProfile, error)

	SendEnvelope(ctx context.Context, envelope domaintypes.Envelope) error
	FetchEnvelopes(
		ctx context.Context,
		user domaintypes.UserID,
		limit int,
	) ([]domaintypes.Envelope, error)
	FetchSentEnvelopes(
		ctx context.Context,
		user domaintypes.UserID,
		peer domaintypes.UserID,
		limit int,
	) ([]domaintypes.Envelope, error)
	AckEnvelopes(ctx context.Context, user domaintypes.UserID, count int) error
}

// RelayStream is a live delivery channel. Envelopes arrive in relay order;
// ordering and redelivery are the relay's concern, not the crypto core's.
type RelayStream interface {
	Subscribe(ctx context.Context, user domaintypes.UserID) (<-chan domaintypes.Envelope, error)
}
