package interfaces

import domaintypes "confide/internal/domain/types"

// KeyStore persists the device key pair. The private half is sealed with a
// passphrase-derived key and never leaves the device; losing the store (or
// the passphrase) makes all past message history permanently unreadable.
type KeyStore interface {
	SaveKeyPair(passphrase string, pair domaintypes.KeyPair) error
	LoadKeyPair(passphrase string) (domaintypes.KeyPair, error)
}

// DirectoryStore caches peer public key resolutions between relay lookups.
type DirectoryStore interface {
	SaveProfile(profile domaintypes.AccountProfile) error
	LoadProfile(user domaintypes.UserID) (domaintypes.AccountProfile, bool, error)
	DeleteProfile(user domaintypes.UserID) error
}

// MessageStore keeps the local decrypted history, including placeholder
// entries for envelopes that could not be decrypted.
type MessageStore interface {
	AppendMessage(peer domaintypes.UserID, msg domaintypes.Message) error
	LoadMessages(peer domaintypes.UserID) ([]domaintypes.Message, error)
	ReplaceMessages(peer domaintypes.UserID, msgs []domaintypes.Message) error
}
