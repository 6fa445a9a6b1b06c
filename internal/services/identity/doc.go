// Package identity manages creation, rotation and loading of the device key
// pair.
//
// It enforces passphrase policy, generates the X25519 pair, publishes the
// public half to the relay directory and persists the private half via the
// domain.KeyStore.
package identity
