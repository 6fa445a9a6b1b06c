// Package relay provides HTTP and WebSocket implementations of the
// domain.RelayClient and domain.RelayStream interfaces used by confide.
//
// The relay acts as the account directory and as a store-and-forward channel
// for encrypted envelopes between peers. It only ever sees public keys,
// ciphertexts and nonces; plaintext never reaches it.
//
// Supported operations include:
//   - Registering an account profile and rotating its public key.
//   - Fetching a peer's profile (current public key).
//   - Sending encrypted envelopes to a peer via the relay.
//   - Fetching pending envelopes, and the caller's own sent copies for
//     re-sync.
//   - Acknowledging received envelopes.
//   - Subscribing to live envelope delivery over WebSocket.
//
// All requests are JSON over HTTP and accept a context for cancellation and
// deadlines. Non-2xx statuses are returned as errors with the HTTP method,
// path, and status text to aid diagnostics.
package relay
