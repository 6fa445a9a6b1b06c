// Package relayserver implements the confide relay: the account directory
// and a store-and-forward channel for encrypted envelopes.
//
// The relay never holds plaintext or private keys. It validates envelope
// shape and addressing, delivers live over WebSocket to connected receivers,
// and queues for offline ones. Queues and the directory live in Redis; an
// in-memory backend exists for tests and single-process development.
package relayserver
