// Package commands implements the confide CLI surface.
//
// Every command builds on the wired services from internal/app. Only watch
// decrypts in-line, because streamed envelopes bypass the message service's
// fetch/ack cycle.
package commands
