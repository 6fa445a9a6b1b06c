// Package directory resolves user ids to current public keys.
//
// Lookups hit the local cache first and fall back to the relay; Refresh
// bypasses the cache, which matters after a peer rotates keys.
package directory
