package types

// PublicKey is a Curve25519 public key, safe to share and to publish to the
// relay directory.
type PublicKey [32]byte

// Slice returns the key as a []byte.
func (p PublicKey) Slice() []byte { return p[:] }

// IsZero reports whether the key is unset.
func (p PublicKey) IsZero() bool { return p == PublicKey{} }

// PrivateKey is a Curve25519 private key. It never leaves the device that
// generated it.
type PrivateKey [32]byte

// Slice returns the key as a []byte.
func (k PrivateKey) Slice() []byte { return k[:] }

// IsZero reports whether the key is unset. A zero private key marks a device
// that holds no key material for the account.
func (k PrivateKey) IsZero() bool { return k == PrivateKey{} }

// KeyPair is a complete X25519 key pair. The public half is published to the
// directory; the private half stays in the local key store.
type KeyPair struct {
	Public  PublicKey  `json:"public"`
	Private PrivateKey `json:"private"`
}

// Role names the two fixed sides of the key exchange. The role decides which
// half of the derived key block becomes the transmit key and which the
// receive key; it is a property of the exchange, not of who sent a
// particular message.
type Role uint8

const (
	// RoleInitiator is the side that encrypts as the original sender.
	RoleInitiator Role = iota + 1
	// RoleResponder is the side that decrypts or replies in the receiver
	// context.
	RoleResponder
)

// String returns a human-readable role name.
func (r Role) String() string {
	switch r {
	case RoleInitiator:
		return "initiator"
	case RoleResponder:
		return "responder"
	default:
		return "unknown"
	}
}

// SessionKeys is the ephemeral per-conversation key material derived from one
// key exchange. Never persisted; recomputed per operation.
type SessionKeys struct {
	Transmit [32]byte
	Receive  [32]byte
}
