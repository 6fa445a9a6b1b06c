package types

// EncryptedEnvelope is one encrypted message body: ciphertext plus the nonce
// it was sealed with, both base64 for transport. The pair is meaningful only
// together and only under the exact session key that produced it.
type EncryptedEnvelope struct {
	Ciphertext string `json:"ciphertext"`
	Nonce      string `json:"nonce"`
}

// Envelope is the wire-format message posted to and fetched from the relay.
type Envelope struct {
	ID   string `json:"id"`
	From UserID `json:"from"`
	To   UserID `json:"to"`
	EncryptedEnvelope
	Timestamp int64 `json:"timestamp"`
}
