package types

// AccountProfile is the public record a user publishes to the relay
// directory: identity plus the current public key.
type AccountProfile struct {
	UserID      UserID    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	PublicKey   PublicKey `json:"public_key"`
}
