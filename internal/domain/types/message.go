package types

// Message is one entry of the local decrypted history. An unreadable
// envelope is stored as a placeholder body with Unreadable set, so that the
// message is still acknowledged and never re-fetched.
type Message struct {
	ID         string `json:"id"`
	From       UserID `json:"from"`
	To         UserID `json:"to"`
	Body       string `json:"body"`
	Unreadable bool   `json:"unreadable,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}
