package domain

import "time"

type User struct {
	ID           string
	Username     string
	PasswordHash string
}

// VaultEntry is a named cipher configuration owned by a user. Key and IV
// are stored hex encoded; SegmentSize only matters for CFB.
type VaultEntry struct {
	EntryID     string
	OwnerID     string
	Name        string
	Algorithm   string
	Mode        string
	Padding     string
	KeyHex      string
	IvHex       string
	SegmentSize int
	CreatedAt   time.Time
}

// SealedObject is a ciphertext blob produced through a vault entry.
type SealedObject struct {
	ObjectID  string
	EntryID   string
	OwnerID   string
	Label     string
	Data      []byte
	Size      int
	CreatedAt time.Time
}

type AuditEvent struct {
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	EntryID   string    `json:"entry_id,omitempty"`
	ObjectID  string    `json:"object_id,omitempty"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Notification tells a user that one of their objects changed state.
type Notification struct {
	MessageID string `json:"message_id"`
	UserID    string `json:"-"`
	ObjectID  string `json:"object_id"`
	EntryID   string `json:"entry_id"`
	Label     string `json:"label"`
	Action    string `json:"action"`
}
