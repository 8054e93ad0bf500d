package kafka

import "time"

// AuditMessage is the wire form of a vault audit event.
type AuditMessage struct {
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	EntryID   string    `json:"entry_id,omitempty"`
	ObjectID  string    `json:"object_id,omitempty"`
	Action    string    `json:"action"` // "entry.create", "object.seal", "object.open", ...
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
