package model

import (
	"time"

	"marketapi/internal/query"
	"marketapi/internal/repository"
)

// Message is a direct message between two users about an item. The timestamp
// is server-assigned. Duplicate sends (same sender, recipient, item, and
// text) resolve to the existing row instead of inserting twice.
type Message struct {
	ID          int64     `json:"id"`
	SenderID    int64     `json:"sender_id"`
	RecipientID int64     `json:"recipient_id"`
	ItemID      int64     `json:"item_id"`
	Text        string    `json:"text"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

// MessageCreate is the validated payload for sending a message. The sender
// is the authenticated caller and is injected by the service, never taken
// from the payload.
type MessageCreate struct {
	RecipientID int64  `json:"recipient_id"`
	ItemID      int64  `json:"item_id"`
	Text        string `json:"text"`
}

// Fields returns the insert columns for the payload with the caller's id as
// the sender.
func (m MessageCreate) Fields(senderID int64) repository.Fields {
	return repository.Fields{
		"sender_id":    senderID,
		"recipient_id": m.RecipientID,
		"item_id":      m.ItemID,
		"text":         m.Text,
	}
}

// MessageUpdate serves both full updates and sparse patches.
type MessageUpdate struct {
	Text   *string `json:"text"`
	IsRead *bool   `json:"is_read"`
}

// EditFields implements repository.FieldSource.
func (u MessageUpdate) EditFields(excludeUnset bool) repository.Fields {
	f := repository.Fields{}
	if !excludeUnset || u.Text != nil {
		f["text"] = query.Value(u.Text)
	}
	if !excludeUnset || u.IsRead != nil {
		f["is_read"] = query.Value(u.IsRead)
	}
	return f
}
