package models

import (
	"time"
)

// Confession is immutable once created: rows are never updated or deleted.
type Confession struct {
	ID      uint64 `gorm:"primarykey" json:"id"`
	Content string `gorm:"type:text;not null" json:"content"`

	ReceiverID uint64  `gorm:"not null;index" json:"receiver_id"`
	SenderID   *uint64 `gorm:"index" json:"sender_id"` // nil means anonymous

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Receiver User  `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
	Sender   *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

// Anonymous reports whether the confession carries no sender identity.
func (c Confession) Anonymous() bool {
	return c.SenderID == nil
}
