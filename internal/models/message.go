package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message belongs to exactly one match conversation. Append-only except
// for the read flag.
type Message struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MatchID       uuid.UUID `gorm:"type:uuid;not null;index" json:"match_id"`
	SenderEmail   string    `gorm:"size:255;not null" json:"sender_email"`
	SenderName    string    `gorm:"size:200" json:"sender_name"`
	ReceiverEmail string    `gorm:"size:255;not null;index" json:"receiver_email"`
	ReceiverName  string    `gorm:"size:200" json:"receiver_name"`
	Body          string    `gorm:"type:text;not null" json:"body"`
	IsRead        bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
