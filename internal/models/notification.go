package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notification is an append-only in-app message. Admin-channel rows have
// Audience=admin and an empty RecipientEmail; only the read flag mutates.
type Notification struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Audience       Audience          `gorm:"size:10;not null;default:'user';index" json:"audience"`
	RecipientEmail string            `gorm:"size:255;index" json:"recipient_email"`
	Title          string            `gorm:"size:200;not null" json:"title"`
	Message        string            `gorm:"type:text" json:"message"`
	Data           datatypes.JSONMap `json:"data"`
	IsRead         bool              `gorm:"not null;default:false" json:"is_read"`
	CreatedAt      time.Time         `json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.Audience == "" {
		n.Audience = AudienceUser
	}
	return nil
}
