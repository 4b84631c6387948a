package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LostReport is a user's description of an item they lost on campus.
// Immutable once matched except for Status.
type LostReport struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ItemName           string         `gorm:"size:200;not null" json:"item_name"`
	Category           string         `gorm:"size:100;index" json:"category"`
	Description        string         `gorm:"type:text" json:"description"`
	Location           string         `gorm:"size:200" json:"location"`
	IdentificationMark string         `gorm:"size:300" json:"identification_mark"`
	TimeRange          string         `gorm:"size:100" json:"time_range"`
	DateLost           *time.Time     `gorm:"type:date" json:"date_lost"`
	ImageURL           string         `gorm:"size:500" json:"image_url"`
	ReporterEmail      string         `gorm:"size:255;not null;index" json:"reporter_email"`
	ReporterName       string         `gorm:"size:200" json:"reporter_name"`
	Status             ReportStatus   `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (r *LostReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = ReportPending
	}
	return nil
}

// FoundReport is a finder's description of an item handed in or held.
type FoundReport struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ItemName    string         `gorm:"size:200;not null" json:"item_name"`
	Category    string         `gorm:"size:100;index" json:"category"`
	Description string         `gorm:"type:text" json:"description"`
	PlaceFound  string         `gorm:"size:200" json:"place_found"`
	DateFound   *time.Time     `gorm:"type:date" json:"date_found"`
	ImageURL    string         `gorm:"size:500" json:"image_url"`
	FinderEmail string         `gorm:"size:255;not null;index" json:"finder_email"`
	FinderName  string         `gorm:"size:200" json:"finder_name"`
	Status      ReportStatus   `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (r *FoundReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = ReportPending
	}
	return nil
}
