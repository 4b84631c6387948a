package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Match proposes a correspondence between one lost and one found report.
// The composite unique index makes duplicate pairs impossible even when two
// concurrent report creations discover the same counterpart.
type Match struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	LostReportID    uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_matches_pair" json:"lost_report_id"`
	FoundReportID   uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_matches_pair" json:"found_report_id"`
	Status          MatchStatus    `gorm:"size:20;not null;default:'pending'" json:"status"`
	ConfidenceScore int            `gorm:"not null;default:0" json:"confidence_score"`
	HandoverStatus  HandoverStatus `gorm:"size:30;not null;default:'pending'" json:"handover_status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (m *Match) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = MatchPending
	}
	if m.HandoverStatus == "" {
		m.HandoverStatus = HandoverPending
	}
	return nil
}
