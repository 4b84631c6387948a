package dto

import (
	"time"

	"github.com/google/uuid"
)

type AdminMatchRequest struct {
	LostReportID  uuid.UUID `json:"lost_report_id"`
	FoundReportID uuid.UUID `json:"found_report_id"`
}

// UserMatch is one entry in a user's match list: their own item plus the
// matched counterpart.
type UserMatch struct {
	MatchID        uuid.UUID   `json:"match_id"`
	Side           string      `json:"side"` // "lost" or "found"
	MyItem         interface{} `json:"my_item"`
	MatchedItem    interface{} `json:"matched_item"`
	Confidence     int         `json:"confidence"`
	Status         string      `json:"status"`
	HandoverStatus string      `json:"handover_status"`
	CreatedAt      time.Time   `json:"created_at"`
}

// ScanCandidate is one scored pair from the interactive full scan.
type ScanCandidate struct {
	LostReport      interface{} `json:"lost_report"`
	FoundReport     interface{} `json:"found_report"`
	NameScore       int         `json:"name_score"`
	TextScore       int         `json:"text_score"`
	FinalScore      int         `json:"final_score"`
	BoostedKeywords []string    `json:"boosted_keywords"`
	HighConfidence  bool        `json:"high_confidence"`
}

type PostMessageRequest struct {
	Body string `json:"body"`
}

type AssistantChatRequest struct {
	Message string `json:"message"`
}

type AssistantSearchRequest struct {
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
}

type AssistedMatchRequest struct {
	FoundReportID uuid.UUID `json:"found_report_id"`
	Description   string    `json:"description"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Location      string    `json:"location"`
}
