package services

import (
	"strings"

	"github.com/campustrack/backend/internal/match"
	"github.com/campustrack/backend/internal/models"
)

// lostItem adapts a lost report to the matcher's view: the concatenated
// descriptive fields plus the identification-mark boost tokens.
func lostItem(r *models.LostReport) match.Item {
	return match.Item{
		ID:          r.ID,
		Name:        r.ItemName,
		Category:    r.Category,
		Text:        joinFields(r.ItemName, r.Description, r.Location, r.Category),
		BoostTokens: match.BoostTokens(r.IdentificationMark),
	}
}

func foundItem(r *models.FoundReport) match.Item {
	return match.Item{
		ID:       r.ID,
		Name:     r.ItemName,
		Category: r.Category,
		Text:     joinFields(r.ItemName, r.Description, r.PlaceFound, r.Category),
	}
}

func joinFields(fields ...string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
