package services

import (
	"fmt"
	"log/slog"

	"github.com/campustrack/backend/internal/match"
	"github.com/campustrack/backend/internal/models"
	"github.com/campustrack/backend/internal/notify"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AutoNotifyThreshold is the minimum confidence (percent) at which the
// auto trigger materializes a candidate into a match and notifies both
// parties.
const AutoNotifyThreshold = 60

// AutoMatchService runs the matching scan that fires after every report
// creation. Everything in here is best-effort: failures are logged and
// swallowed so they can never roll back the report that triggered them.
type AutoMatchService struct {
	db          *gorm.DB
	dispatcher  *notify.Dispatcher
	frontendURL string
}

func NewAutoMatchService(db *gorm.DB, dispatcher *notify.Dispatcher, frontendURL string) *AutoMatchService {
	return &AutoMatchService{db: db, dispatcher: dispatcher, frontendURL: frontendURL}
}

// OnLostReportCreated scans the entire found corpus for the new lost
// report and returns how many new matches were created.
func (s *AutoMatchService) OnLostReportCreated(lost *models.LostReport) int {
	var corpus []models.FoundReport
	if err := s.db.Find(&corpus).Error; err != nil {
		slog.Error("auto-match scan failed to load found reports", "error", err)
		return 0
	}

	items := make([]match.Item, len(corpus))
	byID := make(map[uuid.UUID]*models.FoundReport, len(corpus))
	for i := range corpus {
		items[i] = foundItem(&corpus[i])
		byID[corpus[i].ID] = &corpus[i]
	}

	created := 0
	for _, cand := range match.FindCandidates(lostItem(lost), items, match.AutoTrigger) {
		if cand.FinalScore < AutoNotifyThreshold {
			break // ranked descending, nothing below qualifies
		}
		if s.createMatchAndNotify(lost, byID[cand.Item.ID], cand.FinalScore) {
			created++
		}
	}
	return created
}

// OnFoundReportCreated scans the entire lost corpus for the new found
// report and returns how many new matches were created.
func (s *AutoMatchService) OnFoundReportCreated(found *models.FoundReport) int {
	var corpus []models.LostReport
	if err := s.db.Find(&corpus).Error; err != nil {
		slog.Error("auto-match scan failed to load lost reports", "error", err)
		return 0
	}

	items := make([]match.Item, len(corpus))
	byID := make(map[uuid.UUID]*models.LostReport, len(corpus))
	for i := range corpus {
		items[i] = lostItem(&corpus[i])
		byID[corpus[i].ID] = &corpus[i]
	}

	created := 0
	for _, cand := range match.FindCandidates(foundItem(found), items, match.AutoTrigger) {
		if cand.FinalScore < AutoNotifyThreshold {
			break
		}
		if s.createMatchAndNotify(byID[cand.Item.ID], found, cand.FinalScore) {
			created++
		}
	}
	return created
}

// createMatchAndNotify inserts the match if the pair is not already
// matched and informs both parties. The insert rides the composite unique
// index with ON CONFLICT DO NOTHING, so two concurrent scans discovering
// the same pair cannot produce duplicates.
func (s *AutoMatchService) createMatchAndNotify(lost *models.LostReport, found *models.FoundReport, confidence int) bool {
	m := &models.Match{
		LostReportID:    lost.ID,
		FoundReportID:   found.ID,
		Status:          models.MatchPending,
		ConfidenceScore: confidence,
		HandoverStatus:  models.HandoverPending,
	}
	res := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "lost_report_id"}, {Name: "found_report_id"}},
		DoNothing: true,
	}).Create(m)
	if res.Error != nil {
		slog.Error("failed to create match", "lost_id", lost.ID, "found_id", found.ID, "error", res.Error)
		return false
	}
	if res.RowsAffected == 0 {
		return false // pair already matched
	}

	payload := map[string]interface{}{
		"match_id":   m.ID.String(),
		"type":       "match_found",
		"confidence": confidence,
	}
	s.dispatcher.Notify(notify.User(lost.ReporterEmail),
		"Match found for your lost item",
		fmt.Sprintf("We found a potential match (%d%% confidence) for your lost item %q. Check your matches to view details.",
			confidence, lost.ItemName),
		payload)
	s.dispatcher.Notify(notify.User(found.FinderEmail),
		"Match found for your found item",
		fmt.Sprintf("The item you found %q matches someone's lost item (%d%% confidence). Check your matches to view details.",
			found.ItemName, confidence),
		payload)

	s.dispatcher.Email(lost.ReporterEmail,
		"Great news! We found a match for your lost item",
		s.ownerMatchEmail(lost, found, confidence))
	s.dispatcher.Email(found.FinderEmail,
		"Your found item matches someone's lost item",
		s.finderMatchEmail(lost, found, confidence))

	slog.Info("auto-match created",
		"match_id", m.ID, "lost_id", lost.ID, "found_id", found.ID, "confidence", confidence)
	return true
}

func (s *AutoMatchService) ownerMatchEmail(lost *models.LostReport, found *models.FoundReport, confidence int) string {
	return fmt.Sprintf(`Hi %s,

Good news! We found a potential match for your lost item:

Your Lost Item: %s
Match Confidence: %d%%

Found Item Details:
- Item: %s
- Description: %s
- Found At: %s
- Found By: %s
- Contact: %s

View full details: %s/user-dashboard/my-matches

Please contact the finder to arrange pickup.

Best regards,
Campus Track Team`,
		orDefault(lost.ReporterName, "there"),
		lost.ItemName,
		confidence,
		found.ItemName,
		orDefault(found.Description, "No description provided"),
		orDefault(found.PlaceFound, "Not specified"),
		found.FinderName,
		found.FinderEmail,
		s.frontendURL)
}

func (s *AutoMatchService) finderMatchEmail(lost *models.LostReport, found *models.FoundReport, confidence int) string {
	return fmt.Sprintf(`Hi %s,

Great news! The item you found matches someone's lost item:

Your Found Item: %s
Match Confidence: %d%%

Lost Item Details:
- Item: %s
- Description: %s
- Lost By: %s
- Contact: %s

View full details: %s/user-dashboard/my-matches

The owner will contact you to arrange pickup.

Thank you for helping reunite lost items!

Best regards,
Campus Track Team`,
		orDefault(found.FinderName, "there"),
		found.ItemName,
		confidence,
		lost.ItemName,
		orDefault(lost.Description, "No description provided"),
		lost.ReporterName,
		lost.ReporterEmail,
		s.frontendURL)
}
