package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/campustrack/backend/internal/apperrors"
	"github.com/campustrack/backend/internal/dto"
	"github.com/campustrack/backend/internal/identity"
	"github.com/campustrack/backend/internal/match"
	"github.com/campustrack/backend/internal/models"
	"github.com/campustrack/backend/internal/notify"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchService owns the match lifecycle: administrator-directed creation
// and the guarded claim/reject/submit/receive transitions.
type MatchService struct {
	db          *gorm.DB
	dispatcher  *notify.Dispatcher
	automatch   *AutoMatchService
	frontendURL string
}

func NewMatchService(db *gorm.DB, dispatcher *notify.Dispatcher, automatch *AutoMatchService, frontendURL string) *MatchService {
	return &MatchService{db: db, dispatcher: dispatcher, automatch: automatch, frontendURL: frontendURL}
}

// CreateAdminMatch pairs two reports on an administrator's say-so. The
// match carries no computed confidence; only the lost-item owner is
// notified.
func (s *MatchService) CreateAdminMatch(lostID, foundID uuid.UUID) (*models.Match, error) {
	lost, err := s.lostReport(lostID)
	if err != nil {
		return nil, err
	}
	found, err := s.foundReport(foundID)
	if err != nil {
		return nil, err
	}

	m := &models.Match{
		LostReportID:   lost.ID,
		FoundReportID:  found.ID,
		Status:         models.MatchPending,
		HandoverStatus: models.HandoverPending,
	}
	res := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "lost_report_id"}, {Name: "found_report_id"}},
		DoNothing: true,
	}).Create(m)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.InvalidState("these reports are already matched")
	}

	s.dispatcher.Notify(notify.User(lost.ReporterEmail),
		"A found item may match your lost item",
		fmt.Sprintf("An administrator matched a found item with your lost item %q.", lost.ItemName),
		map[string]interface{}{
			"match_id":        m.ID.String(),
			"type":            "admin_match",
			"lost_report_id":  lost.ID.String(),
			"found_report_id": found.ID.String(),
		})

	return m, nil
}

// Claim marks the match as confirmed by the item's owner. Allowed only
// while the match is unconfirmed (pending or ai_matched); re-invoking
// against a terminal status fails rather than silently succeeding.
func (s *MatchService) Claim(matchID uuid.UUID, caller identity.Caller) (*models.Match, error) {
	m, lost, err := s.matchWithLost(matchID)
	if err != nil {
		return nil, err
	}
	if lost.ReporterEmail != caller.Email {
		return nil, apperrors.Unauthorized("only the item's owner can claim this match")
	}
	if !m.Status.Unconfirmed() {
		return nil, apperrors.InvalidState("match is already %s", m.Status)
	}

	m.Status = models.MatchClaimed
	if err := s.db.Save(m).Error; err != nil {
		return nil, err
	}

	s.dispatcher.Notify(notify.AdminChannel(),
		"Item claimed",
		fmt.Sprintf("User %s has claimed their matched item %q.", caller.Email, lost.ItemName),
		matchPayload(m))
	return m, nil
}

// Reject marks the match as not-mine. Same guard set as Claim.
func (s *MatchService) Reject(matchID uuid.UUID, caller identity.Caller) (*models.Match, error) {
	m, lost, err := s.matchWithLost(matchID)
	if err != nil {
		return nil, err
	}
	if lost.ReporterEmail != caller.Email {
		return nil, apperrors.Unauthorized("only the item's owner can reject this match")
	}
	if !m.Status.Unconfirmed() {
		return nil, apperrors.InvalidState("match is already %s", m.Status)
	}

	m.Status = models.MatchRejected
	if err := s.db.Save(m).Error; err != nil {
		return nil, err
	}

	s.dispatcher.Notify(notify.AdminChannel(),
		"Match rejected",
		fmt.Sprintf("User %s has rejected the match for %q.", caller.Email, lost.ItemName),
		matchPayload(m))
	return m, nil
}

// MarkSubmitted records that the finder handed the item in. Finder-only;
// handover must still be pending.
func (s *MatchService) MarkSubmitted(matchID uuid.UUID, caller identity.Caller) (*models.Match, error) {
	m, err := s.matchByID(matchID)
	if err != nil {
		return nil, err
	}
	found, err := s.foundReport(m.FoundReportID)
	if err != nil {
		return nil, err
	}
	if found.FinderEmail != caller.Email {
		return nil, apperrors.Unauthorized("only the finder can mark this item as submitted")
	}
	if m.Status == models.MatchRejected {
		return nil, apperrors.InvalidState("match was rejected, handover is closed")
	}
	if m.HandoverStatus != models.HandoverPending {
		return nil, apperrors.InvalidState("handover is already %s", m.HandoverStatus)
	}

	m.HandoverStatus = models.HandoverSubmittedByFinder
	if err := s.db.Save(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// MarkReceived closes the handover: owner-only, requires the finder to
// have submitted first. Completes the match, flips both reports to
// claimed, and sends the templated confirmation pair.
func (s *MatchService) MarkReceived(matchID uuid.UUID, caller identity.Caller) (*models.Match, error) {
	m, lost, err := s.matchWithLost(matchID)
	if err != nil {
		return nil, err
	}
	if lost.ReporterEmail != caller.Email {
		return nil, apperrors.Unauthorized("only the item's owner can mark this item as received")
	}
	found, err := s.foundReport(m.FoundReportID)
	if err != nil {
		return nil, err
	}
	if m.Status == models.MatchRejected {
		return nil, apperrors.InvalidState("match was rejected, handover is closed")
	}
	if m.HandoverStatus != models.HandoverSubmittedByFinder {
		return nil, apperrors.InvalidState("item has not been submitted by the finder yet")
	}

	m.HandoverStatus = models.HandoverReceivedByOwner
	m.Status = models.MatchCompleted
	if err := s.db.Save(m).Error; err != nil {
		return nil, err
	}

	lost.Status = models.ReportClaimed
	if err := s.db.Save(lost).Error; err != nil {
		return nil, err
	}
	found.Status = models.ReportClaimed
	if err := s.db.Save(found).Error; err != nil {
		return nil, err
	}

	s.sendCompletionNotifications(m, lost, found)
	return m, nil
}

// ListForUser returns every match touching the caller's reports, newest
// first, with the counterpart item embedded.
func (s *MatchService) ListForUser(email string) ([]dto.UserMatch, error) {
	var lostReports []models.LostReport
	if err := s.db.Where("reporter_email = ?", email).Find(&lostReports).Error; err != nil {
		return nil, err
	}
	var foundReports []models.FoundReport
	if err := s.db.Where("finder_email = ?", email).Find(&foundReports).Error; err != nil {
		return nil, err
	}

	result := make([]dto.UserMatch, 0)
	for i := range lostReports {
		var matches []models.Match
		if err := s.db.Where("lost_report_id = ?", lostReports[i].ID).Find(&matches).Error; err != nil {
			return nil, err
		}
		for j := range matches {
			found, err := s.foundReport(matches[j].FoundReportID)
			if err != nil {
				continue // counterpart deleted, skip
			}
			result = append(result, userMatch(&matches[j], "lost", &lostReports[i], found))
		}
	}
	for i := range foundReports {
		var matches []models.Match
		if err := s.db.Where("found_report_id = ?", foundReports[i].ID).Find(&matches).Error; err != nil {
			return nil, err
		}
		for j := range matches {
			lost, err := s.lostReport(matches[j].LostReportID)
			if err != nil {
				continue
			}
			result = append(result, userMatch(&matches[j], "found", &foundReports[i], lost))
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// RescanForUser re-runs the auto trigger over every report the caller
// owns; the manual escape hatch when the inline trigger missed something.
func (s *MatchService) RescanForUser(email string) (int, error) {
	var lostReports []models.LostReport
	if err := s.db.Where("reporter_email = ?", email).Find(&lostReports).Error; err != nil {
		return 0, err
	}
	var foundReports []models.FoundReport
	if err := s.db.Where("finder_email = ?", email).Find(&foundReports).Error; err != nil {
		return 0, err
	}

	created := 0
	for i := range lostReports {
		created += s.automatch.OnLostReportCreated(&lostReports[i])
	}
	for i := range foundReports {
		created += s.automatch.OnFoundReportCreated(&foundReports[i])
	}
	return created, nil
}

// InteractiveScan runs the exhaustive lost-by-found scan with the
// precision preset and returns the scored pairs for operator review.
// Nothing is persisted.
func (s *MatchService) InteractiveScan() ([]dto.ScanCandidate, error) {
	var lostReports []models.LostReport
	if err := s.db.Find(&lostReports).Error; err != nil {
		return nil, err
	}
	var foundReports []models.FoundReport
	if err := s.db.Find(&foundReports).Error; err != nil {
		return nil, err
	}

	items := make([]match.Item, len(foundReports))
	byID := make(map[uuid.UUID]*models.FoundReport, len(foundReports))
	for i := range foundReports {
		items[i] = foundItem(&foundReports[i])
		byID[foundReports[i].ID] = &foundReports[i]
	}

	result := make([]dto.ScanCandidate, 0)
	for i := range lostReports {
		for _, cand := range match.FindCandidates(lostItem(&lostReports[i]), items, match.Interactive) {
			result = append(result, dto.ScanCandidate{
				LostReport:      &lostReports[i],
				FoundReport:     byID[cand.Item.ID],
				NameScore:       cand.NameScore,
				TextScore:       cand.TextScore,
				FinalScore:      cand.FinalScore,
				BoostedKeywords: cand.BoostedKeywords,
				HighConfidence:  cand.HighConfidence,
			})
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].FinalScore > result[j].FinalScore
	})
	return result, nil
}

func (s *MatchService) sendCompletionNotifications(m *models.Match, lost *models.LostReport, found *models.FoundReport) {
	payload := map[string]interface{}{
		"match_id": m.ID.String(),
		"type":     "handover_complete",
	}
	s.dispatcher.Notify(notify.User(found.FinderEmail),
		"Item successfully returned",
		fmt.Sprintf("The owner confirmed receiving %q. Thank you for returning it!", found.ItemName),
		payload)
	s.dispatcher.Notify(notify.User(lost.ReporterEmail),
		"You have received your item",
		fmt.Sprintf("Handover of %q is complete. Glad we could help!", lost.ItemName),
		payload)

	s.dispatcher.Email(found.FinderEmail,
		"Item successfully returned - thank you!",
		s.finderCompletionEmail(m, lost, found))
	s.dispatcher.Email(lost.ReporterEmail,
		"Congratulations! You have received your item",
		s.ownerCompletionEmail(m, lost, found))
}

func (s *MatchService) finderCompletionEmail(m *models.Match, lost *models.LostReport, found *models.FoundReport) string {
	return fmt.Sprintf(`Hi %s,

Congratulations! The owner has confirmed receiving the item you submitted.
Thank you for your honesty and effort in returning the lost item!

Item Handover Details:

Found Item: %s
Description: %s
Found At: %s

Returned To:
- Name: %s
- Email: %s

Lost Item Details:
- Item: %s
- Description: %s

Match Confidence: %d%%

Status: Handover Complete - Owner Confirmed Receipt

View Match Details: %s/user-dashboard/my-matches

Best regards,
Campus Track Team`,
		orDefault(found.FinderName, "Finder"),
		found.ItemName,
		orDefault(found.Description, "No description provided"),
		orDefault(found.PlaceFound, "Not specified"),
		orDefault(lost.ReporterName, "Owner"),
		lost.ReporterEmail,
		lost.ItemName,
		orDefault(lost.Description, "No description provided"),
		m.ConfidenceScore,
		s.frontendURL)
}

func (s *MatchService) ownerCompletionEmail(m *models.Match, lost *models.LostReport, found *models.FoundReport) string {
	return fmt.Sprintf(`Hi %s,

Congratulations! You have successfully received your lost item.

Item Received:

Your Lost Item: %s
Description: %s
Lost At: %s

Received From:
- Finder: %s
- Contact: %s

Found Item Details:
- Item: %s
- Description: %s
- Found At: %s

Match Confidence: %d%%

Status: Handover Complete - Item Received Successfully

View Match Details: %s/user-dashboard/my-matches

Best regards,
Campus Track Team`,
		orDefault(lost.ReporterName, "there"),
		lost.ItemName,
		orDefault(lost.Description, "No description provided"),
		orDefault(lost.Location, "Not specified"),
		orDefault(found.FinderName, "Finder"),
		found.FinderEmail,
		found.ItemName,
		orDefault(found.Description, "No description provided"),
		orDefault(found.PlaceFound, "Not specified"),
		m.ConfidenceScore,
		s.frontendURL)
}

func (s *MatchService) matchByID(id uuid.UUID) (*models.Match, error) {
	var m models.Match
	if err := s.db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("match %s not found", id)
		}
		return nil, err
	}
	return &m, nil
}

func (s *MatchService) matchWithLost(id uuid.UUID) (*models.Match, *models.LostReport, error) {
	m, err := s.matchByID(id)
	if err != nil {
		return nil, nil, err
	}
	lost, err := s.lostReport(m.LostReportID)
	if err != nil {
		return nil, nil, err
	}
	return m, lost, nil
}

func (s *MatchService) lostReport(id uuid.UUID) (*models.LostReport, error) {
	var r models.LostReport
	if err := s.db.First(&r, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("lost report %s not found", id)
		}
		return nil, err
	}
	return &r, nil
}

func (s *MatchService) foundReport(id uuid.UUID) (*models.FoundReport, error) {
	var r models.FoundReport
	if err := s.db.First(&r, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("found report %s not found", id)
		}
		return nil, err
	}
	return &r, nil
}

func matchPayload(m *models.Match) map[string]interface{} {
	return map[string]interface{}{
		"match_id":        m.ID.String(),
		"lost_report_id":  m.LostReportID.String(),
		"found_report_id": m.FoundReportID.String(),
	}
}

func userMatch(m *models.Match, side string, mine, other interface{}) dto.UserMatch {
	return dto.UserMatch{
		MatchID:        m.ID,
		Side:           side,
		MyItem:         mine,
		MatchedItem:    other,
		Confidence:     m.ConfidenceScore,
		Status:         string(m.Status),
		HandoverStatus: string(m.HandoverStatus),
		CreatedAt:      m.CreatedAt,
	}
}
