package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/campustrack/backend/internal/apperrors"
	"github.com/campustrack/backend/internal/assistant"
	"github.com/campustrack/backend/internal/dto"
	"github.com/campustrack/backend/internal/identity"
	"github.com/campustrack/backend/internal/models"
	"github.com/campustrack/backend/internal/notify"
	"gorm.io/gorm"
)

const chatSystemPrompt = `You are a helpful AI assistant for Campus Track, a lost and found management system.
Help users with:
- How to use the website
- Reporting lost/found items
- Understanding the matching system
- Troubleshooting common issues

Be concise, friendly, and helpful. Keep responses under 150 words.`

// AssistedMatchConfidence is the fixed confidence assigned to
// assistant-suggested matches; the assistant ranks, it does not score.
const AssistedMatchConfidence = 85

// AssistantService fronts the external language model: helpdesk chat,
// free-text search over the found corpus, and assistant-suggested match
// creation.
type AssistantService struct {
	db         *gorm.DB
	client     *assistant.Client
	dispatcher *notify.Dispatcher
}

func NewAssistantService(db *gorm.DB, client *assistant.Client, dispatcher *notify.Dispatcher) *AssistantService {
	return &AssistantService{db: db, client: client, dispatcher: dispatcher}
}

func (s *AssistantService) Chat(message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", errors.New("message is required")
	}
	reply, err := s.client.Generate(chatSystemPrompt, message)
	if err != nil {
		return "", apperrors.ExternalService("assistant chat failed", err)
	}
	return reply, nil
}

// Search asks the model to pick the best-matching found items for a
// free-text lost description and resolves the returned ids, top 3.
func (s *AssistantService) Search(req dto.AssistantSearchRequest) ([]models.FoundReport, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, errors.New("description is required")
	}

	var corpus []models.FoundReport
	if err := s.db.Find(&corpus).Error; err != nil {
		return nil, err
	}
	if len(corpus) == 0 {
		return []models.FoundReport{}, nil
	}

	prompt := fmt.Sprintf(`I'm looking for a lost item with these details:
Description: %s
Date lost: %s
Time: %s
Location: %s

Here are found items in the database (as JSON):
%s

Return ONLY the IDs of the top 3 matching items as a comma-separated list (e.g., "id1,id2,id3").
If no good matches, return "NONE".
Consider description similarity, location proximity, and date closeness.`,
		req.Description, req.Date, req.Time, req.Location, s.corpusJSON(corpus))

	reply, err := s.client.Generate("", prompt)
	if err != nil {
		return nil, apperrors.ExternalService("assistant search failed", err)
	}

	reply = strings.TrimSpace(reply)
	if strings.EqualFold(reply, "NONE") {
		return []models.FoundReport{}, nil
	}

	matches := make([]models.FoundReport, 0, 3)
	for _, id := range strings.Split(reply, ",") {
		var r models.FoundReport
		if err := s.db.First(&r, "id = ?", strings.TrimSpace(id)).Error; err == nil {
			matches = append(matches, r)
		}
		if len(matches) >= 3 {
			break
		}
	}
	return matches, nil
}

// CreateAssistedMatch synthesizes a lost report for the caller from their
// free-text description and the chosen found item, then records an
// ai_matched pair at the fixed confidence. The finder is warned that the
// match came from the assistant and must be verified before returning.
func (s *AssistantService) CreateAssistedMatch(caller identity.Caller, req dto.AssistedMatchRequest) (*models.Match, error) {
	var found models.FoundReport
	if err := s.db.First(&found, "id = ?", req.FoundReportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("found report %s not found", req.FoundReportID)
		}
		return nil, err
	}

	lost := &models.LostReport{
		ItemName:      found.ItemName,
		Category:      found.Category,
		Description:   req.Description,
		Location:      req.Location,
		TimeRange:     req.Time,
		DateLost:      parseDate(req.Date),
		ReporterEmail: caller.Email,
		ReporterName:  caller.Name,
		Status:        models.ReportPending,
	}
	if err := s.db.Create(lost).Error; err != nil {
		return nil, err
	}

	m := &models.Match{
		LostReportID:    lost.ID,
		FoundReportID:   found.ID,
		Status:          models.MatchAIMatched,
		ConfidenceScore: AssistedMatchConfidence,
		HandoverStatus:  models.HandoverPending,
	}
	if err := s.db.Create(m).Error; err != nil {
		return nil, err
	}

	s.dispatcher.Notify(notify.User(found.FinderEmail),
		"AI match found",
		fmt.Sprintf("AI found a potential owner for your found item %q. Added by AI - please confirm strictly before returning.",
			found.ItemName),
		map[string]interface{}{
			"match_id": m.ID.String(),
			"type":     "ai_match",
		})

	s.dispatcher.Email(found.FinderEmail,
		"AI found a potential owner for your found item",
		fmt.Sprintf(`Hi %s,

Good news! Our AI has found a potential owner for your found item.

Item: %s

IMPORTANT: This match was created by AI based on a user's description.
Please confirm the owner's identity strictly before returning the item.

Go to your "My Matches" to review and contact the owner.

Best regards,
Campus Track Team`, orDefault(found.FinderName, "there"), found.ItemName))

	return m, nil
}

// corpusJSON serializes the fields the model needs to rank items; the
// rest of the row (emails, image URLs) stays out of the prompt.
func (s *AssistantService) corpusJSON(corpus []models.FoundReport) string {
	type entry struct {
		ID          string `json:"id"`
		ItemName    string `json:"item_name"`
		Category    string `json:"category"`
		Description string `json:"description"`
		PlaceFound  string `json:"place_found"`
		DateFound   string `json:"date_found"`
	}
	entries := make([]entry, 0, len(corpus))
	for _, r := range corpus {
		e := entry{
			ID:          r.ID.String(),
			ItemName:    r.ItemName,
			Category:    r.Category,
			Description: r.Description,
			PlaceFound:  r.PlaceFound,
		}
		if r.DateFound != nil {
			e.DateFound = r.DateFound.Format("2006-01-02")
		}
		entries = append(entries, e)
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return "[]"
	}
	return string(b)
}
