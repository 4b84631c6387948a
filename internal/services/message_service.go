package services

import (
	"errors"
	"strings"

	"github.com/campustrack/backend/internal/apperrors"
	"github.com/campustrack/backend/internal/identity"
	"github.com/campustrack/backend/internal/models"
	"github.com/campustrack/backend/internal/notify"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageService runs the per-match conversation between the owner and
// the finder. Access is restricted to the two participants.
type MessageService struct {
	db         *gorm.DB
	dispatcher *notify.Dispatcher
}

func NewMessageService(db *gorm.DB, dispatcher *notify.Dispatcher) *MessageService {
	return &MessageService{db: db, dispatcher: dispatcher}
}

// Post appends a message to the match conversation. The receiver is
// whichever of the two report owners is not the sender; they get an
// in-app notification with a preview.
func (s *MessageService) Post(matchID uuid.UUID, caller identity.Caller, body string) (*models.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, errors.New("message cannot be empty")
	}

	lost, found, err := s.participants(matchID)
	if err != nil {
		return nil, err
	}

	var receiverEmail, receiverName string
	switch caller.Email {
	case lost.ReporterEmail:
		receiverEmail, receiverName = found.FinderEmail, found.FinderName
	case found.FinderEmail:
		receiverEmail, receiverName = lost.ReporterEmail, lost.ReporterName
	default:
		return nil, apperrors.Unauthorized("only match participants can post messages")
	}

	msg := &models.Message{
		MatchID:       matchID,
		SenderEmail:   caller.Email,
		SenderName:    caller.Name,
		ReceiverEmail: receiverEmail,
		ReceiverName:  receiverName,
		Body:          body,
	}
	if err := s.db.Create(msg).Error; err != nil {
		return nil, err
	}

	s.dispatcher.Notify(notify.User(receiverEmail),
		"New message from "+orDefault(caller.Name, caller.Email),
		preview(body),
		map[string]interface{}{
			"match_id":     matchID.String(),
			"type":         "new_message",
			"sender_email": caller.Email,
		})

	return msg, nil
}

// List returns the ordered conversation and marks every message addressed
// to the caller as read.
func (s *MessageService) List(matchID uuid.UUID, caller identity.Caller) ([]models.Message, error) {
	lost, found, err := s.participants(matchID)
	if err != nil {
		return nil, err
	}
	if caller.Email != lost.ReporterEmail && caller.Email != found.FinderEmail {
		return nil, apperrors.Unauthorized("only match participants can read this conversation")
	}

	if err := s.db.Model(&models.Message{}).
		Where("match_id = ? AND receiver_email = ? AND is_read = ?", matchID, caller.Email, false).
		Update("is_read", true).Error; err != nil {
		return nil, err
	}

	var messages []models.Message
	err = s.db.Where("match_id = ?", matchID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (s *MessageService) participants(matchID uuid.UUID) (*models.LostReport, *models.FoundReport, error) {
	var m models.Match
	if err := s.db.First(&m, "id = ?", matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.NotFound("match %s not found", matchID)
		}
		return nil, nil, err
	}

	var lost models.LostReport
	if err := s.db.First(&lost, "id = ?", m.LostReportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.NotFound("lost report %s not found", m.LostReportID)
		}
		return nil, nil, err
	}
	var found models.FoundReport
	if err := s.db.First(&found, "id = ?", m.FoundReportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.NotFound("found report %s not found", m.FoundReportID)
		}
		return nil, nil, err
	}
	return &lost, &found, nil
}

func preview(body string) string {
	if len(body) > 50 {
		return body[:50] + "..."
	}
	return body
}
