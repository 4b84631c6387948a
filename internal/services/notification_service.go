package services

import (
	"errors"

	"github.com/campustrack/backend/internal/apperrors"
	"github.com/campustrack/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationService serves the per-user notification feed. Admins also
// see the admin-channel rows.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) ListForUser(email string, isAdmin bool) ([]models.Notification, error) {
	var notifications []models.Notification
	q := s.feedQuery(email, isAdmin)
	err := q.Order("created_at DESC").Limit(100).Find(&notifications).Error
	return notifications, err
}

func (s *NotificationService) UnreadCount(email string, isAdmin bool) (int64, error) {
	var count int64
	err := s.feedQuery(email, isAdmin).Where("is_read = ?", false).Count(&count).Error
	return count, err
}

func (s *NotificationService) MarkRead(id uuid.UUID, email string, isAdmin bool) error {
	var n models.Notification
	if err := s.db.First(&n, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("notification %s not found", id)
		}
		return err
	}

	switch n.Audience {
	case models.AudienceAdmin:
		if !isAdmin {
			return apperrors.Unauthorized("admin channel notification")
		}
	default:
		if n.RecipientEmail != email {
			return apperrors.Unauthorized("not your notification")
		}
	}

	return s.db.Model(&n).Update("is_read", true).Error
}

func (s *NotificationService) MarkAllRead(email string, isAdmin bool) error {
	return s.feedQuery(email, isAdmin).
		Where("is_read = ?", false).
		Update("is_read", true).Error
}

func (s *NotificationService) feedQuery(email string, isAdmin bool) *gorm.DB {
	q := s.db.Model(&models.Notification{})
	if isAdmin {
		return q.Where("(audience = ? AND recipient_email = ?) OR audience = ?",
			models.AudienceUser, email, models.AudienceAdmin)
	}
	return q.Where("audience = ? AND recipient_email = ?", models.AudienceUser, email)
}
