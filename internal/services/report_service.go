package services

import (
	"errors"
	"strings"
	"time"

	"github.com/campustrack/backend/internal/dto"
	"github.com/campustrack/backend/internal/identity"
	"github.com/campustrack/backend/internal/models"
	"gorm.io/gorm"
)

// ReportService persists lost/found reports and fires the auto-match
// trigger inline after each creation.
type ReportService struct {
	db        *gorm.DB
	automatch *AutoMatchService
}

func NewReportService(db *gorm.DB, automatch *AutoMatchService) *ReportService {
	return &ReportService{db: db, automatch: automatch}
}

// CreateLost saves the report and runs the matching scan. The scan is
// best-effort: its result only affects the returned match count, never
// the fate of the report itself.
func (s *ReportService) CreateLost(caller identity.Caller, req dto.LostReportRequest) (*models.LostReport, int, error) {
	if strings.TrimSpace(req.ItemName) == "" {
		return nil, 0, errors.New("item name is required")
	}

	report := &models.LostReport{
		ItemName:           strings.TrimSpace(req.ItemName),
		Category:           req.Category,
		Description:        req.Description,
		Location:           req.Location,
		IdentificationMark: req.IdentificationMark,
		TimeRange:          req.TimeRange,
		DateLost:           parseDate(req.DateLost),
		ImageURL:           req.ImageURL,
		ReporterEmail:      caller.Email,
		ReporterName:       caller.Name,
		Status:             models.ReportPending,
	}
	if err := s.db.Create(report).Error; err != nil {
		return nil, 0, err
	}

	matches := s.automatch.OnLostReportCreated(report)
	return report, matches, nil
}

func (s *ReportService) CreateFound(caller identity.Caller, req dto.FoundReportRequest) (*models.FoundReport, int, error) {
	if strings.TrimSpace(req.ItemName) == "" {
		return nil, 0, errors.New("item name is required")
	}

	report := &models.FoundReport{
		ItemName:    strings.TrimSpace(req.ItemName),
		Category:    req.Category,
		Description: req.Description,
		PlaceFound:  req.PlaceFound,
		DateFound:   parseDate(req.DateFound),
		ImageURL:    req.ImageURL,
		FinderEmail: caller.Email,
		FinderName:  caller.Name,
		Status:      models.ReportPending,
	}
	if err := s.db.Create(report).Error; err != nil {
		return nil, 0, err
	}

	matches := s.automatch.OnFoundReportCreated(report)
	return report, matches, nil
}

func (s *ReportService) ListMyLost(email string) ([]models.LostReport, error) {
	var reports []models.LostReport
	err := s.db.Where("reporter_email = ?", email).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

func (s *ReportService) ListMyFound(email string) ([]models.FoundReport, error) {
	var reports []models.FoundReport
	err := s.db.Where("finder_email = ?", email).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

// parseDate accepts 2006-01-02; anything else falls back to today, the
// same forgiving behavior the report forms always had.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		now := time.Now().Truncate(24 * time.Hour)
		return &now
	}
	return &d
}
