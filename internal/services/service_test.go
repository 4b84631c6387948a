package services

import (
	"path/filepath"
	"testing"

	"github.com/campustrack/backend/internal/identity"
	"github.com/campustrack/backend/internal/models"
	"github.com/campustrack/backend/internal/notify"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	owner    = identity.Caller{Email: "owner@campus.edu", Name: "Olivia Owner"}
	finder   = identity.Caller{Email: "finder@campus.edu", Name: "Frank Finder"}
	stranger = identity.Caller{Email: "stranger@campus.edu", Name: "Sam Stranger"}
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.LostReport{},
		&models.FoundReport{},
		&models.Match{},
		&models.Notification{},
		&models.Message{},
		&models.SystemLog{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func newDispatcher(db *gorm.DB) *notify.Dispatcher {
	return notify.NewDispatcher(db, nil)
}

func seedLost(t *testing.T, db *gorm.DB, caller identity.Caller, name, description string) *models.LostReport {
	t.Helper()
	r := &models.LostReport{
		ItemName:      name,
		Description:   description,
		ReporterEmail: caller.Email,
		ReporterName:  caller.Name,
	}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("seed lost report: %v", err)
	}
	return r
}

func seedFound(t *testing.T, db *gorm.DB, caller identity.Caller, name, description string) *models.FoundReport {
	t.Helper()
	r := &models.FoundReport{
		ItemName:    name,
		Description: description,
		FinderEmail: caller.Email,
		FinderName:  caller.Name,
	}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("seed found report: %v", err)
	}
	return r
}

func seedMatch(t *testing.T, db *gorm.DB, lost *models.LostReport, found *models.FoundReport, status models.MatchStatus) *models.Match {
	t.Helper()
	m := &models.Match{
		LostReportID:  lost.ID,
		FoundReportID: found.ID,
		Status:        status,
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("seed match: %v", err)
	}
	return m
}

func countNotifications(t *testing.T, db *gorm.DB, email string) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.Notification{}).
		Where("recipient_email = ?", email).
		Count(&count).Error; err != nil {
		t.Fatalf("count notifications: %v", err)
	}
	return count
}
