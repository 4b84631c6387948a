package services

import (
	"testing"

	"github.com/campustrack/backend/internal/dto"
	"github.com/campustrack/backend/internal/models"
)

func TestCreateLostValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, NewAutoMatchService(db, newDispatcher(db), ""))

	if _, _, err := svc.CreateLost(owner, dto.LostReportRequest{ItemName: "   "}); err == nil {
		t.Error("expected error for blank item name")
	}
	if _, _, err := svc.CreateFound(finder, dto.FoundReportRequest{}); err == nil {
		t.Error("expected error for missing item name")
	}
}

func TestCreateLostSetsReporter(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, NewAutoMatchService(db, newDispatcher(db), ""))

	report, _, err := svc.CreateLost(owner, dto.LostReportRequest{
		ItemName: "  black wallet  ",
		DateLost: "2026-08-20",
	})
	if err != nil {
		t.Fatalf("CreateLost: %v", err)
	}
	if report.ItemName != "black wallet" {
		t.Errorf("ItemName = %q, want trimmed", report.ItemName)
	}
	if report.ReporterEmail != owner.Email {
		t.Errorf("ReporterEmail = %s, want %s", report.ReporterEmail, owner.Email)
	}
	if report.Status != models.ReportPending {
		t.Errorf("Status = %s, want pending", report.Status)
	}
	if report.DateLost == nil || report.DateLost.Format("2006-01-02") != "2026-08-20" {
		t.Errorf("DateLost = %v, want 2026-08-20", report.DateLost)
	}
}

func TestListMyReports(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, NewAutoMatchService(db, newDispatcher(db), ""))

	seedLost(t, db, owner, "umbrella", "")
	seedLost(t, db, owner, "wallet", "")
	seedLost(t, db, stranger, "charger", "")
	seedFound(t, db, finder, "keychain", "")

	lost, err := svc.ListMyLost(owner.Email)
	if err != nil {
		t.Fatalf("ListMyLost: %v", err)
	}
	if len(lost) != 2 {
		t.Errorf("owner lost reports = %d, want 2", len(lost))
	}

	found, err := svc.ListMyFound(finder.Email)
	if err != nil {
		t.Fatalf("ListMyFound: %v", err)
	}
	if len(found) != 1 {
		t.Errorf("finder found reports = %d, want 1", len(found))
	}

	none, err := svc.ListMyFound(owner.Email)
	if err != nil {
		t.Fatalf("ListMyFound(owner): %v", err)
	}
	if len(none) != 0 {
		t.Errorf("owner found reports = %d, want 0", len(none))
	}
}
