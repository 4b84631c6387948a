package services

import (
	"testing"

	"github.com/campustrack/backend/internal/dto"
	"github.com/campustrack/backend/internal/models"
)

func TestAutoMatchOnFoundReportCreated(t *testing.T) {
	db := newTestDB(t)
	automatch := NewAutoMatchService(db, newDispatcher(db), "http://localhost:5173")
	reports := NewReportService(db, automatch)

	_, matches, err := reports.CreateLost(owner, dto.LostReportRequest{
		ItemName:    "black leather wallet",
		Category:    "accessories",
		Description: "black leather wallet with card slots",
		Location:    "main library",
	})
	if err != nil {
		t.Fatalf("CreateLost: %v", err)
	}
	if matches != 0 {
		t.Errorf("empty found corpus should yield 0 matches, got %d", matches)
	}

	_, matches, err = reports.CreateFound(finder, dto.FoundReportRequest{
		ItemName:    "black leather wallet",
		Category:    "accessories",
		Description: "black leather wallet with card slots",
		PlaceFound:  "main library",
	})
	if err != nil {
		t.Fatalf("CreateFound: %v", err)
	}
	if matches != 1 {
		t.Fatalf("expected 1 auto match, got %d", matches)
	}

	var m models.Match
	if err := db.First(&m).Error; err != nil {
		t.Fatalf("load match: %v", err)
	}
	if m.Status != models.MatchPending {
		t.Errorf("Status = %s, want pending", m.Status)
	}
	if m.ConfidenceScore < AutoNotifyThreshold {
		t.Errorf("ConfidenceScore = %d, want >= %d", m.ConfidenceScore, AutoNotifyThreshold)
	}
	if m.HandoverStatus != models.HandoverPending {
		t.Errorf("HandoverStatus = %s, want pending", m.HandoverStatus)
	}

	if got := countNotifications(t, db, owner.Email); got != 1 {
		t.Errorf("owner notifications = %d, want 1", got)
	}
	if got := countNotifications(t, db, finder.Email); got != 1 {
		t.Errorf("finder notifications = %d, want 1", got)
	}
}

func TestAutoMatchBelowNotifyThreshold(t *testing.T) {
	db := newTestDB(t)
	automatch := NewAutoMatchService(db, newDispatcher(db), "http://localhost:5173")

	// Similar enough to survive the candidate filter, too weak to
	// materialize into a match.
	seedLost(t, db, owner, "black wallet", "")
	found := seedFound(t, db, finder, "black bag", "")

	if created := automatch.OnFoundReportCreated(found); created != 0 {
		t.Errorf("weak candidate should not create a match, got %d", created)
	}

	var count int64
	db.Model(&models.Match{}).Count(&count)
	if count != 0 {
		t.Errorf("match count = %d, want 0", count)
	}
}

func TestAutoMatchIdempotent(t *testing.T) {
	db := newTestDB(t)
	automatch := NewAutoMatchService(db, newDispatcher(db), "http://localhost:5173")

	seedLost(t, db, owner, "blue backpack", "blue backpack near library")
	found := seedFound(t, db, finder, "blue backpack", "blue backpack near library")

	if created := automatch.OnFoundReportCreated(found); created != 1 {
		t.Fatalf("first scan created %d matches, want 1", created)
	}
	if created := automatch.OnFoundReportCreated(found); created != 0 {
		t.Errorf("second scan created %d matches, want 0", created)
	}

	var count int64
	db.Model(&models.Match{}).Count(&count)
	if count != 1 {
		t.Errorf("match count = %d, want 1", count)
	}

	// Notifications only go out for the insert that actually happened.
	if got := countNotifications(t, db, owner.Email); got != 1 {
		t.Errorf("owner notifications = %d, want 1", got)
	}
}

func TestAutoMatchOnLostReportCreated(t *testing.T) {
	db := newTestDB(t)
	automatch := NewAutoMatchService(db, newDispatcher(db), "http://localhost:5173")

	seedFound(t, db, finder, "silver keychain", "silver keychain with three keys")
	lost := seedLost(t, db, owner, "silver keychain", "silver keychain with three keys")

	if created := automatch.OnLostReportCreated(lost); created != 1 {
		t.Fatalf("expected 1 match from the lost side, got %d", created)
	}
}
