package services

import (
	"testing"

	"github.com/campustrack/backend/internal/apperrors"
	"github.com/campustrack/backend/internal/models"
	"github.com/google/uuid"
)

func TestPostMessage(t *testing.T) {
	db := newTestDB(t)
	svc := NewMessageService(db, newDispatcher(db))

	lost := seedLost(t, db, owner, "black wallet", "")
	found := seedFound(t, db, finder, "black wallet", "")
	m := seedMatch(t, db, lost, found, models.MatchPending)

	msg, err := svc.Post(m.ID, owner, "Hi, I think that's my wallet!")
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if msg.ReceiverEmail != finder.Email {
		t.Errorf("ReceiverEmail = %s, want %s", msg.ReceiverEmail, finder.Email)
	}
	if msg.SenderEmail != owner.Email {
		t.Errorf("SenderEmail = %s, want %s", msg.SenderEmail, owner.Email)
	}

	// The receiver gets an in-app notification with a preview.
	if got := countNotifications(t, db, finder.Email); got != 1 {
		t.Errorf("finder notifications = %d, want 1", got)
	}

	// Reply goes the other way.
	reply, err := svc.Post(m.ID, finder, "Sure, can you describe it?")
	if err != nil {
		t.Fatalf("Post reply: %v", err)
	}
	if reply.ReceiverEmail != owner.Email {
		t.Errorf("reply ReceiverEmail = %s, want %s", reply.ReceiverEmail, owner.Email)
	}
}

func TestPostMessageGuards(t *testing.T) {
	db := newTestDB(t)
	svc := NewMessageService(db, newDispatcher(db))

	lost := seedLost(t, db, owner, "black wallet", "")
	found := seedFound(t, db, finder, "black wallet", "")
	m := seedMatch(t, db, lost, found, models.MatchPending)

	if _, err := svc.Post(m.ID, stranger, "hello"); apperrors.KindOf(err) != apperrors.KindUnauthorized {
		t.Errorf("stranger post error = %v, want unauthorized", err)
	}
	if _, err := svc.Post(m.ID, owner, "   "); err == nil {
		t.Error("expected error for blank body")
	}
	if _, err := svc.Post(uuid.New(), owner, "hello"); apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Errorf("unknown match error = %v, want not found", err)
	}
}

func TestListMessagesMarksRead(t *testing.T) {
	db := newTestDB(t)
	svc := NewMessageService(db, newDispatcher(db))

	lost := seedLost(t, db, owner, "black wallet", "")
	found := seedFound(t, db, finder, "black wallet", "")
	m := seedMatch(t, db, lost, found, models.MatchPending)

	if _, err := svc.Post(m.ID, owner, "first"); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if _, err := svc.Post(m.ID, owner, "second"); err != nil {
		t.Fatalf("Post: %v", err)
	}

	messages, err := svc.List(m.ID, finder)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(messages))
	}
	if messages[0].Body != "first" {
		t.Errorf("messages not in chronological order: first body = %q", messages[0].Body)
	}

	// Listing as the receiver marks their messages read.
	var unread int64
	db.Model(&models.Message{}).
		Where("match_id = ? AND receiver_email = ? AND is_read = ?", m.ID, finder.Email, false).
		Count(&unread)
	if unread != 0 {
		t.Errorf("unread after list = %d, want 0", unread)
	}
}

func TestListMessagesParticipantOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewMessageService(db, newDispatcher(db))

	lost := seedLost(t, db, owner, "black wallet", "")
	found := seedFound(t, db, finder, "black wallet", "")
	m := seedMatch(t, db, lost, found, models.MatchPending)

	if _, err := svc.List(m.ID, stranger); apperrors.KindOf(err) != apperrors.KindUnauthorized {
		t.Errorf("stranger list error = %v, want unauthorized", err)
	}
}
