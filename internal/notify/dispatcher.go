// Package notify persists in-app notifications and sends best-effort
// email. Callers decide what to say and to whom; delivery failures are
// logged and never propagated, so a broken relay cannot fail a report
// creation or a lifecycle transition.
package notify

import (
	"log/slog"

	"github.com/campustrack/backend/internal/models"
	"gorm.io/gorm"
)

// Target is an explicit notification recipient: either a single user or
// the administrator channel.
type Target struct {
	audience models.Audience
	email    string
}

// User targets one user by email.
func User(email string) Target {
	return Target{audience: models.AudienceUser, email: email}
}

// AdminChannel targets the administrator feed.
func AdminChannel() Target {
	return Target{audience: models.AudienceAdmin}
}

type Dispatcher struct {
	db     *gorm.DB
	mailer Mailer
}

// NewDispatcher creates a dispatcher. mailer may be nil (or a typed-nil
// *SMTPMailer) to disable email entirely.
func NewDispatcher(db *gorm.DB, mailer Mailer) *Dispatcher {
	return &Dispatcher{db: db, mailer: mailer}
}

// Notify persists an in-app notification for the target. Failures are
// logged, not returned: notification is a side effect of business
// operations, never a reason for them to fail.
func (d *Dispatcher) Notify(target Target, title, message string, data map[string]interface{}) {
	n := &models.Notification{
		Audience:       target.audience,
		RecipientEmail: target.email,
		Title:          title,
		Message:        message,
		Data:           data,
	}
	if err := d.db.Create(n).Error; err != nil {
		slog.Error("failed to persist notification",
			"recipient", target.email, "audience", target.audience, "error", err)
	}
}

// Email sends a plain-text mail best-effort. A nil mailer skips silently.
func (d *Dispatcher) Email(to, subject, body string) {
	if d.mailer == nil || to == "" {
		return
	}
	if smtp, ok := d.mailer.(*SMTPMailer); ok && smtp == nil {
		return
	}
	if err := d.mailer.Send(to, subject, body); err != nil {
		slog.Error("failed to send email", "recipient", to, "subject", subject, "error", err)
	}
}
