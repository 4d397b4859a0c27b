// Package notifier turns domain triggers into stored notifications plus a
// best-effort realtime push. Persistence failures abort the handler;
// delivery failures never do, because the stored record is the durability
// guarantee, not the push.
package notifier

import (
	"log"

	"civicalert/backend/internal/models"
	"civicalert/backend/internal/realtime"
	"civicalert/backend/internal/storage"
)

// statusMessages maps a status-transition value to the message shown to
// the report owner. Anything unknown falls back to a generic message so a
// new status can never break notification delivery.
var statusMessages = map[string]string{
	"pending":     "Your report is pending review",
	"in_progress": "Your report is being processed",
	"resolved":    "Your report has been resolved",
	"rejected":    "Your report has been reviewed",
}

const genericStatusMessage = "Your report status has been updated"

// Notifier is the event emitter for report lifecycle triggers.
type Notifier struct {
	Store storage.Storage
}

func New(s storage.Storage) *Notifier {
	return &Notifier{Store: s}
}

// ReportCreated builds and delivers the new-report notification for the
// report owner. A report without an owner is logged and dropped; a
// malformed upstream object must not crash the caller.
func (n *Notifier) ReportCreated(report *models.Report) {
	if report == nil || report.UserID == "" {
		log.Println("ERROR: Report does not have a user associated")
		return
	}

	notification := &models.Notification{
		UserID:   report.UserID,
		ReportID: report.ID,
		Message:  "New report submitted: " + report.Category,
		Type:     models.NotificationNewReport,
	}
	n.persistAndDeliver(notification)
}

// StatusChanged builds and delivers the status-update notification.
func (n *Notifier) StatusChanged(report *models.Report, newStatus string) {
	if report == nil || report.UserID == "" {
		log.Println("ERROR: Report does not have a user associated")
		return
	}

	message, ok := statusMessages[newStatus]
	if !ok {
		message = genericStatusMessage
	}

	notification := &models.Notification{
		UserID:   report.UserID,
		ReportID: report.ID,
		Message:  message,
		Type:     models.NotificationStatusUpdate,
	}
	n.persistAndDeliver(notification)
}

// Deliver pushes an already-persisted notification to the owner's room.
// Used by the dev-only synthetic notification endpoint.
func (n *Notifier) Deliver(notification *models.Notification) {
	hub, err := realtime.Handle()
	if err != nil {
		log.Printf("WARN: Skipping realtime delivery: %v", err)
		return
	}
	hub.Deliver(notification.UserID, models.EventNotification, notification)
}

func (n *Notifier) persistAndDeliver(notification *models.Notification) {
	if err := n.Store.CreateNotification(notification); err != nil {
		log.Printf("ERROR: Failed to persist notification for user %s: %v", notification.UserID, err)
		return
	}
	n.Deliver(notification)
	log.Printf("Notification sent to user %s: %s", notification.UserID, notification.Message)
}
