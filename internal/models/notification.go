package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types. new_chat is part of the push wire contract but is
// currently only produced by external push payloads, not stored records.
const (
	NotificationNewReport    = "new_report"
	NotificationStatusUpdate = "status_update"
	NotificationInfo         = "info"
	NotificationNewMessage   = "new_message"
	NotificationNewChat      = "new_chat"
)

// Notification is a durable per-user notice about a report. The target
// user never changes after creation; the only mutation is the read flag,
// and it only ever goes from false to true.
type Notification struct {
	ID       string `gorm:"primaryKey" json:"id"`
	UserID   string `gorm:"not null;index" json:"userId"`
	ReportID string `gorm:"not null" json:"reportId"`
	Message  string `gorm:"not null" json:"message"`
	Type     string `gorm:"not null;default:'new_report'" json:"type"`
	IsRead   bool   `gorm:"not null;default:false" json:"isRead"`

	CreatedAt time.Time `json:"createdAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.Type == "" {
		n.Type = NotificationNewReport
	}
	return
}
