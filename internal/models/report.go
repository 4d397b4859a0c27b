package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Report statuses, in the order a report normally moves through them.
const (
	StatusSubmitted   = "Submitted"
	StatusUnderReview = "Under Review"
	StatusInProgress  = "In Progress"
	StatusActionTaken = "Action Taken"
	StatusResolved    = "Resolved"
)

// ValidStatus reports whether s is one of the known report statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusSubmitted, StatusUnderReview, StatusInProgress, StatusActionTaken, StatusResolved:
		return true
	}
	return false
}

// Report priorities.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Report is an incident filed by a citizen. Evidence holds URLs of
// already-uploaded media files.
type Report struct {
	ID          string `gorm:"primaryKey" json:"id"`
	UserID      string `gorm:"not null;index" json:"userId"`
	Category    string `gorm:"not null" json:"category"`
	Description string `gorm:"not null" json:"description"`

	Latitude  float64 `gorm:"not null" json:"latitude"`
	Longitude float64 `gorm:"not null" json:"longitude"`
	Address   string  `json:"address,omitempty"`

	Evidence pq.StringArray `gorm:"type:text[]" json:"evidence,omitempty"`

	FullName      string `json:"fullName,omitempty"`
	NIC           string `json:"nic,omitempty"`
	ContactNumber string `json:"contactNumber,omitempty"`

	Status   string `gorm:"not null;default:'Submitted'" json:"status"`
	Priority string `gorm:"not null;default:'Medium'" json:"priority"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Status == "" {
		r.Status = StatusSubmitted
	}
	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
	return
}
