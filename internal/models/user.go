package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles a user can hold. A role is assigned at registration and never
// changed afterwards.
const (
	RoleCitizen = "citizen"
	RoleOfficer = "officer"
)

// User represents a registered account: a citizen filing reports or a
// police officer triaging them.
type User struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"not null;default:'citizen'" json:"role"`

	// Officer-only fields, empty for citizens.
	BadgeNumber string `json:"badgeNumber,omitempty"`
	District    string `json:"district,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate is a GORM hook that assigns a UUID if the ID is not set yet.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// IsOfficer reports whether the user holds the officer role.
func (u *User) IsOfficer() bool {
	return u.Role == RoleOfficer
}
