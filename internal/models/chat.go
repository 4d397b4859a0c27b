package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Chat is the single conversation between one citizen and the police. It is
// created by the citizen's first message; officers reply into it by id.
// ReportID is optional because a citizen may open the conversation before
// any report reference is attached.
type Chat struct {
	ID       string  `gorm:"primaryKey" json:"id"`
	UserID   string  `gorm:"not null;uniqueIndex" json:"userId"`
	ReportID *string `json:"reportId,omitempty"`

	// IsActive is stored for a future soft-close flow; nothing transitions
	// it today.
	IsActive bool `gorm:"not null;default:true" json:"isActive"`

	Messages []ChatMessage `gorm:"foreignKey:ChatID" json:"messages"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Chat) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// ChatMessage is one entry in a chat, tagged with the sender's role so the
// client can lay out the two sides of the conversation.
type ChatMessage struct {
	ID         string `gorm:"primaryKey" json:"id"`
	ChatID     string `gorm:"not null;index" json:"chatId"`
	SenderID   string `gorm:"not null" json:"senderId"`
	SenderRole string `gorm:"not null" json:"senderRole"`
	Text       string `gorm:"not null" json:"text"`

	CreatedAt time.Time `json:"createdAt"`
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}
