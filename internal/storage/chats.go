package storage

import (
	"errors"
	"log"

	"civicalert/backend/internal/models"

	"gorm.io/gorm"
)

func (s *Service) CreateChat(chat *models.Chat) error {
	return s.DB.Create(chat).Error
}

// GetChatByUser finds the citizen's single chat, messages included.
// Returns (nil, nil) when the citizen has not started one yet.
func (s *Service) GetChatByUser(userID string) (*models.Chat, error) {
	var chat models.Chat
	err := s.DB.Preload("Messages", func(db *gorm.DB) *gorm.DB {
		return db.Order("chat_messages.created_at asc")
	}).Where("user_id = ?", userID).First(&chat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

func (s *Service) GetChatByID(id string) (*models.Chat, error) {
	var chat models.Chat
	err := s.DB.Preload("Messages", func(db *gorm.DB) *gorm.DB {
		return db.Order("chat_messages.created_at asc")
	}).Where("id = ?", id).First(&chat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// ListChats returns chats newest first for the officer overview.
func (s *Service) ListChats(offset, limit int) ([]models.Chat, error) {
	var chats []models.Chat
	err := s.DB.Preload("Messages", func(db *gorm.DB) *gorm.DB {
		return db.Order("chat_messages.created_at asc")
	}).Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&chats).Error
	if err != nil {
		log.Printf("ERROR: Failed to list chats: %v", err)
		return nil, err
	}
	return chats, nil
}

// AppendChatMessage inserts one message row. Appends never rewrite the
// chat record itself, so two concurrent appends cannot lose each other.
func (s *Service) AppendChatMessage(msg *models.ChatMessage) error {
	if err := s.DB.Create(msg).Error; err != nil {
		log.Printf("ERROR: Failed to append message to chat %s: %v", msg.ChatID, err)
		return err
	}
	return nil
}

// DeleteChat removes a chat and its messages in one transaction, so a
// failure cannot leave a chat stripped of its history. false means the id
// did not resolve.
func (s *Service) DeleteChat(id string) (bool, error) {
	var deleted bool
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chat_id = ?", id).Delete(&models.ChatMessage{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Chat{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// GetChatParticipantIDs returns every user involved in a chat: the owning
// citizen plus everyone who has sent a message into it.
func (s *Service) GetChatParticipantIDs(chatID string) ([]string, error) {
	var chat models.Chat
	err := s.DB.Select("user_id").Where("id = ?", chatID).First(&chat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var senderIDs []string
	err = s.DB.Model(&models.ChatMessage{}).
		Where("chat_id = ?", chatID).
		Distinct().
		Pluck("sender_id", &senderIDs).Error
	if err != nil {
		return nil, err
	}

	participants := []string{chat.UserID}
	for _, id := range senderIDs {
		if id != chat.UserID {
			participants = append(participants, id)
		}
	}
	return participants, nil
}
