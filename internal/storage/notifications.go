package storage

import (
	"errors"
	"log"
	"time"

	"civicalert/backend/internal/config"
	"civicalert/backend/internal/models"

	"github.com/google/uuid"
)

// CreateNotification persists a new unread notification. The target user,
// report reference and message are all required.
func (s *Service) CreateNotification(n *models.Notification) error {
	if n.UserID == "" || n.Message == "" || n.ReportID == "" {
		return errors.New("notification requires user, report and message")
	}
	n.IsRead = false

	if err := s.DB.Create(n).Error; err != nil {
		log.Printf("ERROR: Failed to create notification for user %s: %v", n.UserID, err)
		return err
	}
	return nil
}

// GetNotifications returns the most recent notifications for a user,
// newest first, capped at the list limit.
func (s *Service) GetNotifications(userID string) ([]models.Notification, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, ErrInvalidID
	}

	var notifications []models.Notification
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(config.NotificationListLimit).
		Find(&notifications).Error
	if err != nil {
		log.Printf("ERROR: Failed to list notifications for user %s: %v", userID, err)
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationRead flips the read flag in a single conditional update:
// the row must both exist and belong to userID. Returns (nil, nil) when the
// predicate matched nothing, so the caller cannot tell a foreign
// notification apart from a missing one.
func (s *Service) MarkNotificationRead(id, userID string) (*models.Notification, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}
	if _, err := uuid.Parse(userID); err != nil {
		return nil, ErrInvalidID
	}

	result := s.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	var n models.Notification
	if err := s.DB.Where("id = ?", id).First(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// MarkAllNotificationsRead marks every unread notification of the user as
// read and returns the number of rows touched. Running it again affects
// zero rows.
func (s *Service) MarkAllNotificationsRead(userID string) (int64, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return 0, ErrInvalidID
	}

	result := s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteNotification removes a notification with the same ownership
// predicate as MarkNotificationRead. false means nothing matched.
func (s *Service) DeleteNotification(id, userID string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, ErrInvalidID
	}
	if _, err := uuid.Parse(userID); err != nil {
		return false, ErrInvalidID
	}

	result := s.DB.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Notification{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteReadNotificationsBefore prunes read notifications created before
// the cutoff. Used by the maintenance job.
func (s *Service) DeleteReadNotificationsBefore(cutoff time.Time) (int64, error) {
	result := s.DB.Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&models.Notification{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
