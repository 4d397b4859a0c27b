package storage

import (
	"context"
	"errors"
	"time"

	"civicalert/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ErrInvalidID is returned when an identifier is not a syntactically valid
// UUID, before any query is attempted.
var ErrInvalidID = errors.New("invalid identifier")

// Storage is the persistence surface the rest of the application works
// against. The conditional-update methods embed the ownership check in the
// query predicate itself; callers never get to read another user's record
// first and race on it.
type Storage interface {
	// Users
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)

	// Reports
	CreateReport(report *models.Report) error
	GetReportsByUser(userID string) ([]models.Report, error)
	GetReportByID(id string) (*models.Report, error)
	UpdateReport(report *models.Report) error
	DeleteReport(id string) (bool, error)
	UpdateReportStatus(id, status string) (*models.Report, error)

	// Notifications
	CreateNotification(n *models.Notification) error
	GetNotifications(userID string) ([]models.Notification, error)
	MarkNotificationRead(id, userID string) (*models.Notification, error)
	MarkAllNotificationsRead(userID string) (int64, error)
	DeleteNotification(id, userID string) (bool, error)
	DeleteReadNotificationsBefore(cutoff time.Time) (int64, error)

	// Chats
	CreateChat(chat *models.Chat) error
	GetChatByUser(userID string) (*models.Chat, error)
	GetChatByID(id string) (*models.Chat, error)
	ListChats(offset, limit int) ([]models.Chat, error)
	AppendChatMessage(msg *models.ChatMessage) error
	DeleteChat(id string) (bool, error)
	GetChatParticipantIDs(chatID string) ([]string, error)

	// Device push tokens (Redis)
	SavePushToken(userID, token string) error
	GetPushToken(userID string) (string, error)
	DeletePushToken(userID string) error
}

// Service implements Storage over PostgreSQL (GORM) and Redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

func NewService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}
