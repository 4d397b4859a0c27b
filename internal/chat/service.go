// Package chat enforces the two-role conversation protocol between a
// citizen and the police, and fans new messages out through the realtime
// hub with an offline push fallback.
package chat

import (
	"errors"
	"log"

	"civicalert/backend/internal/config"
	"civicalert/backend/internal/models"
	"civicalert/backend/internal/push"
	"civicalert/backend/internal/realtime"
	"civicalert/backend/internal/storage"
)

var (
	// ErrTextRequired rejects an empty message body.
	ErrTextRequired = errors.New("message text is required")
	// ErrMissingTarget means an officer posted without naming a chat.
	// Officers can never create a chat implicitly.
	ErrMissingTarget = errors.New("chatId is required for officer to send message")
	// ErrNotFound means the chat id does not resolve for this caller.
	ErrNotFound = errors.New("chat not found")
	// ErrForbidden means the caller's role does not permit the operation.
	ErrForbidden = errors.New("only officers can delete chats")
)

// Service implements the chat protocol and its delivery fan-out.
type Service struct {
	Store storage.Storage
	Push  push.Sender
}

func NewService(s storage.Storage, sender push.Sender) *Service {
	return &Service{Store: s, Push: sender}
}

// PostMessage appends a message on behalf of the actor. A citizen always
// writes into their single chat, creating it on first use; an officer must
// name the target chat. The fan-out runs detached so push latency never
// reaches the caller.
func (s *Service) PostMessage(actor *models.User, text, chatID string) (*models.Chat, error) {
	if text == "" {
		return nil, ErrTextRequired
	}

	var chat *models.Chat
	var err error

	if actor.IsOfficer() {
		if chatID == "" {
			return nil, ErrMissingTarget
		}
		chat, err = s.Store.GetChatByID(chatID)
		if err != nil {
			return nil, err
		}
		if chat == nil {
			return nil, ErrNotFound
		}
	} else {
		chat, err = s.Store.GetChatByUser(actor.ID)
		if err != nil {
			return nil, err
		}
		if chat == nil {
			chat = &models.Chat{UserID: actor.ID, IsActive: true}
			if err := s.Store.CreateChat(chat); err != nil {
				return nil, err
			}
		}
	}

	msg := &models.ChatMessage{
		ChatID:     chat.ID,
		SenderID:   actor.ID,
		SenderRole: actor.Role,
		Text:       text,
	}
	if err := s.Store.AppendChatMessage(msg); err != nil {
		return nil, err
	}

	go s.fanOut(actor, chat.ID, *msg)

	return s.Store.GetChatByID(chat.ID)
}

// ListChats returns all chats for officers (newest first, paginated) and
// the citizen's own chat, or an empty slice, for citizens.
func (s *Service) ListChats(actor *models.User, page, limit int) ([]models.Chat, error) {
	if actor.IsOfficer() {
		if limit <= 0 {
			limit = config.ChatPageSizeDefault
		}
		if limit > config.ChatPageSizeMax {
			limit = config.ChatPageSizeMax
		}
		if page < 1 {
			page = 1
		}
		return s.Store.ListChats((page-1)*limit, limit)
	}

	chat, err := s.Store.GetChatByUser(actor.ID)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return []models.Chat{}, nil
	}
	return []models.Chat{*chat}, nil
}

// GetChat fetches a chat by id. Officers may fetch any chat; citizens only
// their own, and a foreign id is reported as not found rather than
// forbidden so chat ids of other users stay unobservable.
func (s *Service) GetChat(id string, actor *models.User) (*models.Chat, error) {
	chat, err := s.Store.GetChatByID(id)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, ErrNotFound
	}
	if !actor.IsOfficer() && chat.UserID != actor.ID {
		return nil, ErrNotFound
	}
	return chat, nil
}

// DeleteChat removes a chat and its messages. Officer only.
func (s *Service) DeleteChat(id string, actor *models.User) error {
	if !actor.IsOfficer() {
		return ErrForbidden
	}
	deleted, err := s.Store.DeleteChat(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// fanOut delivers a freshly appended message to every participant except
// the sender: live sessions get the realtime event, everyone else gets the
// offline push fallback. Every failure here is logged and swallowed.
func (s *Service) fanOut(sender *models.User, chatID string, msg models.ChatMessage) {
	participants, err := s.Store.GetChatParticipantIDs(chatID)
	if err != nil {
		log.Printf("ERROR: Failed to resolve participants of chat %s: %v", chatID, err)
		return
	}

	payload := models.NewMessagePayload{
		Type:       models.NotificationNewMessage,
		ChatID:     chatID,
		SenderID:   msg.SenderID,
		SenderRole: msg.SenderRole,
		Text:       msg.Text,
		CreatedAt:  msg.CreatedAt,
	}

	hub, hubErr := realtime.Handle()
	if hubErr != nil {
		log.Printf("WARN: Realtime channel unavailable for chat %s: %v", chatID, hubErr)
	}

	for _, userID := range participants {
		if userID == msg.SenderID {
			continue
		}

		if hubErr == nil && hub.IsUserOnline(userID) {
			hub.Deliver(userID, models.EventNewMessage, payload)
			continue
		}

		s.pushOffline(sender, userID, chatID, msg)
	}
}

func (s *Service) pushOffline(sender *models.User, userID, chatID string, msg models.ChatMessage) {
	token, err := s.Store.GetPushToken(userID)
	if err != nil {
		log.Printf("ERROR: Failed to load push token for user %s: %v", userID, err)
		return
	}
	if token == "" {
		return
	}

	p := push.Payload{
		Title: "New message from " + sender.Name,
		Body:  push.TruncateBody(msg.Text),
		Data: map[string]string{
			"type":     models.NotificationNewMessage,
			"chatId":   chatID,
			"senderId": msg.SenderID,
		},
	}
	if err := s.Push.Send(token, p); err != nil {
		log.Printf("ERROR: Offline push to user %s failed: %v", userID, err)
	}
}
