package storage

import (
	"errors"

	"civicalert/backend/internal/config"

	"github.com/redis/go-redis/v9"
)

const pushTokenPrefix = "push_token:"

// SavePushToken stores the device push token for a user. Tokens expire on
// their own; the app re-registers on login.
func (s *Service) SavePushToken(userID, token string) error {
	key := pushTokenPrefix + userID
	return s.Redis.Set(s.Ctx, key, token, config.PushTokenTTL).Err()
}

// GetPushToken returns the stored device token, or "" when the user has
// none registered.
func (s *Service) GetPushToken(userID string) (string, error) {
	key := pushTokenPrefix + userID
	token, err := s.Redis.Get(s.Ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *Service) DeletePushToken(userID string) error {
	key := pushTokenPrefix + userID
	return s.Redis.Del(s.Ctx, key).Err()
}
