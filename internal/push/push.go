// Package push is the offline fallback for users without a live websocket
// session. Every send is best-effort: failures are logged by callers and
// never surfaced to the action that triggered them.
package push

import (
	"log"

	"civicalert/backend/internal/config"
)

// Payload is a provider-agnostic push message: a title, a short body and
// a data block correlating the push back to the triggering event.
type Payload struct {
	Title string
	Body  string
	Data  map[string]string
}

// Sender delivers a payload to one device token.
type Sender interface {
	Send(token string, p Payload) error
}

// TruncateBody shortens a message body for the push payload.
func TruncateBody(text string) string {
	runes := []rune(text)
	if len(runes) <= config.PushBodyLimit {
		return text
	}
	return string(runes[:config.PushBodyLimit]) + "..."
}

// NopSender is used when no push provider is configured. It logs the skip
// and succeeds.
type NopSender struct{}

func (NopSender) Send(token string, p Payload) error {
	log.Printf("Push provider disabled, skipping push %q", p.Title)
	return nil
}

// NewSender picks the sender for the configured provider. An unknown or
// empty provider disables offline push rather than failing startup.
func NewSender(cfg config.Config) Sender {
	switch cfg.PushProvider {
	case "fcm":
		return NewFCMSender(cfg.FCMServerKey)
	case "telegram":
		sender, err := NewTelegramSender(cfg.TelegramBotToken)
		if err != nil {
			log.Printf("ERROR: Failed to start Telegram push sender: %v", err)
			return NopSender{}
		}
		return sender
	default:
		if cfg.PushProvider != "" {
			log.Printf("WARN: Unknown push provider %q, offline push disabled", cfg.PushProvider)
		}
		return NopSender{}
	}
}
