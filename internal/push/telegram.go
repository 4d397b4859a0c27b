package push

import (
	"fmt"
	"log"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramSender delivers pushes to users who registered a Telegram chat
// id as their device token.
type TelegramSender struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramSender(botToken string) (*TelegramSender, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Printf("Telegram push sender authorized on account %s", bot.Self.UserName)
	return &TelegramSender{bot: bot}, nil
}

func (s *TelegramSender) Send(token string, p Payload) error {
	chatID, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return fmt.Errorf("device token %q is not a telegram chat id: %w", token, err)
	}

	msg := tgbotapi.NewMessage(chatID, p.Title+"\n"+p.Body)
	_, err = s.bot.Send(msg)
	return err
}
