// Package notify delivers out-of-band messages to users through the
// storefront's Telegram bot. For private chats the chat id equals the
// Telegram user id, so stored user ids address the recipient directly.
package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// TelegramSender sends plain-text messages via the Bot API.
type TelegramSender struct {
	bot *tgbotapi.BotAPI
	log zerolog.Logger
}

// NewTelegramSender authenticates against the Bot API with the shared bot
// token (the same secret that keys widget verification).
func NewTelegramSender(botToken string, log zerolog.Logger) (*TelegramSender, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot auth: %w", err)
	}
	log.Info().Str("bot", bot.Self.UserName).Msg("telegram notifier ready")
	return &TelegramSender{bot: bot, log: log}, nil
}

// Notify sends one message to the user's private chat.
func (s *TelegramSender) Notify(ctx context.Context, userID int64, text string) error {
	if _, err := s.bot.Send(tgbotapi.NewMessage(userID, text)); err != nil {
		return fmt.Errorf("send to %d: %w", userID, err)
	}
	return nil
}
