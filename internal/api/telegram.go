package api

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/MatyiFKBT/botogram/internal/logger"
	"github.com/MatyiFKBT/botogram/pkg/constants"
)

// TelegramClient implements Client on top of the Telegram Bot API.
type TelegramClient struct {
	bot *tgbotapi.BotAPI
}

// NewTelegramClient authenticates against the Telegram Bot API and returns a
// client ready for polling.
func NewTelegramClient(token string) (*TelegramClient, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"token": maskToken(token),
			"error": err,
		}).Error("failed-to-initialize-telegram-client")
		return nil, fmt.Errorf("failed to initialize Telegram client: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"bot_username": bot.Self.UserName,
		"bot_id":       bot.Self.ID,
	}).Info("telegram-client-initialized")

	return &TelegramClient{bot: bot}, nil
}

// Username returns the authenticated bot's username, used to strip
// @botname suffixes from commands in group chats.
func (c *TelegramClient) Username() string {
	return c.bot.Self.UserName
}

// GetUpdates performs one getUpdates long poll. The call blocks for up to
// timeout on the server side; cancellation is checked before issuing the
// request since the underlying HTTP client bounds the call by the long-poll
// deadline anyway.
func (c *TelegramClient) GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]Update, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := c.bot.GetUpdates(tgbotapi.UpdateConfig{
		Offset:  int(offset),
		Timeout: int(timeout.Seconds()),
	})
	if err != nil {
		return nil, fmt.Errorf("getUpdates call failed: %w", err)
	}

	updates := make([]Update, 0, len(raw))
	for _, u := range raw {
		updates = append(updates, convertUpdate(u))
	}
	return updates, nil
}

// SendMessage sends a text message, truncating to the Telegram limit.
func (c *TelegramClient) SendMessage(chatID int64, text string) error {
	if len(text) > constants.MaxTelegramMessageLength {
		logger.WithFields(logrus.Fields{
			"original_length": len(text),
			"max_length":      constants.MaxTelegramMessageLength,
		}).Info("truncating-message-for-telegram-limit")
		text = text[:constants.MaxTelegramMessageLength]
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := c.bot.Send(msg); err != nil {
		logger.WithFields(logrus.Fields{
			"chat_id": chatID,
			"error":   err,
		}).Error("failed-to-send-telegram-message")
		return fmt.Errorf("failed to send message to chat %d: %w", chatID, err)
	}
	return nil
}

func convertUpdate(u tgbotapi.Update) Update {
	out := Update{UpdateID: int64(u.UpdateID)}
	if u.Message == nil {
		return out
	}
	msg := &Message{
		MessageID: int64(u.Message.MessageID),
		Text:      u.Message.Text,
		Date:      int64(u.Message.Date),
	}
	if u.Message.Chat != nil {
		msg.Chat = &Chat{
			ID:    u.Message.Chat.ID,
			Type:  u.Message.Chat.Type,
			Title: u.Message.Chat.Title,
		}
	}
	out.Message = msg
	return out
}

// maskToken masks the bot token for logging
func maskToken(s string) string {
	if len(s) <= constants.MinTokenLengthForMasking {
		return "***"
	}
	return s[:constants.TokenMaskPrefixLength] + "***" + s[len(s)-constants.TokenMaskSuffixLength:]
}
