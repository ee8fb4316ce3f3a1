// Package api defines the wire types of the remote update stream and the
// client abstraction used to talk to it.
//
// Updates arrive from Telegram's getUpdates long-poll endpoint as an ordered
// sequence with strictly increasing update IDs. The package exposes:
//
//   - Update, Message, Chat: immutable records as delivered by the API
//   - UpdateSource / Sender: the collaborator interfaces the rest of the
//     framework depends on
//   - TelegramClient: the concrete client backed by go-telegram-bot-api
package api

import (
	"context"
	"time"
)

// Update is a single entry of the remote update stream. Records are read-only
// after they are produced by a fetch.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

// Message is the payload of an update. Text is empty for non-text messages
// (photos, stickers, service messages).
type Message struct {
	MessageID int64  `json:"message_id"`
	Text      string `json:"text,omitempty"`
	Date      int64  `json:"date"`
	Chat      *Chat  `json:"chat,omitempty"`
}

// Time returns the message date as a time.Time.
func (m *Message) Time() time.Time {
	return time.Unix(m.Date, 0)
}

// Chat identifies the conversation a message belongs to.
type Chat struct {
	ID    int64  `json:"id"`
	Type  string `json:"type,omitempty"`
	Title string `json:"title,omitempty"`
}

// UpdateSource is the remote collaborator the update fetcher polls.
// Implementations must return updates ordered by ascending UpdateID and honor
// the long-poll timeout; the context cancels an in-flight call.
type UpdateSource interface {
	GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]Update, error)
}

// Sender sends a text message to a chat.
type Sender interface {
	SendMessage(chatID int64, text string) error
}

// Client is the full remote API surface the bot runtime needs.
type Client interface {
	UpdateSource
	Sender
}
