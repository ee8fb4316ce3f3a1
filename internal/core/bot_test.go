package core

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatyiFKBT/botogram/internal/api"
	"github.com/MatyiFKBT/botogram/internal/component"
)

// fakeClient records sent messages and serves scripted update batches.
type fakeClient struct {
	batches [][]api.Update
	sent    []string
	sentTo  []int64
}

func (c *fakeClient) GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]api.Update, error) {
	if len(c.batches) == 0 {
		return nil, nil
	}
	batch := c.batches[0]
	c.batches = c.batches[1:]
	return batch, nil
}

func (c *fakeClient) SendMessage(chatID int64, text string) error {
	c.sentTo = append(c.sentTo, chatID)
	c.sent = append(c.sent, text)
	return nil
}

func testConfig() *Config {
	return &Config{
		Bot: BotConfig{
			Token:       "123456:abcdef",
			PollTimeout: "1s",
			About:       "A test bot",
			Owner:       "@tester",
		},
	}
}

func textUpdate(id int64, text string) api.Update {
	return api.Update{
		UpdateID: id,
		Message: &api.Message{
			MessageID: id,
			Text:      text,
			Date:      time.Now().Unix(),
			Chat:      &api.Chat{ID: 7},
		},
	}
}

// TestNewBot tests the built-in component registration
func TestNewBot(t *testing.T) {
	bot := NewBot(testConfig(), &fakeClient{})

	// The built-in component owns the default commands.
	for _, name := range []string{"start", "help", "about"} {
		owner, exists := bot.commands[name]
		assert.True(t, exists, "command %q should be registered", name)
		assert.Equal(t, "botogram", owner)
	}
}

// TestBot_Use tests the global command table
func TestBot_Use(t *testing.T) {
	t.Run("DistinctComponents", func(t *testing.T) {
		bot := NewBot(testConfig(), &fakeClient{})

		weather := component.New("weather")
		require.NoError(t, weather.AddCommand("forecast", func(chat *api.Chat, msg *api.Message, args []string) error {
			return nil
		}))
		require.NoError(t, bot.Use(weather))

		news := component.New("news")
		require.NoError(t, news.AddCommand("headlines", func(chat *api.Chat, msg *api.Message, args []string) error {
			return nil
		}))
		require.NoError(t, bot.Use(news))
	})

	t.Run("CrossComponentCollision", func(t *testing.T) {
		bot := NewBot(testConfig(), &fakeClient{})

		first := component.New("first")
		require.NoError(t, first.AddCommand("ping", func(chat *api.Chat, msg *api.Message, args []string) error {
			return nil
		}))
		require.NoError(t, bot.Use(first))

		second := component.New("second")
		require.NoError(t, second.AddCommand("ping", func(chat *api.Chat, msg *api.Message, args []string) error {
			return nil
		}))

		err := bot.Use(second)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "first")
		assert.Contains(t, err.Error(), "second")
		assert.Contains(t, err.Error(), "/ping")
	})

	t.Run("BuiltinCollision", func(t *testing.T) {
		bot := NewBot(testConfig(), &fakeClient{})

		c := component.New("custom")
		require.NoError(t, c.AddCommand("help", func(chat *api.Chat, msg *api.Message, args []string) error {
			return nil
		}))
		assert.Error(t, bot.Use(c))
	})

	t.Run("RejectedAfterFreeze", func(t *testing.T) {
		bot := NewBot(testConfig(), &fakeClient{})
		require.NoError(t, bot.ProcessUpdate(textUpdate(1, "hello")))

		assert.Error(t, bot.Use(component.New("late")))
	})
}

// TestBot_ProcessUpdate tests stage order and the handled stop policy
func TestBot_ProcessUpdate(t *testing.T) {
	t.Run("StageOrder", func(t *testing.T) {
		bot := NewBot(testConfig(), &fakeClient{})

		var calls []string
		c := component.New("trace")
		require.NoError(t, c.AddMessageHook(func(chat *api.Chat, msg *api.Message) (bool, error) {
			calls = append(calls, "message")
			return false, nil
		}))
		require.NoError(t, c.AddCommand("noop", func(chat *api.Chat, msg *api.Message, args []string) error {
			calls = append(calls, "command")
			return nil
		}))
		require.NoError(t, c.AddBeforeHook(func(chat *api.Chat, msg *api.Message) (bool, error) {
			calls = append(calls, "before")
			return false, nil
		}))
		require.NoError(t, bot.Use(c))

		require.NoError(t, bot.ProcessUpdate(textUpdate(1, "just text")))
		assert.Equal(t, []string{"before", "message"}, calls)
	})

	t.Run("CommandStopsChain", func(t *testing.T) {
		bot := NewBot(testConfig(), &fakeClient{})

		var calls []string
		c := component.New("trace")
		require.NoError(t, c.AddCommand("ping", func(chat *api.Chat, msg *api.Message, args []string) error {
			calls = append(calls, "command")
			return nil
		}))
		require.NoError(t, c.AddMessageHook(func(chat *api.Chat, msg *api.Message) (bool, error) {
			calls = append(calls, "message")
			return false, nil
		}))
		require.NoError(t, bot.Use(c))

		require.NoError(t, bot.ProcessUpdate(textUpdate(1, "/ping")))
		assert.Equal(t, []string{"command"}, calls)
	})

	t.Run("BeforeHookConsumes", func(t *testing.T) {
		bot := NewBot(testConfig(), &fakeClient{})

		var commandRan bool
		c := component.New("guard")
		require.NoError(t, c.AddBeforeHook(func(chat *api.Chat, msg *api.Message) (bool, error) {
			return true, nil // e.g. a banned user
		}))
		require.NoError(t, c.AddCommand("ping", func(chat *api.Chat, msg *api.Message, args []string) error {
			commandRan = true
			return nil
		}))
		require.NoError(t, bot.Use(c))

		require.NoError(t, bot.ProcessUpdate(textUpdate(1, "/ping")))
		assert.False(t, commandRan)
	})

	t.Run("HookErrorNamesHook", func(t *testing.T) {
		bot := NewBot(testConfig(), &fakeClient{})

		c := component.New("broken")
		require.NoError(t, c.AddMessageHook(func(chat *api.Chat, msg *api.Message) (bool, error) {
			return false, fmt.Errorf("db unavailable")
		}))
		require.NoError(t, bot.Use(c))

		err := bot.ProcessUpdate(textUpdate(1, "hello"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken::")
		assert.Contains(t, err.Error(), "db unavailable")
	})

	t.Run("NoMessagePayload", func(t *testing.T) {
		bot := NewBot(testConfig(), &fakeClient{})
		assert.NoError(t, bot.ProcessUpdate(api.Update{UpdateID: 1}))
	})
}

// TestBot_DefaultCommands tests the built-in component's replies
func TestBot_DefaultCommands(t *testing.T) {
	t.Run("Help", func(t *testing.T) {
		client := &fakeClient{}
		bot := NewBot(testConfig(), client)

		require.NoError(t, bot.ProcessUpdate(textUpdate(1, "/help")))
		require.Len(t, client.sent, 1)
		assert.Contains(t, client.sent[0], "/start")
		assert.Contains(t, client.sent[0], "/help")
		assert.Contains(t, client.sent[0], "/about")
		assert.Equal(t, []int64{7}, client.sentTo)
	})

	t.Run("About", func(t *testing.T) {
		client := &fakeClient{}
		bot := NewBot(testConfig(), client)

		require.NoError(t, bot.ProcessUpdate(textUpdate(1, "/about")))
		require.Len(t, client.sent, 1)
		assert.Contains(t, client.sent[0], "A test bot")
		assert.Contains(t, client.sent[0], "@tester")
	})

	t.Run("Start", func(t *testing.T) {
		client := &fakeClient{}
		bot := NewBot(testConfig(), client)

		require.NoError(t, bot.ProcessUpdate(textUpdate(1, "/start")))
		require.Len(t, client.sent, 1)
		assert.Contains(t, client.sent[0], "/help")
	})
}

// TestBot_Run tests loop shutdown on context cancellation
func TestBot_Run(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	bot := NewBot(testConfig(), &fakeClient{})
	err := bot.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
