package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatyiFKBT/botogram/internal/api"
)

func noopHandler(chat *api.Chat, msg *api.Message) (bool, error) {
	return false, nil
}

func noopCommand(chat *api.Chat, msg *api.Message, args []string) error {
	return nil
}

// TestNew tests component construction and naming
func TestNew(t *testing.T) {
	t.Run("ExplicitName", func(t *testing.T) {
		c := New("weather")
		assert.Equal(t, "weather", c.Name())
	})

	t.Run("EmptyName", func(t *testing.T) {
		c := New("")
		assert.Equal(t, "", c.Name())
	})
}

type WeatherPlugin struct{}

// TestNewFromType tests deriving the component name from a value's type
func TestNewFromType(t *testing.T) {
	t.Run("StructValue", func(t *testing.T) {
		c := NewFromType(WeatherPlugin{})
		assert.Equal(t, "WeatherPlugin", c.Name())
	})

	t.Run("Pointer", func(t *testing.T) {
		c := NewFromType(&WeatherPlugin{})
		assert.Equal(t, "WeatherPlugin", c.Name())
	})
}

// TestAddCommand tests command registration integrity
func TestAddCommand(t *testing.T) {
	t.Run("DistinctNames", func(t *testing.T) {
		c := New("test")
		require.NoError(t, c.AddCommand("start", noopCommand))
		require.NoError(t, c.AddCommand("stop", noopCommand))
		require.NoError(t, c.AddCommand("status", noopCommand))

		assert.Equal(t, []string{"start", "stop", "status"}, c.CommandNames())
	})

	t.Run("DuplicateName", func(t *testing.T) {
		c := New("test")
		require.NoError(t, c.AddCommand("start", noopCommand))

		err := c.AddCommand("start", noopCommand)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateCommand)

		// Existing registrations are untouched
		assert.Equal(t, []string{"start"}, c.CommandNames())
		assert.Len(t, c.HookChain().Commands, 1)
	})

	t.Run("NilHandler", func(t *testing.T) {
		c := New("test")
		err := c.AddCommand("start", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNilHandler)
		assert.Empty(t, c.CommandNames())
	})
}

// TestAddHooks_NilHandler tests registration-time validation of hook funcs
func TestAddHooks_NilHandler(t *testing.T) {
	c := New("test")

	assert.ErrorIs(t, c.AddBeforeHook(nil), ErrNilHandler)
	assert.ErrorIs(t, c.AddMessageHook(nil), ErrNilHandler)
	assert.ErrorIs(t, c.AddMatchesHook(nil, "x", false), ErrNilHandler)
	assert.ErrorIs(t, c.AddContainsHook(nil, "x", true, false), ErrNilHandler)
}

// TestHookChain_Order tests group order and registration order preservation
func TestHookChain_Order(t *testing.T) {
	c := New("ordered")

	var calls []string
	record := func(tag string) HandlerFunc {
		return func(chat *api.Chat, msg *api.Message) (bool, error) {
			calls = append(calls, tag)
			return false, nil
		}
	}

	require.NoError(t, c.AddMessageHook(record("msg-1")))
	require.NoError(t, c.AddBeforeHook(record("before-1")))
	require.NoError(t, c.AddCommand("go", noopCommand))
	require.NoError(t, c.AddMessageHook(record("msg-2")))
	require.NoError(t, c.AddBeforeHook(record("before-2")))

	chain := c.HookChain()
	require.Len(t, chain.Before, 2)
	require.Len(t, chain.Commands, 1)
	require.Len(t, chain.Messages, 2)

	msg := &api.Message{Text: "hello"}
	for _, group := range [][]Hook{chain.Before, chain.Commands, chain.Messages} {
		for _, h := range group {
			_, err := h.Call(nil, msg)
			require.NoError(t, err)
		}
	}
	assert.Equal(t, []string{"before-1", "before-2", "msg-1", "msg-2"}, calls)
}

// TestHookChain_Descriptors tests the qualified names attached to hooks
func TestHookChain_Descriptors(t *testing.T) {
	t.Run("NamedComponent", func(t *testing.T) {
		c := New("weather")
		require.NoError(t, c.AddMessageHook(noopHandler))

		chain := c.HookChain()
		require.Len(t, chain.Messages, 1)
		assert.Equal(t, "weather::noopHandler", chain.Messages[0].Descriptor.Name)
		assert.Same(t, c, chain.Messages[0].Descriptor.Component)
	})

	t.Run("UnnamedComponent", func(t *testing.T) {
		c := New("")
		require.NoError(t, c.AddMessageHook(noopHandler))

		chain := c.HookChain()
		assert.Equal(t, "noopHandler", chain.Messages[0].Descriptor.Name)
	})

	t.Run("CommandHookCarriesHandlerName", func(t *testing.T) {
		c := New("weather")
		require.NoError(t, c.AddCommand("forecast", noopCommand))

		chain := c.HookChain()
		require.Len(t, chain.Commands, 1)
		assert.Equal(t, "weather::noopCommand", chain.Commands[0].Descriptor.Name)
	})
}
