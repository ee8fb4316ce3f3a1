package component

import (
	"regexp"
	"strings"

	"github.com/MatyiFKBT/botogram/internal/api"
)

// commandRe matches the leading command token of a message. Telegram appends
// "@botname" to commands sent in groups, so the mention is parsed away before
// the name is compared.
var commandRe = regexp.MustCompile(`^/([a-zA-Z0-9_]+)(?:@\S+)?(?:\s|$)`)

// ParseCommand extracts the bare command name and its arguments from a
// message text. It returns ok false when the text is not a command.
func ParseCommand(text string) (name string, args []string, ok bool) {
	m := commandRe.FindStringSubmatch(text)
	if m == nil {
		return "", nil, false
	}
	fields := strings.Fields(text)
	if len(fields) > 1 {
		args = fields[1:]
	}
	return m[1], args, true
}

// commandHook synthesizes the message hook that routes one registered
// command. Routing is a per-hook name comparison: the chain driver checks
// every command hook against the message, there is no shared dispatch table
// at this layer.
func (c *Component) commandHook(name string, fn CommandFunc) HandlerFunc {
	return func(chat *api.Chat, msg *api.Message) (bool, error) {
		if msg == nil || msg.Text == "" {
			return false, nil
		}
		parsed, args, ok := ParseCommand(msg.Text)
		if !ok || parsed != name {
			return false, nil
		}
		return true, fn(chat, msg, args)
	}
}
