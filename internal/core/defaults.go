package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MatyiFKBT/botogram/internal/api"
	"github.com/MatyiFKBT/botogram/internal/component"
	"github.com/MatyiFKBT/botogram/internal/logger"
)

// defaultComponent builds the component every bot ships with: /start, /help
// and /about.
func (b *Bot) defaultComponent() *component.Component {
	c := component.New("botogram")

	builtins := []struct {
		name string
		fn   component.CommandFunc
	}{
		{"start", b.cmdStart},
		{"help", b.cmdHelp},
		{"about", b.cmdAbout},
	}
	for _, cmd := range builtins {
		if err := c.AddCommand(cmd.name, cmd.fn); err != nil {
			logger.WithField("command", cmd.name).Warnf("failed-to-register-builtin-command: %v", err)
		}
	}
	return c
}

func (b *Bot) cmdStart(chat *api.Chat, _ *api.Message, _ []string) error {
	if chat == nil {
		return nil
	}
	var sb strings.Builder
	if b.config.Bot.About != "" {
		sb.WriteString(b.config.Bot.About)
		sb.WriteString("\n\n")
	}
	sb.WriteString("Use /help to get a list of the commands I understand.")
	return b.client.SendMessage(chat.ID, sb.String())
}

func (b *Bot) cmdHelp(chat *api.Chat, _ *api.Message, _ []string) error {
	if chat == nil {
		return nil
	}
	names := make([]string, 0, len(b.commands))
	for name := range b.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("Available commands:\n")
	for _, name := range names {
		fmt.Fprintf(&sb, "/%s\n", name)
	}
	return b.client.SendMessage(chat.ID, sb.String())
}

func (b *Bot) cmdAbout(chat *api.Chat, _ *api.Message, _ []string) error {
	if chat == nil {
		return nil
	}
	var sb strings.Builder
	if b.config.Bot.About != "" {
		sb.WriteString(b.config.Bot.About)
	} else {
		sb.WriteString("No description provided.")
	}
	if b.config.Bot.Owner != "" {
		fmt.Fprintf(&sb, "\n\nThis bot is run by %s.", b.config.Bot.Owner)
	}
	return b.client.SendMessage(chat.ID, sb.String())
}
