package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/MatyiFKBT/botogram/internal/api"
	"github.com/MatyiFKBT/botogram/internal/component"
	"github.com/MatyiFKBT/botogram/internal/logger"
	"github.com/MatyiFKBT/botogram/internal/updates"
)

// fetchRetryDelay throttles the poll loop after a failed fetch so a broken
// remote does not turn the loop hot.
const fetchRetryDelay = 1 * time.Second

// Bot composes components into a hook chain and drives the fetch/dispatch
// cycle. Components are attached with Use during assembly; once Run starts
// the chain is frozen and no further registration is expected.
type Bot struct {
	config  *Config
	client  api.Client
	fetcher *updates.Fetcher

	components []*component.Component

	// commands is the global command table: every command name across all
	// attached components, mapped to the owning component's name. It is the
	// cross-component uniqueness check the per-component registries do not
	// perform.
	commands map[string]string

	// groups holds the frozen hook chain in stage order (before, commands,
	// messages), each stage merged across components in attach order.
	groups [3][]component.Hook
	frozen bool
}

// NewBot creates a bot runtime around the given remote client. The built-in
// component (/start, /help, /about) is attached first, so its command names
// are claimed before any user component.
func NewBot(config *Config, client api.Client) *Bot {
	b := &Bot{
		config:   config,
		client:   client,
		fetcher:  updates.NewFetcher(client, config.Bot.ProcessBacklog),
		commands: make(map[string]string),
	}
	if err := b.Use(b.defaultComponent()); err != nil {
		// Unreachable: the command table is empty at this point.
		logger.Errorf("failed-to-attach-builtin-component: %v", err)
	}
	return b
}

// Use attaches a component. It fails when the component claims a command
// name already owned by a previously attached component, or when called
// after Run has frozen the chain.
func (b *Bot) Use(c *component.Component) error {
	if b.frozen {
		return fmt.Errorf("cannot attach component %q: bot is already running", c.Name())
	}
	for _, name := range c.CommandNames() {
		if owner, exists := b.commands[name]; exists {
			return fmt.Errorf("command /%s requested by component %q is already provided by component %q",
				name, c.Name(), owner)
		}
	}
	for _, name := range c.CommandNames() {
		b.commands[name] = c.Name()
	}
	b.components = append(b.components, c)

	logger.WithFields(logrus.Fields{
		"component": c.Name(),
		"commands":  c.CommandNames(),
	}).Info("component-attached")
	return nil
}

// Cursor returns the fetcher's current cursor, suitable for persisting
// across restarts.
func (b *Bot) Cursor() updates.Cursor {
	return b.fetcher.Cursor()
}

// freeze snapshots every component's hook chain into the merged dispatch
// groups. Stage order is fixed; within a stage, components run in attach
// order and hooks in registration order.
func (b *Bot) freeze() {
	if b.frozen {
		return
	}
	for _, c := range b.components {
		chain := c.HookChain()
		b.groups[0] = append(b.groups[0], chain.Before...)
		b.groups[1] = append(b.groups[1], chain.Commands...)
		b.groups[2] = append(b.groups[2], chain.Messages...)
	}
	b.frozen = true
}

// Run drives the sequential poll loop until the context is canceled. Fetch
// errors are logged and retried on the next cycle; hook errors are logged
// and dispatch continues with the next update.
func (b *Bot) Run(ctx context.Context) error {
	b.freeze()
	timeout := b.config.PollTimeoutDuration()

	logger.WithFields(logrus.Fields{
		"components":      len(b.components),
		"commands":        len(b.commands),
		"poll_timeout":    timeout.String(),
		"process_backlog": b.config.Bot.ProcessBacklog,
	}).Info("bot-poll-loop-started")

	for {
		if err := ctx.Err(); err != nil {
			logger.Info("bot-poll-loop-stopped")
			return err
		}

		live, backlog, err := b.fetcher.Fetch(ctx, timeout)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				logger.Info("bot-poll-loop-stopped")
				return err
			}
			logger.WithField("error", err).Error("update-fetch-failed")
			time.Sleep(fetchRetryDelay)
			continue
		}

		for _, u := range backlog {
			logger.WithFields(logrus.Fields{
				"update_id": u.UpdateID,
			}).Debug("skipping-backlog-update")
		}

		for _, u := range live {
			if err := b.ProcessUpdate(u); err != nil {
				logger.WithFields(logrus.Fields{
					"update_id": u.UpdateID,
					"error":     err,
				}).Error("update-processing-failed")
			}
		}
	}
}

// ProcessUpdate runs one update through the frozen hook chain. The first
// hook that reports the message as handled stops the chain.
func (b *Bot) ProcessUpdate(u api.Update) error {
	b.freeze()

	msg := u.Message
	if msg == nil {
		return nil
	}

	for _, group := range b.groups {
		for _, h := range group {
			handled, err := h.Call(msg.Chat, msg)
			if err != nil {
				return fmt.Errorf("hook %s: %w", h.Descriptor.Name, err)
			}
			if handled {
				logger.WithFields(logrus.Fields{
					"update_id": u.UpdateID,
					"hook":      h.Descriptor.Name,
				}).Debug("update-handled")
				return nil
			}
		}
	}
	return nil
}
