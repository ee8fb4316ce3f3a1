// Package component implements the plugin unit of the bot framework.
//
// A Component is a named bundle of handlers contributed by a plugin author:
// commands, message hooks (including pattern-matching hooks), and
// before-processing hooks. All registration happens at bot-assembly time;
// once the bot starts polling the component is treated as read-only.
//
// The dispatcher consumes a component through HookChain, which returns the
// three hook groups in their fixed execution order: before hooks, synthesized
// command hooks, message hooks.
package component

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/MatyiFKBT/botogram/internal/api"
)

var (
	// ErrNilHandler is returned when a nil function is passed to any Add* method.
	ErrNilHandler = errors.New("handler must not be nil")

	// ErrDuplicateCommand is returned when a command name is registered twice
	// within the same component.
	ErrDuplicateCommand = errors.New("command already registered")
)

// HandlerFunc observes a message and reports whether it consumed it.
// A true result stops the hook chain for that message.
type HandlerFunc func(chat *api.Chat, msg *api.Message) (bool, error)

// CommandFunc handles one invocation of a registered command.
type CommandFunc func(chat *api.Chat, msg *api.Message, args []string) error

// MatchesFunc receives the captured groups of one pattern match.
type MatchesFunc func(chat *api.Chat, msg *api.Message, groups []string) error

// MessageFunc is a plain message callback, used by contains hooks.
type MessageFunc func(chat *api.Chat, msg *api.Message) error

// Component is a named bundle of command and message handlers.
type Component struct {
	name string

	commands     map[string]CommandFunc
	commandOrder []string
	processors   []hookEntry
	before       []hookEntry
}

// hookEntry keeps a registered handler together with the function it was
// derived from, so the chain can expose the original function's name.
type hookEntry struct {
	fn       HandlerFunc
	origName string
}

// New creates a component with an explicit name. An empty name is allowed;
// hooks of an unnamed component carry bare function names.
func New(name string) *Component {
	return &Component{
		name:     name,
		commands: make(map[string]CommandFunc),
	}
}

// NewFromType creates a component named after the dynamic type of v.
func NewFromType(v interface{}) *Component {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	name := ""
	if t != nil {
		name = t.Name()
	}
	return New(name)
}

// Name returns the component's name.
func (c *Component) Name() string {
	return c.name
}

// AddBeforeHook registers a hook that runs before any command or message
// hook. Hooks run in registration order.
func (c *Component) AddBeforeHook(fn HandlerFunc) error {
	if fn == nil {
		return fmt.Errorf("before hook: %w", ErrNilHandler)
	}
	c.before = append(c.before, hookEntry{fn: fn, origName: funcName(fn)})
	return nil
}

// AddMessageHook registers a plain message hook.
func (c *Component) AddMessageHook(fn HandlerFunc) error {
	if fn == nil {
		return fmt.Errorf("message hook: %w", ErrNilHandler)
	}
	c.processors = append(c.processors, hookEntry{fn: fn, origName: funcName(fn)})
	return nil
}

// AddCommand registers a command handler. Command names are unique within
// this component only; collisions across components are checked by the bot
// runtime when the component is attached.
func (c *Component) AddCommand(name string, fn CommandFunc) error {
	if _, exists := c.commands[name]; exists {
		return fmt.Errorf("command /%s: %w", name, ErrDuplicateCommand)
	}
	if fn == nil {
		return fmt.Errorf("command /%s: %w", name, ErrNilHandler)
	}
	c.commands[name] = fn
	c.commandOrder = append(c.commandOrder, name)
	return nil
}

// CommandNames returns the registered command names in registration order.
func (c *Component) CommandNames() []string {
	names := make([]string, len(c.commandOrder))
	copy(names, c.commandOrder)
	return names
}

// HookChain returns the component's hooks grouped in execution order.
// Each call produces a fresh snapshot; every handler is wrapped with a
// Descriptor exactly once per snapshot.
func (c *Component) HookChain() Chain {
	chain := Chain{
		Before:   make([]Hook, 0, len(c.before)),
		Commands: make([]Hook, 0, len(c.commandOrder)),
		Messages: make([]Hook, 0, len(c.processors)),
	}
	for _, e := range c.before {
		chain.Before = append(chain.Before, c.wrap(e))
	}
	for _, name := range c.commandOrder {
		fn := c.commands[name]
		chain.Commands = append(chain.Commands, c.wrap(hookEntry{
			fn:       c.commandHook(name, fn),
			origName: funcName(fn),
		}))
	}
	for _, e := range c.processors {
		chain.Messages = append(chain.Messages, c.wrap(e))
	}
	return chain
}

func (c *Component) wrap(e hookEntry) Hook {
	name := e.origName
	if c.name != "" {
		name = c.name + "::" + name
	}
	return Hook{
		Descriptor: Descriptor{Name: name, Component: c},
		fn:         e.fn,
	}
}
