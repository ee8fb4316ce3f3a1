package component

import (
	"fmt"
	"regexp"

	"github.com/MatyiFKBT/botogram/internal/api"
)

// AddMatchesHook registers a message hook driven by a regular expression.
//
// The hook scans the message text for non-overlapping matches in
// left-to-right order and invokes fn with the captured groups of each match.
// With multiple false only the first match is delivered. The hook reports
// the message as handled when at least one match was found; a message
// without text never matches.
//
// The pattern is compiled at registration time, so a malformed pattern fails
// here instead of at dispatch.
func (c *Component) AddMatchesHook(fn MatchesFunc, pattern string, multiple bool) error {
	if fn == nil {
		return fmt.Errorf("matches hook: %w", ErrNilHandler)
	}
	return c.addMatchesHook(fn, funcName(fn), pattern, multiple)
}

// AddContainsHook registers a message hook that fires when the text contains
// word on its own word boundaries: "cat" matches "a cat sat" but not
// "concatenate". The word may itself be a regular expression fragment.
func (c *Component) AddContainsHook(fn MessageFunc, word string, ignoreCase, multiple bool) error {
	if fn == nil {
		return fmt.Errorf("contains hook: %w", ErrNilHandler)
	}
	pattern := `\b(` + word + `)\b`
	if ignoreCase {
		pattern = `(?i)` + pattern
	}
	wrapped := func(chat *api.Chat, msg *api.Message, _ []string) error {
		return fn(chat, msg)
	}
	return c.addMatchesHook(wrapped, funcName(fn), pattern, multiple)
}

func (c *Component) addMatchesHook(fn MatchesFunc, origName, pattern string, multiple bool) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("matches hook: invalid pattern %q: %w", pattern, err)
	}

	hook := func(chat *api.Chat, msg *api.Message) (bool, error) {
		if msg == nil || msg.Text == "" {
			return false, nil
		}
		if !multiple {
			m := re.FindStringSubmatch(msg.Text)
			if m == nil {
				return false, nil
			}
			return true, fn(chat, msg, m[1:])
		}
		results := re.FindAllStringSubmatch(msg.Text, -1)
		if len(results) == 0 {
			return false, nil
		}
		for _, m := range results {
			if err := fn(chat, msg, m[1:]); err != nil {
				return true, err
			}
		}
		return true, nil
	}

	c.processors = append(c.processors, hookEntry{fn: hook, origName: origName})
	return nil
}
