// Package core provides the bot runtime: configuration, the engine that
// composes components into a dispatchable hook chain, and the poll loop that
// feeds fetched updates through it.
//
// # Configuration
//
// Configuration is loaded from a YAML file with ${VAR} environment variable
// expansion:
//
//	bot:
//	  token: "${BOT_TOKEN}"
//	  process_backlog: false
//	  poll_timeout: "30s"
//	  about: "An example bot"
//	  owner: "@example"
//	logging:
//	  level: info
//	  file: /var/log/botogram/bot.log
package core

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MatyiFKBT/botogram/pkg/constants"
)

const (
	DefaultLogLevel        = "info"
	DefaultLogEnableStdout = true
)

// Config represents the complete bot configuration structure
type Config struct {
	Bot     BotConfig     `yaml:"bot"`
	Logging LoggingConfig `yaml:"logging"`
}

// BotConfig represents the bot session configuration
type BotConfig struct {
	Token          string `yaml:"token"`
	ProcessBacklog bool   `yaml:"process_backlog"` // Dispatch backlog updates instead of discarding them
	PollTimeout    string `yaml:"poll_timeout"`    // Long-poll timeout (e.g. "30s")
	About          string `yaml:"about"`           // Shown by /about
	Owner          string `yaml:"owner"`           // Shown by /about
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	File         string `yaml:"file"`          // Log file path
	MaxSize      int    `yaml:"max_size"`      // Single file max size in MB
	MaxBackups   int    `yaml:"max_backups"`   // Number of backups to keep
	MaxAge       int    `yaml:"max_age"`       // Maximum days to retain
	Compress     bool   `yaml:"compress"`      // Whether to compress old logs
	EnableStdout bool   `yaml:"enable_stdout"` // Also output to stdout
}

// LoadConfig loads configuration from file and expands environment variables
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expandedData, err := expandEnv(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to expand environment variables: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// expandEnv replaces ${VAR_NAME} patterns with environment variable values
func expandEnv(input string) (string, error) {
	var missingVars []string

	result := os.Expand(input, func(key string) string {
		if val := os.Getenv(key); val != "" {
			return val
		}
		missingVars = append(missingVars, key)
		return ""
	})

	if len(missingVars) > 0 {
		return "", fmt.Errorf("missing required environment variables: %s",
			strings.Join(missingVars, ", "))
	}

	return result, nil
}

// validateConfig performs basic validation and fills in defaults
func validateConfig(config *Config) error {
	if config.Bot.Token == "" {
		return fmt.Errorf("bot.token is required")
	}

	if config.Bot.PollTimeout == "" {
		config.Bot.PollTimeout = constants.DefaultPollTimeout.String()
	}
	timeout, err := time.ParseDuration(config.Bot.PollTimeout)
	if err != nil {
		return fmt.Errorf("invalid poll_timeout: %w", err)
	}
	if timeout < constants.MinPollTimeout {
		return fmt.Errorf("poll_timeout must be at least %v (got %v)", constants.MinPollTimeout, timeout)
	}
	if timeout > constants.MaxPollTimeout {
		return fmt.Errorf("poll_timeout is too large (max %v, got %v)", constants.MaxPollTimeout, timeout)
	}

	if config.Logging.Level == "" {
		config.Logging.Level = DefaultLogLevel
	}
	if config.Logging.MaxSize == 0 {
		config.Logging.MaxSize = constants.DefaultLogMaxSize
	}
	if config.Logging.MaxBackups == 0 {
		config.Logging.MaxBackups = constants.DefaultLogMaxBackups
	}
	if config.Logging.MaxAge == 0 {
		config.Logging.MaxAge = constants.DefaultLogMaxAge
	}
	if !config.Logging.EnableStdout {
		config.Logging.EnableStdout = DefaultLogEnableStdout
	}

	return nil
}

// PollTimeoutDuration returns the parsed long-poll timeout. Validation has
// already rejected unparseable values, so the fallback covers only a Config
// built by hand.
func (c *Config) PollTimeoutDuration() time.Duration {
	timeout, err := time.ParseDuration(c.Bot.PollTimeout)
	if err != nil {
		return constants.DefaultPollTimeout
	}
	return timeout
}
