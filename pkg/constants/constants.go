package constants

import "time"

// Polling defaults
const (
	// DefaultPollTimeout is the long-poll timeout passed to getUpdates
	DefaultPollTimeout = 30 * time.Second
	// MinPollTimeout is the smallest accepted long-poll timeout
	MinPollTimeout = 1 * time.Second
	// MaxPollTimeout is the largest accepted long-poll timeout
	MaxPollTimeout = 5 * time.Minute
)

// Message limits
const (
	// MaxTelegramMessageLength is Telegram's message character limit
	MaxTelegramMessageLength = 4096
)

// Token masking
const (
	// MinTokenLengthForMasking is the minimum token length to apply masking
	MinTokenLengthForMasking = 10
	// TokenMaskPrefixLength is the length of prefix to show before masking
	TokenMaskPrefixLength = 7
	// TokenMaskSuffixLength is the length of suffix to show after masking
	TokenMaskSuffixLength = 4
)

// Logging defaults
const (
	// DefaultLogMaxSize is the default maximum log file size in MB
	DefaultLogMaxSize = 100
	// DefaultLogMaxBackups is the default number of rotated files to keep
	DefaultLogMaxBackups = 5
	// DefaultLogMaxAge is the default maximum number of days to retain old logs
	DefaultLogMaxAge = 30
)
