package logger

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInit tests logger initialization
func TestInit(t *testing.T) {
	t.Run("ValidLevel", func(t *testing.T) {
		err := Init(Config{Level: "debug", EnableStdout: true})
		require.NoError(t, err)
		assert.Equal(t, logrus.DebugLevel, Get().GetLevel())
	})

	t.Run("InvalidLevelFallsBackToInfo", func(t *testing.T) {
		err := Init(Config{Level: "loud", EnableStdout: true})
		require.NoError(t, err)
		assert.Equal(t, logrus.InfoLevel, Get().GetLevel())
	})

	t.Run("CreatesLogDirectory", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "nested", "bot.log")
		err := Init(Config{Level: "info", File: file, MaxSize: 1})
		require.NoError(t, err)

		WithField("event", "test").Info("log-directory-created")
	})
}

// TestGet tests the lazily initialized fallback logger
func TestGet(t *testing.T) {
	globalLogger = nil
	l := Get()
	require.NotNil(t, l)
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.Same(t, l, Get())
}
