package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestResolveFormat(t *testing.T) {
	cases := []struct {
		format   string
		terminal bool
		want     string
	}{
		{"", true, FormatConsole},
		{"", false, FormatJSON},
		{"JSON", true, FormatJSON},
		{"text", false, FormatConsole},
		{"console", false, FormatConsole},
	}
	for _, tc := range cases {
		got, err := resolveFormat(tc.format, tc.terminal)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "format %q terminal %v", tc.format, tc.terminal)
	}

	_, err := resolveFormat("xml", false)
	assert.Error(t, err)
}

func TestNewAppliesLevel(t *testing.T) {
	logger, err := New(Config{Level: "WARN", Format: FormatJSON})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	_, err = New(Config{Level: "loud"})
	assert.Error(t, err)
}
