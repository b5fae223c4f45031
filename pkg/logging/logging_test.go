package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := map[string]struct {
		level, format string
		enabled       []zapcore.Level
		disabled      []zapcore.Level
	}{
		"console debug": {
			level: "debug", format: "console",
			enabled: []zapcore.Level{zapcore.DebugLevel, zapcore.ErrorLevel},
		},
		"json warn": {
			level: "WARN", format: "json",
			enabled:  []zapcore.Level{zapcore.WarnLevel},
			disabled: []zapcore.Level{zapcore.InfoLevel},
		},
		"default format": {
			level:    "info",
			enabled:  []zapcore.Level{zapcore.InfoLevel},
			disabled: []zapcore.Level{zapcore.DebugLevel},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			logger, err := New(tc.level, tc.format)
			require.NoError(t, err)
			for _, lvl := range tc.enabled {
				assert.True(t, logger.Core().Enabled(lvl), lvl.String())
			}
			for _, lvl := range tc.disabled {
				assert.False(t, logger.Core().Enabled(lvl), lvl.String())
			}
		})
	}
}

func TestNewErrors(t *testing.T) {
	_, err := New("loud", FormatConsole)
	assert.Error(t, err)
	_, err = New("info", "xml")
	assert.Error(t, err)
}
