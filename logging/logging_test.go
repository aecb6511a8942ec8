package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ReeCocho/Snek/config"
	"github.com/ReeCocho/Snek/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"bogus", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			for _, format := range []string{"console", "json"} {
				log, err := logging.New(config.LoggingConfig{Level: tt.level, Format: format})
				require.NoError(t, err)
				assert.True(t, log.Core().Enabled(tt.want))
				if tt.want > zapcore.DebugLevel {
					assert.False(t, log.Core().Enabled(tt.want-1))
				}
			}
		})
	}
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snek.log")
	log, err := logging.ToFile(config.LoggingConfig{Level: "info"}, path)
	require.NoError(t, err)

	log.Info("hello from the test")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from the test")
}
