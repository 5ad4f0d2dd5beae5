package evesync_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/evesync/pkg/evesync"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := evesync.NewLogger(&buf, zerolog.InfoLevel)

	logger.Info().Msg("test message")
	logger.Debug().Msg("hidden")

	output := buf.String()
	assert.Contains(t, output, "test message")
	assert.NotContains(t, output, "hidden")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(output), "lib=evesync"), output)
}

func TestLogLevelFromString(t *testing.T) {
	testCases := []struct {
		levelStr string
		expected zerolog.Level
		wantErr  bool
	}{
		{"trace", zerolog.TraceLevel, false},
		{"DEBUG", zerolog.DebugLevel, false},
		{"info", zerolog.InfoLevel, false},
		{"warn", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"invalid", zerolog.NoLevel, true},
	}

	for _, tc := range testCases {
		t.Run(tc.levelStr, func(t *testing.T) {
			level, err := evesync.LogLevelFromString(tc.levelStr)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, level)
		})
	}
}

func TestNewVerboseLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := evesync.NewVerboseLogger(&buf, 0)
	logger.Info().Msg("info at verbosity zero")
	assert.Empty(t, buf.String())

	logger = evesync.NewVerboseLogger(&buf, 2)
	logger.Debug().Msg("debug at verbosity two")
	assert.Contains(t, buf.String(), "debug at verbosity two")
}

func TestNewCLILogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := evesync.NewCLILogger(&buf, 0, "INFO")
	require.NoError(t, err)
	logger.Info().Msg("configured level")
	logger.Debug().Msg("hidden")
	assert.Contains(t, buf.String(), "configured level")
	assert.NotContains(t, buf.String(), "hidden")

	buf.Reset()
	logger, err = evesync.NewCLILogger(&buf, 2, "error")
	require.NoError(t, err)
	logger.Debug().Msg("verbosity wins")
	assert.Contains(t, buf.String(), "verbosity wins")

	_, err = evesync.NewCLILogger(&buf, 0, "loud")
	assert.ErrorContains(t, err, `invalid log level "loud"`)
}
