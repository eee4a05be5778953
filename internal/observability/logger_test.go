package observability

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"unknown", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("applies the configured level", func(t *testing.T) {
		logger := NewLogger(LoggingConfig{Level: "warn", Format: "json", Output: "stdout"})
		assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
	})

	t.Run("defaults carry info level and json format", func(t *testing.T) {
		logger := NewLogger(DefaultLoggingConfig())
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})
}

func TestContextHelpers(t *testing.T) {
	t.Run("request context adds the correlation field", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithRequestContext(zerolog.New(&buf), "corr-123")
		logger.Info().Msg("hello")

		assert.Contains(t, buf.String(), `"request_id":"corr-123"`)
	})

	t.Run("endpoint context adds the endpoint field", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithEndpointContext(zerolog.New(&buf), "/api/trending")
		logger.Info().Msg("hello")

		assert.Contains(t, buf.String(), `"endpoint":"/api/trending"`)
	})

	t.Run("upstream context adds source and path", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithUpstreamContext(zerolog.New(&buf), "openalex", "/works")
		logger.Info().Msg("hello")

		assert.Contains(t, buf.String(), `"source":"openalex"`)
		assert.Contains(t, buf.String(), `"path":"/works"`)
	})
}
