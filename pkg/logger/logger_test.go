package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_StructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.Info().Str("component", "session_service").Msg("session opened")

	var output map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &output)
	require.NoError(t, err, "logger output should be valid JSON")

	assert.Equal(t, "session opened", output["message"])
	assert.Equal(t, "session_service", output["component"])
	assert.Equal(t, "info", output["level"])
	assert.Contains(t, output, "time")
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		debugSeen  bool
		infoSeen   bool
	}{
		{"debug passes everything", "debug", true, true},
		{"info filters debug", "info", false, true},
		{"error filters info", "error", false, false},
		{"unknown level defaults to info", "verbose", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithWriter(tt.level, &buf)

			log.Debug().Msg("debug line")
			assert.Equal(t, tt.debugSeen, buf.Len() > 0)

			buf.Reset()
			log.Info().Msg("info line")
			assert.Equal(t, tt.infoSeen, buf.Len() > 0)

			buf.Reset()
			log.Error().Msg("error line")
			assert.NotEmpty(t, buf.String(), "errors are always logged")
		})
	}
}

func TestNew_PrettyMode(t *testing.T) {
	// Pretty mode writes to stdout; just ensure construction does not panic.
	log := New("info", true)
	log.Info().Msg("console writer smoke test")
}
