package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	initLogger(&buf, "surgical-booking", "production")

	log.Info().Str("journey_id", "j-1").Msg("journey created")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "surgical-booking", line["service"])
	assert.Equal(t, "j-1", line["journey_id"])
	assert.Equal(t, "journey created", line["message"])
}

func TestLoggerFromContext_WithoutSpan(t *testing.T) {
	var buf bytes.Buffer
	initLogger(&buf, "surgical-booking", "production")

	LoggerFromContext(context.Background()).Warn().Msg("no trace")

	assert.NotContains(t, buf.String(), "trace_id")
	assert.Contains(t, buf.String(), "no trace")
}
