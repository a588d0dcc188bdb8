package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fims/pkg/logger"
)

func TestNew_JSONConNivel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})

	log.Info().Msg("descartado")
	log.Component("ledger").Warn().Str("kind", "CAPACITY_EXCEEDED").Msg("rechazo")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1, "info no debe escribirse con nivel warn")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "ledger", entry["component"])
	assert.Equal(t, "CAPACITY_EXCEEDED", entry["kind"])
	assert.Contains(t, entry, "time")
}

func TestNop(t *testing.T) {
	log := logger.Nop()
	assert.NotPanics(t, func() {
		log.Error().Str("x", "y").Msg("nada")
	})
}
