package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"DEBUG":   zerolog.DebugLevel,
		" Warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"trace":   zerolog.TraceLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), "nivel %q", in)
	}
}

func TestNew_RespetaNivel(t *testing.T) {
	l := New(Config{Env: "production", Level: "error", Output: &bytes.Buffer{}})
	assert.Equal(t, zerolog.ErrorLevel, l.Zerolog().GetLevel())
}

func TestNew_JSONConServicio(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Service: "bookstore-api", Output: &buf})

	l.Debug().Msg("descartado")
	l.Info().Str("sale_id", "abc").Msg("venta creada")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "debug no debe escribirse con nivel info")

	var ev map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &ev))
	assert.Equal(t, "bookstore-api", ev["service"])
	assert.Equal(t, "info", ev["level"])
	assert.Equal(t, "venta creada", ev["message"])
	assert.Equal(t, "abc", ev["sale_id"])
	assert.Contains(t, ev, "time")
}

func TestNew_SinServicioNoAñadeCampo(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Env: "production", Output: &buf}).Info().Msg("ok")

	var ev map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &ev))
	assert.NotContains(t, ev, "service")
}

func TestNew_DevelopmentEscribeEnConsola(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Env: "development", Service: "bookstore-api", Output: &buf}).Info().Msg("arrancando")

	out := buf.String()
	assert.Contains(t, out, "arrancando")
	assert.Contains(t, out, "service=")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())), "en development la salida es legible, no JSON")
}
