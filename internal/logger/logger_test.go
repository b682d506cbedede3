package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(&buf, "debug", "json")

	component := WithComponent(l, "preview")
	component.Debug().Str(FieldKey, "images/a.png").Msg("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["message"])
	assert.Equal(t, "preview", line[FieldComponent])
	assert.Equal(t, "images/a.png", line[FieldKey])
	assert.Equal(t, "s3-previewer", line["service"])
}

func TestNewWithWriter_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(&buf, "loud", "json")

	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
	l.Debug().Msg("dropped")
	assert.Empty(t, buf.String())
}

func TestNewWithWriter_Console(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(&buf, "info", "console")

	l.Info().Msg("console line")
	assert.Contains(t, buf.String(), "console line")
}
