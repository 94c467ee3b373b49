package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewZerologLogger("test")
	require.NotNil(t, l)
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Infow("info", map[string]any{"k": 2})
	l.Warnf("warn")
	l.Errorf("error")
}

func TestStructuredOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("matcher", &buf)
	l.Infow("item evaluated", map[string]any{"item_id": "p1", "matches": 3})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "matcher", line["component"])
	assert.Equal(t, "item evaluated", line["message"])
	assert.Equal(t, "p1", line["item_id"])
	assert.Equal(t, float64(3), line["matches"])
}

func TestSetLevel(t *testing.T) {
	defer SetLevel("info")
	assert.False(t, SetLevel("loud"))
	assert.True(t, SetLevel("warn"))

	var buf bytes.Buffer
	l := NewWithWriter("svc", &buf)
	l.Infof("hidden")
	l.Warnf("shown")
	assert.False(t, strings.Contains(buf.String(), "hidden"))
	assert.True(t, strings.Contains(buf.String(), "shown"))
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Infow("nothing", nil)
}
