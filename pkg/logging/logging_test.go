package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitsJSONLines(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.Info(CategorySkin, "skin loaded", map[string]any{"name": "classic"})

	var ev Event
	require.NoError(t, json.Unmarshal(buf.Bytes(), &ev))
	assert.Equal(t, LevelInfo, ev.Level)
	assert.Equal(t, CategorySkin, ev.Category)
	assert.Equal(t, "classic", ev.Fields["name"])
}
