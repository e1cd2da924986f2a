package logger

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_LevelAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn").With("component", "test")

	log.Info("skipped id=%d", 1)
	log.Warn("Create: conflict for owner=%d", 7)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "Create: conflict for owner=7", entry["message"])
	assert.Equal(t, "test", entry["component"])
}

func TestNew(t *testing.T) {
	_, err := New("", "verbose")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "logs", "app.log")
	log, err := New(path, "debug")
	require.NoError(t, err)
	log.Debug("hello")
	assert.NoError(t, log.Close())
	assert.FileExists(t, path)
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().Error("nothing %s", "happens")
	})
}
