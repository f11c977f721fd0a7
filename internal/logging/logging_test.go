package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "debug", "sim")
	assert.Equal(t, log.DebugLevel, l.GetLevel())

	l.Debug("moved", "player", 1)
	assert.Contains(t, buf.String(), "moved")
	assert.Contains(t, buf.String(), "player=1")
}

func TestNewUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "loud", "")
	assert.Equal(t, log.InfoLevel, l.GetLevel())
	assert.Contains(t, buf.String(), "unknown log level")
}
