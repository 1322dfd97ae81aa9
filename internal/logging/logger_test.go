package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, slog.LevelInfo)

	logger.Info("failed", "error", errors.New("boom"))

	assert.Contains(t, buf.String(), "err=boom")
	assert.NotContains(t, buf.String(), "error=")
}

func TestForDebug(t *testing.T) {
	var buf bytes.Buffer

	ForDebug(&buf, false).Debug("hidden")
	assert.Empty(t, buf.String())

	ForDebug(&buf, true).Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}
