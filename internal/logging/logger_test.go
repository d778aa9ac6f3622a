// ABOUTME: Tests for logger setup and level parsing.
// ABOUTME: Verifies file output and the component field.
package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"INFO", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"warning", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"trace", logrus.TraceLevel},
		{"", logrus.WarnLevel},
		{"loud", logrus.WarnLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetLevel(tt.in), "level %q", tt.in)
	}
}

func TestSetupWritesToFile(t *testing.T) {
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetFormatter(&logrus.TextFormatter{})
		logrus.SetLevel(logrus.InfoLevel)
	})

	base := filepath.Join(t.TempDir(), "fitness")
	closer := Setup(SetupParams{LogFileName: base, LogLevel: "info", LogFormatJSON: true})

	For("storage").Info("opened")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(base + ".log")
	require.NoError(t, err)
	line := string(data)
	assert.True(t, strings.Contains(line, `"component":"storage"`), "got %s", line)
	assert.True(t, strings.Contains(line, `"msg":"opened"`), "got %s", line)
}

func TestSetupWithoutFile(t *testing.T) {
	t.Cleanup(func() { logrus.SetLevel(logrus.InfoLevel) })

	closer := Setup(SetupParams{LogLevel: "debug"})
	assert.NoError(t, closer.Close())
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}
