package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"info", slog.LevelInfo, false},
		{"DEBUG", slog.LevelDebug, false},
		{" warn ", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(LevelWarn, FormatText, &buf)
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("shown", "coin", 700)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "coin=700")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(LevelInfo, FormatJSON, &buf)
	require.NoError(t, err)

	l.Info("dispensed", "item_id", 1)
	assert.Contains(t, buf.String(), `"msg":"dispensed"`)
	assert.Contains(t, buf.String(), `"item_id":1`)
}

func TestNew_InvalidFormat(t *testing.T) {
	_, err := New(LevelInfo, Format("xml"), &bytes.Buffer{})
	assert.ErrorContains(t, err, "invalid log format")
}

func TestConfigure_SetsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	_, err := Configure(LevelDebug, FormatText, &buf)
	require.NoError(t, err)

	slog.Debug("through default")
	assert.Contains(t, buf.String(), "through default")
}
