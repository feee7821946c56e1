package logging_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NethermindEth/arenastate/pkg/arenastate/logging"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"Trace", logging.LevelTrace},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"SILENT", logging.LevelSilent},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := logging.ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := logging.ParseLevel("LOUD")
	assert.Error(t, err)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, logging.Setup("DEBUG", &buf))

	logging.Logger("setup").Debug("loaded")
	assert.Contains(t, buf.String(), "msg=loaded")
	assert.Contains(t, buf.String(), "component=setup")

	buf.Reset()
	logging.SetLevel("chain", slog.LevelWarn)
	logging.Logger("chain").Info("dialing")
	assert.Empty(t, buf.String())
	logging.Logger("chain").Warn("slow")
	assert.Contains(t, buf.String(), "msg=slow")

	buf.Reset()
	logging.Disable("maptool", true)
	logging.Logger("maptool").Warn("ignored")
	assert.Empty(t, buf.String())
	logging.Logger("maptool").Error("failed")
	assert.Contains(t, buf.String(), "msg=failed")
	logging.Disable("maptool", false)

	buf.Reset()
	slog.Debug("via default")
	assert.Contains(t, buf.String(), "via default")

	require.NoError(t, logging.Setup("SILENT", &buf))
	buf.Reset()
	slog.Error("nothing")
	logging.Logger("setup").Error("nothing")
	assert.Empty(t, buf.String())

	assert.Error(t, logging.Setup("LOUD", &buf))
}
