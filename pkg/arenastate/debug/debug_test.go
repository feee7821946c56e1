package debug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NethermindEth/arenastate/pkg/arenastate/debug"
)

func TestDebugSwitches(t *testing.T) {
	t.Setenv(debug.DebugPlainSealKey, "")
	t.Setenv(debug.DebugShowConfigKey, "")
	assert.False(t, debug.IsDebugPlainSeal())
	assert.False(t, debug.IsDebugShowConfig())

	t.Setenv(debug.DebugPlainSealKey, "true")
	assert.True(t, debug.IsDebugPlainSeal())

	t.Setenv(debug.DebugShowConfigKey, "1")
	assert.False(t, debug.IsDebugShowConfig())
	t.Setenv(debug.DebugShowConfigKey, "true")
	assert.True(t, debug.IsDebugShowConfig())
}
