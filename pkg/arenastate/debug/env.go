package debug

import "os"

const (
	DebugPlainSealKey  = "ARENASTATE_DEBUG_PLAIN_SEAL"
	DebugShowConfigKey = "ARENASTATE_DEBUG_SHOW_CONFIG"
)

func isDebugPlainSealSet() bool {
	return os.Getenv(DebugPlainSealKey) == "true"
}

func isDebugShowConfigSet() bool {
	return os.Getenv(DebugShowConfigKey) == "true"
}
