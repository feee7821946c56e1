package debug

const (
	Debug = true
)

func IsDebug() bool {
	return Debug
}

// IsDebugPlainSeal makes the sealing package write and read plain files.
func IsDebugPlainSeal() bool {
	return Debug && isDebugPlainSealSet()
}

func IsDebugShowConfig() bool {
	return Debug && isDebugShowConfigSet()
}
