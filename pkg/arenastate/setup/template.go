package setup

import (
	_ "embed"

	"github.com/NethermindEth/arenastate/pkg/arenastate/envfile"
)

// hardhatTemplate is the template the pipeline instantiates with envsubst.
//
//go:embed templates/env.example.hh
var hardhatTemplate string

func Template() string {
	return hardhatTemplate
}

func DefaultSurface() (*envfile.Surface, error) {
	return envfile.ParseString(hardhatTemplate)
}
