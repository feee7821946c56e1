package nft

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/NethermindEth/arenastate/pkg/arenastate/maptool"
	"github.com/NethermindEth/arenastate/pkg/arenastate/setup"
)

const (
	DefaultGameName        = "a chaintrap game"
	DefaultGameDescription = "A single game of chaintrap. Anyone can create a game and host a session. When the game is completed the URI will be updated to prove its outcome."
	DefaultIconFilename    = "game-icon.png"

	metadataTitle       = "Token Metadata"
	externalUrlTemplate = "https://chaintrap.hoy.polysensus.io/chaintrap/%s/game/{id}/"
)

type Generator struct {
	ModelType   string `json:"model_type"`
	Url         string `json:"url"`
	Image       string `json:"image"`
	ImageDigest string `json:"image_digest"`
}

type GameProperties struct {
	Generator Generator         `json:"generator"`
	VrfProof  *maptool.VrfProof `json:"vrf_proof,omitempty"`
}

// GameMetadata is the ERC-1155 metadata of a single game token.
type GameMetadata struct {
	Title       string         `json:"title"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Image       string         `json:"image"`
	ExternalUrl string         `json:"external_url"`
	Properties  GameProperties `json:"properties"`
}

func NewGenerator(options setup.MaptoolOptions) Generator {
	return Generator{
		ModelType:   maptool.ModelType,
		Url:         options.Url,
		Image:       options.Image,
		ImageDigest: options.ImageDigest,
	}
}

func NewGameMetadata(arena common.Address, generator Generator, proof *maptool.VrfProof) *GameMetadata {
	return &GameMetadata{
		Title:       metadataTitle,
		Name:        DefaultGameName,
		Description: DefaultGameDescription,
		ExternalUrl: fmt.Sprintf(externalUrlTemplate, arena.Hex()),
		Properties: GameProperties{
			Generator: generator,
			VrfProof:  proof,
		},
	}
}
