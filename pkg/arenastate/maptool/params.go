package maptool

import (
	"encoding/json"
	"fmt"
	"os"
)

const ModelType = "tinykeep"

// Params are the map generation parameters sent in a commit request.
type Params struct {
	ArenaSize           float64 `json:"arena_size"`
	CorridorRedundancy  float64 `json:"corridor_redundancy"`
	FlockFactor         float64 `json:"flock_factor"`
	MainRoomThresh      float64 `json:"main_room_thresh"`
	MinSeparationFactor float64 `json:"min_separation_factor"`
	Model               string  `json:"model"`
	RoomSzmax           float64 `json:"room_szmax"`
	RoomSzmin           float64 `json:"room_szmin"`
	RoomSzratio         float64 `json:"room_szratio"`
	Rooms               int     `json:"rooms"`
	TanFudge            float64 `json:"tan_fudge"`
	TileSnapSize        float64 `json:"tile_snap_size"`
}

func DefaultParams() Params {
	return Params{
		ArenaSize:           2048,
		CorridorRedundancy:  15,
		FlockFactor:         600,
		MainRoomThresh:      0.8,
		MinSeparationFactor: 1.7,
		Model:               ModelType,
		RoomSzmax:           1024,
		RoomSzmin:           512,
		RoomSzratio:         1.8,
		Rooms:               12,
		TanFudge:            0.0001,
		TileSnapSize:        4,
	}
}

// LoadParams reads a json parameters file over the defaults. The model is
// always tinykeep.
func LoadParams(path string) (Params, error) {
	params := DefaultParams()

	data, err := os.ReadFile(path)
	if err != nil {
		return params, fmt.Errorf("failed to read parameters file: %w", err)
	}

	if err := json.Unmarshal(data, &params); err != nil {
		return params, fmt.Errorf("failed to parse parameters file: %w", err)
	}

	params.Model = ModelType
	return params, nil
}
