package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/pflag"

	"github.com/NethermindEth/arenastate/pkg/arenastate/art"
	"github.com/NethermindEth/arenastate/pkg/arenastate/chain"
	"github.com/NethermindEth/arenastate/pkg/arenastate/filestorage"
	"github.com/NethermindEth/arenastate/pkg/arenastate/logging"
	"github.com/NethermindEth/arenastate/pkg/arenastate/maptool"
	"github.com/NethermindEth/arenastate/pkg/arenastate/nft"
	"github.com/NethermindEth/arenastate/pkg/arenastate/setup"
	"github.com/NethermindEth/arenastate/pkg/arenastate/wallet"
)

// addParamFlags binds the generation parameters. Only flags given on the
// command line override a parameters file.
func addParamFlags(fs *pflag.FlagSet) func(params *maptool.Params) {
	d := maptool.DefaultParams()
	arenaSize := fs.Float64("arena-size", d.ArenaSize, "")
	corridorRedundancy := fs.Float64("corridor-redundancy", d.CorridorRedundancy, "")
	flockFactor := fs.Float64("flock-factor", d.FlockFactor, "")
	mainRoomThresh := fs.Float64("main-room-thresh", d.MainRoomThresh, "")
	minSeparationFactor := fs.Float64("min-separation-factor", d.MinSeparationFactor, "")
	roomSzmax := fs.Float64("room-szmax", d.RoomSzmax, "")
	roomSzmin := fs.Float64("room-szmin", d.RoomSzmin, "")
	roomSzratio := fs.Float64("room-szratio", d.RoomSzratio, "")
	rooms := fs.Int("rooms", d.Rooms, "")
	tanFudge := fs.Float64("tan-fudge", d.TanFudge, "")
	tileSnapSize := fs.Float64("tile-snap-size", d.TileSnapSize, "")

	return func(p *maptool.Params) {
		set := func(name string, dst *float64, v *float64) {
			if fs.Changed(name) {
				*dst = *v
			}
		}
		set("arena-size", &p.ArenaSize, arenaSize)
		set("corridor-redundancy", &p.CorridorRedundancy, corridorRedundancy)
		set("flock-factor", &p.FlockFactor, flockFactor)
		set("main-room-thresh", &p.MainRoomThresh, mainRoomThresh)
		set("min-separation-factor", &p.MinSeparationFactor, minSeparationFactor)
		set("room-szmax", &p.RoomSzmax, roomSzmax)
		set("room-szmin", &p.RoomSzmin, roomSzmin)
		set("room-szratio", &p.RoomSzratio, roomSzratio)
		set("tan-fudge", &p.TanFudge, tanFudge)
		set("tile-snap-size", &p.TileSnapSize, tileSnapSize)
		if fs.Changed("rooms") {
			p.Rooms = *rooms
		}
	}
}

func (a *app) maptool(ctx context.Context, args []string) error {
	fs := a.flagSet("maptool")
	url := fs.String("maptool-url", a.envDefault(setup.EnvMaptoolUrl, ""), "the maptool url, commit/ and generate/ are relative to it")
	paramsFile := fs.StringP("parameters", "p", "", "json file of generation parameters, flags take precedence")
	svgFile := fs.String("svg", "", "save an svg render of the map to this file")
	mapFile := fs.String("map-filename", "", "save the generated map to this file")
	secretsFile := fs.String("commit-secrets-filename", "", "save the VRF commitment, including its secrets, to this file")
	applyParams := addParamFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	log := logging.Logger("maptool")

	params := maptool.DefaultParams()
	if *paramsFile != "" {
		var err error
		if params, err = maptool.LoadParams(*paramsFile); err != nil {
			return err
		}
	}
	applyParams(&params)

	client, err := maptool.NewClient(*url)
	if err != nil {
		return err
	}

	committed, err := client.Commit(ctx, params)
	if err != nil {
		return err
	}
	if *secretsFile != "" {
		if err := os.WriteFile(*secretsFile, committed.Raw, 0600); err != nil {
			return fmt.Errorf("failed to save commit secrets: %w", err)
		}
	}

	log.Info("generating map", "alpha", committed.Alpha)
	mapData, err := client.Generate(ctx, committed)
	if err != nil {
		return err
	}
	if *mapFile != "" {
		if err := os.WriteFile(*mapFile, mapData, 0644); err != nil {
			return fmt.Errorf("failed to save map: %w", err)
		}
	}

	if *svgFile != "" {
		svg, err := client.GenerateSvg(ctx, committed)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*svgFile, svg, 0644); err != nil {
			return fmt.Errorf("failed to save svg: %w", err)
		}
	}

	_, err = fmt.Fprintln(a.stdout, string(mapData))
	return err
}

func (a *app) metadata(ctx context.Context, args []string) error {
	fs := a.flagSet("metadata")
	flags := a.addSetupFlags(fs)
	mapFile := fs.String("map", "", "map generated by the maptool command")
	iconUrl := fs.String("icon-url", "", "game icon to pin, otherwise one is generated with openai")
	prompt := fs.String("prompt", "", "prompt for the generated icon")
	name := fs.String("name", nft.DefaultGameName, "game name")
	dryRun := fs.Bool("dry-run", false, "print the metadata instead of uploading it")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *mapFile == "" {
		return errors.New("a map file is required, use the maptool command to generate one")
	}

	result, err := a.load(ctx, flags)
	if err != nil {
		return err
	}
	config := result.Config

	mapData, err := os.ReadFile(*mapFile)
	if err != nil {
		return fmt.Errorf("failed to read map: %w", err)
	}
	proof, err := maptool.ParseVrfProof(mapData)
	if err != nil {
		return err
	}

	if config.Maptool.Configured {
		pin, err := maptool.NewImagePinFromOptions(config.Maptool)
		if err != nil {
			return err
		}
		canonical, err := pin.Canonical()
		if err != nil {
			return err
		}
		logging.Logger("maptool").Info("map generator", "image", canonical)
	}

	arena, err := a.arena(ctx, config)
	if err != nil {
		return err
	}

	metadata := nft.NewGameMetadata(arena, nft.NewGenerator(config.Maptool), proof)
	metadata.Name = *name

	if *dryRun {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(metadata)
	}

	if *iconUrl == "" {
		generator, err := art.NewOpenAiGeneratorFromOptions(config.OpenAi)
		if err != nil {
			return err
		}
		if *iconUrl, err = generator.GenerateUrl(ctx, *prompt); err != nil {
			return err
		}
	}

	uploader, err := filestorage.NewPinataUploaderFromOptions(config.NftStorage)
	if err != nil {
		return err
	}

	hash, err := nft.NewNftUploader(uploader, "").UploadGame(ctx, metadata, *iconUrl)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(a.stdout, filestorage.IpfsUri("", hash))
	return err
}

// arena finds the arena the metadata links to.
func (a *app) arena(ctx context.Context, config *setup.Config) (common.Address, error) {
	if config.Arena != nil {
		return *config.Arena, nil
	}
	if config.DeployNonce == nil {
		return common.Address{}, chain.ErrArenaUnknown
	}

	keys, err := wallet.NewResolver().ResolveAll(ctx, config.Keys)
	if err != nil {
		return common.Address{}, err
	}
	return chain.LocateArena(config, keys)
}
