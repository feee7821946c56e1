package main

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NethermindEth/arenastate/pkg/arenastate"
	"github.com/NethermindEth/arenastate/pkg/arenastate/chain"
	"github.com/NethermindEth/arenastate/pkg/arenastate/logging"
	"github.com/NethermindEth/arenastate/pkg/arenastate/setup"
)

const headPollInterval = 15 * time.Second

func (a *app) serve(ctx context.Context, args []string) error {
	fs := a.flagSet("serve")
	flags := a.addSetupFlags(fs)
	apiIpPort := fs.String("api", "", "listen address, overrides "+setup.EnvApiIpPort)
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := a.load(ctx, flags)
	if err != nil {
		return err
	}
	if *apiIpPort != "" {
		result.Config.ApiIpPort = *apiIpPort
	}

	stateConfig, err := arenastate.NewStateConfigFromSetupResult(ctx, result, flags.tappdEndpoint)
	if err != nil {
		return err
	}

	state, err := arenastate.NewState(ctx, stateConfig)
	if err != nil {
		stateConfig.Connection.Close()
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return state.Start(ctx)
	})
	g.Go(func() error {
		return watchHead(ctx, stateConfig.Connection)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// watchHead logs the chain head until ctx is done.
func watchHead(ctx context.Context, conn *chain.Connection) error {
	log := logging.Logger("chain")

	ticker := time.NewTicker(headPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			head, err := conn.Client.BlockNumber(ctx)
			if err != nil {
				log.Warn("failed to get block number", "error", err)
				continue
			}
			log.Debug("chain head", "block", head, "mode", conn.Mode.String())
		}
	}
}
