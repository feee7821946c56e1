package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/NethermindEth/arenastate/pkg/arenastate/setup"
	"github.com/NethermindEth/arenastate/pkg/arenastate/wallet"
)

var (
	ErrNotDeployed  = errors.New("deployer has not sent any transactions")
	ErrArenaUnknown = errors.New("the arena is not deployed in process until started, set " + setup.EnvArena + " or " + setup.EnvDeployNonce)
)

// DeriveContractAddress returns the address of the contract created by
// deployer at nonce. With a nil nonce it assumes the deployer's last
// transaction was the deployment, as the account is only used to deploy.
func DeriveContractAddress(ctx context.Context, reader ethereum.ChainStateReader, deployer common.Address, nonce *uint64) (common.Address, error) {
	if nonce != nil {
		return crypto.CreateAddress(deployer, *nonce), nil
	}

	count, err := reader.NonceAt(ctx, deployer, nil)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to get nonce for %s: %w", deployer.Hex(), err)
	}
	if count == 0 {
		return common.Address{}, fmt.Errorf("%s: %w", deployer.Hex(), ErrNotDeployed)
	}

	return crypto.CreateAddress(deployer, count-1), nil
}

// ArenaAddress prefers the configured arena and otherwise derives it from the
// deploy key.
func ArenaAddress(ctx context.Context, config *setup.Config, keys map[string]*wallet.Key, reader ethereum.ChainStateReader) (common.Address, error) {
	if config.Arena != nil {
		return *config.Arena, nil
	}

	deployer, ok := keys[setup.RoleDeploy]
	if !ok {
		return common.Address{}, errors.New("to identify the arena, set " + setup.EnvArena + " or " + setup.EnvDeployKey)
	}

	return DeriveContractAddress(ctx, reader, deployer.Address(), config.DeployNonce)
}

// LocateArena identifies the arena without a chain connection, from the
// configured arena or the deploy key and ARENASTATE_DEPLOY_NONCE.
func LocateArena(config *setup.Config, keys map[string]*wallet.Key) (common.Address, error) {
	if config.Arena != nil {
		return *config.Arena, nil
	}
	if config.DeployNonce == nil {
		return common.Address{}, ErrArenaUnknown
	}

	deployer, ok := keys[setup.RoleDeploy]
	if !ok {
		return common.Address{}, errors.New("to derive the arena from " + setup.EnvDeployNonce + ", set " + setup.EnvDeployKey)
	}
	return crypto.CreateAddress(deployer.Address(), *config.DeployNonce), nil
}
